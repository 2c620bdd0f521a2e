package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// NewSQLiteClient opens a SQLite database, used for local development and tests.
// Pass ":memory:" for a throwaway database.
func NewSQLiteClient(path string) (*DBClient, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// An in-memory database lives only as long as its single connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}

	log.Printf("Successfully opened SQLite database %s", path)
	return &DBClient{db: db, driver: DriverSQLite}, nil
}
