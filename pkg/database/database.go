package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/gerobakjogja/site-functions/pkg/config"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DBClient holds the database connection and the driver it was opened with
type DBClient struct {
	db     *sql.DB
	driver string
}

// Open connects to the database selected by DB_DRIVER.
func Open(cfg *config.Config) (*DBClient, error) {
	switch cfg.Database.Driver {
	case DriverPostgres, "":
		return NewPostgresClient(cfg)
	case DriverSQLite, "sqlite3":
		return NewSQLiteClient(cfg.Database.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
}

// Close closes the database connection
func (c *DBClient) Close() {
	if c.db != nil {
		c.db.Close()
		log.Printf("%s connection closed.", c.driver)
	}
}

// GetDB returns the underlying *sql.DB instance
func (c *DBClient) GetDB() *sql.DB {
	return c.db
}

// Driver returns DriverPostgres or DriverSQLite.
func (c *DBClient) Driver() string {
	return c.driver
}
