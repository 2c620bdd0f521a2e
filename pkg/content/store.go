package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gerobakjogja/site-functions/models"
	"github.com/gerobakjogja/site-functions/pkg/database"
)

// Store reads the product and blog-post collections. Lists always return the
// whole collection.
type Store interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListBlogPosts(ctx context.Context) ([]models.BlogPost, error)
	CountProducts(ctx context.Context) (int, error)
	CountBlogPosts(ctx context.Context) (int, error)
}

// SQLStore implements Store on PostgreSQL or SQLite.
type SQLStore struct {
	db     *sql.DB
	driver string
}

// NewSQLStore returns a store over an open database client.
func NewSQLStore(client *database.DBClient) *SQLStore {
	return &SQLStore{db: client.GetDB(), driver: client.Driver()}
}

// Initialize creates the content tables. The DDL is valid for both drivers.
func (s *SQLStore) Initialize(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT,
			images TEXT,
			image TEXT,
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMP,
			updated_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS blog_posts (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			slug TEXT,
			image TEXT,
			created_at TIMESTAMP,
			updated_at TIMESTAMP
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}
	return nil
}

// ListProducts returns every product ordered by id.
func (s *SQLStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, slug, images, image, price, created_at, updated_at FROM products ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var (
			p                    models.Product
			slug, images, image  sql.NullString
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(&p.ID, &p.Name, &slug, &images, &image, &p.Price, &createdAt, &updatedAt); err != nil {
			log.Printf("Error scanning product row: %v", err)
			continue
		}
		p.Slug = slug.String
		if images.Valid && images.String != "" {
			if err := json.Unmarshal([]byte(images.String), &p.Images); err != nil {
				log.Printf("Product %s has malformed images column: %v", p.ID, err)
			}
		}
		p.Image = nullableString(image)
		p.CreatedAt = nullableTime(createdAt)
		p.UpdatedAt = nullableTime(updatedAt)
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during product row iteration: %w", err)
	}
	return products, nil
}

// ListBlogPosts returns every blog post ordered by id.
func (s *SQLStore) ListBlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, slug, image, created_at, updated_at FROM blog_posts ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query blog posts: %w", err)
	}
	defer rows.Close()

	var posts []models.BlogPost
	for rows.Next() {
		var (
			b                    models.BlogPost
			slug, image          sql.NullString
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(&b.ID, &b.Title, &slug, &image, &createdAt, &updatedAt); err != nil {
			log.Printf("Error scanning blog post row: %v", err)
			continue
		}
		b.Slug = slug.String
		b.Image = nullableString(image)
		b.CreatedAt = nullableTime(createdAt)
		b.UpdatedAt = nullableTime(updatedAt)
		posts = append(posts, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during blog post row iteration: %w", err)
	}
	return posts, nil
}

// CountProducts runs a count-only query.
func (s *SQLStore) CountProducts(ctx context.Context) (int, error) {
	return s.count(ctx, "products")
}

// CountBlogPosts runs a count-only query.
func (s *SQLStore) CountBlogPosts(ctx context.Context) (int, error) {
	return s.count(ctx, "blog_posts")
}

func (s *SQLStore) count(ctx context.Context, table string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

// UpsertProducts inserts or updates products in one transaction.
func (s *SQLStore) UpsertProducts(ctx context.Context, products []models.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := s.rebind(`
		INSERT INTO products (id, name, slug, images, image, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			slug = EXCLUDED.slug,
			images = EXCLUDED.images,
			image = EXCLUDED.image,
			price = EXCLUDED.price,
			updated_at = EXCLUDED.updated_at`)

	now := time.Now().UTC()
	for _, p := range products {
		images, err := json.Marshal(p.Images)
		if err != nil {
			return fmt.Errorf("failed to encode images of product %s: %w", p.ID, err)
		}
		createdAt := now
		if p.CreatedAt != nil {
			createdAt = *p.CreatedAt
		}
		updatedAt := now
		if p.UpdatedAt != nil {
			updatedAt = *p.UpdatedAt
		}

		if _, err := tx.ExecContext(ctx, query,
			p.ID, p.Name, nullString(p.Slug), string(images), nullStringPtr(p.Image), p.Price, createdAt, updatedAt,
		); err != nil {
			return fmt.Errorf("failed to upsert product %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpsertBlogPost inserts or updates a single blog post.
func (s *SQLStore) UpsertBlogPost(ctx context.Context, b models.BlogPost) error {
	query := s.rebind(`
		INSERT INTO blog_posts (id, title, slug, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			slug = EXCLUDED.slug,
			image = EXCLUDED.image,
			updated_at = EXCLUDED.updated_at`)

	_, err := s.db.ExecContext(ctx, query,
		b.ID, b.Title, nullString(b.Slug), nullStringPtr(b.Image), nullTimePtr(b.CreatedAt), nullTimePtr(b.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert blog post %s: %w", b.ID, err)
	}
	return nil
}

// rebind rewrites $N placeholders to ? for SQLite.
func (s *SQLStore) rebind(query string) string {
	if s.driver != database.DriverSQLite {
		return query
	}
	for i := 9; i >= 1; i-- {
		query = strings.ReplaceAll(query, "$"+strconv.Itoa(i), "?")
	}
	return query
}

// nullString converts a Go string to sql.NullString for nullable DB columns
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return nullString(*s)
}

func nullTimePtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullableString(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	v := s.String
	return &v
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
