package seen

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/deusflow/aifeed/internal/logger"
)

// PostgresStore keeps featured hashes in a table, for deployments where
// runs happen on ephemeral machines and a file would not survive.
type PostgresStore struct {
	db  *sql.DB
	ttl time.Duration
}

func NewPostgresStore(databaseURL string, ttlHours int) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	createTable := `
		CREATE TABLE IF NOT EXISTS featured_items (
			hash TEXT PRIMARY KEY,
			featured_at TIMESTAMPTZ NOT NULL
		)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create featured_items table: %w", err)
	}

	return &PostgresStore{db: db, ttl: time.Duration(ttlHours) * time.Hour}, nil
}

func (s *PostgresStore) Has(hash string) bool {
	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM featured_items WHERE hash = $1 AND featured_at > $2)",
		hash, time.Now().UTC().Add(-s.ttl),
	).Scan(&exists)
	if err != nil {
		logger.Debug("seen lookup failed", "error", err)
		return false
	}
	return exists
}

func (s *PostgresStore) MarkAll(hashes []string, featuredAt time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin seen transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT INTO featured_items (hash, featured_at) VALUES ($1, $2) " +
			"ON CONFLICT (hash) DO UPDATE SET featured_at = EXCLUDED.featured_at",
	)
	if err != nil {
		return fmt.Errorf("prepare seen insert: %w", err)
	}
	defer stmt.Close()

	for _, hash := range hashes {
		if _, err := stmt.Exec(hash, featuredAt.UTC()); err != nil {
			return fmt.Errorf("record seen hash: %w", err)
		}
	}

	if _, err := tx.Exec("DELETE FROM featured_items WHERE featured_at < $1", time.Now().UTC().Add(-s.ttl)); err != nil {
		return fmt.Errorf("prune seen rows: %w", err)
	}
	return tx.Commit()
}

func (s *PostgresStore) Close() error { return s.db.Close() }
