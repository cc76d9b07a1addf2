package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/preston-bernstein/football-slip-service/internal/domain/slips"
)

var poolMigrations = []string{
	`CREATE TABLE IF NOT EXISTS pools (
		id VARCHAR(64) PRIMARY KEY,
		user_id VARCHAR(128) NOT NULL,
		selections JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pools_user_id ON pools(user_id)`,
}

const (
	upsertPoolSQL = `INSERT INTO pools (id, user_id, selections, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET selections = EXCLUDED.selections, updated_at = EXCLUDED.updated_at`
	selectPoolSQL = `SELECT id, user_id, selections, created_at, updated_at FROM pools WHERE id = $1`
	deletePoolSQL = `DELETE FROM pools WHERE id = $1`
)

// PostgresPoolStore persists pools in Postgres through lib/pq.
type PostgresPoolStore struct {
	db *sql.DB
}

// OpenPostgres connects to Postgres, verifies the connection and sizes the pool.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	return db, nil
}

// NewPostgresPoolStore runs the pool migrations and returns the store.
func NewPostgresPoolStore(ctx context.Context, db *sql.DB) (*PostgresPoolStore, error) {
	for _, stmt := range poolMigrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("failed to migrate pools: %w", err)
		}
	}
	return &PostgresPoolStore{db: db}, nil
}

// SavePool inserts the pool, or updates its selections when the id already exists.
func (p *PostgresPoolStore) SavePool(ctx context.Context, pool slips.Pool) error {
	selections, err := json.Marshal(cloneSelections(pool.Selections))
	if err != nil {
		return fmt.Errorf("failed to marshal selections: %w", err)
	}
	if _, err := p.db.ExecContext(ctx, upsertPoolSQL, pool.ID, pool.UserID, selections, pool.CreatedAt, pool.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save pool %s: %w", pool.ID, err)
	}
	return nil
}

// GetPool loads a pool by id or returns ErrNotFound.
func (p *PostgresPoolStore) GetPool(ctx context.Context, id string) (slips.Pool, error) {
	pool, err := scanPool(p.db.QueryRowContext(ctx, selectPoolSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return slips.Pool{}, ErrNotFound
	}
	if err != nil {
		return slips.Pool{}, fmt.Errorf("failed to load pool %s: %w", id, err)
	}
	return pool, nil
}

// DeletePool removes a withdrawn pool.
func (p *PostgresPoolStore) DeletePool(ctx context.Context, id string) error {
	if _, err := p.db.ExecContext(ctx, deletePoolSQL, id); err != nil {
		return fmt.Errorf("failed to delete pool %s: %w", id, err)
	}
	return nil
}

// Close closes the database handle.
func (p *PostgresPoolStore) Close() error {
	return p.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPool(row rowScanner) (slips.Pool, error) {
	var (
		pool       slips.Pool
		selections []byte
	)
	if err := row.Scan(&pool.ID, &pool.UserID, &selections, &pool.CreatedAt, &pool.UpdatedAt); err != nil {
		return slips.Pool{}, err
	}
	if err := json.Unmarshal(selections, &pool.Selections); err != nil {
		return slips.Pool{}, fmt.Errorf("failed to unmarshal selections: %w", err)
	}
	return pool, nil
}
