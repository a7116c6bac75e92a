package storage

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq" // Postgres driver
)

// PostgresLayer keeps one row per collection in a collections table. Each
// save is a single upsert, which gives the same whole-document atomicity as
// the file layer's rename.
type PostgresLayer struct {
	DB *sql.DB
}

// NewPostgresLayer opens the connection, configures the pool, pings, and
// ensures the collections table exists.
func NewPostgresLayer(connString string) (*PostgresLayer, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	schema := `
		CREATE TABLE IF NOT EXISTS collections (
			name       TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, err
	}

	return &PostgresLayer{DB: db}, nil
}

func (p *PostgresLayer) Read(name string) ([]byte, bool, error) {
	var data []byte
	err := p.DB.QueryRow(`SELECT data FROM collections WHERE name = $1`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (p *PostgresLayer) Write(name string, data []byte) error {
	query := `
		INSERT INTO collections (name, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`
	_, err := p.DB.Exec(query, name, data)
	return err
}

func (p *PostgresLayer) Close() error {
	return p.DB.Close()
}
