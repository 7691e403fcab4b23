package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MikelBai/Bank-management-application/internal/service"
)

type Postgres struct {
	DB *sql.DB
}

func New(db *sql.DB) *Postgres {
	return &Postgres{DB: db}
}

func (p *Postgres) Close() error {
	return p.DB.Close()
}

// EnsureSchema creates the snapshot table on first run.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS snapshots (
			id       BIGSERIAL PRIMARY KEY,
			taken_at TIMESTAMPTZ NOT NULL,
			payload  JSONB NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("error creating snapshots table: %w", err)
	}
	return nil
}

func (p *Postgres) Save(ctx context.Context, takenAt time.Time, data []byte) error {
	_, err := p.DB.ExecContext(ctx,
		"INSERT INTO snapshots (taken_at, payload) VALUES ($1, $2)", takenAt, data)
	if err != nil {
		return fmt.Errorf("error saving snapshot: %w", err)
	}
	return nil
}

func (p *Postgres) LoadLatest(ctx context.Context) ([]byte, error) {
	row := p.DB.QueryRowContext(ctx,
		"SELECT payload FROM snapshots ORDER BY taken_at DESC, id DESC LIMIT 1")

	var payload []byte
	err := row.Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, service.ErrNoSnapshot
		}
		return nil, fmt.Errorf("error fetching snapshot: %w", err)
	}

	return payload, nil
}
