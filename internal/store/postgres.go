package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tokenlink/tokenlink/internal/redirect"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// PostgresStore is a PostgreSQL implementation of redirect.Repository.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed redirect store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Insert(ctx context.Context, rec *redirect.Record) error {
	query := `
		INSERT INTO redirects (key, destination, token, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING created_at, updated_at
	`

	err := p.pool.QueryRow(ctx, query, rec.Key, rec.Destination, rec.Token).
		Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return redirect.ErrDuplicateKey
		}

		return err
	}

	return nil
}

func (p *PostgresStore) GetByKey(ctx context.Context, key string) (*redirect.Record, error) {
	query := `
		SELECT key, destination, token, created_at, updated_at
		FROM redirects
		WHERE key = $1
	`

	var rec redirect.Record

	err := p.pool.QueryRow(ctx, query, key).Scan(
		&rec.Key,
		&rec.Destination,
		&rec.Token,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, redirect.ErrNotFound
		}

		return nil, err
	}

	return &rec, nil
}

func (p *PostgresStore) List(ctx context.Context) ([]*redirect.Record, error) {
	query := `
		SELECT key, destination, token, created_at, updated_at
		FROM redirects
		ORDER BY created_at DESC
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*redirect.Record

	for rows.Next() {
		var rec redirect.Record

		if err := rows.Scan(
			&rec.Key,
			&rec.Destination,
			&rec.Token,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		); err != nil {
			return nil, err
		}

		records = append(records, &rec)
	}

	return records, rows.Err()
}

func (p *PostgresStore) UpdateDestination(ctx context.Context, key, destination string) (*redirect.Record, error) {
	query := `
		UPDATE redirects
		SET destination = $2, updated_at = now()
		WHERE key = $1
		RETURNING key, destination, token, created_at, updated_at
	`

	var rec redirect.Record

	err := p.pool.QueryRow(ctx, query, key, destination).Scan(
		&rec.Key,
		&rec.Destination,
		&rec.Token,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, redirect.ErrNotFound
		}

		return nil, err
	}

	return &rec, nil
}

func (p *PostgresStore) DeleteByKey(ctx context.Context, key string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM redirects WHERE key = $1`, key)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return redirect.ErrNotFound
	}

	return nil
}
