package accident

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zoneguard/zoneguard/internal/zone"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL accident repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Find retrieves accident records for a zone in [from, to).
func (r *PostgresRepository) Find(ctx context.Context, z zone.ID, from, to time.Time) ([]*Record, error) {
	query := `
		SELECT id, zone, severity, description, occurred_at
		FROM accidents
		WHERE zone = $1 AND occurred_at >= $2 AND occurred_at < $3
		ORDER BY occurred_at
	`

	rows, err := r.pool.Query(ctx, query, z, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var rec Record
		err := rows.Scan(&rec.ID, &rec.Zone, &rec.Severity, &rec.Description, &rec.Timestamp)
		if err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Insert stores one accident record.
func (r *PostgresRepository) Insert(ctx context.Context, rec *Record) error {
	query := `
		INSERT INTO accidents (id, zone, severity, description, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, rec.ID, rec.Zone, rec.Severity, rec.Description, rec.Timestamp)
	return err
}
