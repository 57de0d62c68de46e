package weather

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zoneguard/zoneguard/internal/zone"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL weather repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// FindForDay retrieves the snapshot for a zone and calendar day.
func (r *PostgresRepository) FindForDay(ctx context.Context, z zone.ID, day time.Time) (*Snapshot, error) {
	query := `
		SELECT zone, day, condition, temperature_c
		FROM weather_snapshots
		WHERE zone = $1 AND day = $2
	`

	var snap Snapshot
	err := r.pool.QueryRow(ctx, query, z, day.Format("2006-01-02")).Scan(
		&snap.Zone,
		&snap.Day,
		&snap.Condition,
		&snap.Temperature,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoSnapshot
		}
		return nil, err
	}

	return &snap, nil
}

// Upsert stores the snapshot for its (zone, day).
func (r *PostgresRepository) Upsert(ctx context.Context, snap *Snapshot) error {
	query := `
		INSERT INTO weather_snapshots (zone, day, condition, temperature_c)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (zone, day) DO UPDATE
		SET condition = EXCLUDED.condition, temperature_c = EXCLUDED.temperature_c
	`

	_, err := r.pool.Exec(ctx, query,
		snap.Zone, snap.Day.Format("2006-01-02"), snap.Condition, snap.Temperature,
	)
	return err
}
