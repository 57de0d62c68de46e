package hospital

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zoneguard/zoneguard/internal/zone"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL hospital repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a hospital by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Hospital, error) {
	query := `
		SELECT id, name, zone, capacity
		FROM hospitals
		WHERE id = $1
	`

	var h Hospital
	err := r.pool.QueryRow(ctx, query, id).Scan(&h.ID, &h.Name, &h.Zone, &h.Capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrHospitalNotFound
		}
		return nil, err
	}

	return &h, nil
}

// List retrieves all hospitals.
func (r *PostgresRepository) List(ctx context.Context) ([]*Hospital, error) {
	query := `
		SELECT id, name, zone, capacity
		FROM hospitals
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHospitals(rows)
}

// ListByZone retrieves the hospitals in one zone.
func (r *PostgresRepository) ListByZone(ctx context.Context, z zone.ID) ([]*Hospital, error) {
	query := `
		SELECT id, name, zone, capacity
		FROM hospitals
		WHERE zone = $1
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, z)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHospitals(rows)
}

// Upsert inserts or replaces a hospital record.
func (r *PostgresRepository) Upsert(ctx context.Context, h *Hospital) error {
	query := `
		INSERT INTO hospitals (id, name, zone, capacity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, zone = EXCLUDED.zone, capacity = EXCLUDED.capacity
	`

	_, err := r.pool.Exec(ctx, query, h.ID, h.Name, h.Zone, h.Capacity)
	return err
}

func scanHospitals(rows pgx.Rows) ([]*Hospital, error) {
	var hospitals []*Hospital
	for rows.Next() {
		var h Hospital
		if err := rows.Scan(&h.ID, &h.Name, &h.Zone, &h.Capacity); err != nil {
			return nil, err
		}
		hospitals = append(hospitals, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return hospitals, nil
}
