package ambulance

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

// NewPostgresRepository creates a new PostgreSQL ambulance repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// FindActivity retrieves activity records for a zone in [from, to).
func (r *PostgresRepository) FindActivity(ctx context.Context, z zone.ID, from, to time.Time) ([]*ActivityRecord, error) {
	query := `
		SELECT id, zone, hospital_id, patient_count, risk, recorded_at
		FROM ambulance_activity
		WHERE zone = $1 AND recorded_at >= $2 AND recorded_at < $3
		ORDER BY recorded_at
	`

	rows, err := r.pool.Query(ctx, query, z, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*ActivityRecord
	for rows.Next() {
		var rec ActivityRecord
		err := rows.Scan(
			&rec.ID,
			&rec.Zone,
			&rec.HospitalID,
			&rec.PatientCount,
			&rec.Risk,
			&rec.Timestamp,
		)
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

// InsertActivity stores one activity record.
func (r *PostgresRepository) InsertActivity(ctx context.Context, rec *ActivityRecord) error {
	query := `
		INSERT INTO ambulance_activity (id, zone, hospital_id, patient_count, risk, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.Zone, rec.HospitalID, rec.PatientCount, rec.Risk, rec.Timestamp,
	)
	return err
}

// CountFleet counts fleet units in a zone, optionally filtered by status.
func (r *PostgresRepository) CountFleet(ctx context.Context, z zone.ID, status UnitStatus) (int, error) {
	var (
		count int
		err   error
	)

	if status == "" {
		query := `SELECT COUNT(*) FROM fleet_units WHERE zone = $1`
		err = r.pool.QueryRow(ctx, query, z).Scan(&count)
	} else {
		query := `SELECT COUNT(*) FROM fleet_units WHERE zone = $1 AND status = $2`
		err = r.pool.QueryRow(ctx, query, z, status).Scan(&count)
	}
	if err != nil {
		return 0, err
	}

	return count, nil
}

// UpsertUnit creates or updates a fleet unit's status.
func (r *PostgresRepository) UpsertUnit(ctx context.Context, unit *FleetUnit) error {
	query := `
		INSERT INTO fleet_units (id, zone, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET zone = EXCLUDED.zone, status = EXCLUDED.status
	`

	_, err := r.pool.Exec(ctx, query, unit.ID, unit.Zone, unit.Status)
	return err
}
