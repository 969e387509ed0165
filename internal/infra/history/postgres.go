package history

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dharshaa/air-advisor/internal/domain/airquality"
)

// PostgresRepository implements airquality.HistoryRepository using pgx.
//
// Expected schema:
//
//	CREATE TABLE readings (
//	    id              BIGSERIAL PRIMARY KEY,
//	    location        TEXT NOT NULL,
//	    pollutant_index DOUBLE PRECISION NOT NULL,
//	    observed_at     TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX readings_location_observed_idx ON readings (lower(location), observed_at);
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Append inserts a reading row.
func (r *PostgresRepository) Append(ctx context.Context, reading airquality.Reading) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO readings (location, pollutant_index, observed_at)
		VALUES ($1, $2, $3)
	`, reading.Location, reading.PollutantIndex, reading.Timestamp)
	return err
}

// Recent returns up to limit readings for the location, oldest first.
func (r *PostgresRepository) Recent(ctx context.Context, location string, limit int) ([]airquality.Reading, error) {
	if limit <= 0 {
		limit = 7
	}
	rows, err := r.pool.Query(ctx, `
		SELECT location, pollutant_index, observed_at
		FROM readings
		WHERE lower(location) = lower($1)
		ORDER BY observed_at DESC
		LIMIT $2
	`, location, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []airquality.Reading
	for rows.Next() {
		var reading airquality.Reading
		if err := rows.Scan(&reading.Location, &reading.PollutantIndex, &reading.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, reading)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// The query returns newest first; flip to chronological order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

var _ airquality.HistoryRepository = (*PostgresRepository)(nil)
