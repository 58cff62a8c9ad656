package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/jobmarket/internal/types"
)

const insertJobSQL = `
INSERT INTO cleaned_jobs (run_id, title, description, salary_min, salary_max, salary_mid,
	latitude, longitude, country, region, county, city, skills)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

// InsertCleanedJobs stores the cleaned rows of a run in a single batch.
// Returns the number of rows inserted.
func (db *DB) InsertCleanedJobs(ctx context.Context, runID uuid.UUID, records []types.CleanedJobRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	batch := queueCleanedJobs(runID, records)
	results := db.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return i, fmt.Errorf("batch insert failed at row %d: %w", i, err)
		}
	}
	return batch.Len(), nil
}

func queueCleanedJobs(runID uuid.UUID, records []types.CleanedJobRecord) *pgx.Batch {
	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(insertJobSQL,
			runID,
			r.Title,
			r.Description,
			r.SalaryMin,
			r.SalaryMax,
			r.SalaryMid,
			r.Latitude,
			r.Longitude,
			r.Country,
			r.Region,
			r.County,
			r.City,
			r.Skills.Sorted(),
		)
	}
	return batch
}

// CountJobs returns the number of cleaned rows stored for a run
func (db *DB) CountJobs(ctx context.Context, runID uuid.UUID) (int, error) {
	var n int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM cleaned_jobs WHERE run_id = $1`,
		runID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return n, nil
}
