package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/jonathan/jobmarket/internal/config"
	"github.com/jonathan/jobmarket/internal/db"
	"github.com/jonathan/jobmarket/internal/types"
)

// runStore records a run in the database. A nil *runStore means database
// persistence is off and every method is a no-op.
type runStore struct {
	db      *db.DB
	runID   uuid.UUID
	verbose bool
	out     io.Writer
}

// connectStore opens the database and creates the run record. Any failure
// is reported as a warning and disables persistence for the run.
//
//nolint:errcheck // progress output; errors are not recoverable
func connectStore(ctx context.Context, cfg *config.Config, out io.Writer) *runStore {
	if cfg.DatabaseURL == "" {
		return nil
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(out, "Warning: Failed to connect to database: %v\n", err)
		fmt.Fprintf(out, "Continuing without database persistence...\n")
		return nil
	}
	if err := database.EnsureSchema(ctx); err != nil {
		fmt.Fprintf(out, "Warning: %v\n", err)
		fmt.Fprintf(out, "Continuing without database persistence...\n")
		database.Close()
		return nil
	}

	jobTypes := make([]string, len(cfg.Categories))
	for i, q := range cfg.Categories {
		jobTypes[i] = q.JobType
	}
	runID, err := database.CreateRun(ctx, jobTypes)
	if err != nil {
		fmt.Fprintf(out, "Warning: Failed to create database run: %v\n", err)
		database.Close()
		return nil
	}
	if cfg.Verbose {
		fmt.Fprintf(out, "[VERBOSE] Created database run: %s\n", runID)
	}

	return &runStore{db: database, runID: runID, verbose: cfg.Verbose, out: out}
}

func (s *runStore) Close() {
	if s == nil {
		return
	}
	s.db.Close()
}

// persist stores the cleaned rows and run artifacts, then completes the run.
//
//nolint:errcheck // progress output; errors are not recoverable
func (s *runStore) persist(ctx context.Context, opts *Options, result *Result, cleaned []types.CleanedJobRecord) {
	if s == nil {
		return
	}
	result.RunID = s.runID

	n, err := s.db.InsertCleanedJobs(ctx, s.runID, cleaned)
	if err != nil {
		fmt.Fprintf(s.out, "Warning: Failed to store cleaned jobs: %v\n", err)
		s.complete(ctx, db.StatusFailed, result)
		return
	}
	if s.verbose {
		fmt.Fprintf(s.out, "[VERBOSE] Stored %d cleaned jobs for run %s\n", n, s.runID)
	}

	if err := s.db.SaveArtifact(ctx, s.runID, db.StepFetchReport, result.Report); err != nil {
		fmt.Fprintf(s.out, "Warning: %v\n", err)
	}
	if err := s.db.SaveArtifact(ctx, s.runID, db.StepCleaningStats, result.Stats); err != nil {
		fmt.Fprintf(s.out, "Warning: %v\n", err)
	}

	s.complete(ctx, db.StatusCompleted, result)
	emitProgress(opts, s.runID, "run", CategoryPersist,
		fmt.Sprintf("Stored run %s with %d cleaned jobs", s.runID, n), nil)
}

// fail marks the run as failed with whatever counts were reached.
func (s *runStore) fail(ctx context.Context, result *Result) {
	if s == nil {
		return
	}
	s.complete(ctx, db.StatusFailed, result)
}

//nolint:errcheck // progress output; errors are not recoverable
func (s *runStore) complete(ctx context.Context, status string, result *Result) {
	// The run context may already be cancelled; the status update must still land.
	if err := s.db.CompleteRun(context.WithoutCancel(ctx), s.runID, status, result.RawCount, result.CleanCount); err != nil {
		fmt.Fprintf(s.out, "Warning: %v\n", err)
	}
}
