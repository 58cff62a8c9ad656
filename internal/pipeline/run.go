// Package pipeline provides the high-level orchestration of the job market
// data pipeline: fetch, clean, persist and visualize.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/google/uuid"

	"github.com/jonathan/jobmarket/internal/cleaning"
	"github.com/jonathan/jobmarket/internal/config"
	"github.com/jonathan/jobmarket/internal/db"
	"github.com/jonathan/jobmarket/internal/fetch"
	"github.com/jonathan/jobmarket/internal/ingestion"
	"github.com/jonathan/jobmarket/internal/observability"
	"github.com/jonathan/jobmarket/internal/skills"
	"github.com/jonathan/jobmarket/internal/storage"
	"github.com/jonathan/jobmarket/internal/types"
)

// Progress categories
const (
	CategoryFetch     = "fetch"
	CategoryClean     = "clean"
	CategoryPersist   = "persist"
	CategoryVisualize = "visualize"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for running the pipeline
type Options struct {
	Config     *config.Config
	Searcher   ingestion.Searcher // Defaults to an API client built from Config
	SampleSize int                // Rows in the sample tables; 0 skips them
	Rand       *rand.Rand         // Sampling source; nil uses the global source
	Out        io.Writer          // Progress output; defaults to os.Stdout
	OnProgress ProgressCallback
}

// Result summarizes a pipeline run.
type Result struct {
	RunID      uuid.UUID         `json:"run_id,omitempty"`
	RawCount   int               `json:"raw_count"`
	CleanCount int               `json:"clean_count"`
	Report     *ingestion.Report `json:"fetch_report,omitempty"`
	Stats      *cleaning.Stats   `json:"cleaning_stats,omitempty"`
	Files      []string          `json:"files"`
}

// NewSearcher builds the search API client described by cfg.
func NewSearcher(cfg *config.Config) *fetch.Client {
	return fetch.NewClient(cfg.AppID, cfg.AppKey,
		fetch.WithBaseURL(cfg.API.BaseURL),
		fetch.WithTimeout(cfg.API.Timeout()),
		fetch.WithRateLimit(cfg.API.RateLimit()),
		fetch.WithUserAgent(cfg.API.UserAgent),
	)
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *Options, runID uuid.UUID, step, category, message string, content any) {
	if opts.OnProgress == nil {
		return
	}
	event := ProgressEvent{
		Step:     step,
		Category: category,
		Message:  message,
		Content:  content,
	}
	if runID != uuid.Nil {
		event.RunID = runID.String()
	}
	opts.OnProgress(event)
}

func (o *Options) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

func (o *Options) searcher() ingestion.Searcher {
	if o.Searcher != nil {
		return o.Searcher
	}
	return NewSearcher(o.Config)
}

// Run executes the full pipeline: fetch every configured category, save
// the raw table, clean it, save the cleaned table and, when a database is
// configured, record the run.
//
//nolint:errcheck // progress output; errors are not recoverable
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("pipeline config is nil")
	}
	cfg := opts.Config
	out := opts.out()
	printer := observability.NewPrinter(out)
	result := &Result{}

	store := connectStore(ctx, cfg, out)
	if store != nil {
		defer store.Close()
	}

	fmt.Fprintf(out, "Step 1/3: Fetching data from API...\n")
	records, err := fetchRaw(ctx, &opts, result)
	if err != nil {
		store.fail(ctx, result)
		return nil, err
	}
	if cfg.Verbose {
		printer.PrintFetchReport(result.Report)
	}
	emitProgress(&opts, uuid.Nil, db.StepFetchReport, CategoryFetch,
		fmt.Sprintf("Fetched %d unique jobs", len(records)), result.Report)

	fmt.Fprintf(out, "Step 2/3: Cleaning data...\n")
	cleaned, err := cleanAndSave(&opts, records, result)
	if err != nil {
		store.fail(ctx, result)
		return nil, err
	}
	if cfg.Verbose {
		printer.PrintCleaningStats(result.Stats)
		printer.PrintSkillSample(cleaned)
	}
	emitProgress(&opts, uuid.Nil, db.StepCleaningStats, CategoryClean,
		fmt.Sprintf("Cleaned %d of %d jobs", result.CleanCount, result.RawCount), result.Stats)

	fmt.Fprintf(out, "Step 3/3: Persisting run...\n")
	if store != nil {
		store.persist(ctx, &opts, result, cleaned)
	} else if cfg.Verbose {
		fmt.Fprintf(out, "[VERBOSE] No database configured; skipping run persistence\n")
	}

	fmt.Fprintf(out, "Pipeline completed successfully!\n")
	return result, nil
}

// Fetch runs the fetch stage only and saves the raw table.
func Fetch(ctx context.Context, opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("pipeline config is nil")
	}
	result := &Result{}
	if _, err := fetchRaw(ctx, &opts, result); err != nil {
		return nil, err
	}
	if opts.Config.Verbose {
		observability.NewPrinter(opts.out()).PrintFetchReport(result.Report)
	}
	emitProgress(&opts, uuid.Nil, db.StepFetchReport, CategoryFetch,
		fmt.Sprintf("Fetched %d unique jobs", result.RawCount), result.Report)
	return result, nil
}

// CleanFile re-cleans a previously saved raw table and saves the cleaned table.
func CleanFile(ctx context.Context, opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("pipeline config is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := storage.ReadRaw(opts.Config.Paths.Raw)
	if err != nil {
		return nil, err
	}
	result := &Result{RawCount: len(records)}

	cleaned, err := cleanAndSave(&opts, records, result)
	if err != nil {
		return nil, err
	}
	if opts.Config.Verbose {
		printer := observability.NewPrinter(opts.out())
		printer.PrintCleaningStats(result.Stats)
		printer.PrintSkillSample(cleaned)
	}
	emitProgress(&opts, uuid.Nil, db.StepCleaningStats, CategoryClean,
		fmt.Sprintf("Cleaned %d of %d jobs", result.CleanCount, result.RawCount), result.Stats)
	return result, nil
}

//nolint:errcheck // progress output; errors are not recoverable
func fetchRaw(ctx context.Context, opts *Options, result *Result) ([]types.JobRecord, error) {
	cfg := opts.Config
	out := opts.out()

	records, report, err := ingestion.FetchCategories(ctx, opts.searcher(), cfg.Categories, ingestion.Options{
		Limits:  ingestion.LimitsFromConfig(cfg.API),
		Verbose: cfg.Verbose,
		Out:     out,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching jobs failed: %w", err)
	}
	result.Report = report
	result.RawCount = len(records)

	if err := storage.WriteRaw(cfg.Paths.Raw, records); err != nil {
		return nil, err
	}
	result.Files = append(result.Files, cfg.Paths.Raw)
	fmt.Fprintf(out, "Saved %d raw jobs to %s\n", len(records), cfg.Paths.Raw)

	if opts.SampleSize > 0 {
		sample := storage.Sample(records, opts.SampleSize, opts.Rand)
		if err := storage.WriteRaw(cfg.Paths.RawSample, sample); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, cfg.Paths.RawSample)
		fmt.Fprintf(out, "Saved %d sample jobs to %s\n", len(sample), cfg.Paths.RawSample)
	}
	return records, nil
}

//nolint:errcheck // progress output; errors are not recoverable
func cleanAndSave(opts *Options, records []types.JobRecord, result *Result) ([]types.CleanedJobRecord, error) {
	cfg := opts.Config
	out := opts.out()

	extractor := skills.NewExtractor(cfg.Vocabulary)
	cleaned, stats := cleaning.Clean(records, extractor)
	result.Stats = stats
	result.CleanCount = len(cleaned)

	if err := storage.WriteCleaned(cfg.Paths.Clean, cleaned); err != nil {
		return nil, err
	}
	result.Files = append(result.Files, cfg.Paths.Clean)
	fmt.Fprintf(out, "Saved %d cleaned jobs to %s\n", len(cleaned), cfg.Paths.Clean)

	if opts.SampleSize > 0 {
		sample := storage.Sample(cleaned, opts.SampleSize, opts.Rand)
		if err := storage.WriteCleaned(cfg.Paths.CleanSample, sample); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, cfg.Paths.CleanSample)
		fmt.Fprintf(out, "Saved %d sample cleaned jobs to %s\n", len(sample), cfg.Paths.CleanSample)
	}
	return cleaned, nil
}
