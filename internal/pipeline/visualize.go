package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/jobmarket/internal/config"
	"github.com/jonathan/jobmarket/internal/db"
	"github.com/jonathan/jobmarket/internal/observability"
	"github.com/jonathan/jobmarket/internal/rendering"
	"github.com/jonathan/jobmarket/internal/storage"
)

// VisualizeOptions holds the inputs of a visualization run.
type VisualizeOptions struct {
	Config     *config.Config
	InputPath  string    // Clustered table; defaults to Config.Paths.Clustered
	OutDir     string    // Defaults to Config.Paths.ReportsDir
	SSE        []float64 // Elbow values; empty skips the elbow chart
	KStart     int
	Out        io.Writer
	OnProgress ProgressCallback
}

// Visualize reads a clustered table and renders every chart and the map.
//
//nolint:errcheck // progress output; errors are not recoverable
func Visualize(ctx context.Context, opts VisualizeOptions) (*rendering.Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("pipeline config is nil")
	}
	cfg := opts.Config
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	input := opts.InputPath
	if input == "" {
		input = cfg.Paths.Clustered
	}
	outDir := opts.OutDir
	if outDir == "" {
		outDir = cfg.Paths.ReportsDir
	}
	kStart := opts.KStart
	if kStart <= 0 {
		kStart = 1
	}

	fmt.Fprintf(out, "Step 1/2: Loading clustered data from %s...\n", input)
	rows, err := storage.ReadClustered(input, storage.DefaultClusteredColumns(cfg.Clustering.Column))
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		fmt.Fprintf(out, "[VERBOSE] Loaded %d clustered jobs (label column %s)\n", len(rows), cfg.Clustering.Column)
	}

	fmt.Fprintf(out, "Step 2/2: Rendering visualizations to %s...\n", outDir)
	var center [2]float64
	copy(center[:], cfg.Map.Center)
	result, err := rendering.RenderAll(ctx, rendering.Request{
		Rows:   rows,
		OutDir: outDir,
		Map: rendering.MapOptions{
			Center: center,
			Zoom:   cfg.Map.Zoom,
			Colors: cfg.Map.Colors,
		},
		SSE:    opts.SSE,
		KStart: kStart,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering failed: %w", err)
	}

	for name, reason := range result.Skipped {
		fmt.Fprintf(out, "Warning: skipped %s: %v\n", name, reason)
	}
	if cfg.Verbose {
		observability.NewPrinter(out).PrintClusterProfiles(result.Profiles)
	}
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     db.StepClusterProfiles,
			Category: CategoryVisualize,
			Message:  fmt.Sprintf("Rendered %d files for %d clusters", len(result.Files), len(result.Profiles)),
			Content:  result.Profiles,
		})
	}

	fmt.Fprintf(out, "Saved %d visualizations to %s\n", len(result.Files), outDir)
	return result, nil
}
