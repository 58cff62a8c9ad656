package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobmarket/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full data pipeline end-to-end",
	Long: `Orchestrates the whole data pipeline: fetch -> save raw -> clean -> save cleaned -> persist run.

Configuration can be loaded from a JSON file using --config. When DATABASE_URL is set the run and
its cleaned rows are also stored in PostgreSQL.`,
	RunE: runPipelineCmd,
}

var (
	runSample int
	runEvents bool
)

func init() {
	runCommand.Flags().IntVar(&runSample, "sample", 0, "Also write random samples of this many rows (0 disables)")
	runCommand.Flags().BoolVar(&runEvents, "events", false, "Print progress events as JSON lines")
	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	out := cmd.OutOrStdout()
	opts := pipeline.Options{
		Config:     cfg,
		SampleSize: runSample,
		Out:        out,
	}
	if runEvents {
		enc := json.NewEncoder(out)
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			_ = enc.Encode(event)
		}
	}

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		_, _ = fmt.Fprintf(out, "[VERBOSE] Raw rows: %d, cleaned rows: %d\n", result.RawCount, result.CleanCount)
		for _, f := range result.Files {
			_, _ = fmt.Fprintf(out, "[VERBOSE] Wrote %s\n", f)
		}
	}
	return nil
}
