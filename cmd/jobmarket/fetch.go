package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/jobmarket/internal/pipeline"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch job listings for every configured category and save the raw table",
	Long: `Pages through the search API for each configured category, deduplicates listings by id
and writes the raw table. Requires ADZUNA_APP_ID and ADZUNA_APP_KEY in the environment or .env.`,
	RunE: runFetch,
}

var fetchSample int

func init() {
	fetchCmd.Flags().IntVar(&fetchSample, "sample", 0, "Also write a random sample of this many rows (0 disables)")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	_, err = pipeline.Fetch(ctx, pipeline.Options{
		Config:     cfg,
		SampleSize: fetchSample,
		Out:        cmd.OutOrStdout(),
	})
	return err
}
