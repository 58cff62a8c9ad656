package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/jobmarket/internal/pipeline"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean a saved raw table into the analysis-ready table",
	Long: `Reads the raw table, drops rows without salary or coordinates, extracts skills with the
title-based fallback, parses locations and writes the cleaned table.`,
	RunE: runClean,
}

var (
	cleanInput  string
	cleanOutput string
	cleanSample int
)

func init() {
	cleanCmd.Flags().StringVarP(&cleanInput, "in", "i", "", "Raw table to read (defaults to paths.raw)")
	cleanCmd.Flags().StringVarP(&cleanOutput, "out", "o", "", "Cleaned table to write (defaults to paths.clean)")
	cleanCmd.Flags().IntVar(&cleanSample, "sample", 0, "Also write a random sample of this many rows (0 disables)")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("in") {
		cfg.Paths.Raw = cleanInput
	}
	if cmd.Flags().Changed("out") {
		cfg.Paths.Clean = cleanOutput
	}

	ctx, cancel := signalContext()
	defer cancel()

	_, err = pipeline.CleanFile(ctx, pipeline.Options{
		Config:     cfg,
		SampleSize: cleanSample,
		Out:        cmd.OutOrStdout(),
	})
	return err
}
