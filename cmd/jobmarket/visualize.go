package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/jobmarket/internal/pipeline"
)

var visualizeCmd = &cobra.Command{
	Use:   "visualize",
	Short: "Render cluster charts and the interactive map from a clustered table",
	Long: `Reads a clustered table (the cleaned table plus a cluster label column) and writes the
cluster map, PCA scatter, cluster profile charts and, when --sse is given, the elbow chart.`,
	RunE: runVisualize,
}

var (
	visualizeInput  string
	visualizeOutDir string
	visualizeColumn string
	visualizeSSE    []float64
	visualizeKStart int
)

func init() {
	visualizeCmd.Flags().StringVarP(&visualizeInput, "in", "i", "", "Clustered table to read (defaults to paths.clustered)")
	visualizeCmd.Flags().StringVar(&visualizeOutDir, "out-dir", "", "Directory for the rendered files (defaults to paths.reports_dir)")
	visualizeCmd.Flags().StringVar(&visualizeColumn, "cluster-column", "", "Cluster label column (defaults to clustering.column)")
	visualizeCmd.Flags().Float64SliceVar(&visualizeSSE, "sse", nil, "Comma-separated SSE values for the elbow chart")
	visualizeCmd.Flags().IntVar(&visualizeKStart, "k-start", 1, "k of the first --sse value")
	rootCmd.AddCommand(visualizeCmd)
}

func runVisualize(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if visualizeColumn != "" {
		cfg.Clustering.Column = visualizeColumn
	}

	ctx, cancel := signalContext()
	defer cancel()

	_, err = pipeline.Visualize(ctx, pipeline.VisualizeOptions{
		Config:    cfg,
		InputPath: visualizeInput,
		OutDir:    visualizeOutDir,
		SSE:       visualizeSSE,
		KStart:    visualizeKStart,
		Out:       cmd.OutOrStdout(),
	})
	return err
}
