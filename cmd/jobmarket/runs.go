package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobmarket/internal/db"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent pipeline runs stored in the database",
	Long:  "Lists the most recent pipeline runs recorded in PostgreSQL. Requires DATABASE_URL or database_url in the config.",
	RunE:  runListRuns,
}

var runsLimit int

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to list")
	rootCmd.AddCommand(runsCmd)
}

func runListRuns(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or database_url config is required")
	}

	ctx, cancel := signalContext()
	defer cancel()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}
	runs, err := database.ListRuns(ctx, runsLimit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tSTATUS\tCATEGORIES\tRAW\tCLEAN\tCREATED")
	for _, r := range runs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.Status, strings.Join(r.Categories, ","), r.RawCount, r.CleanCount,
			r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
