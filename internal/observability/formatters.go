// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/jobmarket/internal/cleaning"
	"github.com/jonathan/jobmarket/internal/ingestion"
	"github.com/jonathan/jobmarket/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintFetchReport outputs per-category page counts and the dedup summary.
func (p *Printer) PrintFetchReport(report *ingestion.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	for _, c := range report.Categories {
		sb.WriteString(fmt.Sprintf("%-12s %5d listings  %3d pages  (API total %d)\n",
			c.JobType, c.Listings, c.Pages, c.TotalCount))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Fetched:     %d\n", report.Fetched))
	sb.WriteString(fmt.Sprintf("Duplicates:  %d\n", report.Duplicates))
	sb.WriteString(fmt.Sprintf("Unique:      %d", report.Unique))

	p.printBox("FETCH SUMMARY", sb.String())
}

// PrintCleaningStats outputs the row counts, the most common skills and
// the title-based fallback distribution.
func (p *Printer) PrintCleaningStats(stats *cleaning.Stats) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Input rows:   %d\n", stats.Input))
	sb.WriteString(fmt.Sprintf("Dropped:      %d (missing salary or coordinates)\n", stats.Dropped))
	sb.WriteString(fmt.Sprintf("Output rows:  %d\n", stats.Output))
	sb.WriteString("\n")

	top := stats.TopSkills(maxItemsToShow)
	if len(top) > 0 {
		sb.WriteString("Top skills:\n")
		for _, sc := range top {
			sb.WriteString(fmt.Sprintf("  • %s (%d)\n", sc.Skill, sc.Count))
		}
		if len(stats.SkillCounts) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(stats.SkillCounts)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Fallback skills assigned: %d\n", stats.FallbackTotal()))
	categories := make([]string, 0, len(stats.Fallback))
	for c := range stats.Fallback {
		categories = append(categories, string(c))
	}
	sort.Strings(categories)
	for _, c := range categories {
		sb.WriteString(fmt.Sprintf("  • %s: %d\n", c, stats.Fallback[types.Category(c)]))
	}

	p.printBox("CLEANING SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintClusterProfiles outputs the size and average salary of each cluster.
func (p *Printer) PrintClusterProfiles(profiles []types.ClusterProfile) {
	if len(profiles) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-8s %8s %14s\n", "Cluster", "Jobs", "Avg salary"))
	for _, prof := range profiles {
		sb.WriteString(fmt.Sprintf("%-8d %8d %14.0f\n", prof.Cluster, prof.Count, prof.AvgSalary))
	}

	p.printBox("CLUSTER PROFILES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkillSample outputs the extracted skills of the first few cleaned rows.
func (p *Printer) PrintSkillSample(records []types.CleanedJobRecord) {
	if len(records) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(records), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := records[i]
		title := r.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s\n", title))
		sb.WriteString(fmt.Sprintf("  [%s]\n", strings.Join(r.Skills.Sorted(), ", ")))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(records) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more rows", len(records)-maxItemsToShow))
	}

	p.printBox("EXTRACTED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}
