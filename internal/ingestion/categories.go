// Package ingestion collects listings for every configured query category,
// stamps them with their category label and removes duplicates.
package ingestion

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/jonathan/jobmarket/internal/config"
	"github.com/jonathan/jobmarket/internal/fetch"
	"github.com/jonathan/jobmarket/internal/types"
)

// Searcher fetches single result pages. *fetch.Client implements it.
type Searcher interface {
	CheckCredentials() error
	SearchPage(ctx context.Context, params fetch.SearchParams, page int) (*fetch.SearchResponse, error)
}

// Limits bounds the pagination of one category search.
type Limits struct {
	Country        string
	ResultsPerPage int
	MaxPages       int
	MaxDaysOld     int
}

// LimitsFromConfig derives pagination limits from the API settings.
func LimitsFromConfig(api config.APIConfig) Limits {
	return Limits{
		Country:        api.Country,
		ResultsPerPage: api.ResultsPerPage,
		MaxPages:       api.MaxPages,
		MaxDaysOld:     api.MaxDaysOld,
	}
}

// NeededPages returns how many pages to request for a total result count,
// capped at maxPages.
func NeededPages(total, perPage, maxPages int) int {
	if perPage <= 0 {
		return 0
	}
	pages := int(math.Ceil(float64(total) / float64(perPage)))
	return min(pages, maxPages)
}

// Options configures FetchCategories.
type Options struct {
	Limits  Limits
	Verbose bool
	Out     io.Writer // Progress output; defaults to os.Stdout
}

// CategoryStats summarizes one category search.
type CategoryStats struct {
	JobType    string `json:"job_type"`
	TotalCount int    `json:"total_count"` // Count reported by the API
	Pages      int    `json:"pages"`       // Pages successfully fetched
	Listings   int    `json:"listings"`
}

// Report summarizes a multi-category fetch.
type Report struct {
	Categories []CategoryStats `json:"categories"`
	Fetched    int             `json:"fetched"`
	Duplicates int             `json:"duplicates"`
	Unique     int             `json:"unique"`
}

// FetchCategory pages through one category search.
//
// The first page determines the total count; a failure there is returned.
// Later pages are fetched until the needed page count is reached, a page
// fails, or a page comes back empty. Listings gathered so far are kept.
func FetchCategory(ctx context.Context, s Searcher, q types.Query, opts Options) ([]fetch.Listing, CategoryStats, error) {
	stats := CategoryStats{JobType: q.JobType}
	params := fetch.SearchParams{
		Country:        opts.Limits.Country,
		What:           q.What,
		Category:       q.Category,
		ResultsPerPage: opts.Limits.ResultsPerPage,
		MaxDaysOld:     opts.Limits.MaxDaysOld,
	}

	first, err := s.SearchPage(ctx, params, 1)
	if err != nil {
		return nil, stats, fmt.Errorf("API request failed for %s: %w", q.JobType, err)
	}

	stats.TotalCount = first.Count
	stats.Pages = 1
	listings := append([]fetch.Listing(nil), first.Results...)

	needed := NeededPages(first.Count, params.ResultsPerPage, opts.Limits.MaxPages)
	for page := 2; page <= needed; page++ {
		resp, err := s.SearchPage(ctx, params, page)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, stats, ctxErr
			}
			if opts.Verbose {
				fmt.Fprintf(opts.out(), "[VERBOSE] %s: stopping at page %d: %v\n", q.JobType, page, err)
			}
			break
		}
		if len(resp.Results) == 0 {
			break
		}
		listings = append(listings, resp.Results...)
		stats.Pages++
	}

	stats.Listings = len(listings)
	return listings, stats, nil
}

// FetchCategories fetches every category in order, stamps each record with
// its category's job type and deduplicates by id keeping the first-seen record.
// Missing credentials are reported before any request is made.
func FetchCategories(ctx context.Context, s Searcher, queries []types.Query, opts Options) ([]types.JobRecord, *Report, error) {
	if err := s.CheckCredentials(); err != nil {
		return nil, nil, err
	}

	out := opts.out()
	report := &Report{}
	var all []types.JobRecord

	for _, q := range queries {
		fmt.Fprintf(out, "Fetching %s jobs...\n", q.JobType)

		listings, stats, err := FetchCategory(ctx, s, q, opts)
		if err != nil {
			return nil, nil, err
		}
		report.Categories = append(report.Categories, stats)

		for _, l := range listings {
			all = append(all, l.Record(q.JobType))
		}
	}

	report.Fetched = len(all)
	unique := Dedupe(all)
	report.Unique = len(unique)
	report.Duplicates = report.Fetched - report.Unique

	fmt.Fprintf(out, "Fetched %d unique jobs across all categories\n", report.Unique)
	return unique, report, nil
}

// Dedupe removes records whose id was already seen, keeping the first
// occurrence. Records without an id share the empty key.
func Dedupe(records []types.JobRecord) []types.JobRecord {
	seen := make(map[string]bool, len(records))
	out := make([]types.JobRecord, 0, len(records))
	for _, rec := range records {
		if seen[rec.ID] {
			continue
		}
		seen[rec.ID] = true
		out = append(out, rec)
	}
	return out
}

func (o Options) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}
