package storage

import (
	"fmt"

	"github.com/jonathan/jobmarket/internal/types"
)

// RawHeader lists the columns of the raw listings table.
var RawHeader = []string{
	"id", "job_type", "title", "description",
	"salary_min", "salary_max", "latitude", "longitude",
	"location", "company", "created", "redirect_url", "category", "contract_type",
}

// WriteRaw saves fetched records. Absent numeric values become empty cells.
func WriteRaw(path string, records []types.JobRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.ID, r.JobType, r.Title, r.Description,
			formatOptional(r.SalaryMin), formatOptional(r.SalaryMax),
			formatOptional(r.Latitude), formatOptional(r.Longitude),
			r.Location, r.Company, r.Created, r.RedirectURL, r.Category, r.ContractType,
		})
	}
	if err := writeCSV(path, RawHeader, rows); err != nil {
		return fmt.Errorf("failed to write raw table %s: %w", path, err)
	}
	return nil
}

// ReadRaw loads a raw listings table. Only id is required; other missing
// columns read as absent values.
func ReadRaw(path string) ([]types.JobRecord, error) {
	cols, rows, err := readCSV(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read raw table %s: %w", path, err)
	}
	if err := cols.require("id"); err != nil {
		return nil, fmt.Errorf("raw table %s: %w", path, err)
	}

	records := make([]types.JobRecord, 0, len(rows))
	for i, row := range rows {
		rec := types.JobRecord{
			ID:           cols.get(row, "id"),
			JobType:      cols.get(row, "job_type"),
			Title:        cols.get(row, "title"),
			Description:  cols.get(row, "description"),
			Location:     cols.get(row, "location"),
			Company:      cols.get(row, "company"),
			Created:      cols.get(row, "created"),
			RedirectURL:  cols.get(row, "redirect_url"),
			Category:     cols.get(row, "category"),
			ContractType: cols.get(row, "contract_type"),
		}

		numeric := []struct {
			name string
			dst  **float64
		}{
			{"salary_min", &rec.SalaryMin},
			{"salary_max", &rec.SalaryMax},
			{"latitude", &rec.Latitude},
			{"longitude", &rec.Longitude},
		}
		for _, n := range numeric {
			v, err := parseOptional(cols.get(row, n.name))
			if err != nil {
				return nil, fmt.Errorf("raw table %s row %d: %s: %w", path, i+2, n.name, err)
			}
			*n.dst = v
		}

		records = append(records, rec)
	}
	return records, nil
}
