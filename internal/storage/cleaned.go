package storage

import (
	"fmt"
	"strings"

	"github.com/jonathan/jobmarket/internal/types"
)

// CleanedHeader lists the columns of the cleaned table.
var CleanedHeader = []string{
	"title", "description", "salary_min", "salary_max", "latitude", "longitude",
	"salary_mid", "country", "region", "county", "city", "skills_extracted",
}

// WriteCleaned saves cleaned records. Skills are space-joined here and only here.
func WriteCleaned(path string, records []types.CleanedJobRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Title, r.Description,
			formatFloat(r.SalaryMin), formatFloat(r.SalaryMax),
			formatFloat(r.Latitude), formatFloat(r.Longitude),
			formatFloat(r.SalaryMid),
			r.Country, r.Region, r.County, r.City,
			r.Skills.Join(),
		})
	}
	if err := writeCSV(path, CleanedHeader, rows); err != nil {
		return fmt.Errorf("failed to write cleaned table %s: %w", path, err)
	}
	return nil
}

// ReadCleaned loads a cleaned table. The skills column is split on spaces,
// so multi-word skills come back as separate words.
func ReadCleaned(path string) ([]types.CleanedJobRecord, error) {
	cols, rows, err := readCSV(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cleaned table %s: %w", path, err)
	}
	if err := cols.require(CleanedHeader...); err != nil {
		return nil, fmt.Errorf("cleaned table %s: %w", path, err)
	}

	records := make([]types.CleanedJobRecord, 0, len(rows))
	for i, row := range rows {
		rec := types.CleanedJobRecord{
			Title:       cols.get(row, "title"),
			Description: cols.get(row, "description"),
			Location: types.Location{
				Country: cols.get(row, "country"),
				Region:  cols.get(row, "region"),
				County:  cols.get(row, "county"),
				City:    cols.get(row, "city"),
			},
			Skills: types.NewSkillSet(strings.Fields(cols.get(row, "skills_extracted"))...),
		}

		numeric := []struct {
			name string
			dst  *float64
		}{
			{"salary_min", &rec.SalaryMin},
			{"salary_max", &rec.SalaryMax},
			{"latitude", &rec.Latitude},
			{"longitude", &rec.Longitude},
			{"salary_mid", &rec.SalaryMid},
		}
		for _, n := range numeric {
			v, err := parseRequired(cols.get(row, n.name))
			if err != nil {
				return nil, fmt.Errorf("cleaned table %s row %d: %s: %w", path, i+2, n.name, err)
			}
			*n.dst = v
		}

		records = append(records, rec)
	}
	return records, nil
}
