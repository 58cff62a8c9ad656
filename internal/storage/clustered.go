package storage

import (
	"fmt"

	"github.com/jonathan/jobmarket/internal/types"
)

// ClusteredColumns names the columns the visualizer reads from a clustered table.
type ClusteredColumns struct {
	Latitude  string
	Longitude string
	Cluster   string
	Title     string
	Salary    string
	Features  []string // Numeric columns used for projection; may be empty
}

// DefaultClusteredColumns returns the standard column names with the given
// cluster label column.
func DefaultClusteredColumns(clusterColumn string) ClusteredColumns {
	return ClusteredColumns{
		Latitude:  "latitude",
		Longitude: "longitude",
		Cluster:   clusterColumn,
		Title:     "title",
		Salary:    "salary_mid",
		Features:  []string{"salary_mid", "latitude", "longitude"},
	}
}

// ReadClustered loads a clustered table. Every named column must exist and
// every numeric cell must parse.
func ReadClustered(path string, c ClusteredColumns) ([]types.ClusteredJob, error) {
	cols, rows, err := readCSV(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read clustered table %s: %w", path, err)
	}

	required := append([]string{c.Latitude, c.Longitude, c.Cluster, c.Title, c.Salary}, c.Features...)
	if err := cols.require(required...); err != nil {
		return nil, fmt.Errorf("clustered table %s: %w", path, err)
	}

	jobs := make([]types.ClusteredJob, 0, len(rows))
	for i, row := range rows {
		line := i + 2
		job := types.ClusteredJob{Title: cols.get(row, c.Title)}

		if job.Cluster, err = parseLabel(cols.get(row, c.Cluster)); err != nil {
			return nil, fmt.Errorf("clustered table %s row %d: %w", path, line, err)
		}

		numeric := []struct {
			name string
			dst  *float64
		}{
			{c.Latitude, &job.Latitude},
			{c.Longitude, &job.Longitude},
			{c.Salary, &job.SalaryMid},
		}
		for _, n := range numeric {
			if *n.dst, err = parseRequired(cols.get(row, n.name)); err != nil {
				return nil, fmt.Errorf("clustered table %s row %d: %s: %w", path, line, n.name, err)
			}
		}

		if len(c.Features) > 0 {
			job.Features = make([]float64, len(c.Features))
			for j, name := range c.Features {
				if job.Features[j], err = parseRequired(cols.get(row, name)); err != nil {
					return nil, fmt.Errorf("clustered table %s row %d: %s: %w", path, line, name, err)
				}
			}
		}

		jobs = append(jobs, job)
	}
	return jobs, nil
}
