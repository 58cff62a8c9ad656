package rendering

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jonathan/jobmarket/internal/schemas"
	"github.com/jonathan/jobmarket/internal/types"
)

// ProfileClusters computes the job count and average salary of every
// cluster label, sorted by label.
func ProfileClusters(rows []types.ClusteredJob) []types.ClusterProfile {
	byLabel := make(map[int]*types.ClusterProfile)
	for _, r := range rows {
		p, ok := byLabel[r.Cluster]
		if !ok {
			p = &types.ClusterProfile{Cluster: r.Cluster}
			byLabel[r.Cluster] = p
		}
		p.Count++
		p.AvgSalary += r.SalaryMid
	}

	profiles := make([]types.ClusterProfile, 0, len(byLabel))
	for _, p := range byLabel {
		p.AvgSalary /= float64(p.Count)
		profiles = append(profiles, *p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Cluster < profiles[j].Cluster
	})
	return profiles
}

// WriteProfiles saves the cluster profiles as JSON after checking them
// against the cluster profiles schema.
func WriteProfiles(profiles []types.ClusterProfile, path string) error {
	if profiles == nil {
		profiles = []types.ClusterProfile{}
	}
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cluster profiles: %w", err)
	}
	if err := schemas.ValidateClusterProfiles(data); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cluster profiles %s: %w", path, err)
	}
	return nil
}
