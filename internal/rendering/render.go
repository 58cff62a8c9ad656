package rendering

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobmarket/internal/types"
)

// Artifact file names written by RenderAll
const (
	MapFile          = "cluster_map.html"
	PCAFile          = "pca_clusters.png"
	ProfilesPlotFile = "cluster_profiles.png"
	ProfilesJSONFile = "cluster_profiles.json"
	ElbowFile        = "elbow.png"
)

// Request describes one visualization run over a clustered table.
type Request struct {
	Rows   []types.ClusteredJob
	OutDir string
	Map    MapOptions
	SSE    []float64 // Elbow values; the elbow chart is skipped when empty
	KStart int       // k of the first SSE value
}

// Result lists the files written by RenderAll.
type Result struct {
	Files    []string
	Profiles []types.ClusterProfile
	Skipped  map[string]error // Artifacts not drawn for lack of data
}

// RenderAll draws every artifact of req into req.OutDir concurrently.
// Artifacts that lack data are recorded in Result.Skipped; any other
// failure cancels the rest and is returned.
func RenderAll(ctx context.Context, req Request) (*Result, error) {
	if len(req.Rows) == 0 {
		return nil, fmt.Errorf("%w: clustered table is empty", ErrInsufficientData)
	}
	if err := os.MkdirAll(req.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &Result{
		Profiles: ProfileClusters(req.Rows),
		Skipped:  make(map[string]error),
	}
	var mu sync.Mutex
	done := func(name string, err error) error {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case err == nil:
			result.Files = append(result.Files, filepath.Join(req.OutDir, name))
			return nil
		case errors.Is(err, ErrInsufficientData):
			result.Skipped[name] = err
			return nil
		default:
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return done(MapFile, writeMap(req, filepath.Join(req.OutDir, MapFile)))
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		features := make([][]float64, len(req.Rows))
		labels := make([]int, len(req.Rows))
		for i, r := range req.Rows {
			features[i] = r.Features
			labels[i] = r.Cluster
		}
		points, err := ProjectPCA(features)
		if err != nil {
			return done(PCAFile, err)
		}
		return done(PCAFile, RenderPCA(points, labels, filepath.Join(req.OutDir, PCAFile)))
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return done(ProfilesPlotFile, RenderClusterProfiles(result.Profiles, filepath.Join(req.OutDir, ProfilesPlotFile)))
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return done(ProfilesJSONFile, WriteProfiles(result.Profiles, filepath.Join(req.OutDir, ProfilesJSONFile)))
	})

	if len(req.SSE) > 0 {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return done(ElbowFile, RenderElbow(req.SSE, req.KStart, filepath.Join(req.OutDir, ElbowFile)))
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(result.Files)
	return result, nil
}

func writeMap(req Request, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &RenderError{Artifact: path, Message: "failed to create file", Cause: err}
	}
	defer f.Close() //nolint:errcheck

	if err := RenderClusterMap(req.Rows, req.Map, f); err != nil {
		return err
	}
	return f.Close()
}
