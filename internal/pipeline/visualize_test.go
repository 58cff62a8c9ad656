package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobmarket/internal/rendering"
)

const clusteredCSV = `title,salary_mid,latitude,longitude,cluster_kmeans
Data Analyst,35000,51.5,-0.12,0
Nurse,28000,53.4,-2.24,1
ML Engineer,65000,51.45,-2.58,0
Care Assistant,22000,55.95,-3.19,2
`

func TestVisualize(t *testing.T) {
	cfg := testConfig(t, "http://unused.invalid")
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.Paths.Clustered), 0755))
	require.NoError(t, os.WriteFile(cfg.Paths.Clustered, []byte(clusteredCSV), 0644))

	var events []ProgressEvent
	var out bytes.Buffer
	result, err := Visualize(context.Background(), VisualizeOptions{
		Config:     cfg,
		SSE:        []float64{120, 70, 45, 40},
		KStart:     2,
		Out:        &out,
		OnProgress: func(e ProgressEvent) { events = append(events, e) },
	})
	require.NoError(t, err)

	assert.Len(t, result.Files, 5)
	assert.Len(t, result.Profiles, 3)
	for _, name := range []string{rendering.MapFile, rendering.PCAFile, rendering.ElbowFile} {
		_, err := os.Stat(filepath.Join(cfg.Paths.ReportsDir, name))
		assert.NoError(t, err, name)
	}
	assert.Contains(t, out.String(), "Step 2/2: Rendering visualizations")
	require.Len(t, events, 1)
	assert.Equal(t, CategoryVisualize, events[0].Category)
}

func TestVisualize_MissingClusterColumn(t *testing.T) {
	cfg := testConfig(t, "http://unused.invalid")
	cfg.Clustering.Column = "cluster_dbscan"
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.Paths.Clustered), 0755))
	require.NoError(t, os.WriteFile(cfg.Paths.Clustered, []byte(clusteredCSV), 0644))

	_, err := Visualize(context.Background(), VisualizeOptions{Config: cfg, Out: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cluster_dbscan")
}
