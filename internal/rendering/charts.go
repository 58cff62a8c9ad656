package rendering

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/jonathan/jobmarket/internal/types"
)

const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 6 * vg.Inch
)

var barWidth = vg.Points(24)

// RenderElbow draws the SSE of each k, starting at kStart, as a line with points.
func RenderElbow(sse []float64, kStart int, path string) error {
	if len(sse) == 0 {
		return fmt.Errorf("%w: elbow plot needs at least one SSE value", ErrInsufficientData)
	}

	p := plot.New()
	p.Title.Text = "Elbow Method for Optimal K"
	p.X.Label.Text = "Number of clusters (k)"
	p.Y.Label.Text = "Sum of Squared Errors (SSE)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(sse))
	for i, v := range sse {
		pts[i].X = float64(kStart + i)
		pts[i].Y = v
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return &RenderError{Artifact: path, Message: "failed to build elbow line", Cause: err}
	}
	line.Color = plotutil.Color(1)
	points.Color = plotutil.Color(1)
	points.Shape = draw.CircleGlyph{}
	p.Add(line, points)

	return savePlot(p, chartWidth, chartHeight, path)
}

// RenderPCA draws the projected points with one scatter series per cluster label.
func RenderPCA(points [][2]float64, labels []int, path string) error {
	if len(points) != len(labels) {
		return fmt.Errorf("got %d points and %d labels", len(points), len(labels))
	}
	if len(points) == 0 {
		return fmt.Errorf("%w: PCA plot needs at least one point", ErrInsufficientData)
	}

	p := plot.New()
	p.Title.Text = "Job Clusters - PCA Visualization"
	p.X.Label.Text = "PCA Component 1"
	p.Y.Label.Text = "PCA Component 2"

	groups := make(map[int]plotter.XYs)
	for i, pt := range points {
		groups[labels[i]] = append(groups[labels[i]], plotter.XY{X: pt[0], Y: pt[1]})
	}
	order := make([]int, 0, len(groups))
	for label := range groups {
		order = append(order, label)
	}
	sort.Ints(order)

	for i, label := range order {
		s, err := plotter.NewScatter(groups[label])
		if err != nil {
			return &RenderError{Artifact: path, Message: "failed to build scatter", Cause: err}
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(s)
		p.Legend.Add("Cluster "+strconv.Itoa(label), s)
	}
	p.Legend.Top = true

	return savePlot(p, chartWidth, chartHeight, path)
}

// RenderClusterProfiles draws job counts and average salaries per cluster
// as two bar charts side by side in one PNG.
func RenderClusterProfiles(profiles []types.ClusterProfile, path string) error {
	if len(profiles) == 0 {
		return fmt.Errorf("%w: no cluster profiles to draw", ErrInsufficientData)
	}

	names := make([]string, len(profiles))
	counts := make(plotter.Values, len(profiles))
	salaries := make(plotter.Values, len(profiles))
	for i, prof := range profiles {
		names[i] = strconv.Itoa(prof.Cluster)
		counts[i] = float64(prof.Count)
		salaries[i] = prof.AvgSalary
	}

	left, err := barPlot("Job Distribution Across Clusters", "Number of Jobs", names, counts, 0)
	if err != nil {
		return &RenderError{Artifact: path, Message: "failed to build count bars", Cause: err}
	}
	right, err := barPlot("Average Salary by Cluster", "Average Salary (£)", names, salaries, 1)
	if err != nil {
		return &RenderError{Artifact: path, Message: "failed to build salary bars", Cause: err}
	}

	img := vgimg.New(15*vg.Inch, chartHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 1, Cols: 2, PadX: vg.Inch / 2}
	plots := [][]*plot.Plot{{left, right}}
	canvases := plot.Align(plots, tiles, dc)
	left.Draw(canvases[0][0])
	right.Draw(canvases[0][1])

	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return &RenderError{Artifact: path, Message: "failed to create file", Cause: err}
	}
	defer f.Close() //nolint:errcheck

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return &RenderError{Artifact: path, Message: "failed to encode PNG", Cause: err}
	}
	return f.Close()
}

func barPlot(title, yLabel string, names []string, values plotter.Values, color int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Cluster"
	p.Y.Label.Text = yLabel

	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return nil, err
	}
	bars.Color = plotutil.Color(color)
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

// savePlot writes p to path. The image format follows the file extension.
func savePlot(p *plot.Plot, w, h vg.Length, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := p.Save(w, h, path); err != nil {
		return &RenderError{Artifact: path, Message: "failed to save plot", Cause: err}
	}
	return nil
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}
