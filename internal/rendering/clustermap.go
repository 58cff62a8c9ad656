package rendering

import (
	"fmt"
	"html"
	"html/template"
	"io"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jonathan/jobmarket/internal/types"
)

// MapOptions controls the interactive cluster map.
type MapOptions struct {
	Center [2]float64 // [lat, lon]
	Zoom   int
	Colors []string
}

type mapMarker struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Color   string  `json:"color"`
	Popup   string  `json:"popup"`
	Tooltip string  `json:"tooltip"`
}

type mapData struct {
	Title   string
	Center  [2]float64
	Zoom    int
	Markers []mapMarker
}

var salaryPrinter = message.NewPrinter(language.BritishEnglish)

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<link rel="stylesheet" href="https://unpkg.com/leaflet.markercluster@1.5.3/dist/MarkerCluster.css">
<link rel="stylesheet" href="https://unpkg.com/leaflet.markercluster@1.5.3/dist/MarkerCluster.Default.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<script src="https://unpkg.com/leaflet.markercluster@1.5.3/dist/leaflet.markercluster.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map("map").setView({{.Center}}, {{.Zoom}});
L.tileLayer("https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png", {
  maxZoom: 19,
  attribution: "&copy; OpenStreetMap contributors"
}).addTo(map);
var cluster = L.markerClusterGroup();
var markers = {{.Markers}};
markers.forEach(function (m) {
  L.circleMarker([m.lat, m.lon], {
    radius: 5,
    color: m.color,
    fill: true,
    fillColor: m.color
  }).bindPopup(m.popup).bindTooltip(m.tooltip).addTo(cluster);
});
cluster.addTo(map);
</script>
</body>
</html>
`))

// RenderClusterMap writes a standalone Leaflet page with one circle marker
// per row, grouped by a marker cluster layer.
func RenderClusterMap(rows []types.ClusteredJob, opts MapOptions, w io.Writer) error {
	if len(opts.Colors) == 0 {
		return fmt.Errorf("cluster map needs at least one color")
	}

	data := mapData{
		Title:   "Job Clusters",
		Center:  opts.Center,
		Zoom:    opts.Zoom,
		Markers: make([]mapMarker, len(rows)),
	}
	for i, r := range rows {
		color := ColorFor(r.Cluster, opts.Colors)
		data.Markers[i] = mapMarker{
			Lat:     r.Latitude,
			Lon:     r.Longitude,
			Color:   color,
			Popup:   Popup(r),
			Tooltip: html.EscapeString(r.Title),
		}
	}

	if err := mapTemplate.Execute(w, data); err != nil {
		return &TemplateError{Message: "failed to execute map template", Cause: err}
	}
	return nil
}

// ColorFor picks the palette entry of a cluster label. Negative labels,
// such as DBSCAN noise, wrap around from the end of the palette.
func ColorFor(label int, palette []string) string {
	n := len(palette)
	return palette[((label%n)+n)%n]
}

// Popup formats the marker popup of a row: title, grouped salary and label.
func Popup(r types.ClusteredJob) string {
	return html.EscapeString(r.Title) +
		"<br>Salary: £" + FormatSalary(r.SalaryMid) +
		"<br>Cluster: " + strconv.Itoa(r.Cluster)
}

// FormatSalary renders a salary with thousands separators and no decimals.
func FormatSalary(v float64) string {
	return salaryPrinter.Sprintf("%.0f", v)
}
