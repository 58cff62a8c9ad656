package types

// ClusteredJob is the subset of a clustered table the visualizer needs.
type ClusteredJob struct {
	Title     string    `json:"title"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	SalaryMid float64   `json:"salary_mid"`
	Cluster   int       `json:"cluster"`
	Features  []float64 `json:"features,omitempty"` // Numeric columns used for projection
}

// ClusterProfile summarizes one cluster label.
type ClusterProfile struct {
	Cluster   int     `json:"cluster"`
	Count     int     `json:"count"`
	AvgSalary float64 `json:"avg_salary"`
}
