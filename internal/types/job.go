// Package types provides type definitions for the job listing records that flow through the pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// JobRecord is one listing as returned by the search API, stamped with the
// query category it was fetched under.
type JobRecord struct {
	ID           string   `json:"id"`
	JobType      string   `json:"job_type"`
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description,omitempty"`
	SalaryMin    *float64 `json:"salary_min,omitempty"`
	SalaryMax    *float64 `json:"salary_max,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Location     string   `json:"location,omitempty"` // Semi-structured blob encoding the area hierarchy
	Company      string   `json:"company,omitempty"`
	Created      string   `json:"created,omitempty"`
	RedirectURL  string   `json:"redirect_url,omitempty"`
	Category     string   `json:"category,omitempty"`
	ContractType string   `json:"contract_type,omitempty"`
}

// Complete reports whether the record carries both salary bounds and coordinates.
func (r *JobRecord) Complete() bool {
	return r.SalaryMin != nil && r.SalaryMax != nil && r.Latitude != nil && r.Longitude != nil
}

// UnknownLocation is the sentinel used for any location field that is absent or unparseable.
const UnknownLocation = "Unknown"

// Location holds the normalized positional fields of a listing's area hierarchy.
type Location struct {
	Country string `json:"country"`
	Region  string `json:"region"`
	County  string `json:"county"`
	City    string `json:"city"`
}

// UnknownLoc returns a Location with every field set to UnknownLocation.
func UnknownLoc() Location {
	return Location{
		Country: UnknownLocation,
		Region:  UnknownLocation,
		County:  UnknownLocation,
		City:    UnknownLocation,
	}
}

// CleanedJobRecord is a complete listing enriched with salary midpoint,
// normalized location and extracted skills.
type CleanedJobRecord struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	SalaryMin   float64  `json:"salary_min"`
	SalaryMax   float64  `json:"salary_max"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	SalaryMid   float64  `json:"salary_mid"`
	Location             // country, region, county, city
	Skills      SkillSet `json:"skills_extracted"`
}

// Query describes one search category: the free-text search, the API
// category code, and the label stamped onto every fetched record.
type Query struct {
	JobType  string `json:"job_type" validate:"required"`
	What     string `json:"what"`
	Category string `json:"category" validate:"required"`
}

// Validate validates the Query using the validator.
func (q *Query) Validate() error {
	validate := validator.New()
	return validate.Struct(q)
}
