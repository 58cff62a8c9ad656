// Package config provides configuration loading and validation for the pipeline.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/jobmarket/internal/schemas"
	"github.com/jonathan/jobmarket/internal/types"
)

// Config is the static configuration of a pipeline run.
// It is loaded once at startup and treated as read-only afterwards.
type Config struct {
	API         APIConfig        `json:"api"`
	Categories  []types.Query    `json:"categories,omitempty" validate:"min=1,dive"`
	Vocabulary  Vocabulary       `json:"vocabulary"`
	Clustering  ClusteringConfig `json:"clustering"`
	Map         MapConfig        `json:"map"`
	Paths       Paths            `json:"paths"`
	DatabaseURL string           `json:"database_url,omitempty"` // PostgreSQL connection URL
	Verbose     bool             `json:"verbose,omitempty"`      // Print detailed debug information

	// Credentials are only read from the environment.
	AppID  string `json:"-"`
	AppKey string `json:"-"`
}

// APIConfig holds the search API settings.
type APIConfig struct {
	BaseURL           string  `json:"base_url,omitempty" validate:"required,url"`
	Country           string  `json:"country,omitempty" validate:"required,len=2"`
	ResultsPerPage    int     `json:"results_per_page,omitempty" validate:"min=1,max=50"`
	MaxPages          int     `json:"max_pages,omitempty" validate:"min=1"`
	MaxDaysOld        int     `json:"max_days_old,omitempty" validate:"min=1"`
	TimeoutSeconds    int     `json:"timeout_seconds,omitempty" validate:"min=1"`
	RequestsPerSecond *float64 `json:"requests_per_second,omitempty" validate:"omitempty,gte=0"` // 0 disables spacing
	UserAgent         string   `json:"user_agent,omitempty" validate:"required"`
}

// RateLimit returns the request rate, or 0 when spacing is disabled or unset.
func (a APIConfig) RateLimit() float64 {
	if a.RequestsPerSecond == nil {
		return 0
	}
	return *a.RequestsPerSecond
}

// Timeout returns the per-request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Vocabulary holds the skill vocabularies, their context words and the
// title keywords used for fallback categorization.
type Vocabulary struct {
	TechSkills              []string `json:"tech_skills,omitempty" validate:"min=1"`
	HealthcareSkills        []string `json:"healthcare_skills,omitempty" validate:"min=1"`
	TechContext             []string `json:"tech_context_words,omitempty" validate:"min=1"`
	HealthcareContext       []string `json:"healthcare_context_words,omitempty" validate:"min=1"`
	TechTitleKeywords       []string `json:"tech_title_keywords,omitempty" validate:"min=1"`
	HealthcareTitleKeywords []string `json:"healthcare_title_keywords,omitempty" validate:"min=1"`
}

// ClusteringConfig holds the default clustering parameters consumed downstream.
type ClusteringConfig struct {
	DefaultK         int     `json:"default_k,omitempty" validate:"min=1"`
	DBSCANEps        float64 `json:"dbscan_eps,omitempty" validate:"gt=0"`
	DBSCANMinSamples int     `json:"dbscan_min_samples,omitempty" validate:"min=1"`
	Column           string  `json:"column,omitempty" validate:"required"` // Cluster label column in the clustered table
}

// MapConfig holds the interactive map settings.
type MapConfig struct {
	Center []float64 `json:"center,omitempty" validate:"len=2"` // [lat, lon]
	Zoom   int       `json:"zoom,omitempty" validate:"min=1,max=20"`
	Colors []string  `json:"colors,omitempty" validate:"min=1,dive,required"`
}

// Paths holds the file locations used by the pipeline.
type Paths struct {
	Raw         string `json:"raw,omitempty" validate:"required"`
	RawSample   string `json:"raw_sample,omitempty" validate:"required"`
	Clean       string `json:"clean,omitempty" validate:"required"`
	CleanSample string `json:"clean_sample,omitempty" validate:"required"`
	Clustered   string `json:"clustered,omitempty" validate:"required"`
	ReportsDir  string `json:"reports_dir,omitempty" validate:"required"`
}

// LoadConfig loads configuration from a JSON file.
// The file is checked against the config JSON Schema before decoding.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("failed to parse config JSON: invalid JSON in %s", path)
	}

	if err := schemas.ValidateConfig(data); err != nil {
		return nil, fmt.Errorf("config file %s does not match schema: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load builds the effective configuration: defaults, overlaid by the
// optional JSON file at path, overlaid by environment credentials.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyEnv fills credentials and the database URL from the environment.
// ADZUNA_APP_ID/ADZUNA_APP_KEY take precedence over APP_ID/APP_KEY.
func (c *Config) ApplyEnv() {
	c.AppID = firstEnv("ADZUNA_APP_ID", "APP_ID")
	c.AppKey = firstEnv("ADZUNA_APP_KEY", "APP_KEY")
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" && c.DatabaseURL == "" {
		c.DatabaseURL = dbURL
	}
}

// Redacted returns a copy safe to print: the database URL password is masked.
func (c Config) Redacted() Config {
	if c.DatabaseURL == "" {
		return c
	}
	u, err := url.Parse(c.DatabaseURL)
	if err != nil || u.Scheme == "" {
		// keyword/value connection strings cannot be masked piecewise
		c.DatabaseURL = "xxxxx"
		return c
	}
	c.DatabaseURL = u.Redacted()
	return c
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// Validate checks that the configuration has valid values.
// Credentials are not checked here; the fetcher rejects missing ones before any request.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if len(c.Map.Center) == 2 {
		if c.Map.Center[0] < -90 || c.Map.Center[0] > 90 {
			return fmt.Errorf("config error: map center latitude out of range: %v", c.Map.Center[0])
		}
		if c.Map.Center[1] < -180 || c.Map.Center[1] > 180 {
			return fmt.Errorf("config error: map center longitude out of range: %v", c.Map.Center[1])
		}
	}

	seen := make(map[string]bool, len(c.Categories))
	for _, q := range c.Categories {
		if seen[q.JobType] {
			return fmt.Errorf("config error: duplicate category job_type %q", q.JobType)
		}
		seen[q.JobType] = true
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply built-in values under a partial config file.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// API
	if result.API.BaseURL == "" {
		result.API.BaseURL = defaults.API.BaseURL
	}
	if result.API.Country == "" {
		result.API.Country = defaults.API.Country
	}
	if result.API.ResultsPerPage == 0 {
		result.API.ResultsPerPage = defaults.API.ResultsPerPage
	}
	if result.API.MaxPages == 0 {
		result.API.MaxPages = defaults.API.MaxPages
	}
	if result.API.MaxDaysOld == 0 {
		result.API.MaxDaysOld = defaults.API.MaxDaysOld
	}
	if result.API.TimeoutSeconds == 0 {
		result.API.TimeoutSeconds = defaults.API.TimeoutSeconds
	}
	if result.API.RequestsPerSecond == nil {
		result.API.RequestsPerSecond = defaults.API.RequestsPerSecond
	}
	result.API.UserAgent = orString(result.API.UserAgent, defaults.API.UserAgent)

	if len(result.Categories) == 0 {
		result.Categories = defaults.Categories
	}

	// Vocabulary lists replace the defaults wholesale when given
	v, dv := &result.Vocabulary, defaults.Vocabulary
	v.TechSkills = orStrings(v.TechSkills, dv.TechSkills)
	v.HealthcareSkills = orStrings(v.HealthcareSkills, dv.HealthcareSkills)
	v.TechContext = orStrings(v.TechContext, dv.TechContext)
	v.HealthcareContext = orStrings(v.HealthcareContext, dv.HealthcareContext)
	v.TechTitleKeywords = orStrings(v.TechTitleKeywords, dv.TechTitleKeywords)
	v.HealthcareTitleKeywords = orStrings(v.HealthcareTitleKeywords, dv.HealthcareTitleKeywords)

	// Clustering
	if result.Clustering.DefaultK == 0 {
		result.Clustering.DefaultK = defaults.Clustering.DefaultK
	}
	if result.Clustering.DBSCANEps == 0 {
		result.Clustering.DBSCANEps = defaults.Clustering.DBSCANEps
	}
	if result.Clustering.DBSCANMinSamples == 0 {
		result.Clustering.DBSCANMinSamples = defaults.Clustering.DBSCANMinSamples
	}
	if result.Clustering.Column == "" {
		result.Clustering.Column = defaults.Clustering.Column
	}

	// Map
	if len(result.Map.Center) == 0 {
		result.Map.Center = defaults.Map.Center
	}
	if result.Map.Zoom == 0 {
		result.Map.Zoom = defaults.Map.Zoom
	}
	result.Map.Colors = orStrings(result.Map.Colors, defaults.Map.Colors)

	// Paths
	p, dp := &result.Paths, defaults.Paths
	p.Raw = orString(p.Raw, dp.Raw)
	p.RawSample = orString(p.RawSample, dp.RawSample)
	p.Clean = orString(p.Clean, dp.Clean)
	p.CleanSample = orString(p.CleanSample, dp.CleanSample)
	p.Clustered = orString(p.Clustered, dp.Clustered)
	p.ReportsDir = orString(p.ReportsDir, dp.ReportsDir)

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge

	return result
}

func orString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orStrings(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}
