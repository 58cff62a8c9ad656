package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents a pipeline run record
type Run struct {
	ID          uuid.UUID  `json:"id"`
	Categories  []string   `json:"categories"`
	Status      string     `json:"status"`
	RawCount    int        `json:"raw_count"`
	CleanCount  int        `json:"clean_count"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Run status values
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ArtifactStep constants for known artifact types
const (
	StepFetchReport     = "fetch_report"
	StepCleaningStats   = "cleaning_stats"
	StepClusterProfiles = "cluster_profiles"
)
