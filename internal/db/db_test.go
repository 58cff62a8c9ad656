package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/jobmarket/internal/types"
)

func TestArtifactStepConstants(t *testing.T) {
	steps := []string{
		StepFetchReport,
		StepCleaningStats,
		StepClusterProfiles,
	}

	seen := make(map[string]bool)
	for _, step := range steps {
		assert.NotEmpty(t, step, "step constant should not be empty")
		assert.False(t, seen[step], "step constants must be unique")
		seen[step] = true
	}
}

func TestRunType(t *testing.T) {
	run := Run{
		Categories: []string{"data", "tech"},
		Status:     StatusRunning,
	}

	assert.Equal(t, []string{"data", "tech"}, run.Categories)
	assert.Equal(t, "running", run.Status)
	assert.Nil(t, run.CompletedAt)
}

func TestQueueCleanedJobs(t *testing.T) {
	runID := uuid.New()
	records := []types.CleanedJobRecord{
		{Title: "Data Analyst", SalaryMin: 30000, SalaryMax: 40000, SalaryMid: 35000,
			Location: types.Location{Country: "UK", Region: "England", County: "Unknown", City: "Unknown"},
			Skills:   types.NewSkillSet("sql", "python")},
		{Title: "Nurse", SalaryMin: 25000, SalaryMax: 25000, SalaryMid: 25000,
			Location: types.UnknownLoc(), Skills: types.NewSkillSet("nursing")},
	}

	batch := queueCleanedJobs(runID, records)
	assert.Equal(t, 2, batch.Len())

	first := batch.QueuedQueries[0]
	assert.Equal(t, insertJobSQL, first.SQL)
	assert.Len(t, first.Arguments, 13)
	assert.Equal(t, runID, first.Arguments[0])
	assert.Equal(t, "Data Analyst", first.Arguments[1])
	assert.Equal(t, 35000.0, first.Arguments[5])
	assert.Equal(t, "England", first.Arguments[9])
	assert.Equal(t, []string{"python", "sql"}, first.Arguments[12])
}
