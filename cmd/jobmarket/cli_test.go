package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withoutCredentials returns the current environment minus search API credentials.
func withoutCredentials() []string {
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "ADZUNA_APP_") || strings.HasPrefix(e, "APP_ID=") || strings.HasPrefix(e, "APP_KEY=") {
			continue
		}
		env = append(env, e)
	}
	return env
}

func TestConfigCommand_PrintsDefaults(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "config")
	cmd.Env = append(withoutCredentials(), "ADZUNA_APP_KEY=super-secret", "DATABASE_URL=postgres://u:db-secret@h/db")
	output, err := cmd.Output()
	require.NoError(t, err)

	var cfg map[string]any
	require.NoError(t, json.Unmarshal(output, &cfg))
	assert.Contains(t, cfg, "categories")
	assert.Contains(t, cfg, "vocabulary")
	assert.NotContains(t, string(output), "super-secret", "credentials must never be printed")
	assert.NotContains(t, string(output), "db-secret", "database password must be masked")
}

func TestConfigCommand_InvalidFile(t *testing.T) {
	binaryPath := getBinaryPath(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api": {"results_per_page": 500}}`), 0644))

	cmd := exec.Command(binaryPath, "config", "--config", path)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "Error:")
	assert.Contains(t, string(output), "does not match schema")
	if exitError, ok := err.(*exec.ExitError); ok {
		assert.Equal(t, 1, exitError.ExitCode())
	}
}

func TestFetchCommand_MissingCredentials(t *testing.T) {
	binaryPath := getBinaryPath(t)

	dir := t.TempDir()
	cmd := exec.Command(binaryPath, "fetch")
	cmd.Dir = dir
	cmd.Env = withoutCredentials()
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "missing APP_ID or APP_KEY")

	_, statErr := os.Stat(filepath.Join(dir, "data", "raw", "jobs_raw_full.csv"))
	assert.True(t, os.IsNotExist(statErr), "nothing is written without credentials")
}

func TestRunCommand_MissingCredentials(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "run")
	cmd.Dir = t.TempDir()
	cmd.Env = withoutCredentials()
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "Step 1/3: Fetching data from API...")
	assert.Contains(t, string(output), "missing APP_ID or APP_KEY")
}

func TestCleanCommand_MissingRawFile(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "clean", "--in", filepath.Join(t.TempDir(), "missing.csv"))
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "failed to read raw table")
}

func TestVisualizeCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)

	input, err := filepath.Abs(filepath.Join("testdata", "clustered.csv"))
	require.NoError(t, err)
	outDir := filepath.Join(t.TempDir(), "reports")

	cmd := exec.Command(binaryPath, "visualize", "--in", input, "--out-dir", outDir, "--sse", "100,60,45", "--k-start", "2")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))

	for _, name := range []string{"cluster_map.html", "pca_clusters.png", "cluster_profiles.png", "cluster_profiles.json", "elbow.png"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}
}

func TestValidateCommand_Success(t *testing.T) {
	binaryPath := getBinaryPath(t)

	schemaPath := filepath.Join("..", "..", "schemas", "cluster_profiles.schema.json")
	jsonPath := filepath.Join("testdata", "profiles_valid.json")

	cmd := exec.Command(binaryPath, "validate", "--schema", schemaPath, "--json", jsonPath)
	output, err := cmd.CombinedOutput()

	assert.NoError(t, err, "command should succeed")
	assert.Contains(t, string(output), "Validation passed", "output should indicate success")
}

func TestValidateCommand_Failure(t *testing.T) {
	binaryPath := getBinaryPath(t)

	schemaPath := filepath.Join("..", "..", "schemas", "cluster_profiles.schema.json")
	jsonPath := filepath.Join("testdata", "profiles_invalid.json")

	cmd := exec.Command(binaryPath, "validate", "--schema", schemaPath, "--json", jsonPath)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err, "command should fail")
	assert.Contains(t, string(output), "Validation failed", "output should indicate failure")
	if exitError, ok := err.(*exec.ExitError); ok {
		assert.Equal(t, 1, exitError.ExitCode(), "should exit with code 1 on validation failure")
	}
}

func TestValidateCommand_MissingSchemaFlag(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "validate", "--json", filepath.Join("testdata", "profiles_valid.json"))
	output, err := cmd.CombinedOutput()

	assert.Error(t, err, "command should fail")
	assert.Contains(t, string(output), "required", "should indicate flag is required")
}

func TestValidateCommand_InvalidSchemaPath(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "validate", "--schema", "nonexistent_schema.json", "--json", filepath.Join("testdata", "profiles_valid.json"))
	output, err := cmd.CombinedOutput()

	assert.Error(t, err, "command should fail")
	assert.Contains(t, string(output), "not found", "should indicate file not found")
}

func TestRunsCommand_RequiresDatabase(t *testing.T) {
	binaryPath := getBinaryPath(t)

	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "DATABASE_URL=") {
			env = append(env, e)
		}
	}
	cmd := exec.Command(binaryPath, "runs")
	cmd.Dir = t.TempDir()
	cmd.Env = env
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "DATABASE_URL")
}
