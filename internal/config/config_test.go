package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edacli.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "auto", cfg.Loader.Delimiter)
	assert.True(t, cfg.Loader.TrimSpace)
	assert.Contains(t, cfg.Loader.MissingMarkers, "na")
	assert.Equal(t, "text", cfg.Report.Format)
	assert.Equal(t, 5, cfg.Report.TopK)
	assert.Equal(t, 100, cfg.Quality.MinRows)
	assert.InDelta(t, 0.5, cfg.Quality.MissingShareLimit, 1e-9)
	assert.Equal(t, "info", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Report, cfg.Report)
}

func TestLoadFileOverrides(t *testing.T) {
	path := writeConfig(t, `
loader:
  delimiter: ";"
report:
  top_k: 3
quality:
  min_rows: 10
  constant_penalty: 0.25
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ";", cfg.Loader.Delimiter)
	assert.Equal(t, 3, cfg.Report.TopK)
	assert.Equal(t, 10, cfg.Quality.MinRows)
	assert.InDelta(t, 0.25, cfg.Quality.ConstantPenalty, 1e-9)
	// Untouched keys keep their defaults.
	assert.Equal(t, "text", cfg.Report.Format)
	assert.InDelta(t, 0.2, cfg.Quality.DuplicateIDPenalty, 1e-9)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "quality:\n  min_rows: 10\n")
	t.Setenv("EDACLI_QUALITY_MIN_ROWS", "7")
	t.Setenv("EDACLI_REPORT_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Quality.MinRows)
	assert.Equal(t, "json", cfg.Report.Format)
}

func TestLoadEnvMarkerList(t *testing.T) {
	t.Setenv("EDACLI_LOADER_MISSING_MARKERS", "void,absent")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"void", "absent"}, cfg.Loader.MissingMarkers)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "report: [not a map\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []string{
		"report:\n  format: xml\n",
		"quality:\n  missing_share_limit: 1.5\n",
		"quality:\n  min_rows: -1\n",
		"logging:\n  level: loud\n",
	}
	for _, content := range cases {
		_, err := Load(writeConfig(t, content))
		assert.Error(t, err, "config %q", content)
	}
}
