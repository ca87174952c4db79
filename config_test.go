package folio

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yaml")
	writeTestFile(t, path, `
name: My Site
url: https://example.com/
author: Jane
timezone_offset: 9
person:
  job_title: Researcher
  same_as: [https://github.com/jane]
content_dir: src
`)

	cfg, err := LoadConfig(path, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "My Site", cfg.Name)
	assert.Equal(t, "https://example.com", cfg.URL)
	assert.Equal(t, 9, cfg.TimezoneOffset)
	assert.Equal(t, "Researcher", cfg.Person.JobTitle)
	assert.Equal(t, []string{"https://github.com/jane"}, cfg.Person.SameAs)
	assert.Equal(t, filepath.Join(dir, "src"), cfg.ContentDir)
	assert.Equal(t, filepath.Join(dir, "src", "blog"), cfg.BlogPath())
	assert.Equal(t, filepath.Join(dir, "dist"), cfg.OutputDir)
	assert.Equal(t, filepath.Join(dir, "dist", "index.html"), cfg.TemplatePath)
	assert.Equal(t, "en", cfg.Language)
}

func TestLoadConfigTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.toml")
	writeTestFile(t, path, `
name = "Toml Site"
url = "https://toml.example.com"
timezone_offset = 0
output_dir = "public"
`)

	cfg, err := LoadConfig(path, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "Toml Site", cfg.Name)
	assert.Equal(t, 0, cfg.TimezoneOffset)
	assert.Equal(t, filepath.Join(dir, "public"), cfg.OutputDir)
	assert.Equal(t, filepath.Join(dir, "public", "index.html"), cfg.TemplatePath)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	cfg, err := LoadConfig(filepath.Join(dir, "missing.yaml"), logger)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "config file not found")
	assert.Equal(t, "Portfolio", cfg.Name)
	assert.Equal(t, "http://localhost:3000", cfg.URL)
	assert.Equal(t, DefaultTimezoneOffset, cfg.TimezoneOffset)
	assert.Equal(t, filepath.Join(dir, "content", "portfolio"), cfg.PortfolioPath())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yaml")
	writeTestFile(t, path, "name: From File\nurl: https://file.example.com\n")
	t.Setenv("FOLIO_SITE_URL", "https://env.example.com")
	t.Setenv("FOLIO_TZ_OFFSET", "-3")

	cfg, err := LoadConfig(path, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "From File", cfg.Name)
	assert.Equal(t, "https://env.example.com", cfg.URL)
	assert.Equal(t, -3, cfg.TimezoneOffset)
}

func TestLoadConfigBadTZOffset(t *testing.T) {
	t.Setenv("FOLIO_TZ_OFFSET", "eight")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "folio.yaml"), discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOLIO_TZ_OFFSET")
}

func TestLoadConfigUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.json")
	writeTestFile(t, path, "{}")
	_, err := LoadConfig(path, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format")
}

func TestEnvOr(t *testing.T) {
	t.Setenv("FOLIO_TEST_VALUE", "set")
	assert.Equal(t, "set", EnvOr("FOLIO_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", EnvOr("FOLIO_TEST_UNSET_VALUE", "fallback"))
}
