package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9001", cfg.CatalogueBaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 4, cfg.HTTPMaxAttempts)
	assert.Equal(t, 22, cfg.SFTPPort)
	assert.Equal(t, "/inbound", cfg.SFTPDir)
	assert.True(t, cfg.SFTPInsecureIgnoreHostKey)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CATALOGUE_BASE_URL", "https://catalogue.test")
	t.Setenv("CATALOGUE_TOKEN", "token")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("SFTP_PORT", "2222")
	t.Setenv("SFTP_INSECURE_IGNORE_HOSTKEY", "false")
	t.Setenv("WORKERS", "8")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://catalogue.test", cfg.CatalogueBaseURL)
	assert.Equal(t, "token", cfg.CatalogueToken)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2222, cfg.SFTPPort)
	assert.False(t, cfg.SFTPInsecureIgnoreHostKey)
	assert.Equal(t, 8, cfg.Workers)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lpg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalogue_base_url: https://file.test\nworkers: 2\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://file.test", cfg.CatalogueBaseURL)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("CATALOGUE_BASE_URL", "not-a-url")
	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("CATALOGUE_BASE_URL", "https://catalogue.test")
	t.Setenv("WORKERS", "0")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
