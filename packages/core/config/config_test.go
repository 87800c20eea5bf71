package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := FindAndLoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 30000, cfg.Timeout)
	assert.True(t, cfg.GetFollowRedirects())
	assert.True(t, cfg.GetValidateSSL())
	assert.False(t, cfg.GetVerbose())
	assert.False(t, cfg.GetHistory())
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reqx.yaml")
	content := `timeout: 5000
validateSSL: false
proxy: http://proxy.local:8080
headers:
  User-Agent: reqx
rate: 2.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := FindAndLoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Timeout)
	assert.False(t, cfg.GetValidateSSL())
	assert.True(t, cfg.GetFollowRedirects()) // untouched, stays default
	assert.Equal(t, "http://proxy.local:8080", cfg.Proxy)
	assert.Equal(t, "reqx", cfg.Headers["User-Agent"])
	assert.Equal(t, 2.5, cfg.Rate)
}

func TestLoadConfig_SearchOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".reqx.yaml"), []byte("timeout: 1000\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reqx.yaml"), []byte("timeout: 2000\n"), 0o644))

	cfg, err := FindAndLoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Timeout)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reqx.yaml"), []byte("timeout: [not a number\n"), 0o644))

	_, err := FindAndLoadConfig(dir)
	require.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reqx.yaml")

	cfg := DefaultConfig()
	cfg.Verbose = BoolPtr(true)
	cfg.EnvFile = ".env"
	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, loaded.GetVerbose())
	assert.Equal(t, ".env", loaded.EnvFile)
}
