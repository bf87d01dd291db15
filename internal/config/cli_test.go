package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCliFlagsApplyOnlyOverridesSetValues(t *testing.T) {
	base := Default()
	base.Host = "unix:///var/run/docker.sock"
	base.SaveDir = "/home/x"

	f := cliFlags{timestamp: true, colourLogs: true, showGui: true}
	merged := f.apply(base)
	assert.Equal(t, base.Host, merged.Host, "empty string flags should not clobber the base host")
	assert.Equal(t, base.SaveDir, merged.SaveDir)
	assert.Equal(t, base.IntervalMS, merged.IntervalMS)
}

func TestCliFlagsApplyOverridesExplicitValues(t *testing.T) {
	base := Default()
	f := cliFlags{
		intervalMS: 5000,
		host:       "tcp://remote:2375",
		saveDir:    "/tmp/logs",
		useCLI:     true,
		debug:      true,
	}
	merged := f.apply(base)
	assert.Equal(t, 5000, merged.IntervalMS)
	assert.Equal(t, "tcp://remote:2375", merged.Host)
	assert.Equal(t, "/tmp/logs", merged.SaveDir)
	assert.True(t, merged.UseCLI)
	assert.True(t, merged.Debug)
}

func TestResolveConfigDirHonoursEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)
	assert.Equal(t, dir, ResolveConfigDir())
}

func TestIsContainerRuntime(t *testing.T) {
	t.Setenv("OXKER_RUNTIME", "")
	assert.False(t, IsContainerRuntime())
	t.Setenv("OXKER_RUNTIME", "container")
	assert.True(t, IsContainerRuntime())
}

func TestDefaultConfigFilePathPrefersExistingFile(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "config.json")
	assert.NoError(t, os.WriteFile(jsonPath, []byte("{}"), 0o644))

	assert.Equal(t, jsonPath, defaultConfigFilePath(dir))
}

func TestDefaultConfigFilePathFallsBackToTomlWhenNoneExist(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, filepath.Join(dir, "config.toml"), defaultConfigFilePath(dir))
}
