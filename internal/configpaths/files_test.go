package configpaths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCandidatePathsUserFirst(t *testing.T) {
	tests := []struct {
		path   string
		format string
	}{
		{path: "my.json", format: "json"},
		{path: "my.yaml", format: "yaml"},
		{path: "my.yml", format: "yaml"},
		{path: "my.toml", format: "toml"},
		{path: "my.conf", format: "json"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			jsonPaths, yamlPaths, tomlPaths := ConfigCandidatePaths(tt.path)
			got := map[string][]string{"json": jsonPaths, "yaml": yamlPaths, "toml": tomlPaths}[tt.format]
			require.NotEmpty(t, got)
			assert.Equal(t, tt.path, got[0])
		})
	}
}

func TestConfigCandidatePathsWorkingDir(t *testing.T) {
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
	jsonPaths, yamlPaths, tomlPaths := ConfigCandidatePaths("")

	wd, err := filepath.Abs(".")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "s2gen.json"), jsonPaths[0])
	assert.Equal(t, filepath.Join(wd, "s2gen.yaml"), yamlPaths[0])
	assert.Equal(t, filepath.Join(wd, "s2gen.yml"), yamlPaths[1])
	assert.Equal(t, filepath.Join(wd, "s2gen.toml"), tomlPaths[0])
	assert.Contains(t, jsonPaths, filepath.Join(wd, "generate.json"))
	assert.Equal(t, 2*len(jsonPaths), len(yamlPaths))
	assert.Equal(t, len(jsonPaths), len(tomlPaths))
}

func TestDefaultNamedConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("AppData", "/tmp/appdata")

	p, err := DefaultNamedConfigPath("generate", "yml")
	require.NoError(t, err)
	assert.Equal(t, "generate.yaml", filepath.Base(p))
	assert.Equal(t, "s2gen", filepath.Base(filepath.Dir(p)))

	p, err = DefaultConfigPath("toml")
	require.NoError(t, err)
	assert.Equal(t, "config.toml", filepath.Base(p))
}
