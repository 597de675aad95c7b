package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/presetcheck/pkg/errors"
	"github.com/arthur-debert/presetcheck/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config lookup at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, dir)
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.False(t, cfg.Write)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, paths.DefaultPresetSubpath, cfg.PresetSubpath)
	assert.Equal(t, "CotR.esp", cfg.Grouping.CotRPlugin)
	assert.Equal(t, "High Poly Head.esm", cfg.Grouping.HighPolyPlugin)
	assert.True(t, cfg.Textures.Enabled)
	assert.Contains(t, cfg.Textures.BaseArchives, "Skyrim - Textures0.bsa")
	assert.Equal(t, "auto", cfg.Output.Format)
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `
workers = 2
write = true

[paths]
input_root = "/in"
output_root = "/from-file"

[grouping]
enabled = true
`)
	t.Setenv("PRESETCHECK_PATHS__OUTPUT_ROOT", "/from-env")
	t.Setenv("PRESETCHECK_PATHS__BACKUP_ROOT", "/backup")
	t.Setenv("PRESETCHECK_WORKERS", "3")
	t.Setenv("PRESETCHECK_TEXTURES__BASE_ARCHIVES", "A.bsa,B.bsa")

	cfg, err := Load(LoadOptions{Overrides: map[string]interface{}{
		"workers": 4,
	}})
	require.NoError(t, err)

	assert.True(t, cfg.Write)
	assert.True(t, cfg.Grouping.Enabled)
	assert.Equal(t, "/in", cfg.Paths.InputRoot)
	assert.Equal(t, "/from-env", cfg.Paths.OutputRoot)
	assert.Equal(t, "/backup", cfg.Paths.BackupRoot)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, []string{"A.bsa", "B.bsa"}, cfg.Textures.BaseArchives)
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), `preset_subpath = "Presets"`)

	cfg, err := Load(LoadOptions{File: path})
	require.NoError(t, err)
	assert.Equal(t, "Presets", cfg.PresetSubpath)

	_, err = Load(LoadOptions{File: filepath.Join(t.TempDir(), "missing.toml")})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `workers = [`)

	_, err := Load(LoadOptions{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "paths.input_root", envKey("PRESETCHECK_PATHS__INPUT_ROOT"))
	assert.Equal(t, "log_file", envKey("PRESETCHECK_LOG_FILE"))
	assert.Equal(t, "load_order.loadorder_file", envKey("PRESETCHECK_LOAD_ORDER__LOADORDER_FILE"))
}

func validConfig() *Config {
	return &Config{
		Paths:     Paths{InputRoot: "/in", OutputRoot: "/out", BackupRoot: "/bak"},
		Write:     true,
		Game:      Game{DataRoot: "/data"},
		LoadOrder: LoadOrder{PluginsFile: "/plugins.txt"},
		HeadParts: HeadParts{File: "/headparts.yaml"},
		Textures:  Textures{Enabled: true},
		Workers:   1,
		Output:    Output{Format: "auto"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid", func(*Config) {}, ""},
		{"no input", func(c *Config) { c.Paths.InputRoot = "" }, "input_root"},
		{"write without output", func(c *Config) { c.Paths.OutputRoot = "" }, "output_root"},
		{"write without backup", func(c *Config) { c.Paths.BackupRoot = "" }, "backup_root"},
		{"audit without output", func(c *Config) { c.Write = false; c.Paths.OutputRoot = "" }, ""},
		{"no plugins file", func(c *Config) { c.LoadOrder.PluginsFile = "" }, "plugins_file"},
		{"no inventory", func(c *Config) { c.HeadParts.File = "" }, "headparts.file"},
		{"textures without data", func(c *Config) { c.Game.DataRoot = "" }, "data_root"},
		{"textures off without data", func(c *Config) { c.Game.DataRoot = ""; c.Textures.Enabled = false }, ""},
		{"zero workers", func(c *Config) { c.Workers = 0 }, "workers"},
		{"bad format", func(c *Config) { c.Output.Format = "html" }, "output.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestToTOML(t *testing.T) {
	out, err := validConfig().ToTOML()
	require.NoError(t, err)
	assert.Contains(t, out, "write = true")
	assert.Contains(t, out, "[paths]")
	assert.Regexp(t, `input_root = ['"]/in['"]`, out)
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()
	assert.Contains(t, content, "[paths]\n")
	assert.Contains(t, content, "# write = false")
	assert.Contains(t, content, `#   "Update.bsa",`)
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.Contains(trimmed, " = ") {
			assert.True(t, strings.HasPrefix(trimmed, "#"), line)
		}
	}
}
