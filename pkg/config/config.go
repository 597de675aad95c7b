package config

import (
	"github.com/arthur-debert/presetcheck/pkg/errors"
	"github.com/arthur-debert/presetcheck/pkg/report"
)

// Config is the effective configuration of a run.
type Config struct {
	Paths         Paths     `koanf:"paths" toml:"paths"`
	Write         bool      `koanf:"write" toml:"write"`
	Grouping      Grouping  `koanf:"grouping" toml:"grouping"`
	PresetSubpath string    `koanf:"preset_subpath" toml:"preset_subpath"`
	Game          Game      `koanf:"game" toml:"game"`
	LoadOrder     LoadOrder `koanf:"load_order" toml:"load_order"`
	HeadParts     HeadParts `koanf:"headparts" toml:"headparts"`
	Merges        Merges    `koanf:"merges" toml:"merges"`
	Textures      Textures  `koanf:"textures" toml:"textures"`
	Workers       int       `koanf:"workers" toml:"workers"`
	LogFile       string    `koanf:"log_file" toml:"log_file"`
	Output        Output    `koanf:"output" toml:"output"`
}

// Paths are the roots presets are read from and written to.
type Paths struct {
	InputRoot  string `koanf:"input_root" toml:"input_root"`
	OutputRoot string `koanf:"output_root" toml:"output_root"`
	BackupRoot string `koanf:"backup_root" toml:"backup_root"`
}

// Grouping controls output subfolders.
type Grouping struct {
	Enabled        bool   `koanf:"enabled" toml:"enabled"`
	CotRPlugin     string `koanf:"cotr_plugin" toml:"cotr_plugin"`
	HighPolyPlugin string `koanf:"highpoly_plugin" toml:"highpoly_plugin"`
}

// Game locates the game install.
type Game struct {
	DataRoot string `koanf:"data_root" toml:"data_root"`
	IniFile  string `koanf:"ini_file" toml:"ini_file"`
}

// LoadOrder locates the plugin list files.
type LoadOrder struct {
	PluginsFile   string `koanf:"plugins_file" toml:"plugins_file"`
	LoadOrderFile string `koanf:"loadorder_file" toml:"loadorder_file"`
}

// HeadParts locates the head part inventory.
type HeadParts struct {
	File string `koanf:"file" toml:"file"`
}

// Merges locates merge definitions.
type Merges struct {
	// Root holds zMerge output folders.
	Root string `koanf:"root" toml:"root"`
	// Overrides is a hand-written TOML merge table.
	Overrides string `koanf:"overrides" toml:"overrides"`
}

// Textures controls the texture check.
type Textures struct {
	Enabled      bool     `koanf:"enabled" toml:"enabled"`
	BaseArchives []string `koanf:"base_archives" toml:"base_archives"`
}

// Output controls how the report is rendered.
type Output struct {
	Format string `koanf:"format" toml:"format"`
}

// Validate checks the settings a run cannot start without.
func (c *Config) Validate() error {
	if c.Paths.InputRoot == "" {
		return errors.New(errors.ErrConfigValid, "paths.input_root is required")
	}
	if c.Write {
		if c.Paths.OutputRoot == "" {
			return errors.New(errors.ErrConfigValid, "paths.output_root is required when writing")
		}
		if c.Paths.BackupRoot == "" {
			return errors.New(errors.ErrConfigValid, "paths.backup_root is required when writing")
		}
	}
	if c.LoadOrder.PluginsFile == "" {
		return errors.New(errors.ErrConfigValid, "load_order.plugins_file is required")
	}
	if c.HeadParts.File == "" {
		return errors.New(errors.ErrConfigValid, "headparts.file is required")
	}
	if c.Textures.Enabled && c.Game.DataRoot == "" {
		return errors.New(errors.ErrConfigValid, "game.data_root is required for the texture check")
	}
	if c.Workers < 1 {
		return errors.Newf(errors.ErrConfigValid, "workers must be at least 1, got %d", c.Workers)
	}
	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid output.format")
	}
	return nil
}
