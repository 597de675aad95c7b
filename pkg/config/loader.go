package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/presetcheck/pkg/errors"
	"github.com/arthur-debert/presetcheck/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PRESETCHECK_"

// LoadOptions tunes Load.
type LoadOptions struct {
	// File is an explicit config file, which must exist. When empty the
	// user config file is loaded if present.
	File string
	// Overrides are flat dotted keys applied last, typically from flags
	// the user set.
	Overrides map[string]interface{}
}

// Load builds the effective configuration.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User file
	path, required := opts.File, true
	if path == "" {
		path, required = paths.ConfigFile(), false
	}
	path = paths.ExpandHome(path)
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
		}
	} else if required {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", path)
	}

	// 3. Env vars
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Flags
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flag overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	postProcess(&cfg)
	return &cfg, nil
}

// envKey maps PRESETCHECK_PATHS__INPUT_ROOT to paths.input_root. A double
// underscore separates sections; single underscores are part of key names.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func postProcess(cfg *Config) {
	cfg.Paths.InputRoot = paths.SanitizePath(cfg.Paths.InputRoot)
	cfg.Paths.OutputRoot = paths.SanitizePath(cfg.Paths.OutputRoot)
	cfg.Paths.BackupRoot = paths.SanitizePath(cfg.Paths.BackupRoot)
	cfg.Game.DataRoot = paths.SanitizePath(cfg.Game.DataRoot)
	cfg.Game.IniFile = paths.SanitizePath(cfg.Game.IniFile)
	cfg.LoadOrder.PluginsFile = paths.SanitizePath(cfg.LoadOrder.PluginsFile)
	cfg.LoadOrder.LoadOrderFile = paths.SanitizePath(cfg.LoadOrder.LoadOrderFile)
	cfg.HeadParts.File = paths.SanitizePath(cfg.HeadParts.File)
	cfg.Merges.Root = paths.SanitizePath(cfg.Merges.Root)
	cfg.Merges.Overrides = paths.SanitizePath(cfg.Merges.Overrides)
	cfg.LogFile = paths.SanitizePath(cfg.LogFile)
	if cfg.PresetSubpath == "" {
		cfg.PresetSubpath = paths.DefaultPresetSubpath
	}
	if cfg.Grouping.CotRPlugin == "" {
		cfg.Grouping.CotRPlugin = "CotR.esp"
	}
	if cfg.Grouping.HighPolyPlugin == "" {
		cfg.Grouping.HighPolyPlugin = "High Poly Head.esm"
	}
}
