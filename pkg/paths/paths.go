// Package paths provides the path handling shared by presetcheck's
// commands: XDG locations, home expansion, containment checks, and the
// preset folder every input must sit in.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/presetcheck/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for presetcheck
	EnvConfigDir = "PRESETCHECK_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name used under the XDG base directories
	AppDirName = "presetcheck"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// DefaultPresetSubpath is where RaceMenu keeps presets, relative to the
	// game Data folder or a mod folder.
	DefaultPresetSubpath = "SKSE/Plugins/CharGen/Presets"
)

// ConfigDir returns the directory holding the user configuration.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFile returns the default user configuration file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// SanitizePath expands home and cleans the path.
func SanitizePath(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Clean(ExpandHome(path))
}

// ContainsPath checks if child is parent or is contained within it.
func ContainsPath(parent, child string) bool {
	if parent == "" {
		return false
	}
	rel, err := filepath.Rel(SanitizePath(parent), SanitizePath(child))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// RelativePath returns the relative path from base to target.
func RelativePath(base, target string) (string, error) {
	rel, err := filepath.Rel(SanitizePath(base), SanitizePath(target))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess,
			"cannot determine relative path from %s to %s", base, target)
	}
	return rel, nil
}

// segments splits a path on either separator, dropping empty parts.
func segments(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}

// InPresetFolder reports whether the directory of file contains subpath as
// consecutive folders, compared case-insensitively and with either
// separator. With subpath "SKSE/Plugins/CharGen/Presets",
// "Data/skse/plugins/chargen/presets/a.jslot" qualifies and so does a preset
// in a grouping folder below it.
func InPresetFolder(file, subpath string) bool {
	want := segments(subpath)
	if len(want) == 0 {
		return true
	}
	dir := segments(file)
	if len(dir) > 0 {
		dir = dir[:len(dir)-1]
	}
	for i := 0; i+len(want) <= len(dir); i++ {
		match := true
		for j, seg := range want {
			if !strings.EqualFold(dir[i+j], seg) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// PresetSubpath returns subpath with native separators.
func PresetSubpath(subpath string) string {
	return filepath.Join(segments(subpath)...)
}
