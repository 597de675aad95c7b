// Package loadorder reads the active plugin list of a Skyrim SE profile.
//
// plugins.txt lists plugins one per line; a leading '*' marks an active
// plugin and '#' starts a comment. An optional loadorder.txt fixes the
// relative order of every installed plugin, active or not. The implicit
// masters of the base game always load first and are always active.
package loadorder

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"github.com/arthur-debert/presetcheck/pkg/errors"
	"github.com/spf13/afero"
)

// ImplicitMasters load before anything listed in plugins.txt.
var ImplicitMasters = []string{
	"Skyrim.esm",
	"Update.esm",
	"Dawnguard.esm",
	"HearthFires.esm",
	"Dragonborn.esm",
}

// LoadOrder is the ordered list of active plugins.
type LoadOrder struct {
	plugins []string
	index   map[string]int
}

// New builds a load order from already ordered active plugin names. The
// implicit masters are prepended when missing; duplicates keep their first
// position.
func New(active []string) *LoadOrder {
	lo := &LoadOrder{index: make(map[string]int)}
	for _, p := range ImplicitMasters {
		lo.append(p)
	}
	for _, p := range active {
		lo.append(p)
	}
	return lo
}

func (lo *LoadOrder) append(plugin string) {
	key := strings.ToLower(plugin)
	if _, ok := lo.index[key]; ok {
		return
	}
	lo.index[key] = len(lo.plugins)
	lo.plugins = append(lo.plugins, plugin)
}

// IndexOf returns the position of plugin among active plugins, or -1.
func (lo *LoadOrder) IndexOf(plugin string) int {
	if i, ok := lo.index[strings.ToLower(plugin)]; ok {
		return i
	}
	return -1
}

// Contains reports whether plugin is active.
func (lo *LoadOrder) Contains(plugin string) bool {
	return lo.IndexOf(plugin) >= 0
}

// Plugins returns the active plugins in load order.
func (lo *LoadOrder) Plugins() []string {
	return append([]string(nil), lo.plugins...)
}

// Len is the number of active plugins.
func (lo *LoadOrder) Len() int {
	return len(lo.plugins)
}

// Load reads plugins.txt and, when loadOrderFile is not empty, reorders the
// active plugins by loadorder.txt. Active plugins missing from loadorder.txt
// keep their plugins.txt order after the ones it lists.
func Load(fs afero.Fs, pluginsFile, loadOrderFile string) (*LoadOrder, error) {
	lines, err := readLines(fs, pluginsFile)
	if err != nil {
		return nil, err
	}

	var active []string
	for _, line := range lines {
		if !strings.HasPrefix(line, "*") {
			continue
		}
		if name := strings.TrimSpace(line[1:]); name != "" {
			active = append(active, name)
		}
	}

	if loadOrderFile == "" {
		return New(active), nil
	}

	order, err := readLines(fs, loadOrderFile)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrNotFound) {
			return New(active), nil
		}
		return nil, err
	}

	isActive := make(map[string]bool, len(active))
	for _, p := range active {
		isActive[strings.ToLower(p)] = true
	}
	ordered := make([]string, 0, len(active))
	seen := make(map[string]bool, len(active))
	for _, p := range order {
		p = strings.TrimPrefix(p, "*")
		key := strings.ToLower(p)
		if isActive[key] && !seen[key] {
			ordered = append(ordered, p)
			seen[key] = true
		}
	}
	for _, p := range active {
		if !seen[strings.ToLower(p)] {
			ordered = append(ordered, p)
		}
	}
	return New(ordered), nil
}

// readLines returns trimmed, non-empty, non-comment lines.
func readLines(fs afero.Fs, path string) ([]string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrNotFound, "%s not found", path)
		}
		return nil, errors.Wrapf(err, errors.ErrLoadOrder, "cannot read %s", path)
	}
	data = bytes.TrimPrefix(data, []byte("\xEF\xBB\xBF"))

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrLoadOrder, "cannot read %s", path)
	}
	return lines, nil
}
