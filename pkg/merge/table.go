// Package merge maps references into plugins that were merged away onto
// the plugin that now holds their records.
//
// The table is an external input: it is loaded from zMerge output folders
// and from a hand-written overrides file, never computed here.
package merge

import (
	"sort"
	"strings"

	"github.com/arthur-debert/presetcheck/pkg/errors"
	"github.com/arthur-debert/presetcheck/pkg/formid"
)

// Entry describes one merged-away plugin.
type Entry struct {
	// Replacement is the plugin that now holds the records.
	Replacement string
	// IDs maps an original 6 digit hex local id to its renumbered id.
	// Missing ids keep their value under the replacement plugin.
	IDs map[string]string
}

// Resolution is the canonical location of a merged record.
type Resolution struct {
	Plugin string
	ID     uint32
}

// Table is keyed case-insensitively by merged plugin name.
type Table struct {
	entries map[string]Entry
	names   map[string]string
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		entries: make(map[string]Entry),
		names:   make(map[string]string),
	}
}

// Add registers plugin as merged into replacement. A later Add for the same
// plugin replaces the replacement name and merges id maps, later ids winning.
func (t *Table) Add(plugin, replacement string, ids map[string]string) error {
	plugin = strings.TrimSpace(plugin)
	replacement = strings.TrimSpace(replacement)
	if plugin == "" || replacement == "" {
		return errors.Newf(errors.ErrMergeInvalid,
			"merge entry needs both plugin and replacement (got %q -> %q)", plugin, replacement)
	}

	key := strings.ToLower(plugin)
	entry := t.entries[key]
	entry.Replacement = replacement
	if entry.IDs == nil {
		entry.IDs = make(map[string]string)
	}
	for from, to := range ids {
		fromID, err := formid.ParseLocalID(from)
		if err != nil {
			return errors.Wrapf(err, errors.ErrMergeInvalid, "bad source id for %s", plugin)
		}
		toID, err := formid.ParseLocalID(to)
		if err != nil {
			return errors.Wrapf(err, errors.ErrMergeInvalid, "bad target id for %s", plugin)
		}
		if fromID > formid.StandardMask || toID > formid.StandardMask {
			return errors.Newf(errors.ErrMergeInvalid,
				"id mapping %s -> %s for %s exceeds 24 bits", from, to, plugin)
		}
		entry.IDs[formid.FormatLocalID(fromID)] = formid.FormatLocalID(toID)
	}
	t.entries[key] = entry
	if _, ok := t.names[key]; !ok {
		t.names[key] = plugin
	}
	return nil
}

// Lookup returns the entry for a merged plugin.
func (t *Table) Lookup(plugin string) (Entry, bool) {
	e, ok := t.entries[strings.ToLower(plugin)]
	return e, ok
}

// Resolve maps a reference into a merged plugin onto its replacement. It
// returns false when plugin was never merged. Pure: the table is not changed.
func (t *Table) Resolve(plugin string, localID uint32) (Resolution, bool) {
	entry, ok := t.Lookup(plugin)
	if !ok {
		return Resolution{}, false
	}
	res := Resolution{Plugin: entry.Replacement, ID: localID}
	if mapped, ok := entry.IDs[formid.FormatLocalID(localID)]; ok {
		// Validated in Add.
		id, _ := formid.ParseLocalID(mapped)
		res.ID = id
	}
	return res, true
}

// Len is the number of merged plugins known.
func (t *Table) Len() int {
	return len(t.entries)
}

// Plugins lists the merged plugin names as first registered, sorted.
func (t *Table) Plugins() []string {
	out := make([]string, 0, len(t.names))
	for _, n := range t.names {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
