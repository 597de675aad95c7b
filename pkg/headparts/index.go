// Package headparts holds the set of head part records that win in the
// active load order, and the race each one belongs to.
//
// The set is exported from the game data by an external tool (for example
// an xEdit script) into a YAML inventory:
//
//	headparts:
//	  - id: "Skyrim.esm|01A2B3"
//	    race: Nord
//	  - id: "KSHairdos.esl|000801"
package headparts

import (
	"github.com/arthur-debert/presetcheck/pkg/errors"
	"github.com/arthur-debert/presetcheck/pkg/formid"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Index answers whether a record exists and which race it is tagged with.
// Plugin names compare case-insensitively.
type Index struct {
	known map[formid.Key]struct{}
	races map[formid.Key]string
}

type inventory struct {
	HeadParts []struct {
		ID   string `yaml:"id"`
		Race string `yaml:"race"`
	} `yaml:"headparts"`
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		known: make(map[formid.Key]struct{}),
		races: make(map[formid.Key]string),
	}
}

// Add registers a winning record, with an optional race tag.
func (x *Index) Add(key formid.Key, race string) {
	k := key.Normalized()
	x.known[k] = struct{}{}
	if race != "" {
		x.races[k] = race
	}
}

// Contains reports whether key resolves in the load order.
func (x *Index) Contains(key formid.Key) bool {
	_, ok := x.known[key.Normalized()]
	return ok
}

// Race returns the race tag of a known record.
func (x *Index) Race(key formid.Key) (string, bool) {
	race, ok := x.races[key.Normalized()]
	return race, ok
}

// Len is the number of known records.
func (x *Index) Len() int {
	return len(x.known)
}

// Load reads a YAML inventory.
func Load(fs afero.Fs, path string) (*Index, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read head part inventory %s", path)
	}

	var inv inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInventoryInvalid, "cannot parse %s", path)
	}

	x := NewIndex()
	for i, hp := range inv.HeadParts {
		key, err := formid.ParseKey(hp.ID)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInventoryInvalid, "%s: entry %d", path, i).
				WithDetail("id", hp.ID)
		}
		x.Add(key, hp.Race)
	}
	return x, nil
}
