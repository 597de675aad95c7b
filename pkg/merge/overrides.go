package merge

import (
	"os"

	"github.com/arthur-debert/presetcheck/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// overridesFile is the hand-maintained merge description:
//
//	[merged."Foo.esp"]
//	into = "Bar.esp"
//
//	[merged."Foo.esp".ids]
//	"012345" = "06789A"
type overridesFile struct {
	Merged map[string]struct {
		Into string            `toml:"into"`
		IDs  map[string]string `toml:"ids"`
	} `toml:"merged"`
}

// LoadOverrides adds the entries of a TOML overrides file to t. Load it after
// zMerge output: its replacement names and ids take precedence.
func LoadOverrides(fs afero.Fs, path string, t *Table) (int, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, errors.Wrapf(err, errors.ErrNotFound, "merge overrides %s not found", path)
		}
		return 0, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}

	var file overridesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return 0, errors.Wrapf(err, errors.ErrMergeInvalid, "cannot parse %s", path)
	}

	for plugin, entry := range file.Merged {
		if err := t.Add(plugin, entry.Into, entry.IDs); err != nil {
			return 0, errors.Wrapf(err, errors.ErrMergeInvalid, "in %s", path)
		}
	}
	return len(file.Merged), nil
}
