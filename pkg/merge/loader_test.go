package merge

import (
	"testing"

	"github.com/arthur-debert/presetcheck/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

func TestLoadZMerge(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/merges/merge - Hair/merge.json", `{
		"name": "Hair",
		"filename": "HairMerged.esp",
		"method": "Overrides",
		"plugins": [
			{"filename": "Foo.esp", "hash": "abc"},
			{"filename": "Baz.esp", "hash": "def"}
		]
	}`)
	writeFile(t, fs, "/merges/merge - Hair/map.json", `{
		"Foo.esp": {"012345": "06789A"}
	}`)
	writeFile(t, fs, "/merges/merge - Eyes/Merge.json", `{
		"filename": "EyesMerged.esp",
		"plugins": ["Eyes.esp"]
	}`)

	table := NewTable()
	n, err := LoadZMerge(fs, "/merges", table)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, ok := table.Resolve("Foo.esp", 0x012345)
	require.True(t, ok)
	assert.Equal(t, Resolution{Plugin: "HairMerged.esp", ID: 0x06789A}, got)

	got, ok = table.Resolve("Baz.esp", 0x000801)
	require.True(t, ok)
	assert.Equal(t, Resolution{Plugin: "HairMerged.esp", ID: 0x000801}, got)

	got, ok = table.Resolve("eyes.esp", 0x10)
	require.True(t, ok)
	assert.Equal(t, "EyesMerged.esp", got.Plugin)
}

func TestLoadZMerge_Invalid(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/merges/broken/merge.json", `{"plugins": ["Foo.esp"]}`)

	_, err := LoadZMerge(fs, "/merges", NewTable())
	assert.True(t, errors.IsErrorCode(err, errors.ErrMergeInvalid))

	fs = afero.NewMemMapFs()
	writeFile(t, fs, "/merges/broken/merge.json", `{not json`)
	_, err = LoadZMerge(fs, "/merges", NewTable())
	assert.True(t, errors.IsErrorCode(err, errors.ErrMergeInvalid))
}

func TestLoadOverrides(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/cfg/merges.toml", `
[merged."Foo.esp"]
into = "Bar.esp"

[merged."Foo.esp".ids]
"012345" = "06789A"

[merged."Qux.esp"]
into = "Bar.esp"
`)

	table := NewTable()
	require.NoError(t, table.Add("Foo.esp", "Zmerged.esp", nil))

	n, err := LoadOverrides(fs, "/cfg/merges.toml", table)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, ok := table.Resolve("Foo.esp", 0x012345)
	require.True(t, ok)
	assert.Equal(t, Resolution{Plugin: "Bar.esp", ID: 0x06789A}, got)

	_, ok = table.Resolve("Qux.esp", 1)
	assert.True(t, ok)
}

func TestLoadOverrides_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := LoadOverrides(fs, "/missing.toml", NewTable())
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	writeFile(t, fs, "/bad.toml", "[merged.\"Foo.esp\"\ninto=")
	_, err = LoadOverrides(fs, "/bad.toml", NewTable())
	assert.True(t, errors.IsErrorCode(err, errors.ErrMergeInvalid))

	writeFile(t, fs, "/nointo.toml", "[merged.\"Foo.esp\"]\n")
	_, err = LoadOverrides(fs, "/nointo.toml", NewTable())
	assert.True(t, errors.IsErrorCode(err, errors.ErrMergeInvalid))
}
