package filesystem

import (
	"os"
	"testing"

	"github.com/arthur-debert/presetcheck/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile_CreatesParents(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, WriteFile(fs, "/out/a/b/c.jslot", []byte("{}")))

	data, err := afero.ReadFile(fs, "/out/a/b/c.jslot")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestWriteFile_ReadOnly(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	err := WriteFile(fs, "/out/c.jslot", []byte("{}"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))
}

func TestCopyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/in/a.jslot", []byte(`{"x": 1}`), 0644))
	require.NoError(t, afero.WriteFile(fs, "/out/a.jslot", []byte(`old content that is longer`), 0644))

	require.NoError(t, CopyFile(fs, "/in/a.jslot", "/out/a.jslot"))

	data, err := afero.ReadFile(fs, "/out/a.jslot")
	require.NoError(t, err)
	assert.Equal(t, `{"x": 1}`, string(data))

	err = CopyFile(fs, "/in/missing.jslot", "/out/b.jslot")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
}

func TestMove(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/in/p/a.jslot", []byte("data"), 0644))

	require.NoError(t, Move(fs, "/in/p/a.jslot", "/bak/p/a.jslot"))

	_, err := fs.Stat("/in/p/a.jslot")
	assert.True(t, os.IsNotExist(err))
	data, err := afero.ReadFile(fs, "/bak/p/a.jslot")
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	err = Move(fs, "/in/p/a.jslot", "/bak/p/a.jslot")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}
