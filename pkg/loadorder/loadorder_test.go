package loadorder

import (
	"testing"

	"github.com/arthur-debert/presetcheck/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pluginsTxt = "\xEF\xBB\xBF# This file is used by Skyrim to keep track of your downloaded content.\r\n" +
	"*Unofficial Skyrim Special Edition Patch.esp\r\n" +
	"Disabled.esp\r\n" +
	"*KSHairdos.esl\r\n" +
	"*Bar.esp\r\n" +
	"\r\n" +
	"*High Poly Head.esm\r\n"

func TestLoad_PluginsOnly(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/profile/plugins.txt", []byte(pluginsTxt), 0644))

	lo, err := Load(fs, "/profile/plugins.txt", "")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Skyrim.esm", "Update.esm", "Dawnguard.esm", "HearthFires.esm", "Dragonborn.esm",
		"Unofficial Skyrim Special Edition Patch.esp", "KSHairdos.esl", "Bar.esp", "High Poly Head.esm",
	}, lo.Plugins())
	assert.Equal(t, 0, lo.IndexOf("skyrim.esm"))
	assert.Equal(t, 7, lo.IndexOf("BAR.ESP"))
	assert.Equal(t, -1, lo.IndexOf("Disabled.esp"))
	assert.False(t, lo.Contains("Foo.esp"))
}

func TestLoad_WithLoadOrderFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/profile/plugins.txt", []byte(pluginsTxt), 0644))
	require.NoError(t, afero.WriteFile(fs, "/profile/loadorder.txt", []byte(
		"Skyrim.esm\nHigh Poly Head.esm\nDisabled.esp\nBar.esp\nKSHairdos.esl\n"), 0644))

	lo, err := Load(fs, "/profile/plugins.txt", "/profile/loadorder.txt")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Skyrim.esm", "Update.esm", "Dawnguard.esm", "HearthFires.esm", "Dragonborn.esm",
		"High Poly Head.esm", "Bar.esp", "KSHairdos.esl", "Unofficial Skyrim Special Edition Patch.esp",
	}, lo.Plugins())
}

func TestLoad_MissingLoadOrderFileFallsBack(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/profile/plugins.txt", []byte("*Bar.esp\n"), 0644))

	lo, err := Load(fs, "/profile/plugins.txt", "/profile/loadorder.txt")
	require.NoError(t, err)
	assert.Equal(t, 5, lo.IndexOf("Bar.esp"))
}

func TestLoad_MissingPlugins(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/profile/plugins.txt", "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestNew_Dedup(t *testing.T) {
	lo := New([]string{"skyrim.esm", "A.esp", "a.ESP"})
	assert.Equal(t, 6, lo.Len())
	assert.Equal(t, 5, lo.IndexOf("A.esp"))
}
