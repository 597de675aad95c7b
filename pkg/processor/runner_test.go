package processor

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/presetcheck/pkg/report"
	"github.com/arthur-debert/presetcheck/pkg/textures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestEnumerate(t *testing.T) {
	f := newFixture(t)
	f.add(t, "B/"+presetDir+"/b.JSLOT", "{}")
	f.add(t, "A/"+presetDir+"/a.jslot", "{}")
	f.add(t, "A/"+presetDir+"/notes.txt", "")
	f.add(t, "_out/"+presetDir+"/old.jslot", "{}")
	f.add(t, "_bak/A/"+presetDir+"/a.jslot", "{}")

	files, err := Enumerate(f.fs, "/in", "/in/_out", "/in/_bak", "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("/in/A", presetDir, "a.jslot"),
		filepath.Join("/in/B", presetDir, "b.JSLOT"),
	}, files)

	_, err = Enumerate(f.fs, "/missing")
	assert.Error(t, err)
}

func TestEnumerate_RootInsideSkippedDir(t *testing.T) {
	f := newFixture(t)
	f.add(t, "A/"+presetDir+"/a.jslot", "{}")

	files, err := Enumerate(f.fs, "/in", "/")
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestRunner_Run(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := newFixture(t)
	f.opts.OutputRoot = "/in/_out"
	f.tex = textures.NewIndex()
	f.add(t, "A/"+presetDir+"/merged.jslot", mergedPreset)
	f.add(t, "B/"+presetDir+"/merged2.jslot", mergedPreset)
	f.add(t, "C/"+presetDir+"/clean.jslot", cleanPreset)
	f.add(t, "D/"+presetDir+"/broken.jslot", "not json")
	f.add(t, "E/stray.jslot", cleanPreset)
	f.add(t, "_out/"+presetDir+"/Nord/previous.jslot", cleanPreset)

	r := NewRunner(f.fs, f.processor(t), 4)
	total := 0
	var seen []Outcome
	r.OnStart = func(n int) { total = n }
	r.OnFile = func(o Outcome) { seen = append(seen, o) }

	rep, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, report.ModeFix, rep.Mode)
	assert.Equal(t, 5, total)
	assert.Len(t, seen, 5)
	assert.Equal(t, report.Counts{
		Scanned:   5,
		Rejected:  1,
		Failed:    1,
		Updated:   2,
		Written:   2,
		Copied:    1,
		Relocated: 3,
	}, rep.Counts)
	assert.Equal(t, []string{"Gone.esp"}, rep.BadPlugins)
	assert.Equal(t, []string{`actors\x\foo.dds`}, rep.MissingTextures)
	assert.True(t, f.exists(filepath.Join("/in/_out", presetDir, "Nord", "previous.jslot")))
}

func TestRunner_AuditMode(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := newFixture(t)
	f.opts.Write = false
	f.add(t, "A/"+presetDir+"/merged.jslot", mergedPreset)

	rep, err := NewRunner(f.fs, f.processor(t), 2).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.ModeCheck, rep.Mode)
	assert.Equal(t, 1, rep.Counts.Updated)
	assert.Equal(t, 0, rep.Counts.Written)
	assert.False(t, f.exists("/out"))
}

func TestRunner_Cancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := newFixture(t)
	f.add(t, "A/"+presetDir+"/merged.jslot", mergedPreset)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := NewRunner(f.fs, f.processor(t), 1).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, rep)
	assert.Equal(t, 0, rep.Counts.Scanned)
}
