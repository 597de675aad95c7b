// Package report summarizes a run and renders the summary in the format the
// user asked for.
package report

import (
	"time"

	"github.com/google/uuid"
)

// Mode names.
const (
	ModeCheck = "check"
	ModeFix   = "fix"
)

// Counts tallies per-file outcomes.
type Counts struct {
	// Scanned is every preset file found.
	Scanned int `json:"scanned"`
	// Rejected files were outside the preset folder.
	Rejected int `json:"rejected"`
	// Failed files could not be read or parsed.
	Failed     int `json:"failed"`
	Updated    int `json:"updated"`
	Written    int `json:"written"`
	Copied     int `json:"copied"`
	Relocated  int `json:"relocated"`
	Collisions int `json:"collisions"`
}

// Inputs describes the external data the run was checked against.
type Inputs struct {
	Plugins   int `json:"plugins"`
	HeadParts int `json:"headParts"`
	Merges    int `json:"merges"`
	Textures  int `json:"textures"`
}

// Report is the end-of-run summary.
type Report struct {
	RunID           string        `json:"runId"`
	Mode            string        `json:"mode"`
	StartedAt       time.Time     `json:"startedAt"`
	Elapsed         time.Duration `json:"elapsed"`
	Inputs          Inputs        `json:"inputs"`
	Counts          Counts        `json:"counts"`
	BadPlugins      []string      `json:"badPlugins"`
	MissingTextures []string      `json:"missingTextures"`
}

// New starts a report for a run in the given mode.
func New(mode string) *Report {
	return &Report{
		RunID:           uuid.NewString(),
		Mode:            mode,
		StartedAt:       time.Now(),
		BadPlugins:      []string{},
		MissingTextures: []string{},
	}
}

// Finish records the diagnostics and the elapsed time.
func (r *Report) Finish(badPlugins, missingTextures []string) {
	r.Elapsed = time.Since(r.StartedAt)
	if badPlugins != nil {
		r.BadPlugins = badPlugins
	}
	if missingTextures != nil {
		r.MissingTextures = missingTextures
	}
}

// Clean reports whether nothing is broken.
func (r *Report) Clean() bool {
	return len(r.BadPlugins) == 0 && len(r.MissingTextures) == 0 && r.Counts.Failed == 0
}
