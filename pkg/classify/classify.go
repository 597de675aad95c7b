// Package classify derives the output folder a processed preset is grouped
// under.
package classify

import (
	"strings"

	"github.com/arthur-debert/presetcheck/pkg/formid"
)

// Labels produced besides race names.
const (
	LabelCotR     = "CotR/"
	LabelHighPoly = "HighPoly/"
	LabelOther    = "Other/"
)

// Default marker plugins.
const (
	DefaultCotRPlugin     = "CotR.esp"
	DefaultHighPolyPlugin = "High Poly Head.esm"
)

// RaceLookup returns the race a head part is tagged with.
type RaceLookup interface {
	Race(key formid.Key) (string, bool)
}

// Classifier computes grouping labels.
type Classifier struct {
	races          RaceLookup
	cotrPlugin     string
	highPolyPlugin string
}

// New creates a classifier. Empty marker names fall back to the defaults.
func New(races RaceLookup, cotrPlugin, highPolyPlugin string) *Classifier {
	if cotrPlugin == "" {
		cotrPlugin = DefaultCotRPlugin
	}
	if highPolyPlugin == "" {
		highPolyPlugin = DefaultHighPolyPlugin
	}
	return &Classifier{
		races:          races,
		cotrPlugin:     cotrPlugin,
		highPolyPlugin: highPolyPlugin,
	}
}

// Label returns the grouping label for a preset given its original
// modNames and its resolved head part keys in document order.
//
// A CotR preset is never subdivided. Otherwise the label is the race of the
// first head part with a known race, followed by HighPoly/ when the high
// poly head plugin is referenced, or Other/ when neither applies.
func (c *Classifier) Label(modNames []string, resolved []formid.Key) string {
	if containsFold(modNames, c.cotrPlugin) {
		return LabelCotR
	}

	label := ""
	if race := c.race(resolved); race != "" {
		label = race + "/"
	}
	if containsFold(modNames, c.highPolyPlugin) {
		label += LabelHighPoly
	}
	if label == "" {
		return LabelOther
	}
	return label
}

func (c *Classifier) race(resolved []formid.Key) string {
	if c.races == nil {
		return ""
	}
	for _, key := range resolved {
		if race, ok := c.races.Race(key); ok && race != "" {
			return race
		}
	}
	return ""
}

func containsFold(list []string, name string) bool {
	for _, s := range list {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}
