package textures

import (
	"strings"

	"github.com/arthur-debert/presetcheck/pkg/diagnostics"
	"github.com/arthur-debert/presetcheck/pkg/preset"
	"github.com/rs/zerolog"
)

// Lookup is the texture inventory a preset is checked against.
type Lookup interface {
	Contains(path string) bool
}

// Extract returns every texture path referenced by doc: face textures,
// override values naming a texture file, and tint masks. Duplicates are
// removed case-insensitively, keeping the first spelling.
func Extract(doc *preset.Document) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if p == "" {
			return
		}
		key := strings.ToLower(p)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, p)
	}

	for _, p := range doc.FaceTextures {
		add(p)
	}
	for _, p := range doc.OverrideData {
		if IsTexture(p) {
			add(p)
		}
	}
	for _, p := range doc.TintTextures {
		add(p)
	}
	return out
}

// Check looks up every texture of doc not checked earlier in the run and
// records the missing ones in diag. It returns the textures this call found
// missing.
func Check(doc *preset.Document, idx Lookup, diag *diagnostics.Accumulator, logger zerolog.Logger) []string {
	for _, section := range []string{preset.KeyFaceTextures, preset.KeyOverrides, preset.KeyTintInfo} {
		if !doc.Has(section) {
			logger.Debug().Str("section", section).Msg("Preset has no texture section")
		}
	}

	var missing []string
	for _, path := range Extract(doc) {
		if !diag.MarkChecked(path) {
			continue
		}
		if idx.Contains(path) {
			continue
		}
		logger.Warn().Str("texture", path).Msg("Missing texture")
		diag.AddMissingTexture(path)
		missing = append(missing, path)
	}
	return missing
}
