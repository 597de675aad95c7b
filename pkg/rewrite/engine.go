// Package rewrite checks the head part references of a preset and repairs
// the ones that point into merged plugins.
package rewrite

import (
	"github.com/arthur-debert/presetcheck/pkg/diagnostics"
	"github.com/arthur-debert/presetcheck/pkg/errors"
	"github.com/arthur-debert/presetcheck/pkg/formid"
	"github.com/arthur-debert/presetcheck/pkg/merge"
	"github.com/arthur-debert/presetcheck/pkg/preset"
	"github.com/rs/zerolog"
)

// HeadPartIndex is the set of head parts the active load order provides.
type HeadPartIndex interface {
	Contains(key formid.Key) bool
}

// Resolver maps a reference into a merged plugin onto its replacement.
type Resolver interface {
	Resolve(plugin string, localID uint32) (merge.Resolution, bool)
}

// Result is the outcome of processing one document.
type Result struct {
	// Updated is set when at least one reference was rewritten.
	Updated bool
	// Plugins maps every plugin of a validated reference to the plugin it
	// resolved to, identity included.
	Plugins *PluginMap
	// Resolved holds the effective key of every validated reference, in
	// document order.
	Resolved []formid.Key
}

// Engine drives validation and resolution over a document's head parts.
type Engine struct {
	index    HeadPartIndex
	resolver Resolver
}

// NewEngine creates an engine backed by the given collaborators.
func NewEngine(index HeadPartIndex, resolver Resolver) *Engine {
	return &Engine{index: index, resolver: resolver}
}

// Process validates each head part of doc in order and rewrites those that
// can be resolved through a merge. Unresolvable plugins are recorded in diag.
func (e *Engine) Process(doc *preset.Document, diag *diagnostics.Accumulator, logger zerolog.Logger) Result {
	res := Result{Plugins: NewPluginMap()}

	if !doc.Has(preset.KeyHeadParts) {
		logger.Debug().Msg("Preset has no head parts")
		return res
	}

	for _, hp := range doc.HeadParts {
		if !hp.Complete() {
			continue
		}

		ref, err := formid.Validate(*hp.FormID, *hp.FormIdentifier)
		if err != nil {
			ev := logger.Warn().Err(err).Int("headPart", hp.Index).Str("formIdentifier", *hp.FormIdentifier)
			if errors.IsErrorCode(err, errors.ErrFormIDMismatch) {
				ev.Uint32("formId", *hp.FormID).Msg("Head part encodings disagree, skipping")
			} else {
				ev.Msg("Malformed head part reference, skipping")
			}
			continue
		}

		if e.index.Contains(ref.Key) {
			res.Plugins.Set(ref.Plugin, ref.Plugin)
			res.Resolved = append(res.Resolved, ref.Key)
			continue
		}

		target, ok := e.resolver.Resolve(ref.Plugin, ref.ID)
		if !ok {
			logger.Debug().Str("plugin", ref.Plugin).Str("formIdentifier", ref.String()).Msg("Head part plugin is not loaded and not merged")
			diag.AddBadPlugin(ref.Plugin)
			continue
		}

		resolved := formid.Key{Plugin: target.Plugin, ID: target.ID}
		if err := doc.SetHeadPart(hp.Index, formid.Encode(target.ID), resolved.String()); err != nil {
			logger.Error().Err(err).Int("headPart", hp.Index).Msg("Cannot rewrite head part")
			continue
		}
		logger.Info().
			Str("from", ref.String()).
			Str("to", resolved.String()).
			Msg("Resolved merged head part")
		res.Plugins.Set(ref.Plugin, target.Plugin)
		res.Resolved = append(res.Resolved, resolved)
		res.Updated = true
	}
	return res
}
