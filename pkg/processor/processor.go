package processor

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/arthur-debert/presetcheck/pkg/classify"
	"github.com/arthur-debert/presetcheck/pkg/diagnostics"
	"github.com/arthur-debert/presetcheck/pkg/errors"
	"github.com/arthur-debert/presetcheck/pkg/filesystem"
	"github.com/arthur-debert/presetcheck/pkg/logging"
	"github.com/arthur-debert/presetcheck/pkg/paths"
	"github.com/arthur-debert/presetcheck/pkg/preset"
	"github.com/arthur-debert/presetcheck/pkg/rewrite"
	"github.com/arthur-debert/presetcheck/pkg/textures"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// LoadOrder gives the position of an active plugin, or -1.
type LoadOrder interface {
	IndexOf(plugin string) int
}

// Options configures a Processor.
type Options struct {
	InputRoot  string
	OutputRoot string
	BackupRoot string
	// PresetSubpath is the folder presets must sit in and the folder
	// outputs are written under.
	PresetSubpath string
	Write         bool
	Grouping      bool
}

// Action is what happened, or would happen in audit mode, to one file.
type Action int

const (
	// ActionNone leaves the file alone: nothing changed and grouping is off.
	ActionNone Action = iota
	// ActionReject skips a file outside the preset folder.
	ActionReject
	// ActionWrite writes the repaired document.
	ActionWrite
	// ActionCopy copies the original into its grouping folder.
	ActionCopy
	// ActionCollision skips a file whose output path was already taken.
	ActionCollision
	// ActionFail marks a file that could not be read, parsed or written.
	ActionFail
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionReject:
		return "reject"
	case ActionWrite:
		return "write"
	case ActionCopy:
		return "copy"
	case ActionCollision:
		return "collision"
	case ActionFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Outcome describes the processing of one file.
type Outcome struct {
	Path   string
	Action Action
	// Updated is set when a head part reference was rewritten.
	Updated bool
	Label   string
	Output  string
	// Performed is false in audit mode.
	Performed bool
	Relocated bool
	// MissingTextures lists textures first found missing in this file.
	MissingTextures []string
}

// Processor handles single presets. It is safe for concurrent use.
type Processor struct {
	fs         afero.Fs
	opts       Options
	engine     *rewrite.Engine
	textures   textures.Lookup
	classifier *classify.Classifier
	loadOrder  LoadOrder

	mu     sync.Mutex
	claims map[string]string
}

// New creates a processor. A nil texture lookup disables the texture check.
func New(fs afero.Fs, opts Options, engine *rewrite.Engine, tex textures.Lookup,
	classifier *classify.Classifier, loadOrder LoadOrder) *Processor {
	if opts.PresetSubpath == "" {
		opts.PresetSubpath = paths.DefaultPresetSubpath
	}
	if classifier == nil {
		classifier = classify.New(nil, "", "")
	}
	return &Processor{
		fs:         fs,
		opts:       opts,
		engine:     engine,
		textures:   tex,
		classifier: classifier,
		loadOrder:  loadOrder,
		claims:     make(map[string]string),
	}
}

// ProcessFile runs every check on one preset and carries out its placement.
// The returned error describes a failure of this file only; diagnostics go
// to diag.
func (p *Processor) ProcessFile(path string, diag *diagnostics.Accumulator) (Outcome, error) {
	out := Outcome{Path: path}
	logger := logging.GetLogger("processor").With().Str("preset", p.displayName(path)).Logger()

	if !paths.InPresetFolder(path, p.opts.PresetSubpath) {
		logger.Warn().Str("expected", p.opts.PresetSubpath).Msg("Skipping preset outside the preset folder")
		out.Action = ActionReject
		return out, nil
	}

	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		out.Action = ActionFail
		return out, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}
	doc, err := preset.Parse(data)
	if err != nil {
		out.Action = ActionFail
		return out, errors.Wrapf(err, errors.ErrDocumentInvalid, "cannot parse %s", path)
	}

	if p.textures != nil {
		out.MissingTextures = textures.Check(doc, p.textures, diag, logger)
	}

	originalModNames := append([]string(nil), doc.ModNames...)

	// The head part check rewrites modNames and mods, so it needs both.
	var res rewrite.Result
	if doc.Has(preset.KeyModNames) && doc.Has(preset.KeyMods) {
		res = p.engine.Process(doc, diag, logger)
	} else {
		logger.Info().Msg("Preset has no modNames or mods, skipping head part check")
	}
	out.Updated = res.Updated

	if !res.Updated && !p.opts.Grouping {
		return out, nil
	}

	if p.opts.Grouping {
		out.Label = p.classifier.Label(originalModNames, res.Resolved)
	}
	out.Output = p.outputPath(path, out.Label)
	out.Action = ActionCopy
	if res.Updated {
		out.Action = ActionWrite
	}

	if strings.EqualFold(filepath.Clean(out.Output), filepath.Clean(path)) {
		out.Action = ActionFail
		return out, errors.Newf(errors.ErrPresetPath, "output %s would overwrite its source", out.Output)
	}

	if other, ok := p.claim(out.Output, path); !ok {
		logger.Warn().Str("output", out.Output).Str("claimedBy", p.displayName(other)).
			Msg("Output path already taken in this run, skipping")
		out.Action = ActionCollision
		return out, nil
	}

	if !p.opts.Write {
		logger.Info().Str("action", out.Action.String()).Str("output", out.Output).Msg("Would place preset")
		return out, nil
	}

	switch out.Action {
	case ActionWrite:
		if err := p.rebuildPlugins(doc, res.Plugins, logger); err != nil {
			out.Action = ActionFail
			return out, err
		}
		if err := filesystem.WriteFile(p.fs, out.Output, doc.Pretty()); err != nil {
			out.Action = ActionFail
			return out, err
		}
		logger.Info().Str("output", out.Output).Msg("Wrote repaired preset")
	case ActionCopy:
		if err := filesystem.WriteFile(p.fs, out.Output, data); err != nil {
			out.Action = ActionFail
			return out, err
		}
		logger.Info().Str("output", out.Output).Msg("Copied preset")
	}
	out.Performed = true

	out.Relocated = p.relocate(path, logger)
	return out, nil
}

// rebuildPlugins replaces modNames with the plugins the preset now uses and
// mods with their current load order positions.
func (p *Processor) rebuildPlugins(doc *preset.Document, plugins *rewrite.PluginMap, logger zerolog.Logger) error {
	names := plugins.Effective()
	mods := make([]preset.Mod, 0, len(names))
	for _, name := range names {
		idx := -1
		if p.loadOrder != nil {
			idx = p.loadOrder.IndexOf(name)
		}
		if idx < 0 {
			logger.Warn().Str("plugin", name).Msg("Plugin is not in the load order")
		}
		mods = append(mods, preset.Mod{Index: idx, Name: name})
	}
	if err := doc.SetModNames(names); err != nil {
		return err
	}
	return doc.SetMods(mods)
}

// relocate moves the original into the backup root, keeping its path
// relative to the input root. Failures are warnings.
func (p *Processor) relocate(path string, logger zerolog.Logger) bool {
	rel, err := paths.RelativePath(p.opts.InputRoot, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(path)
	}
	dst := filepath.Join(p.opts.BackupRoot, rel)

	if err := filesystem.Move(p.fs, path, dst); err != nil {
		if errors.IsErrorCode(err, errors.ErrNotFound) {
			logger.Warn().Str("backup", dst).Msg("Original already relocated")
		} else {
			logger.Warn().Err(err).Str("backup", dst).Msg("Cannot relocate original")
		}
		return false
	}
	logger.Debug().Str("backup", dst).Msg("Relocated original")
	return true
}

// outputPath is OutputRoot/<preset subpath>/<label>/<file name>.
func (p *Processor) outputPath(path, label string) string {
	return filepath.Join(p.opts.OutputRoot, paths.PresetSubpath(p.opts.PresetSubpath),
		filepath.FromSlash(label), filepath.Base(path))
}

// claim reserves an output path for path. It returns the earlier claimant
// and false when the output is already reserved by another file. Paths
// compare case-insensitively, as the game resolves them.
func (p *Processor) claim(output, path string) (string, bool) {
	key := strings.ToLower(filepath.Clean(output))
	p.mu.Lock()
	defer p.mu.Unlock()
	if other, ok := p.claims[key]; ok && other != path {
		return other, false
	}
	p.claims[key] = path
	return path, true
}

func (p *Processor) displayName(path string) string {
	if rel, err := paths.RelativePath(p.opts.InputRoot, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
