package processor

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/arthur-debert/presetcheck/pkg/diagnostics"
	"github.com/arthur-debert/presetcheck/pkg/errors"
	"github.com/arthur-debert/presetcheck/pkg/logging"
	"github.com/arthur-debert/presetcheck/pkg/paths"
	"github.com/arthur-debert/presetcheck/pkg/preset"
	"github.com/arthur-debert/presetcheck/pkg/report"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Runner processes every preset under the input root.
type Runner struct {
	fs      afero.Fs
	proc    *Processor
	workers int

	// OnStart is called with the number of presets found, before any is
	// processed.
	OnStart func(total int)
	// OnFile is called after each file, serialized.
	OnFile func(Outcome)
}

// NewRunner creates a runner using up to workers concurrent files.
func NewRunner(fs afero.Fs, proc *Processor, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{fs: fs, proc: proc, workers: workers}
}

// Run processes all presets and returns the run report. Per-file failures
// are logged and counted; only enumeration failures and cancellation are
// returned.
func (r *Runner) Run(ctx context.Context) (*report.Report, error) {
	logger := logging.GetLogger("processor.runner")
	defer logging.LogOperationStart(logger, "process presets")()

	mode := report.ModeCheck
	if r.proc.opts.Write {
		mode = report.ModeFix
	}
	rep := report.New(mode)
	diag := diagnostics.New()

	files, err := Enumerate(r.fs, r.proc.opts.InputRoot, r.proc.opts.OutputRoot, r.proc.opts.BackupRoot)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("presets", len(files)).Int("workers", r.workers).Msg("Found presets")
	if r.OnStart != nil {
		r.OnStart(len(files))
	}

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(r.workers)

	for _, path := range files {
		if ctx.Err() != nil {
			break
		}
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcome, err := r.proc.ProcessFile(path, diag)
			if err != nil {
				logger.Error().Err(err).Str("preset", path).Msg("Failed to process preset")
			}

			mu.Lock()
			defer mu.Unlock()
			tally(&rep.Counts, outcome)
			if r.OnFile != nil {
				r.OnFile(outcome)
			}
			return nil
		})
	}

	waitErr := g.Wait()
	rep.Finish(diag.BadPlugins(), diag.MissingTextures())
	if waitErr == nil {
		waitErr = ctx.Err()
	}
	if waitErr != nil {
		return rep, waitErr
	}

	logger.Info().
		Int("badPlugins", len(rep.BadPlugins)).
		Int("missingTextures", len(rep.MissingTextures)).
		Msg("Run complete")
	return rep, nil
}

func tally(c *report.Counts, o Outcome) {
	c.Scanned++
	if o.Updated {
		c.Updated++
	}
	switch o.Action {
	case ActionReject:
		c.Rejected++
	case ActionFail:
		c.Failed++
	case ActionCollision:
		c.Collisions++
	case ActionWrite:
		if o.Performed {
			c.Written++
		}
	case ActionCopy:
		if o.Performed {
			c.Copied++
		}
	}
	if o.Relocated {
		c.Relocated++
	}
}

// Enumerate lists preset files under root, sorted, skipping the given
// directories so earlier outputs and backups are never picked up again.
func Enumerate(fs afero.Fs, root string, skip ...string) ([]string, error) {
	if _, err := fs.Stat(root); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read input root %s", root)
	}

	// A skip directory enclosing the root would hide every input.
	var dirs []string
	for _, dir := range skip {
		if dir != "" && !paths.ContainsPath(dir, root) {
			dirs = append(dirs, dir)
		}
	}

	var files []string
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && skipped(path, dirs) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), preset.Extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot walk %s", root)
	}
	sort.Strings(files)
	return files, nil
}

func skipped(path string, dirs []string) bool {
	for _, dir := range dirs {
		if paths.ContainsPath(dir, path) {
			return true
		}
	}
	return false
}
