package cli

import (
	"context"
	"fmt"

	"github.com/arthur-debert/presetcheck/pkg/classify"
	"github.com/arthur-debert/presetcheck/pkg/config"
	"github.com/arthur-debert/presetcheck/pkg/errors"
	"github.com/arthur-debert/presetcheck/pkg/headparts"
	"github.com/arthur-debert/presetcheck/pkg/loadorder"
	"github.com/arthur-debert/presetcheck/pkg/logging"
	"github.com/arthur-debert/presetcheck/pkg/merge"
	"github.com/arthur-debert/presetcheck/pkg/processor"
	"github.com/arthur-debert/presetcheck/pkg/report"
	"github.com/arthur-debert/presetcheck/pkg/rewrite"
	"github.com/arthur-debert/presetcheck/pkg/textures"
	"github.com/spf13/afero"
)

// runPresets loads every external input, then processes the presets. A
// failure to load a required input aborts before any preset is touched.
func runPresets(ctx context.Context, fs afero.Fs, cfg *config.Config, prog *progress) (*report.Report, error) {
	logger := logging.GetLogger("cli.run")

	lo, err := loadorder.Load(fs, cfg.LoadOrder.PluginsFile, cfg.LoadOrder.LoadOrderFile)
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadOrder, err)
	}
	logger.Info().Int("plugins", lo.Len()).Msg("Load order read")

	inventory, err := headparts.Load(fs, cfg.HeadParts.File)
	if err != nil {
		return nil, fmt.Errorf(MsgErrHeadParts, err)
	}
	logger.Info().Int("headParts", inventory.Len()).Msg("Head part inventory read")

	table, err := loadMerges(fs, cfg)
	if err != nil {
		return nil, fmt.Errorf(MsgErrMerges, err)
	}

	var lookup textures.Lookup
	textureCount := 0
	if cfg.Textures.Enabled {
		archives, err := textures.ApplicableArchives(fs, textures.ArchiveOptions{
			DataRoot:     cfg.Game.DataRoot,
			IniFile:      cfg.Game.IniFile,
			BaseArchives: cfg.Textures.BaseArchives,
			Plugins:      lo.Plugins(),
		})
		if err != nil {
			return nil, fmt.Errorf(MsgErrTextureIndex, err)
		}
		idx, err := textures.Build(ctx, fs, textures.BuildOptions{
			DataRoot: cfg.Game.DataRoot,
			Archives: archives,
			Workers:  cfg.Workers,
		})
		if err != nil {
			return nil, fmt.Errorf(MsgErrTextureIndex, err)
		}
		lookup = idx
		textureCount = idx.Len()
	}

	proc := processor.New(fs, processor.Options{
		InputRoot:     cfg.Paths.InputRoot,
		OutputRoot:    cfg.Paths.OutputRoot,
		BackupRoot:    cfg.Paths.BackupRoot,
		PresetSubpath: cfg.PresetSubpath,
		Write:         cfg.Write,
		Grouping:      cfg.Grouping.Enabled,
	},
		rewrite.NewEngine(inventory, table),
		lookup,
		classify.New(inventory, cfg.Grouping.CotRPlugin, cfg.Grouping.HighPolyPlugin),
		lo,
	)

	runner := processor.NewRunner(fs, proc, cfg.Workers)
	runner.OnStart = prog.start
	runner.OnFile = func(processor.Outcome) { prog.increment() }

	rep, err := runner.Run(ctx)
	prog.stop()
	if rep != nil {
		rep.Inputs = report.Inputs{
			Plugins:   lo.Len(),
			HeadParts: inventory.Len(),
			Merges:    table.Len(),
			Textures:  textureCount,
		}
	}
	if err != nil {
		return rep, fmt.Errorf(MsgErrRun, err)
	}
	return rep, nil
}

// loadMerges reads zMerge folders, then the overrides file on top.
func loadMerges(fs afero.Fs, cfg *config.Config) (*merge.Table, error) {
	logger := logging.GetLogger("cli.merges")
	table := merge.NewTable()

	if cfg.Merges.Root != "" {
		n, err := merge.LoadZMerge(fs, cfg.Merges.Root, table)
		if err != nil {
			return nil, err
		}
		logger.Info().Int("merges", n).Str("root", cfg.Merges.Root).Msg("zMerge definitions read")
	}

	if cfg.Merges.Overrides != "" {
		n, err := merge.LoadOverrides(fs, cfg.Merges.Overrides, table)
		switch {
		case errors.IsErrorCode(err, errors.ErrNotFound):
			logger.Warn().Str("file", cfg.Merges.Overrides).Msg("Merge overrides file not found")
		case err != nil:
			return nil, err
		default:
			logger.Info().Int("plugins", n).Msg("Merge overrides read")
		}
	}
	return table, nil
}
