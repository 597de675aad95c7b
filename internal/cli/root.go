package cli

import (
	"fmt"

	"github.com/arthur-debert/presetcheck/internal/version"
	"github.com/arthur-debert/presetcheck/pkg/config"
	"github.com/arthur-debert/presetcheck/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// options collects the global flags.
type options struct {
	verbosity  int
	configFile string
	format     string
}

// flagKeys maps command flags to the configuration keys they override.
var flagKeys = map[string]string{
	"format":    "output.format",
	"input":     "paths.input_root",
	"output":    "paths.output_root",
	"backup":    "paths.backup_root",
	"data":      "game.data_root",
	"plugins":   "load_order.plugins_file",
	"headparts": "headparts.file",
	"merges":    "merges.root",
	"group":     "grouping.enabled",
	"workers":   "workers",
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "presetcheck",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Logging is reconfigured once the log file setting is known
			logging.SetupLogger(opts.verbosity, "")
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	initTemplateFormatting()
	rootCmd.SetUsageTemplate(usageTemplate)

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newFixCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// addRunFlags registers the flags shared by check and fix.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", MsgFlagInput)
	cmd.Flags().StringP("output", "o", "", MsgFlagOutput)
	cmd.Flags().StringP("backup", "b", "", MsgFlagBackup)
	cmd.Flags().String("data", "", MsgFlagData)
	cmd.Flags().String("plugins", "", MsgFlagPlugins)
	cmd.Flags().String("headparts", "", MsgFlagHeadParts)
	cmd.Flags().String("merges", "", MsgFlagMerges)
	cmd.Flags().BoolP("group", "g", false, MsgFlagGroup)
	cmd.Flags().IntP("workers", "j", 1, MsgFlagWorkers)
}

// loadConfig layers the config file, environment and the flags the user
// actually set.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	overrides := make(map[string]interface{})
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		overrides[key] = flag.Value.String()
	}

	cfg, err := config.Load(config.LoadOptions{File: opts.configFile, Overrides: overrides})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	logging.SetupLogger(opts.verbosity, cfg.LogFile)
	return cfg, nil
}
