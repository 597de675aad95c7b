package cli

import (
	"fmt"

	"github.com/arthur-debert/presetcheck/internal/version"
	"github.com/arthur-debert/presetcheck/pkg/config"
	"github.com/arthur-debert/presetcheck/pkg/filesystem"
	"github.com/arthur-debert/presetcheck/pkg/report"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newCheckCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: MsgCheckShort,
		Long:  MsgCheckLong,
		Example: `  # Check presets of a Mod Organizer install
  presetcheck check -i ~/MO2/mods --data ~/Skyrim/Data \
    --plugins ~/MO2/profiles/Default/plugins.txt --headparts headparts.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, opts, false)
		},
	}
	addRunFlags(cmd)
	return cmd
}

func newFixCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix",
		Short: MsgFixShort,
		Long:  MsgFixLong,
		Example: `  # Repair and group presets, keeping originals in a backup folder
  presetcheck fix -g -i ~/MO2/mods -o ~/MO2/mods/Fixed\ Presets -b ~/preset-backup`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, opts, true)
		},
	}
	addRunFlags(cmd)
	return cmd
}

func runCommand(cmd *cobra.Command, opts *options, write bool) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	cfg.Write = write
	if err := cfg.Validate(); err != nil {
		return err
	}

	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	renderer, err := report.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	rep, err := runPresets(cmd.Context(), filesystem.NewOS(), cfg, newProgress(opts.verbosity))
	if err != nil {
		if rep == nil {
			return err
		}
		log.Warn().Err(err).Msg("Run stopped early")
	}
	return renderer.RenderReport(rep)
}

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Long:  MsgConfigLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults, _ := cmd.Flags().GetBool("defaults"); defaults {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GenerateConfigContent())
				return err
			}
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			out, err := cfg.ToTOML()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().Bool("defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(presetcheck completion bash)

Zsh:
  $ presetcheck completion zsh > "${fpath[1]}/_presetcheck"

Fish:
  $ presetcheck completion fish | source

PowerShell:
  PS> presetcheck completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return GenCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}
