package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Audit and repair RaceMenu presets"
	MsgCheckShort      = "Report broken head part and texture references"
	MsgFixShort        = "Repair merged head part references and place presets"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgCompletionShort = "Generate shell completion script"

	MsgRootLong = `presetcheck audits character presets (.jslot) of a modded Skyrim install.

It verifies that every texture a preset references exists, loose or inside
an archive, and that every head part points to a record the active load
order provides. References into plugins that were merged away are
rewritten to the merged plugin.`

	MsgCheckLong = `Check reads every preset under the input root and reports unresolved
plugins and missing textures. Nothing is written, whatever the write
setting says; the actions a fix would take are logged at info level (-v).`

	MsgFixLong = `Fix repairs references into merged plugins and writes the repaired
presets under the output root, grouped by race when grouping is enabled.
Each original is moved into the backup root, keeping its relative path, so
a second run finds nothing left to do.`

	MsgConfigLong = `Print the configuration after applying defaults, the config file,
PRESETCHECK_ environment variables and flags, as TOML.`

	// Status messages
	MsgVersionFormat = "presetcheck version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"
	MsgProgressTitle = "Presets"

	// Error messages
	MsgErrLoadConfig   = "failed to load configuration: %w"
	MsgErrLoadOrder    = "failed to read load order: %w"
	MsgErrHeadParts    = "failed to read head part inventory: %w"
	MsgErrMerges       = "failed to read merge definitions: %w"
	MsgErrTextureIndex = "failed to index textures: %w"
	MsgErrRun          = "failed to process presets: %w"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig    = "Config file (default is $XDG_CONFIG_HOME/presetcheck/config.toml)"
	MsgFlagFormat    = "Report format: auto, term, text, json, md"
	MsgFlagInput     = "Folder searched for presets"
	MsgFlagOutput    = "Folder repaired presets are written to"
	MsgFlagBackup    = "Folder originals are moved to"
	MsgFlagData      = "Game Data folder"
	MsgFlagPlugins   = "plugins.txt of the active profile"
	MsgFlagHeadParts = "Head part inventory (YAML)"
	MsgFlagMerges    = "Folder holding zMerge merges"
	MsgFlagGroup     = "Group output presets by race and head mesh"
	MsgFlagWorkers   = "Presets processed in parallel"
	MsgFlagDefaults  = "Print the commented defaults instead"
)
