package reslot

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Move costume mods between slots and generate their overlay config"
	MsgMigrateShort    = "Move a mod's files to new slots and write its config"
	MsgReconfigShort   = "Regenerate a mod's config.json in place"
	MsgInspectShort    = "Show the fighters and slots a mod touches"
	MsgInspectLong     = "Inspect scans a mod without changing it and lists each fighter it touches, the slots it provides and a summary of its existing config.json."
	MsgGenConfigShort  = "Generate a reslot configuration file"
	MsgGenConfigLong   = "Output the default configuration with every value commented out, or the settings currently in effect, to stdout or into mod directories.\n\nWith -w and no directories, writes to the current directory."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Error messages
	MsgErrNoFighter    = "no fighter found in %s"
	MsgErrManyFighters = "%s touches several fighters (%s), choose one with --fighter"
	MsgErrNoPairs      = "at least one --pair is required"

	// Flag descriptions
	MsgFlagVerbose        = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagJSON           = "Print results as JSON"
	MsgFlagOutputFormat   = "Result format: %s"
	MsgFlagDirInfo        = "Path to dir_info_with_files_trimmed.json"
	MsgFlagHashes         = "Path to Hashes_all.txt"
	MsgFlagConfigDir      = "Directory holding the user config (default $XDG_CONFIG_HOME/reslot)"
	MsgFlagFighter        = "Fighter directory name, e.g. mario (detected when the mod has one fighter)"
	MsgFlagPair           = "Slot pair source:target, repeatable"
	MsgFlagShare          = "Vanilla slot that added targets inherit missing files from"
	MsgFlagOut            = "Output directory for the migrated mod"
	MsgFlagConfigOnly     = "Write config.json into the mod without copying files"
	MsgFlagKeepOtherSlots = "Also copy files of slots that are not migrated"
	MsgFlagFresh          = "Ignore the mod's existing config.json instead of extending it"
	MsgFlagSlot           = "Only regenerate entries for this slot, repeatable"
	MsgFlagWrite          = "Write config to file(s) instead of stdout"
	MsgFlagEffective      = "Output the settings in effect instead of the commented defaults"
	MsgFlagFormat         = "Format of --effective output: toml or yaml"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/migrate-long.txt
	msgMigrateLongRaw string
	MsgMigrateLong    = strings.TrimSpace(msgMigrateLongRaw)

	//go:embed msgs/migrate-example.txt
	msgMigrateExampleRaw string
	MsgMigrateExample    = strings.TrimRight(msgMigrateExampleRaw, "\n")

	//go:embed msgs/reconfig-long.txt
	msgReconfigLongRaw string
	MsgReconfigLong    = strings.TrimSpace(msgReconfigLongRaw)

	//go:embed msgs/reconfig-example.txt
	msgReconfigExampleRaw string
	MsgReconfigExample    = strings.TrimRight(msgReconfigExampleRaw, "\n")

	//go:embed msgs/inspect-example.txt
	msgInspectExampleRaw string
	MsgInspectExample    = strings.TrimRight(msgInspectExampleRaw, "\n")

	//go:embed msgs/genconfig-example.txt
	msgGenConfigExampleRaw string
	MsgGenConfigExample    = strings.TrimRight(msgGenConfigExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
