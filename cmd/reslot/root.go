// Package reslot wires the reslot commands into a cobra command tree.
package reslot

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/reslot/internal/version"
	"github.com/arthur-debert/reslot/pkg/commands"
	"github.com/arthur-debert/reslot/pkg/config"
	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/logging"
	"github.com/arthur-debert/reslot/pkg/ui"
	"github.com/arthur-debert/reslot/pkg/ui/display"
	"github.com/arthur-debert/reslot/pkg/ui/styles"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	verbosity     int
	json          bool
	outputFormat  string
	dirInfo       string
	knownFiles    string
	userConfigDir string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "reslot",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			_, err := flags.resultFormat()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, "no command specified")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.BoolVar(&flags.json, "json", false, MsgFlagJSON)
	pf.StringVar(&flags.outputFormat, "output-format", "auto", fmt.Sprintf(MsgFlagOutputFormat, strings.Join(ui.FormatNames(), ", ")))
	_ = rootCmd.RegisterFlagCompletionFunc("output-format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return ui.FormatNames(), cobra.ShellCompDirectiveNoFileComp
	})
	pf.StringVar(&flags.dirInfo, "dir-info", "", MsgFlagDirInfo)
	pf.StringVar(&flags.knownFiles, "hashes", "", MsgFlagHashes)
	pf.StringVar(&flags.userConfigDir, "config-dir", "", MsgFlagConfigDir)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newMigrateCmd(flags))
	rootCmd.AddCommand(newReconfigCmd(flags))
	rootCmd.AddCommand(newInspectCmd(flags))
	rootCmd.AddCommand(newGenConfigCmd(flags))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// common loads the layered settings for a run over modDir.
func (f *globalFlags) common(modDir string) (commands.Common, error) {
	cfg, err := config.Load(config.LoadOptions{
		UserConfigDir: f.userConfigDir,
		ModDir:        modDir,
	})
	if err != nil {
		return commands.Common{}, err
	}
	log.Debug().Strs("sources", cfg.Sources).Msg("Configuration loaded")

	return commands.Common{
		Config:         cfg,
		DirInfoPath:    f.dirInfo,
		KnownFilesPath: f.knownFiles,
	}, nil
}

// resultFormat resolves --output-format; --json is shorthand for
// --output-format json.
func (f *globalFlags) resultFormat() (ui.Format, error) {
	if f.json {
		return ui.FormatJSON, nil
	}
	return ui.ParseFormat(f.outputFormat)
}

// render prints a command result in the selected format.
func (f *globalFlags) render(cmd *cobra.Command, result display.Reporter) error {
	format, err := f.resultFormat()
	if err != nil {
		return err
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return renderer.RenderResult(result)
}

// PrintError reports a failed run. JSON output gets a JSON error object on
// stdout; everything else a styled line on stderr.
func PrintError(rootCmd *cobra.Command, err error) {
	asJSON, _ := rootCmd.PersistentFlags().GetBool("json")
	if format, _ := rootCmd.PersistentFlags().GetString("output-format"); strings.EqualFold(format, "json") {
		asJSON = true
	}
	if asJSON {
		if renderer, rerr := ui.NewRenderer(ui.FormatJSON, rootCmd.OutOrStdout()); rerr == nil {
			_ = renderer.RenderError(err)
			return
		}
	}
	printStyledError(rootCmd.ErrOrStderr(), err)
}

func printStyledError(w io.Writer, err error) {
	msg := fmt.Sprintf("Error: %v", err)
	if ui.DetectFormat(w) == ui.FormatTerminal {
		msg = styles.Render("Error", msg)
	}
	fmt.Fprintln(w, msg)
}
