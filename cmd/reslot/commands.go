package reslot

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/reslot/internal/version"
	"github.com/arthur-debert/reslot/pkg/commands"
	"github.com/arthur-debert/reslot/pkg/commands/genconfig"
	"github.com/arthur-debert/reslot/pkg/commands/inspect"
	"github.com/arthur-debert/reslot/pkg/commands/migrate"
	"github.com/arthur-debert/reslot/pkg/commands/reconfig"
	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/slot"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newMigrateCmd(flags *globalFlags) *cobra.Command {
	var (
		fighter        string
		pairs          []string
		share          string
		out            string
		configOnly     bool
		keepOtherSlots bool
		fresh          bool
	)

	cmd := &cobra.Command{
		Use:     "migrate <mod-dir>",
		Short:   MsgMigrateShort,
		Long:    MsgMigrateLong,
		Example: MsgMigrateExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modDir := args[0]
			if len(pairs) == 0 {
				return errors.New(errors.ErrInvalidInput, MsgErrNoPairs)
			}

			common, err := flags.common(modDir)
			if err != nil {
				return err
			}

			opts := migrate.Options{
				Common:         common,
				ModDir:         modDir,
				OutputDir:      out,
				ConfigOnly:     configOnly,
				KeepOtherSlots: keepOtherSlots,
				Fresh:          fresh,
			}
			for _, raw := range pairs {
				pair, err := migrate.ParsePair(raw)
				if err != nil {
					return err
				}
				opts.Pairs = append(opts.Pairs, pair)
			}
			if share != "" {
				id, err := slot.Parse(share)
				if err != nil {
					return err
				}
				opts.Share = &id
			}
			if opts.Fighter, err = resolveFighter(common, modDir, fighter); err != nil {
				return err
			}

			log.Info().
				Str("modDir", modDir).
				Str("fighter", opts.Fighter).
				Strs("pairs", pairs).
				Bool("configOnly", configOnly).
				Msg("Migrating mod")

			result, err := migrate.Run(opts)
			if err != nil {
				return err
			}
			return flags.render(cmd, result)
		},
	}

	cmd.Flags().StringVarP(&fighter, "fighter", "f", "", MsgFlagFighter)
	cmd.Flags().StringArrayVarP(&pairs, "pair", "p", nil, MsgFlagPair)
	cmd.Flags().StringVar(&share, "share", "", MsgFlagShare)
	cmd.Flags().StringVarP(&out, "out", "o", "", MsgFlagOut)
	cmd.Flags().BoolVar(&configOnly, "config-only", false, MsgFlagConfigOnly)
	cmd.Flags().BoolVar(&keepOtherSlots, "keep-other-slots", false, MsgFlagKeepOtherSlots)
	cmd.Flags().BoolVar(&fresh, "fresh", false, MsgFlagFresh)
	cmd.MarkFlagsMutuallyExclusive("out", "config-only")

	return cmd
}

func newReconfigCmd(flags *globalFlags) *cobra.Command {
	var (
		fighter string
		slots   []string
		fresh   bool
	)

	cmd := &cobra.Command{
		Use:     "reconfig <mod-dir>",
		Short:   MsgReconfigShort,
		Long:    MsgReconfigLong,
		Example: MsgReconfigExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modDir := args[0]
			common, err := flags.common(modDir)
			if err != nil {
				return err
			}

			opts := reconfig.Options{Common: common, ModDir: modDir, Fresh: fresh}
			for _, raw := range slots {
				id, err := slot.Parse(raw)
				if err != nil {
					return err
				}
				opts.Slots = append(opts.Slots, id)
			}
			if opts.Fighter, err = resolveFighter(common, modDir, fighter); err != nil {
				return err
			}

			result, err := reconfig.Run(opts)
			if err != nil {
				return err
			}
			return flags.render(cmd, result)
		},
	}

	cmd.Flags().StringVarP(&fighter, "fighter", "f", "", MsgFlagFighter)
	cmd.Flags().StringArrayVarP(&slots, "slot", "s", nil, MsgFlagSlot)
	cmd.Flags().BoolVar(&fresh, "fresh", false, MsgFlagFresh)

	return cmd
}

func newInspectCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "inspect <mod-dir>",
		Short:   MsgInspectShort,
		Long:    MsgInspectLong,
		Example: MsgInspectExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			common, err := flags.common(args[0])
			if err != nil {
				return err
			}
			result, err := inspect.Run(inspect.Options{Common: common, ModDir: args[0]})
			if err != nil {
				return err
			}
			return flags.render(cmd, result)
		},
	}
}

func newGenConfigCmd(flags *globalFlags) *cobra.Command {
	var (
		write     bool
		effective bool
		format    string
	)

	cmd := &cobra.Command{
		Use:     "gen-config [<mod-dir>...]",
		Aliases: []string{"genconfig"},
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only a single mod dir contributes its mod-local layer.
			modDir := ""
			if len(args) == 1 {
				modDir = args[0]
			}
			common, err := flags.common(modDir)
			if err != nil {
				return err
			}

			result, err := genconfig.Run(genconfig.Options{
				Common:    common,
				Effective: effective,
				Format:    format,
				Write:     write,
				ModDirs:   args,
			})
			if err != nil {
				return err
			}
			return flags.render(cmd, result)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVarP(&effective, "effective", "e", false, MsgFlagEffective)
	cmd.Flags().StringVar(&format, "format", "toml", MsgFlagFormat)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// resolveFighter returns the --fighter value, or the only fighter the mod
// touches when none was given.
func resolveFighter(common commands.Common, modDir, fighter string) (string, error) {
	if fighter != "" {
		return fighter, nil
	}

	result, err := inspect.Run(inspect.Options{Common: common, ModDir: modDir})
	if err != nil {
		return "", err
	}
	switch len(result.Fighters) {
	case 0:
		return "", errors.Newf(errors.ErrInvalidInput, MsgErrNoFighter, modDir)
	case 1:
		log.Info().Str("fighter", result.Fighters[0].Name).Msg("Detected fighter")
		return result.Fighters[0].Name, nil
	default:
		names := make([]string, 0, len(result.Fighters))
		for _, f := range result.Fighters {
			names = append(names, f.Name)
		}
		return "", errors.Newf(errors.ErrInvalidInput, MsgErrManyFighters, modDir, strings.Join(names, ", "))
	}
}
