// Package reconfig implements the reconfig command: regenerate a mod's
// overlay config in place by running every slot the mod has onto itself.
package reconfig

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/reslot/pkg/commands"
	"github.com/arthur-debert/reslot/pkg/commands/migrate"
	"github.com/arthur-debert/reslot/pkg/engine"
	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/logging"
	"github.com/arthur-debert/reslot/pkg/modfiles"
	"github.com/arthur-debert/reslot/pkg/overlay"
	"github.com/arthur-debert/reslot/pkg/paths"
	"github.com/arthur-debert/reslot/pkg/slot"
	"github.com/arthur-debert/reslot/pkg/ui/display"
)

// Options holds options for the reconfig command
type Options struct {
	commands.Common

	ModDir  string
	Fighter string
	// Slots limits the run; empty means every slot detected in the mod.
	Slots []slot.ID
	// Fresh discards the existing config instead of extending it.
	Fresh bool
}

// Result is the outcome of the reconfig command
type Result struct {
	Fighter    string               `json:"fighter"`
	ModDir     string               `json:"modDir"`
	ConfigPath string               `json:"configPath"`
	Fresh      bool                 `json:"fresh"`
	Slots      []migrate.PairResult `json:"slots"`
	Sections   migrate.Sections     `json:"sections"`
	Warnings   []string             `json:"warnings,omitempty"`
}

// Run regenerates the config of opts.ModDir.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.reconfig")

	if err := commands.RequireFighter(opts.Fighter); err != nil {
		return nil, err
	}
	modDir, err := paths.ModDir(opts.ModDir)
	if err != nil {
		return nil, err
	}
	if err := modfiles.ValidateModDir(opts.FS(), modDir); err != nil {
		return nil, err
	}

	initOpts, err := opts.EngineOptions(modDir, opts.Fresh)
	if err != nil {
		return nil, err
	}
	ctx := engine.New()
	if err := ctx.Init(initOpts); err != nil {
		return nil, err
	}

	slots := opts.Slots
	if len(slots) == 0 {
		names := append([]string{opts.Fighter}, opts.Settings().Fighters.Aliases[opts.Fighter]...)
		slots = modfiles.DetectSlots(ctx.Files(), names...)
	}
	if len(slots) == 0 {
		return nil, errors.Newf(errors.ErrNotFound, "no slots of %s found in %s", opts.Fighter, modDir).
			WithDetail("fighter", opts.Fighter)
	}

	result := &Result{
		Fighter:    opts.Fighter,
		ModDir:     modDir,
		ConfigPath: opts.ConfigPath(modDir),
		Fresh:      opts.Fresh,
	}
	for _, id := range slots {
		pair := migrate.Pair{Source: id, Target: id}
		res, err := ctx.MigrateSlot(engine.SlotRequest{
			Fighter: opts.Fighter,
			Source:  id,
			Target:  id,
		})
		if err != nil {
			return nil, err
		}
		result.Slots = append(result.Slots, migrate.Summarize(pair, res))
		result.Warnings = append(result.Warnings, res.Warnings...)
	}

	cfg, err := ctx.Assemble()
	if err != nil {
		return nil, err
	}
	if err := ctx.Persist(result.ConfigPath, overlay.SaveOptions{Backup: opts.Settings().Output.Backup}); err != nil {
		return nil, err
	}
	result.Sections = migrate.CountSections(cfg)

	logger.Info().Str("modDir", modDir).Int("slots", len(slots)).Msg("Config regenerated")
	return result, nil
}

// Report implements display.Reporter.
func (r *Result) Report() *display.Report {
	var names []string
	for _, s := range r.Slots {
		names = append(names, s.Target.String())
	}
	rep := &display.Report{
		Command: "reconfig",
		Title:   fmt.Sprintf("Regenerated config for %s: %s", r.Fighter, strings.Join(names, " ")),
	}
	rep.AddField("Mod", r.ModDir)
	rep.AddField("Config", r.ConfigPath)
	if r.Fresh {
		rep.AddField("Mode", "fresh")
	} else {
		rep.AddField("Mode", "merged")
	}
	rep.AddTable(migrate.SectionsTable(r.Sections))
	rep.Warnings = r.Warnings
	return rep
}
