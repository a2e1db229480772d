// Package migrate implements the migrate command: relocate a fighter's
// slots into a new mod directory and write its overlay config.
package migrate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/reslot/pkg/commands"
	"github.com/arthur-debert/reslot/pkg/engine"
	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/logging"
	"github.com/arthur-debert/reslot/pkg/modfiles"
	"github.com/arthur-debert/reslot/pkg/overlay"
	"github.com/arthur-debert/reslot/pkg/paths"
	"github.com/arthur-debert/reslot/pkg/slot"
	"github.com/arthur-debert/reslot/pkg/ui/display"
)

// Options holds options for the migrate command
type Options struct {
	commands.Common

	ModDir  string
	Fighter string
	Pairs   []Pair
	// Share forces the vanilla slot added targets inherit from.
	Share *slot.ID
	// OutputDir defaults to DefaultOutputDir.
	OutputDir string
	// ConfigOnly copies nothing and writes the config into the mod.
	ConfigOnly     bool
	KeepOtherSlots bool
	// Fresh ignores the mod's existing config instead of merging it.
	Fresh bool
}

// PairResult summarizes one slot pair.
type PairResult struct {
	Pair
	Share     slot.ID `json:"share"`
	Migrated  int     `json:"migrated"`
	Portraits int     `json:"portraits"`
	Kept      int     `json:"kept"`
	Failed    int     `json:"failed"`
	NewDirs   int     `json:"newDirs"`
	Shared    int     `json:"shared"`
	Listed    int     `json:"listed"`
}

// Result is the outcome of the migrate command
type Result struct {
	Fighter    string       `json:"fighter"`
	ModDir     string       `json:"modDir"`
	OutputDir  string       `json:"outputDir"`
	ConfigPath string       `json:"configPath"`
	ConfigOnly bool         `json:"configOnly"`
	Pairs      []PairResult `json:"pairs"`
	Sections   Sections     `json:"sections"`
	Warnings   []string     `json:"warnings,omitempty"`
}

// Sections counts the entries of each config section.
type Sections struct {
	NewDirInfos     int `json:"newDirInfos"`
	NewDirInfosBase int `json:"newDirInfosBase"`
	ShareToVanilla  int `json:"shareToVanilla"`
	NewDirFiles     int `json:"newDirFiles"`
	ShareToAdded    int `json:"shareToAdded"`
}

// CountSections summarizes cfg.
func CountSections(cfg *overlay.Config) Sections {
	return Sections{
		NewDirInfos:     len(cfg.NewDirInfos()),
		NewDirInfosBase: cfg.NewDirInfosBase.Len(),
		ShareToVanilla:  cfg.ShareToVanilla.Len(),
		NewDirFiles:     cfg.NewDirFiles.Len(),
		ShareToAdded:    cfg.ShareToAdded.Len(),
	}
}

// Run migrates every pair on one run and persists the config.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.migrate")

	if err := commands.RequireFighter(opts.Fighter); err != nil {
		return nil, err
	}
	if err := ValidatePairs(opts.Pairs); err != nil {
		return nil, err
	}

	modDir, err := paths.ModDir(opts.ModDir)
	if err != nil {
		return nil, err
	}
	fs := opts.FS()
	if err := modfiles.ValidateModDir(fs, modDir); err != nil {
		return nil, err
	}

	outDir, copyDir := modDir, ""
	if !opts.ConfigOnly {
		outDir = opts.OutputDir
		if outDir == "" {
			outDir = DefaultOutputDir(modDir, opts.Pairs)
		}
		if outDir, err = paths.ModDir(outDir); err != nil {
			return nil, err
		}
		if outDir == modDir {
			return nil, errors.Newf(errors.ErrInvalidInput,
				"output directory %s is the mod itself; use config-only mode to write its config in place", outDir).
				WithDetail("outputDir", outDir)
		}
		copyDir = outDir
	}

	initOpts, err := opts.EngineOptions(modDir, opts.Fresh)
	if err != nil {
		return nil, err
	}
	ctx := engine.New()
	if err := ctx.Init(initOpts); err != nil {
		return nil, err
	}

	result := &Result{
		Fighter:    opts.Fighter,
		ModDir:     modDir,
		OutputDir:  outDir,
		ConfigPath: opts.ConfigPath(outDir),
		ConfigOnly: opts.ConfigOnly,
	}

	for _, pair := range opts.Pairs {
		logger.Info().Str("fighter", opts.Fighter).Str("pair", pair.String()).Msg("Migrating slot")
		res, err := ctx.MigrateSlot(engine.SlotRequest{
			Fighter:        opts.Fighter,
			Source:         pair.Source,
			Target:         pair.Target,
			Share:          opts.Share,
			OutputDir:      copyDir,
			KeepOtherSlots: opts.KeepOtherSlots,
		})
		if err != nil {
			return nil, err
		}
		result.Pairs = append(result.Pairs, Summarize(pair, res))
		result.Warnings = append(result.Warnings, res.Warnings...)
	}

	cfg, err := ctx.Assemble()
	if err != nil {
		return nil, err
	}
	if err := ctx.Persist(result.ConfigPath, overlay.SaveOptions{Backup: opts.Settings().Output.Backup}); err != nil {
		return nil, err
	}
	result.Sections = CountSections(cfg)

	logger.Info().
		Str("outputDir", outDir).
		Int("pairs", len(result.Pairs)).
		Int("warnings", len(result.Warnings)).
		Msg("Migration finished")
	return result, nil
}

// Summarize condenses an engine slot result.
func Summarize(pair Pair, res *engine.SlotResult) PairResult {
	out := PairResult{
		Pair:    pair,
		Share:   res.Share,
		NewDirs: res.Resolution.NewDirs,
		Shared:  res.Resolution.Shared,
		Listed:  res.Listed,
	}
	if m := res.Migration; m != nil {
		out.Migrated = len(m.Migrated)
		out.Portraits = len(m.Portraits)
		out.Kept = len(m.Kept)
		out.Failed = len(m.Failures)
	}
	return out
}

// Report implements display.Reporter.
func (r *Result) Report() *display.Report {
	var pairs []string
	for _, p := range r.Pairs {
		pairs = append(pairs, p.Source.String()+" -> "+p.Target.String())
	}
	rep := &display.Report{
		Command: "migrate",
		Title:   fmt.Sprintf("Migrated %s: %s", r.Fighter, strings.Join(pairs, ", ")),
	}
	rep.AddField("Mod", r.ModDir)
	if r.ConfigOnly {
		rep.AddField("Mode", "config only")
	} else {
		rep.AddField("Output", r.OutputDir)
	}
	rep.AddField("Config", r.ConfigPath)

	table := display.Table{
		Title:   "Slots",
		Headers: []string{"Source", "Target", "Share", "Migrated", "Portraits", "Kept", "Failed", "New dirs", "Redirects"},
	}
	for _, p := range r.Pairs {
		table.Rows = append(table.Rows, []string{
			p.Source.String(), p.Target.String(), p.Share.String(),
			strconv.Itoa(p.Migrated), strconv.Itoa(p.Portraits), strconv.Itoa(p.Kept), strconv.Itoa(p.Failed),
			strconv.Itoa(p.NewDirs), strconv.Itoa(p.Shared),
		})
	}
	rep.AddTable(table)
	rep.AddTable(SectionsTable(r.Sections))
	rep.Warnings = r.Warnings
	return rep
}

// SectionsTable lists the entry count of each config section.
func SectionsTable(s Sections) display.Table {
	return display.Table{
		Title:   "Config",
		Headers: []string{"Section", "Entries"},
		Rows: [][]string{
			{overlay.KeyNewDirInfos, strconv.Itoa(s.NewDirInfos)},
			{overlay.KeyNewDirInfosBase, strconv.Itoa(s.NewDirInfosBase)},
			{overlay.KeyShareToVanilla, strconv.Itoa(s.ShareToVanilla)},
			{overlay.KeyNewDirFiles, strconv.Itoa(s.NewDirFiles)},
			{overlay.KeyShareToAdded, strconv.Itoa(s.ShareToAdded)},
		},
	}
}
