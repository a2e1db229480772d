// Package inspect implements the inspect command: report which fighters
// and slots a mod touches without changing anything.
package inspect

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/arthur-debert/reslot/pkg/classify"
	"github.com/arthur-debert/reslot/pkg/commands"
	"github.com/arthur-debert/reslot/pkg/commands/migrate"
	"github.com/arthur-debert/reslot/pkg/logging"
	"github.com/arthur-debert/reslot/pkg/modfiles"
	"github.com/arthur-debert/reslot/pkg/overlay"
	"github.com/arthur-debert/reslot/pkg/paths"
	"github.com/arthur-debert/reslot/pkg/slot"
	"github.com/arthur-debert/reslot/pkg/ui/display"
)

// Options holds options for the inspect command
type Options struct {
	commands.Common
	ModDir string
}

// Fighter describes one fighter found in the mod.
type Fighter struct {
	Name      string    `json:"name"`
	Slots     []slot.ID `json:"slots"`
	Models    int       `json:"models"`
	Portraits int       `json:"portraits"`
	Sounds    int       `json:"sounds"`
	Effects   int       `json:"effects"`
}

// Result is the outcome of the inspect command
type Result struct {
	ModDir   string    `json:"modDir"`
	Files    int       `json:"files"`
	Fighters []Fighter `json:"fighters"`
	// Config summarizes the mod's existing overlay config, if any.
	Config   *migrate.Sections `json:"config,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
}

// Run scans opts.ModDir.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.inspect")

	modDir, err := paths.ModDir(opts.ModDir)
	if err != nil {
		return nil, err
	}
	fs := opts.FS()
	if err := modfiles.ValidateModDir(fs, modDir); err != nil {
		return nil, err
	}
	cfg := opts.Settings()

	files, err := modfiles.NewScanner(fs, cfg.Scan.Ignore).Scan(modDir)
	if err != nil {
		return nil, err
	}

	result := &Result{ModDir: modDir, Files: files.Len()}
	for _, name := range modfiles.DetectFighters(files) {
		aliases := cfg.Fighters.Aliases[name]
		fighter := Fighter{
			Name:  name,
			Slots: modfiles.DetectSlots(files, append([]string{name}, aliases...)...),
		}
		classifier := classify.New(name, cfg.Fighters.Aliases)
		for _, p := range files.Paths() {
			rule := classifier.Classify(p)
			switch rule.Class {
			case classify.ModelOrMotion:
				fighter.Models++
			case classify.UIPortrait:
				if rule.Owned() {
					fighter.Portraits++
				}
			case classify.SoundBank:
				if strings.Contains(p, "_"+name+"_") {
					fighter.Sounds++
				}
			case classify.Effect:
				fighter.Effects++
			}
		}

		if slices.Contains(cfg.Fighters.NoAddedSlots, name) {
			for _, id := range fighter.Slots {
				if id.IsAdded() {
					result.Warnings = append(result.Warnings,
						fmt.Sprintf("%s uses added slot %s, which its loader support cannot handle", name, id))
					break
				}
			}
		}
		result.Fighters = append(result.Fighters, fighter)
	}

	existing, err := overlay.Load(fs, opts.ConfigPath(modDir))
	if err != nil {
		return nil, err
	}
	if !existing.IsEmpty() {
		sections := migrate.CountSections(existing)
		result.Config = &sections
	}

	logger.Info().Str("modDir", modDir).Int("files", result.Files).Int("fighters", len(result.Fighters)).Msg("Mod inspected")
	return result, nil
}

// Report implements display.Reporter.
func (r *Result) Report() *display.Report {
	rep := &display.Report{
		Command: "inspect",
		Title:   fmt.Sprintf("%d files, %d fighters", r.Files, len(r.Fighters)),
	}
	rep.AddField("Mod", r.ModDir)

	table := display.Table{
		Title:   "Fighters",
		Headers: []string{"Fighter", "Slots", "Models", "Portraits", "Sounds", "Effects"},
	}
	for _, f := range r.Fighters {
		var slots []string
		for _, id := range f.Slots {
			slots = append(slots, id.String())
		}
		table.Rows = append(table.Rows, []string{
			f.Name, strings.Join(slots, " "),
			strconv.Itoa(f.Models), strconv.Itoa(f.Portraits), strconv.Itoa(f.Sounds), strconv.Itoa(f.Effects),
		})
	}
	rep.AddTable(table)

	if r.Config != nil {
		rep.AddTable(migrate.SectionsTable(*r.Config))
	} else {
		rep.AddField("Config", "none")
	}
	rep.Warnings = r.Warnings
	return rep
}
