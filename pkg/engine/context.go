// Package engine drives a slot migration run.
//
// A Context owns everything one run mutates: the loaded layout and known
// files, the mod's file set and the accumulated overlay config. Callers
// create one per run, initialize it, migrate any number of slot pairs and
// persist the config once:
//
//	ctx := engine.New()
//	err := ctx.Init(opts)
//	res, err := ctx.MigrateSlot(engine.SlotRequest{...})
//	cfg, err := ctx.Assemble()
//	err = ctx.Persist(path, overlay.SaveOptions{Backup: true})
//
// Contexts share nothing, so separate runs are isolated. A single Context
// is not safe for concurrent use.
package engine

import (
	"path/filepath"
	"slices"

	"github.com/arthur-debert/reslot/pkg/classify"
	"github.com/arthur-debert/reslot/pkg/dirinfo"
	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/knownfiles"
	"github.com/arthur-debert/reslot/pkg/logging"
	"github.com/arthur-debert/reslot/pkg/migrate"
	"github.com/arthur-debert/reslot/pkg/modfiles"
	"github.com/arthur-debert/reslot/pkg/overlay"
	"github.com/arthur-debert/reslot/pkg/share"
	"github.com/arthur-debert/reslot/pkg/slot"
	"github.com/arthur-debert/reslot/pkg/types"
	"github.com/rs/zerolog"
)

// ConfigFileName is the overlay artifact's name in a mod root.
const ConfigFileName = "config.json"

// InitOptions configures a run.
type InitOptions struct {
	FileSystem types.FS

	DirInfoPath    string
	KnownFilesPath string
	ModDir         string

	// FreshConfig skips loading the mod's existing config. Otherwise new
	// entries are merged into it.
	FreshConfig bool
	// ExistingConfigPath overrides <ModDir>/config.json.
	ExistingConfigPath string

	// Policy routes redirects; nil selects the default policy.
	Policy share.Policy
	// Aliases maps fighters to extra UI keys.
	Aliases map[string][]string
	// Overrides remaps default share slots per fighter.
	Overrides slot.Overrides
	// NoAddedSlots lists fighters the loader cannot give added slots.
	NoAddedSlots []string
	// IgnorePatterns are gitignore patterns excluded from the mod scan.
	IgnorePatterns []string
}

// SlotRequest is one slot pair.
type SlotRequest struct {
	Fighter string
	Source  slot.ID
	Target  slot.ID
	// Share forces the vanilla slot an added target inherits from.
	Share *slot.ID
	// OutputDir receives copied files; empty means config-only.
	OutputDir      string
	KeepOtherSlots bool
}

// SlotResult is the outcome of one slot pair.
type SlotResult struct {
	Fighter string
	Source  slot.ID
	Target  slot.ID
	// Share is the slot an added target inherits from; it equals Target
	// for vanilla targets.
	Share      slot.ID
	Migration  *migrate.Result
	Resolution share.Stats
	// Listed counts custom files listed under the fighter's slot directory.
	Listed   int
	Warnings []string
}

// MigratedFiles returns the destinations that fed the config.
func (r *SlotResult) MigratedFiles() []string {
	if r.Migration == nil {
		return nil
	}
	return r.Migration.Migrated
}

// Context is one migration run.
type Context struct {
	state  State
	opts   InitOptions
	fs     types.FS
	tree   *dirinfo.Tree
	known  *knownfiles.Set
	files  *modfiles.Set
	config *overlay.Config
	policy share.Policy

	classifiers map[string]*classify.Classifier
	results     []*SlotResult
	logger      zerolog.Logger
}

// New returns an uninitialized context.
func New() *Context {
	return &Context{
		state:       Uninitialized,
		classifiers: make(map[string]*classify.Classifier),
		logger:      logging.GetLogger("engine"),
	}
}

// State returns the current run state.
func (c *Context) State() State {
	return c.state
}

// Files returns the mod's file set, including migrated destinations.
func (c *Context) Files() *modfiles.Set {
	return c.files
}

// Tree returns the loaded layout.
func (c *Context) Tree() *dirinfo.Tree {
	return c.tree
}

// Results returns the slot pairs migrated so far.
func (c *Context) Results() []*SlotResult {
	return append([]*SlotResult{}, c.results...)
}

// Init loads the static resources and scans the mod. Any failure aborts
// the run.
func (c *Context) Init(opts InitOptions) error {
	if c.state != Uninitialized {
		return errors.Newf(errors.ErrInvalidState, "context already initialized (%s)", c.state)
	}
	if opts.FileSystem == nil {
		return c.abort(errors.New(errors.ErrInvalidInput, "no filesystem configured"))
	}
	c.opts = opts
	c.fs = opts.FileSystem

	c.policy = opts.Policy
	if c.policy == nil {
		policy, err := share.ByName("")
		if err != nil {
			return c.abort(err)
		}
		c.policy = policy
	}

	tree, err := dirinfo.Load(c.fs, opts.DirInfoPath)
	if err != nil {
		return c.abort(err)
	}
	known, err := knownfiles.Load(c.fs, opts.KnownFilesPath)
	if err != nil {
		return c.abort(err)
	}
	c.tree = tree
	c.known = known
	if err := c.transition(ResourcesLoaded); err != nil {
		return c.abort(err)
	}

	files, err := modfiles.NewScanner(c.fs, opts.IgnorePatterns).Scan(opts.ModDir)
	if err != nil {
		return c.abort(err)
	}
	c.files = files

	c.config = overlay.New()
	if !opts.FreshConfig {
		existing, err := overlay.Load(c.fs, c.existingConfigPath())
		if err != nil {
			return c.abort(err)
		}
		c.config = existing
	}
	if err := c.transition(Scanning); err != nil {
		return c.abort(err)
	}

	c.logger.Info().
		Str("modDir", opts.ModDir).
		Int("modFiles", files.Len()).
		Int("knownFiles", known.Len()).
		Str("policy", c.policy.Name()).
		Bool("fresh", opts.FreshConfig).
		Msg("Run initialized")
	return nil
}

func (c *Context) existingConfigPath() string {
	if c.opts.ExistingConfigPath != "" {
		return c.opts.ExistingConfigPath
	}
	return filepath.Join(c.opts.ModDir, ConfigFileName)
}

// MigrateSlot migrates one slot pair and resolves its config entries.
// Invalid requests are rejected without changing state; a failure once
// migration started aborts the run.
func (c *Context) MigrateSlot(req SlotRequest) (*SlotResult, error) {
	if c.state != Scanning && c.state != Resolving {
		return nil, errors.Newf(errors.ErrInvalidState, "cannot migrate a slot while %s", c.state)
	}
	if req.Fighter == "" {
		return nil, errors.New(errors.ErrInvalidInput, "no fighter given")
	}

	shareSlot := req.Target
	if req.Target.IsAdded() {
		var err error
		shareSlot, err = slot.ShareSlot(req.Fighter, req.Source, req.Target, req.Share, c.opts.Overrides)
		if err != nil {
			return nil, err
		}
	}

	done := logging.LogOperationStart(logging.ForSlotPair(c.logger, req.Fighter, req.Source, req.Target), "migrate")
	defer done()

	result := &SlotResult{
		Fighter: req.Fighter,
		Source:  req.Source,
		Target:  req.Target,
		Share:   shareSlot,
	}
	if req.Target.IsAdded() && slices.Contains(c.opts.NoAddedSlots, req.Fighter) {
		warning := req.Fighter + " cannot use added slots; check its UI files too"
		c.logger.Warn().Str("fighter", req.Fighter).Str("target", req.Target.String()).Msg(warning)
		result.Warnings = append(result.Warnings, warning)
	}

	if err := c.transition(Migrating); err != nil {
		return nil, err
	}

	migration, err := migrate.New(c.fs, c.classifier(req.Fighter)).Migrate(c.files, migrate.Request{
		ModDir:         c.opts.ModDir,
		OutputDir:      req.OutputDir,
		Source:         req.Source,
		Target:         req.Target,
		KeepOtherSlots: req.KeepOtherSlots,
	})
	if err != nil {
		return nil, c.abort(err)
	}
	result.Migration = migration
	for _, failure := range migration.Failures {
		result.Warnings = append(result.Warnings, failure.Err.Error())
	}

	if err := c.transition(Resolving); err != nil {
		return nil, c.abort(err)
	}

	resolver := share.NewResolver(c.tree, c.known, c.files, c.policy, c.config)
	if req.Target.IsAdded() {
		stats, err := resolver.AddNewSlot(req.Fighter, shareSlot, req.Target)
		if err != nil {
			return nil, c.abort(err)
		}
		result.Resolution = stats
		if stats.FighterMissing {
			result.Warnings = append(result.Warnings, req.Fighter+" is not in the dir info; no directories were added")
		}
	}
	result.Listed = resolver.AddMissingFiles(req.Fighter, req.Target, migration.Migrated)

	c.results = append(c.results, result)
	return result, nil
}

func (c *Context) classifier(fighter string) *classify.Classifier {
	if cl, ok := c.classifiers[fighter]; ok {
		return cl
	}
	cl := classify.New(fighter, c.opts.Aliases)
	c.classifiers[fighter] = cl
	return cl
}

// Assemble finishes the run's config. It requires at least one migrated
// slot pair.
func (c *Context) Assemble() (*overlay.Config, error) {
	if err := c.transition(Assembled); err != nil {
		return nil, err
	}
	return c.config, nil
}

// Config returns the config accumulated so far without changing state.
func (c *Context) Config() *overlay.Config {
	return c.config
}

// Persist writes the assembled config to path.
func (c *Context) Persist(path string, opts overlay.SaveOptions) error {
	if c.state != Assembled {
		return errors.Newf(errors.ErrInvalidState, "cannot persist while %s", c.state)
	}
	if err := c.config.Save(c.fs, path, opts); err != nil {
		return c.abort(err)
	}
	return c.transition(Persisted)
}
