// Package commands holds what every reslot command needs to set up a run.
// Each command lives in its own subpackage and exposes an Options struct
// and a function returning a result that the CLI renders.
package commands

import (
	"path/filepath"

	"github.com/arthur-debert/reslot/pkg/config"
	"github.com/arthur-debert/reslot/pkg/engine"
	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/filesystem"
	"github.com/arthur-debert/reslot/pkg/logging"
	"github.com/arthur-debert/reslot/pkg/paths"
	"github.com/arthur-debert/reslot/pkg/share"
	"github.com/arthur-debert/reslot/pkg/types"
)

// Common are the settings shared by every command.
type Common struct {
	// FileSystem defaults to the OS filesystem.
	FileSystem types.FS
	// Config defaults to the embedded defaults.
	Config *config.Config

	// DirInfoPath and KnownFilesPath override resource lookup.
	DirInfoPath    string
	KnownFilesPath string

	// WorkDir and DataDirs feed resource lookup; see paths.Locator.
	WorkDir  string
	DataDirs []string
}

// FS returns the configured filesystem.
func (c Common) FS() types.FS {
	if c.FileSystem == nil {
		return filesystem.NewOS()
	}
	return c.FileSystem
}

// Settings returns the configured settings.
func (c Common) Settings() *config.Config {
	if c.Config == nil {
		return config.Default()
	}
	return c.Config
}

// ConfigPath returns where the overlay config lives in dir.
func (c Common) ConfigPath(dir string) string {
	return filepath.Join(dir, c.Settings().Output.ConfigName)
}

// EngineOptions resolves resources and builds the engine options for a
// run over modDir.
func (c Common) EngineOptions(modDir string, fresh bool) (engine.InitOptions, error) {
	logger := logging.GetLogger("commands")
	fs := c.FS()
	cfg := c.Settings()

	policy, err := share.ByName(cfg.Share.Policy)
	if err != nil {
		return engine.InitOptions{}, err
	}

	locator, err := paths.NewLocator(fs, c.WorkDir, modDir, c.DataDirs)
	if err != nil {
		return engine.InitOptions{}, err
	}
	dirInfo, found := locator.Resolve(c.DirInfoPath, cfg.Resources.DirInfo)
	if !found {
		logger.Warn().Str("path", dirInfo).Msg("Dir info resource not found")
	}
	known, found := locator.Resolve(c.KnownFilesPath, cfg.Resources.KnownFiles)
	if !found {
		logger.Warn().Str("path", known).Msg("Known files resource not found")
	}

	return engine.InitOptions{
		FileSystem:         fs,
		DirInfoPath:        dirInfo,
		KnownFilesPath:     known,
		ModDir:             modDir,
		FreshConfig:        fresh,
		ExistingConfigPath: c.ConfigPath(modDir),
		Policy:             policy,
		Aliases:            cfg.Fighters.Aliases,
		Overrides:          cfg.SlotOverrides(),
		NoAddedSlots:       cfg.Fighters.NoAddedSlots,
		IgnorePatterns:     cfg.Scan.Ignore,
	}, nil
}

// RequireFighter rejects an empty fighter name.
func RequireFighter(fighter string) error {
	if fighter == "" {
		return errors.New(errors.ErrInvalidInput, "no fighter given; use inspect to list the mod's fighters")
	}
	return nil
}
