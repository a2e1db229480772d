package overlay

import (
	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/filesystem"
	"github.com/arthur-debert/reslot/pkg/logging"
	"github.com/arthur-debert/reslot/pkg/types"
)

// BackupSuffix is appended to an existing config before it is replaced.
const BackupSuffix = ".bak"

// SaveOptions controls how a config is persisted.
type SaveOptions struct {
	// Backup copies an existing file to path+BackupSuffix first.
	Backup bool
}

// Save writes the config to path atomically.
func (c *Config) Save(fsys types.FS, path string, opts SaveOptions) error {
	logger := logging.GetLogger("overlay")

	data, err := c.Encode()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode config")
	}

	if opts.Backup {
		if info, statErr := fsys.Stat(path); statErr == nil && !info.IsDir() {
			backup := path + BackupSuffix
			if err := filesystem.CopyFile(fsys, path, backup); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to back up %s", path).
					WithDetail("path", backup)
			}
			logger.Debug().Str("backup", backup).Msg("Backed up existing config")
		}
	}

	if err := filesystem.AtomicWrite(fsys, path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write config %s", path).
			WithDetail("path", path)
	}

	logger.Info().Str("path", path).Int("bytes", len(data)).Msg("Config written")
	return nil
}
