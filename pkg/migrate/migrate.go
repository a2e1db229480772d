// Package migrate relocates a mod's files from one slot to another.
//
// Each file is classified once, rewritten for the target slot and, unless
// running config-only, copied byte for byte into the output directory. Every
// produced destination is recorded in the mod's file set so share
// resolution never redirects a path the mod now provides physically.
package migrate

import (
	"path/filepath"

	"github.com/arthur-debert/reslot/pkg/classify"
	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/filesystem"
	"github.com/arthur-debert/reslot/pkg/logging"
	"github.com/arthur-debert/reslot/pkg/modfiles"
	"github.com/arthur-debert/reslot/pkg/slot"
	"github.com/arthur-debert/reslot/pkg/types"
	"github.com/rs/zerolog"
)

// Request describes one slot pair.
type Request struct {
	// ModDir is the mod root files are read from.
	ModDir string
	// OutputDir is where migrated files are written. Empty means
	// config-only: destinations are computed and recorded but nothing is
	// copied.
	OutputDir string

	Source slot.ID
	Target slot.ID

	// KeepOtherSlots copies the fighter's files that do not belong to the
	// source slot into OutputDir unchanged.
	KeepOtherSlots bool
}

// ConfigOnly reports whether the request copies no bytes. A pair migrating
// a slot onto itself only regenerates configuration.
func (r Request) ConfigOnly() bool {
	return r.OutputDir == "" || r.Source == r.Target
}

// inPlace reports whether the output is the mod itself, where files kept
// unchanged already sit at their destination.
func (r Request) inPlace() bool {
	return filepath.Clean(r.OutputDir) == filepath.Clean(r.ModDir)
}

// Failure is a file that could not be copied.
type Failure struct {
	Source      string
	Destination string
	Err         error
}

// Result is the outcome of one slot pair.
type Result struct {
	// Migrated are the rewritten destinations that feed configuration, in
	// scan order.
	Migrated []string
	// Portraits are rewritten UI portraits. They are copied and recorded
	// but resolved outside the fighter's directory layout.
	Portraits []string
	// Kept are files copied unchanged because KeepOtherSlots was set.
	Kept []string
	// Failures are per-file copy errors; those files are in no other list.
	Failures []Failure
	// Copied counts bytes-level copies performed.
	Copied int
}

// Migrator applies slot pairs to a mod.
type Migrator struct {
	fs         types.FS
	classifier *classify.Classifier
	logger     zerolog.Logger
}

// New returns a migrator for the classifier's fighter.
func New(fs types.FS, classifier *classify.Classifier) *Migrator {
	return &Migrator{
		fs:         fs,
		classifier: classifier,
		logger:     logging.GetLogger("migrate"),
	}
}

// Migrate rewrites every file in files for req. Destinations are added to
// files as they are produced. Per-file copy failures are collected in the
// result; only failing to create the output directory aborts the pair.
func (m *Migrator) Migrate(files *modfiles.Set, req Request) (*Result, error) {
	copying := !req.ConfigOnly()
	if copying {
		if err := m.fs.MkdirAll(req.OutputDir, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create output directory %s", req.OutputDir).
				WithDetail("outputDir", req.OutputDir)
		}
	}

	result := &Result{}
	for _, path := range files.Paths() {
		rule := m.classifier.Classify(path)
		if rule.Class == classify.Unclassified {
			continue
		}

		dst, ok := rule.Rewrite(req.Source, req.Target)
		if !ok {
			if req.KeepOtherSlots && copying && rule.Owned() {
				if req.inPlace() || m.copy(req, path, path, result) {
					result.Kept = append(result.Kept, path)
				}
			}
			continue
		}

		if copying && !m.copy(req, path, dst, result) {
			continue
		}

		files.Add(dst)
		if rule.Class == classify.UIPortrait {
			result.Portraits = append(result.Portraits, dst)
		} else {
			result.Migrated = append(result.Migrated, dst)
		}

		m.logger.Trace().
			Str("class", rule.Class.String()).
			Str("from", path).
			Str("to", dst).
			Msg("Migrated file")
	}

	m.logger.Info().
		Str("fighter", m.classifier.Fighter()).
		Str("source", req.Source.String()).
		Str("target", req.Target.String()).
		Int("migrated", len(result.Migrated)).
		Int("portraits", len(result.Portraits)).
		Int("kept", len(result.Kept)).
		Int("failures", len(result.Failures)).
		Msg("Slot pair migrated")

	return result, nil
}

func (m *Migrator) copy(req Request, src, dst string, result *Result) bool {
	from := filepath.Join(req.ModDir, filepath.FromSlash(src))
	to := filepath.Join(req.OutputDir, filepath.FromSlash(dst))

	if err := filesystem.CopyFile(m.fs, from, to); err != nil {
		wrapped := errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s", src).
			WithDetail("source", src).
			WithDetail("destination", dst)
		m.logger.Warn().Err(err).Str("source", src).Str("destination", dst).Msg("Copy failed, skipping file")
		result.Failures = append(result.Failures, Failure{Source: src, Destination: dst, Err: wrapped})
		return false
	}
	result.Copied++
	return true
}
