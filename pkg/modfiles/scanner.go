package modfiles

import (
	"bufio"
	"bytes"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/logging"
	"github.com/arthur-debert/reslot/pkg/types"
	"github.com/rs/zerolog"
	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFileName is the per-mod ignore file, read from the mod root.
const IgnoreFileName = ".reslotignore"

// Scanner walks a mod directory into a Set.
type Scanner struct {
	fs       types.FS
	patterns []string
	logger   zerolog.Logger
}

// NewScanner creates a scanner. patterns are gitignore-style patterns
// matched against mod-relative paths, in addition to any .reslotignore
// found in the scanned mod.
func NewScanner(fs types.FS, patterns []string) *Scanner {
	return &Scanner{
		fs:       fs,
		patterns: patterns,
		logger:   logging.GetLogger("modfiles.scanner"),
	}
}

// Scan records every file below the top-level subdirectories of modDir.
func (s *Scanner) Scan(modDir string) (*Set, error) {
	info, err := s.fs.Stat(modDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidModDir, "cannot read mod directory %s", modDir).
			WithDetail("modDir", modDir)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidModDir, "%s is not a directory", modDir).
			WithDetail("modDir", modDir)
	}

	matcher := s.compileIgnore(modDir)

	entries, err := s.fs.ReadDir(modDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to list mod directory %s", modDir)
	}

	set := NewSet()
	for _, entry := range sortedEntries(entries) {
		if !entry.IsDir() {
			continue
		}
		if err := s.walk(modDir, entry.Name(), matcher, set); err != nil {
			return nil, err
		}
	}

	s.logger.Debug().
		Str("modDir", modDir).
		Int("files", set.Len()).
		Msg("Mod scan complete")

	return set, nil
}

func (s *Scanner) walk(modDir, rel string, matcher *ignore.GitIgnore, set *Set) error {
	if matcher != nil && matcher.MatchesPath(rel+"/") {
		s.logger.Trace().Str("dir", rel).Msg("Skipping ignored directory")
		return nil
	}

	entries, err := s.fs.ReadDir(filepath.Join(modDir, filepath.FromSlash(rel)))
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to list %s", rel)
	}

	for _, entry := range sortedEntries(entries) {
		child := path.Join(rel, entry.Name())
		if entry.IsDir() {
			if err := s.walk(modDir, child, matcher, set); err != nil {
				return err
			}
			continue
		}
		if matcher != nil && matcher.MatchesPath(child) {
			s.logger.Trace().Str("file", child).Msg("Skipping ignored file")
			continue
		}
		set.Add(child)
	}
	return nil
}

// compileIgnore merges the configured patterns with the mod's own ignore
// file. It returns nil when there is nothing to ignore.
func (s *Scanner) compileIgnore(modDir string) *ignore.GitIgnore {
	lines := append([]string{}, s.patterns...)

	data, err := s.fs.ReadFile(filepath.Join(modDir, IgnoreFileName))
	if err == nil {
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
		}
		s.logger.Debug().Str("modDir", modDir).Msg("Using " + IgnoreFileName)
	}

	if len(lines) == 0 {
		return nil
	}
	return ignore.CompileIgnoreLines(lines...)
}

func sortedEntries(entries []fs.DirEntry) []fs.DirEntry {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries
}
