// Package knownfiles loads the set of paths the game ships natively.
package knownfiles

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/logging"
	"github.com/arthur-debert/reslot/pkg/types"
)

// Set is the immutable set of vanilla paths.
type Set struct {
	paths map[string]struct{}
}

// New builds a set from the given paths.
func New(paths ...string) *Set {
	s := &Set{paths: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		s.paths[p] = struct{}{}
	}
	return s
}

// Load reads a newline-delimited hashes file. Lines are trimmed and blank
// lines are ignored. A missing file is fatal for a run.
func Load(fs types.FS, path string) (*Set, error) {
	logger := logging.GetLogger("knownfiles")

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrKnownFilesLoad, "failed to read known files %s", path).
			WithDetail("path", path)
	}

	s := &Set{paths: make(map[string]struct{})}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		s.paths[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrKnownFilesLoad, "failed to parse known files %s", path).
			WithDetail("path", path)
	}

	logger.Debug().Str("path", path).Int("count", len(s.paths)).Msg("Loaded known files")
	return s, nil
}

// Contains reports whether path is a vanilla file.
func (s *Set) Contains(path string) bool {
	if s == nil {
		return false
	}
	_, ok := s.paths[path]
	return ok
}

// Len returns the number of known paths.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.paths)
}
