// Package share turns the game's directory layout into overlay entries for
// a relocated slot.
//
// For an added slot the loader needs every directory the share slot has
// (new-dir-infos), the child directories to inherit from
// (new-dir-infos-base), the files each new directory holds (new-dir-files)
// and redirects from each vanilla file to its derived path (the share
// maps). Files the mod provides physically are never redirected.
package share

import (
	"strings"

	"github.com/arthur-debert/reslot/pkg/dirinfo"
	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/knownfiles"
	"github.com/arthur-debert/reslot/pkg/logging"
	"github.com/arthur-debert/reslot/pkg/modfiles"
	"github.com/arthur-debert/reslot/pkg/overlay"
	"github.com/arthur-debert/reslot/pkg/slot"
	"github.com/rs/zerolog"
)

// Resolver writes share entries into a config.
type Resolver struct {
	tree   *dirinfo.Tree
	known  *knownfiles.Set
	files  *modfiles.Set
	policy Policy
	config *overlay.Config
	logger zerolog.Logger
}

// NewResolver returns a resolver that consults files at resolution time, so
// paths migrated earlier in the run take precedence over redirects.
func NewResolver(tree *dirinfo.Tree, known *knownfiles.Set, files *modfiles.Set, policy Policy, config *overlay.Config) *Resolver {
	return &Resolver{
		tree:   tree,
		known:  known,
		files:  files,
		policy: policy,
		config: config,
		logger: logging.GetLogger("share"),
	}
}

// Stats counts the entries one resolution added.
type Stats struct {
	NewDirs  int
	Bases    int
	DirFiles int
	Shared   int
	// Physical counts redirects skipped because the mod has the file.
	Physical int
	// SlotDirs are the new directories, in walk order.
	SlotDirs []string
	// FighterMissing is set when the fighter is not in the layout.
	FighterMissing bool
}

// AddNewSlot registers target as a new slot of fighter, inheriting from
// share. Every directory below fighter/<fighter> that has a share slot
// child yields a new directory for target.
//
// A fighter absent from the layout is skipped without error.
func (r *Resolver) AddNewSlot(fighter string, share, target slot.ID) (Stats, error) {
	var stats Stats
	root := "fighter/" + fighter

	dirs, err := r.tree.FindSlotDirs(root, share.String())
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrNotFound) {
			r.logger.Warn().Str("fighter", fighter).Msg("Fighter not in dir info, no directories added")
			stats.FighterMissing = true
			return stats, nil
		}
		return stats, err
	}

	for _, dir := range dirs {
		newDir := dir.PathFor(target)
		if r.config.AddNewDirInfo(newDir) {
			stats.NewDirs++
		}
		stats.SlotDirs = append(stats.SlotDirs, newDir)

		node := r.tree.Node(dir.Node)
		stats.DirFiles += r.AddDirFiles(newDir, node.Files, share, target)

		shared, physical := r.AddSharedFiles(node.Files, share, target)
		stats.Shared += shared
		stats.Physical += physical

		for _, child := range node.ChildNames() {
			r.config.SetBase(newDir+"/"+child, dir.Path+"/"+child)
			stats.Bases++
		}
	}

	r.logger.Debug().
		Str("fighter", fighter).
		Str("share", share.String()).
		Str("target", target.String()).
		Int("newDirs", stats.NewDirs).
		Int("bases", stats.Bases).
		Int("dirFiles", stats.DirFiles).
		Int("shared", stats.Shared).
		Int("physical", stats.Physical).
		Msg("Added slot directories")

	return stats, nil
}

// AddDirFiles lists the files of a layout directory, relocated from share
// to target, under new-dir-files[dir]. Opaque and vanilla paths are
// skipped. It returns the number of files added.
func (r *Resolver) AddDirFiles(dir string, indices []int, share, target slot.ID) int {
	added := 0
	r.config.NewDirFiles.Ensure(dir)
	for _, index := range indices {
		source, ok := r.tree.FilePath(index)
		if !ok {
			continue
		}
		derived, ok := Substitute(source, share, target)
		if !ok || r.known.Contains(derived) {
			continue
		}
		if r.config.AddDirFile(dir, derived) {
			added++
		}
	}
	return added
}

// AddSharedFiles redirects each relocated layout file to its share slot
// original, in the section the policy picks. Derived paths the mod provides
// physically are skipped. It returns the number of redirects added and the
// number skipped because the file exists.
func (r *Resolver) AddSharedFiles(indices []int, share, target slot.ID) (shared, physical int) {
	for _, index := range indices {
		source, ok := r.tree.FilePath(index)
		if !ok {
			continue
		}
		derived, ok := Substitute(source, share, target)
		if !ok {
			continue
		}
		if r.files.Has(derived) {
			physical++
			continue
		}
		if r.config.Share(r.policy.Route(source), source, derived) {
			shared++
		}
	}
	return shared, physical
}

// AddMissingFiles lists migrated custom files under the slot directory
// new-dir-files["fighter/<fighter>/<target>"]. Vanilla paths are never
// listed. Effects are only listed for added slots. The entry is created
// only when at least one file is listed.
func (r *Resolver) AddMissingFiles(fighter string, target slot.ID, migrated []string) int {
	dir := "fighter/" + fighter + "/" + target.String()
	added := 0
	for _, file := range migrated {
		if target.IsVanilla() && strings.HasPrefix(file, "effect/") {
			continue
		}
		if r.known.Contains(file) {
			continue
		}
		if r.config.AddDirFile(dir, file) {
			added++
		}
	}
	return added
}

// Substitute replaces the first occurrence of from's token in path with
// to's. It reports false when path does not contain the token.
func Substitute(path string, from, to slot.ID) (string, bool) {
	token := from.String()
	i := strings.Index(path, token)
	if i < 0 {
		return "", false
	}
	return path[:i] + to.String() + path[i+len(token):], true
}
