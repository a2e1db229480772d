package modfiles

import (
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/slot"
	"github.com/arthur-debert/reslot/pkg/types"
)

// LayoutRoots are the top-level directories that mark a mod root.
var LayoutRoots = []string{"fighter", "sound", "ui"}

// sharedFighterDir holds assets common to every fighter.
const sharedFighterDir = "common"

// ValidateModDir checks that modDir looks like the root of a mod: it must
// contain at least one of the layout roots (case-insensitive).
func ValidateModDir(fs types.FS, modDir string) error {
	entries, err := fs.ReadDir(modDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidModDir, "cannot read mod directory %s", modDir).
			WithDetail("modDir", modDir)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		for _, root := range LayoutRoots {
			if strings.EqualFold(entry.Name(), root) {
				return nil
			}
		}
	}
	return errors.Newf(errors.ErrInvalidModDir,
		"%s is not a mod root: expected a %s directory", filepath.Base(modDir), strings.Join(LayoutRoots, ", ")).
		WithDetail("modDir", modDir)
}

// DetectFighters lists the fighters a mod touches, in first-seen order.
// Fighter directories are authoritative; UI portraits and sound banks are
// consulted as well so UI-only and sound-only mods are recognized.
func DetectFighters(set *Set) []string {
	var fighters []string
	seen := map[string]bool{}
	add := func(name string) {
		if name == "" || name == sharedFighterDir || seen[name] {
			return
		}
		seen[name] = true
		fighters = append(fighters, name)
	}

	paths := set.Paths()
	for _, p := range paths {
		if rest, ok := strings.CutPrefix(p, "fighter/"); ok {
			if name, _, found := strings.Cut(rest, "/"); found {
				add(name)
			}
		}
	}
	for _, p := range paths {
		if isUIPath(p) || isSoundPath(p) {
			if name, _, ok := splitAssetName(path.Base(p)); ok {
				add(name)
			}
		}
	}
	return fighters
}

// DetectSlots lists the slots present for fighter, sorted by index. Slots
// come from slot directories below fighter/<name>/ and from the slot suffix
// of UI portrait and sound bank names. names holds the fighter's directory
// name plus any UI aliases.
func DetectSlots(set *Set, names ...string) []slot.ID {
	if len(names) == 0 {
		return nil
	}

	found := map[int]slot.ID{}
	add := func(id slot.ID) { found[id.Index()] = id }

	prefix := "fighter/" + names[0] + "/"
	for _, p := range set.Paths() {
		if rest, ok := strings.CutPrefix(p, prefix); ok {
			for _, segment := range strings.Split(path.Dir(rest), "/") {
				if slot.IsSlotDir(segment) {
					add(slot.MustParse(segment))
					break
				}
			}
			continue
		}
		if !isUIPath(p) && !isSoundPath(p) {
			continue
		}
		name, suffix, ok := splitAssetName(path.Base(p))
		if !ok || !slices.Contains(names, name) {
			continue
		}
		if id, err := slot.Parse(suffix); err == nil {
			add(id)
		}
	}

	slots := make([]slot.ID, 0, len(found))
	for _, id := range found {
		slots = append(slots, id)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Index() < slots[j].Index() })
	return slots
}

// splitAssetName extracts the fighter token and slot suffix from names such
// as "chara_3_mario_00.bntx" or "se_mario_c00.nus3bank": the fighter sits
// between the last two underscores and the slot follows the last one.
func splitAssetName(base string) (name, slotSuffix string, ok bool) {
	stem, _, _ := strings.Cut(base, ".")
	last := strings.LastIndex(stem, "_")
	if last <= 0 {
		return "", "", false
	}
	prev := strings.LastIndex(stem[:last], "_")
	if prev < 0 {
		return "", "", false
	}
	name = stem[prev+1 : last]
	slotSuffix = stem[last+1:]
	if name == "" || slotSuffix == "" {
		return "", "", false
	}
	return name, slotSuffix, true
}

func isUIPath(p string) bool {
	return strings.HasPrefix(p, "ui/replace/chara/") || strings.HasPrefix(p, "ui/replace_patch/chara/")
}

func isSoundPath(p string) bool {
	return strings.HasPrefix(p, "sound/bank/")
}
