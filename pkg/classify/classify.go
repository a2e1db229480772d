// Package classify assigns mod files to the rewrite rule that relocates them
// between slots.
//
// Classification happens once per path; the returned Rule carries everything
// needed to rewrite that path for any slot pair.
package classify

import (
	"path"
	"strings"

	"github.com/arthur-debert/reslot/pkg/slot"
)

// Class is the kind of asset a path holds.
type Class int

const (
	Unclassified Class = iota
	ModelOrMotion
	UIPortrait
	SoundBank
	Effect
)

func (c Class) String() string {
	switch c {
	case ModelOrMotion:
		return "model-or-motion"
	case UIPortrait:
		return "ui-portrait"
	case SoundBank:
		return "sound-bank"
	case Effect:
		return "effect"
	default:
		return "unclassified"
	}
}

var (
	uiPrefixes    = []string{"ui/replace/chara/", "ui/replace_patch/chara/"}
	soundPrefixes = []string{"sound/bank/fighter/", "sound/bank/fighter_voice/"}
)

const portraitExt = ".bntx"

// Rule is a classified path and the data its rewrite needs.
type Rule struct {
	Class Class
	Path  string

	// prefix is the fighter-specific part of the path that rewrites never
	// touch (effect rules only).
	prefix string
	// keys are the UI tokens a portrait must carry to belong to the fighter.
	keys []string
}

// Rewrite returns the path relocated from source to target. It reports
// false when the path does not carry the source slot, or for unclassified
// paths.
func (r Rule) Rewrite(source, target slot.ID) (string, bool) {
	switch r.Class {
	case ModelOrMotion:
		return replaceFirst(r.Path, "/"+source.String()+"/", "/"+target.String()+"/")
	case UIPortrait:
		return r.rewritePortrait(source, target)
	case SoundBank:
		return replaceFirst(r.Path, "_"+source.String(), "_"+target.String())
	case Effect:
		return r.rewriteEffect(source, target)
	default:
		return "", false
	}
}

// Owned reports whether the path belongs to the classifier's fighter.
// Portraits are shared across fighters and must carry one of its UI keys.
func (r Rule) Owned() bool {
	switch r.Class {
	case Unclassified:
		return false
	case UIPortrait:
		return r.ownsPortrait(path.Base(r.Path))
	default:
		return true
	}
}

func (r Rule) rewritePortrait(source, target slot.ID) (string, bool) {
	dir, file := path.Split(r.Path)
	suffix := "_" + source.Digits() + portraitExt
	if !strings.HasSuffix(file, suffix) {
		return "", false
	}
	renamed := strings.TrimSuffix(file, suffix) + "_" + target.Digits() + portraitExt
	if !r.ownsPortrait(renamed) {
		return "", false
	}
	return dir + renamed, true
}

// rewriteEffect renames the innermost directory that carries the source
// slot (c00 or trail_c00). Without one, the last occurrence of the source
// digits in the file name is replaced.
func (r Rule) rewriteEffect(source, target slot.ID) (string, bool) {
	rest := strings.TrimPrefix(r.Path, r.prefix)
	segments := strings.Split(rest, "/")
	dirs, file := segments[:len(segments)-1], segments[len(segments)-1]

	for i := len(dirs) - 1; i >= 0; i-- {
		if dirs[i] == source.String() {
			dirs[i] = target.String()
			return r.prefix + path.Join(append(dirs, file)...), true
		}
		if name, ok := strings.CutSuffix(dirs[i], "_"+source.String()); ok {
			dirs[i] = name + "_" + target.String()
			return r.prefix + path.Join(append(dirs, file)...), true
		}
	}

	i := strings.LastIndex(file, source.Digits())
	if i < 0 {
		return "", false
	}
	dirs = append(dirs, file[:i]+target.Digits()+file[i+len(source.Digits()):])
	return r.prefix + path.Join(dirs...), true
}

func (r Rule) ownsPortrait(file string) bool {
	for _, key := range r.keys {
		if strings.Contains(file, "_"+key+"_") {
			return true
		}
	}
	return false
}

func replaceFirst(s, old, replacement string) (string, bool) {
	i := strings.Index(s, old)
	if i < 0 {
		return "", false
	}
	return s[:i] + replacement + s[i+len(old):], true
}

// Classifier classifies paths for a single fighter.
type Classifier struct {
	fighter string
	keys    []string
}

// New returns a classifier for fighter. aliases maps a fighter to the
// extra UI keys its portraits may use, e.g. ice_climber to popo and nana.
func New(fighter string, aliases map[string][]string) *Classifier {
	keys := append([]string{fighter}, aliases[fighter]...)
	return &Classifier{fighter: fighter, keys: keys}
}

// Fighter returns the fighter this classifier was built for.
func (c *Classifier) Fighter() string {
	return c.fighter
}

// Keys returns the fighter name followed by its UI aliases.
func (c *Classifier) Keys() []string {
	return append([]string{}, c.keys...)
}

// Classify returns the rule for p. Anything outside the known layouts is
// Unclassified.
func (c *Classifier) Classify(p string) Rule {
	if strings.HasPrefix(p, "fighter/"+c.fighter+"/") {
		return Rule{Class: ModelOrMotion, Path: p}
	}
	for _, prefix := range uiPrefixes {
		if strings.HasPrefix(p, prefix) {
			return Rule{Class: UIPortrait, Path: p, keys: c.keys}
		}
	}
	for _, prefix := range soundPrefixes {
		if strings.HasPrefix(p, prefix) {
			return Rule{Class: SoundBank, Path: p}
		}
	}
	if effectPrefix := "effect/fighter/" + c.fighter + "/"; strings.HasPrefix(p, effectPrefix) {
		return Rule{Class: Effect, Path: p, prefix: effectPrefix}
	}
	return Rule{Class: Unclassified, Path: p}
}
