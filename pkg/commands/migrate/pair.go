package migrate

import (
	"strings"

	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/slot"
)

// Pair moves one source slot onto a target slot.
type Pair struct {
	Source slot.ID `json:"source"`
	Target slot.ID `json:"target"`
}

func (p Pair) String() string {
	return p.Source.String() + ":" + p.Target.String()
}

// ParsePair parses "source:target", e.g. "c00:c08" or "0:+8".
func ParsePair(s string) (Pair, error) {
	from, to, ok := strings.Cut(s, ":")
	if !ok {
		return Pair{}, errors.Newf(errors.ErrInvalidSlot, "slot pair %q must look like c00:c08", s)
	}
	source, err := slot.Parse(from)
	if err != nil {
		return Pair{}, err
	}
	target, err := slot.Parse(to)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Source: source, Target: target}, nil
}

// ValidatePairs rejects an empty list and repeated targets.
func ValidatePairs(pairs []Pair) error {
	if len(pairs) == 0 {
		return errors.New(errors.ErrInvalidInput, "no slot pairs given")
	}
	seen := make(map[int]Pair, len(pairs))
	for _, p := range pairs {
		if prev, dup := seen[p.Target.Index()]; dup {
			return errors.Newf(errors.ErrDuplicateSlot, "%s and %s share the target %s; keep each target unique", prev, p, p.Target).
				WithDetail("target", p.Target.String())
		}
		seen[p.Target.Index()] = p
	}
	return nil
}

// maxNamedTargets bounds how many targets DefaultOutputDir lists.
const maxNamedTargets = 4

// DefaultOutputDir names the output next to the mod after its first
// targets: "/mods/mario (c08 c09)".
func DefaultOutputDir(modDir string, pairs []Pair) string {
	var names []string
	for i, p := range pairs {
		if i == maxNamedTargets {
			break
		}
		names = append(names, p.Target.String())
	}
	return modDir + " (" + strings.Join(names, " ") + ")"
}
