// Package slot models costume slot identities.
//
// A slot is canonically written as "c" followed by a zero-padded two digit
// index ("c00", "c08", "c120"). Indices 0-7 are vanilla slots shipped with
// the game; anything above is an added slot that needs overlay bookkeeping.
package slot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/arthur-debert/reslot/pkg/errors"
)

// VanillaCount is the number of slots every fighter ships with.
const VanillaCount = 8

// MaxIndex bounds parsed slot indices.
const MaxIndex = 255

var slotPattern = regexp.MustCompile(`^\+?c?([0-9]{1,3})$`)

// dirPattern matches a directory segment naming a slot.
var dirPattern = regexp.MustCompile(`^c[0-9]{2,3}$`)

// ID identifies a costume slot.
type ID struct {
	index int
}

// New returns the slot with the given index.
func New(index int) (ID, error) {
	if index < 0 || index > MaxIndex {
		return ID{}, errors.Newf(errors.ErrInvalidSlot, "slot index %d out of range 0-%d", index, MaxIndex)
	}
	return ID{index: index}, nil
}

// MustNew is New for constant indices; it panics on an invalid index.
func MustNew(index int) ID {
	id, err := New(index)
	if err != nil {
		panic(err)
	}
	return id
}

// Parse accepts "c08", "+c08", "c8" and "8".
func Parse(s string) (ID, error) {
	m := slotPattern.FindStringSubmatch(strings.TrimSpace(strings.ToLower(s)))
	if m == nil {
		return ID{}, errors.Newf(errors.ErrInvalidSlot, "invalid slot %q", s)
	}
	index, err := strconv.Atoi(m[1])
	if err != nil {
		return ID{}, errors.Wrapf(err, errors.ErrInvalidSlot, "invalid slot %q", s)
	}
	return New(index)
}

// MustParse is Parse for literals.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IsSlotDir reports whether a path segment names a slot directory.
func IsSlotDir(name string) bool {
	return dirPattern.MatchString(name)
}

// Index returns the numeric slot index.
func (s ID) Index() int { return s.index }

// String returns the canonical form, e.g. "c08".
func (s ID) String() string {
	return "c" + s.Digits()
}

// Digits returns the slot without its leading "c", e.g. "08".
func (s ID) Digits() string {
	return fmt.Sprintf("%02d", s.index)
}

// IsVanilla reports whether the slot ships with the game.
func (s ID) IsVanilla() bool {
	return s.index < VanillaCount
}

// IsAdded reports whether the slot needs overlay bookkeeping.
func (s ID) IsAdded() bool {
	return !s.IsVanilla()
}

// Base returns the vanilla slot in the same cosmetic group (index mod 8).
func (s ID) Base() ID {
	return ID{index: s.index % VanillaCount}
}

// MarshalText implements encoding.TextMarshaler.
func (s ID) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ID) UnmarshalText(text []byte) error {
	id, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = id
	return nil
}
