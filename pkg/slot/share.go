package slot

import (
	"github.com/arthur-debert/reslot/pkg/errors"
)

// Overrides remaps the default share slot per fighter. The inner map is keyed
// by the default share slot ("c00") and holds the slot to share from instead.
type Overrides map[string]map[string]string

// ShareSlot picks the vanilla slot an added target inherits missing files from.
//
// An explicit share slot wins. Otherwise a vanilla source is its own share
// slot, and an added source falls back to the target's cosmetic group
// (target mod 8) after applying the fighter's override table.
func ShareSlot(fighter string, source, target ID, explicit *ID, overrides Overrides) (ID, error) {
	if explicit != nil {
		if !explicit.IsVanilla() {
			return ID{}, errors.Newf(errors.ErrInvalidSlot, "share slot %s is not a vanilla slot", explicit).
				WithDetail("fighter", fighter)
		}
		return *explicit, nil
	}

	if source.IsVanilla() {
		return source, nil
	}

	share := target.Base()
	if table, ok := overrides[fighter]; ok {
		if remapped, ok := table[share.String()]; ok {
			id, err := Parse(remapped)
			if err != nil {
				return ID{}, errors.Wrapf(err, errors.ErrInvalidSlot, "invalid share override for %s", fighter)
			}
			if !id.IsVanilla() {
				return ID{}, errors.Newf(errors.ErrInvalidSlot, "share override %s for %s is not a vanilla slot", id, fighter)
			}
			share = id
		}
	}
	return share, nil
}
