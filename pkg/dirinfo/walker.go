package dirinfo

import (
	"strings"

	"github.com/arthur-debert/reslot/pkg/slot"
)

// SlotDir is one place in the layout where a slot subtree occurs.
type SlotDir struct {
	// Parent is the directory containing the slot directory, e.g.
	// "fighter/mario/model/body".
	Parent string
	// Path is Parent joined with the slot name.
	Path string
	// Node is the slot directory itself.
	Node NodeID
}

// PathFor returns the sibling of this slot directory named for another slot.
func (d SlotDir) PathFor(s slot.ID) string {
	return joinPath(d.Parent, s.String())
}

// FindSlotDirs searches every directory below root, breadth first, for
// children named slotName. Slot subtrees appear at different depths per
// asset category (model/body/c00, motion/body/c00, camera/c00, ...), so the
// whole fighter namespace is searched. Slot directories are not descended
// into. Results are ordered breadth first with siblings in name order.
//
// A root that is missing from the tree yields an ErrNotFound error.
func (t *Tree) FindSlotDirs(root string, slotName string) ([]SlotDir, error) {
	rootID, err := t.Lookup(root)
	if err != nil {
		return nil, err
	}

	type entry struct {
		id   NodeID
		path string
	}

	var found []SlotDir
	queue := []entry{{id: rootID, path: trimPath(root)}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node := &t.nodes[current.id]
		if child, ok := node.Children[slotName]; ok {
			found = append(found, SlotDir{
				Parent: current.path,
				Path:   joinPath(current.path, slotName),
				Node:   child,
			})
		}

		for _, name := range node.childNames {
			if slot.IsSlotDir(name) {
				continue
			}
			queue = append(queue, entry{id: node.Children[name], path: joinPath(current.path, name)})
		}
	}

	return found, nil
}

func trimPath(p string) string {
	return strings.Trim(p, "/")
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
