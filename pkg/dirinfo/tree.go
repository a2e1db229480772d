// Package dirinfo holds the game's canonical directory layout.
//
// The layout is loaded once from the dir-info resource into an arena of
// nodes addressed by NodeID. Each node knows its children by name and the
// indices of its files in the global file array. Paths are resolved by
// descending one segment at a time; resolved paths are memoized.
package dirinfo

import (
	"sort"
	"strings"

	"github.com/arthur-debert/reslot/pkg/errors"
	lru "github.com/hashicorp/golang-lru/v2"
)

// NodeID addresses a node in the tree arena.
type NodeID int

// RootID is the root of every tree.
const RootID NodeID = 0

// OpaquePrefix marks file array entries whose real path is unknown.
const OpaquePrefix = "0x"

const lookupCacheSize = 512

// Node is one directory of the layout.
type Node struct {
	Name     string
	Children map[string]NodeID
	Files    []int

	childNames []string
}

// ChildNames returns the node's children in sorted order.
func (n *Node) ChildNames() []string {
	return n.childNames
}

// Tree is the immutable directory layout plus its file array.
type Tree struct {
	nodes []Node
	files []string
	cache *lru.Cache[string, NodeID]
}

func newTree(nodes []Node, files []string) *Tree {
	for i := range nodes {
		names := make([]string, 0, len(nodes[i].Children))
		for name := range nodes[i].Children {
			names = append(names, name)
		}
		sort.Strings(names)
		nodes[i].childNames = names
	}

	// Only fails for a non-positive size.
	cache, _ := lru.New[string, NodeID](lookupCacheSize)

	return &Tree{nodes: nodes, files: files, cache: cache}
}

// Node returns the node for id. The returned node must not be modified.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// NodeCount returns the number of directories in the tree.
func (t *Tree) NodeCount() int {
	return len(t.nodes)
}

// FileCount returns the length of the file array.
func (t *Tree) FileCount() int {
	return len(t.files)
}

// FilePath resolves a file index. It returns false for out-of-range indices
// and for opaque entries, which callers must skip.
func (t *Tree) FilePath(index int) (string, bool) {
	if index < 0 || index >= len(t.files) {
		return "", false
	}
	path := t.files[index]
	if IsOpaque(path) {
		return "", false
	}
	return path, true
}

// IsOpaque reports whether a file array entry is an unresolved hash.
func IsOpaque(path string) bool {
	return strings.HasPrefix(path, OpaquePrefix)
}

// Lookup resolves a slash-delimited directory path to a node. A missing
// segment yields an ErrNotFound error, which callers treat as an expected,
// skippable condition.
func (t *Tree) Lookup(dirPath string) (NodeID, error) {
	dirPath = strings.Trim(dirPath, "/")
	if dirPath == "" {
		return RootID, nil
	}
	if strings.Contains(dirPath, ".") {
		return RootID, errors.Newf(errors.ErrInvalidInput, "directory path %q must not contain dots", dirPath)
	}

	if id, ok := t.cache.Get(dirPath); ok {
		return id, nil
	}

	current := RootID
	for _, segment := range strings.Split(dirPath, "/") {
		child, ok := t.nodes[current].Children[segment]
		if !ok {
			return RootID, errors.Newf(errors.ErrNotFound, "directory %q not in dir info", dirPath).
				WithDetail("segment", segment)
		}
		current = child
	}

	t.cache.Add(dirPath, current)
	return current, nil
}
