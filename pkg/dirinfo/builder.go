package dirinfo

import (
	"encoding/json"
	"path"
	"strings"
)

// Builder assembles a tree in memory. It backs fixtures and tools that
// synthesize dir-info resources rather than loading the shipped one.
type Builder struct {
	nodes []Node
	files []string
}

// NewBuilder returns a builder holding only the root directory.
func NewBuilder() *Builder {
	return &Builder{nodes: []Node{{Name: "", Children: map[string]NodeID{}}}}
}

// AddDir creates every directory along dirPath and returns the last one.
func (b *Builder) AddDir(dirPath string) NodeID {
	current := RootID
	dirPath = strings.Trim(dirPath, "/")
	if dirPath == "" {
		return current
	}
	for _, segment := range strings.Split(dirPath, "/") {
		child, ok := b.nodes[current].Children[segment]
		if !ok {
			child = NodeID(len(b.nodes))
			b.nodes = append(b.nodes, Node{Name: segment, Children: map[string]NodeID{}})
			b.nodes[current].Children[segment] = child
		}
		current = child
	}
	return current
}

// AddFile appends filePath to the file array and lists it under its
// parent directory.
func (b *Builder) AddFile(filePath string) int {
	return b.addEntry(path.Dir(filePath), filePath)
}

// AddOpaque lists an unresolved hash entry under dirPath.
func (b *Builder) AddOpaque(dirPath, hash string) int {
	if !IsOpaque(hash) {
		hash = OpaquePrefix + hash
	}
	return b.addEntry(dirPath, hash)
}

func (b *Builder) addEntry(dirPath, entry string) int {
	dir := b.AddDir(dirPath)
	index := len(b.files)
	b.files = append(b.files, entry)
	b.nodes[dir].Files = append(b.nodes[dir].Files, index)
	return index
}

// Build freezes the builder into a tree. The builder must not be reused.
func (b *Builder) Build() *Tree {
	return newTree(b.nodes, b.files)
}

type jsonNode struct {
	Directories map[string]*jsonNode `json:"directories"`
	Files       []int                `json:"files"`
}

type jsonDocument struct {
	Dirs      *jsonNode `json:"dirs"`
	FileArray []string  `json:"file_array"`
}

// MarshalJSON encodes the tree in the dir-info resource format.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var encode func(id NodeID) *jsonNode
	encode = func(id NodeID) *jsonNode {
		node := &t.nodes[id]
		out := &jsonNode{
			Directories: make(map[string]*jsonNode, len(node.Children)),
			Files:       append([]int{}, node.Files...),
		}
		for name, child := range node.Children {
			out.Directories[name] = encode(child)
		}
		return out
	}

	return json.Marshal(jsonDocument{
		Dirs:      encode(RootID),
		FileArray: append([]string{}, t.files...),
	})
}
