package dirinfo

import (
	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/logging"
	"github.com/arthur-debert/reslot/pkg/types"
	"github.com/tidwall/gjson"
)

// Load reads the dir-info resource: a JSON document with a nested "dirs"
// tree (objects with "directories" and "files" keys) and a flat
// "file_array" that the "files" indices point into.
//
// Both a missing file and a malformed document are fatal for a run.
func Load(fs types.FS, path string) (*Tree, error) {
	logger := logging.GetLogger("dirinfo.loader")

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirInfoLoad, "failed to read dir info %s", path).
			WithDetail("path", path)
	}

	tree, err := Parse(data)
	if err != nil {
		if rerr, ok := err.(*errors.ReslotError); ok {
			rerr.WithDetail("path", path)
		}
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Int("directories", tree.NodeCount()).
		Int("files", tree.FileCount()).
		Msg("Loaded dir info")

	return tree, nil
}

// Parse builds a tree from the dir-info JSON document.
func Parse(data []byte) (*Tree, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New(errors.ErrDirInfoParse, "dir info is not valid JSON")
	}

	doc := gjson.ParseBytes(data)
	dirs := doc.Get("dirs")
	fileArray := doc.Get("file_array")
	if !dirs.IsObject() {
		return nil, errors.New(errors.ErrDirInfoParse, `dir info has no "dirs" object`)
	}
	if !fileArray.IsArray() {
		return nil, errors.New(errors.ErrDirInfoParse, `dir info has no "file_array" array`)
	}

	var files []string
	var parseErr error
	fileArray.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			parseErr = errors.Newf(errors.ErrDirInfoParse, "file_array entry %d is not a string", key.Int())
			return false
		}
		files = append(files, value.Str)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	b := &parser{files: files}
	if _, err := b.addNode("", dirs); err != nil {
		return nil, err
	}

	return newTree(b.nodes, files), nil
}

type parser struct {
	nodes []Node
	files []string
}

func (p *parser) addNode(name string, obj gjson.Result) (NodeID, error) {
	id := NodeID(len(p.nodes))
	p.nodes = append(p.nodes, Node{Name: name, Children: map[string]NodeID{}})

	var fileIndices []int
	var err error
	obj.Get("files").ForEach(func(_, value gjson.Result) bool {
		if value.Type != gjson.Number {
			err = errors.Newf(errors.ErrDirInfoParse, "directory %q has a non-numeric file index", name)
			return false
		}
		index := int(value.Int())
		if index < 0 || index >= len(p.files) {
			err = errors.Newf(errors.ErrDirInfoParse, "directory %q references file index %d outside file_array", name, index)
			return false
		}
		fileIndices = append(fileIndices, index)
		return true
	})
	if err != nil {
		return id, err
	}

	children := map[string]NodeID{}
	obj.Get("directories").ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			err = errors.Newf(errors.ErrDirInfoParse, "directory %q is not an object", key.Str)
			return false
		}
		var child NodeID
		child, err = p.addNode(key.Str, value)
		if err != nil {
			return false
		}
		children[key.Str] = child
		return true
	})
	if err != nil {
		return id, err
	}

	// p.nodes may have grown while adding children.
	p.nodes[id].Files = fileIndices
	p.nodes[id].Children = children
	return id, nil
}
