package testutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/reslot/pkg/dirinfo"
	"github.com/arthur-debert/reslot/pkg/types"
	"github.com/stretchr/testify/require"
)

// Default resource locations used by fixtures.
const (
	ResourceDir   = "/resources"
	DirInfoPath   = ResourceDir + "/dir_info_with_files_trimmed.json"
	KnownFilePath = ResourceDir + "/Hashes_all.txt"
)

// ModBuilder lays out a mod directory on a filesystem.
type ModBuilder struct {
	t    *testing.T
	fs   types.FS
	Root string
}

// NewMod creates root and returns a builder for it.
func NewMod(t *testing.T, fs types.FS, root string) *ModBuilder {
	t.Helper()
	require.NoError(t, fs.MkdirAll(root, 0755))
	return &ModBuilder{t: t, fs: fs, Root: root}
}

// File writes a mod-relative, slash-separated file. Content defaults to the
// path itself so copies can be traced back to their source.
func (m *ModBuilder) File(rel string, content ...string) *ModBuilder {
	m.t.Helper()
	data := rel
	if len(content) > 0 {
		data = strings.Join(content, "")
	}
	full := filepath.Join(m.Root, filepath.FromSlash(rel))
	require.NoError(m.t, m.fs.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(m.t, m.fs.WriteFile(full, []byte(data), 0644))
	return m
}

// Files writes each rel with default content.
func (m *ModBuilder) Files(rels ...string) *ModBuilder {
	m.t.Helper()
	for _, rel := range rels {
		m.File(rel)
	}
	return m
}

// Dir creates an empty mod-relative directory.
func (m *ModBuilder) Dir(rel string) *ModBuilder {
	m.t.Helper()
	require.NoError(m.t, m.fs.MkdirAll(filepath.Join(m.Root, filepath.FromSlash(rel)), 0755))
	return m
}

// Path returns the absolute path of a mod-relative file.
func (m *ModBuilder) Path(rel string) string {
	return filepath.Join(m.Root, filepath.FromSlash(rel))
}

// WriteResources writes tree and the known paths to DirInfoPath and
// KnownFilePath.
func WriteResources(t *testing.T, fs types.FS, tree *dirinfo.Tree, known ...string) {
	t.Helper()
	data, err := tree.MarshalJSON()
	require.NoError(t, err)
	require.NoError(t, fs.MkdirAll(ResourceDir, 0755))
	require.NoError(t, fs.WriteFile(DirInfoPath, data, 0644))
	require.NoError(t, fs.WriteFile(KnownFilePath, []byte(strings.Join(known, "\n")+"\n"), 0644))
}

// MarioVanillaFiles are the vanilla files of MarioTree.
var MarioVanillaFiles = []string{
	"fighter/mario/model/body/c00/model.numdlb",
	"fighter/mario/model/body/c00/model.numatb",
	"fighter/mario/model/body/c00/def_mario_001_col.nutexb",
	"fighter/mario/model/body/c01/model.numdlb",
	"fighter/mario/model/body/c04/model.numdlb",
	"fighter/mario/motion/body/c00/motion_list.bin",
	"fighter/mario/camera/c00/j02win1.nuanmb",
	"fighter/mario/model/body/c00/lod/model.numshb",
	"sound/bank/fighter/se_mario_c00.nus3bank",
	"effect/fighter/mario/ef_mario.eff",
}

// MarioTree returns a small but realistic layout for mario: slot c00 under
// model/body (with a nested lod directory and an opaque entry), motion/body
// and camera, plus c01 and c04 model slots.
func MarioTree() *dirinfo.Tree {
	b := dirinfo.NewBuilder()
	for _, f := range MarioVanillaFiles {
		if strings.HasPrefix(f, "fighter/") {
			b.AddFile(f)
		}
	}
	b.AddOpaque("fighter/mario/model/body/c00", "1b2c3d4e5f")
	return b.Build()
}
