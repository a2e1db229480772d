// Package overlay models the config.json artifact the game's mod loader
// reads to add slots and redirect missing files.
//
// The document has five sections that must appear in a fixed order:
//
//	new-dir-infos       directories the loader must create
//	new-dir-infos-base  new directory -> vanilla directory it inherits from
//	share-to-vanilla    vanilla file -> derived paths that reuse it
//	new-dir-files       directory -> custom files listed explicitly
//	share-to-added      like share-to-vanilla, resolved after added slots
//
// Config keeps every section in insertion order and encodes the sections in
// the canonical order regardless of how it was populated.
package overlay

import (
	"bytes"
	"encoding/json"
)

// Section keys in canonical order.
const (
	KeyNewDirInfos     = "new-dir-infos"
	KeyNewDirInfosBase = "new-dir-infos-base"
	KeyShareToVanilla  = "share-to-vanilla"
	KeyNewDirFiles     = "new-dir-files"
	KeyShareToAdded    = "share-to-added"
)

// Keys lists the section keys in the order they are written.
var Keys = []string{KeyNewDirInfos, KeyNewDirInfosBase, KeyShareToVanilla, KeyNewDirFiles, KeyShareToAdded}

// Section selects one of the two share maps.
type Section int

const (
	ShareToVanilla Section = iota
	ShareToAdded
)

func (s Section) String() string {
	if s == ShareToAdded {
		return KeyShareToAdded
	}
	return KeyShareToVanilla
}

// Config is the accumulated overlay configuration.
type Config struct {
	newDirInfos     []string
	newDirInfoSet   map[string]struct{}
	NewDirInfosBase *StringMap
	ShareToVanilla  *ListMap
	NewDirFiles     *ListMap
	ShareToAdded    *ListMap
}

// New returns an empty config.
func New() *Config {
	return &Config{
		newDirInfoSet:   make(map[string]struct{}),
		NewDirInfosBase: NewStringMap(),
		ShareToVanilla:  NewListMap(),
		NewDirFiles:     NewListMap(),
		ShareToAdded:    NewListMap(),
	}
}

// NewDirInfos returns the new directories in insertion order.
func (c *Config) NewDirInfos() []string {
	return append([]string{}, c.newDirInfos...)
}

// AddNewDirInfo records a directory the loader must create. Duplicates are
// dropped.
func (c *Config) AddNewDirInfo(dir string) bool {
	if _, ok := c.newDirInfoSet[dir]; ok {
		return false
	}
	c.newDirInfoSet[dir] = struct{}{}
	c.newDirInfos = append(c.newDirInfos, dir)
	return true
}

// SetBase records that newDir inherits unlisted files from baseDir.
func (c *Config) SetBase(newDir, baseDir string) {
	c.NewDirInfosBase.Set(newDir, baseDir)
}

// AddDirFile lists file explicitly under dir.
func (c *Config) AddDirFile(dir, file string) bool {
	return c.NewDirFiles.Append(dir, file)
}

// Share redirects derived to source in the given section.
func (c *Config) Share(section Section, source, derived string) bool {
	return c.shareMap(section).Append(source, derived)
}

// Shared reports whether derived is already redirected to source.
func (c *Config) Shared(section Section, source, derived string) bool {
	return c.shareMap(section).Contains(source, derived)
}

func (c *Config) shareMap(section Section) *ListMap {
	if section == ShareToAdded {
		return c.ShareToAdded
	}
	return c.ShareToVanilla
}

// IsEmpty reports whether every section is empty.
func (c *Config) IsEmpty() bool {
	return len(c.newDirInfos) == 0 &&
		c.NewDirInfosBase.Len() == 0 &&
		c.ShareToVanilla.Len() == 0 &&
		c.NewDirFiles.Len() == 0 &&
		c.ShareToAdded.Len() == 0
}

// Merge extends c with other. Lists are extended without duplicates and
// list-valued maps are extended per key; for new-dir-infos-base the value
// from other wins.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	for _, dir := range other.newDirInfos {
		c.AddNewDirInfo(dir)
	}
	for _, key := range other.NewDirInfosBase.Keys() {
		value, _ := other.NewDirInfosBase.Get(key)
		c.SetBase(key, value)
	}
	mergeListMap(c.ShareToVanilla, other.ShareToVanilla)
	mergeListMap(c.NewDirFiles, other.NewDirFiles)
	mergeListMap(c.ShareToAdded, other.ShareToAdded)
}

func mergeListMap(dst, src *ListMap) {
	for _, key := range src.Keys() {
		dst.Ensure(key)
		for _, value := range src.Get(key) {
			dst.Append(key, value)
		}
	}
}

// MarshalJSON encodes the sections in canonical order.
func (c *Config) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeKey(&buf, KeyNewDirInfos)
	writeList(&buf, c.newDirInfos)

	buf.WriteByte(',')
	writeKey(&buf, KeyNewDirInfosBase)
	buf.WriteByte('{')
	for i, key := range c.NewDirInfosBase.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		value, _ := c.NewDirInfosBase.Get(key)
		writeKey(&buf, key)
		writeString(&buf, value)
	}
	buf.WriteByte('}')

	buf.WriteByte(',')
	writeKey(&buf, KeyShareToVanilla)
	writeListMap(&buf, c.ShareToVanilla)

	buf.WriteByte(',')
	writeKey(&buf, KeyNewDirFiles)
	writeListMap(&buf, c.NewDirFiles)

	buf.WriteByte(',')
	writeKey(&buf, KeyShareToAdded)
	writeListMap(&buf, c.ShareToAdded)

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Encode returns the document as written to disk: four-space indentation
// and a trailing newline.
func (c *Config) Encode() ([]byte, error) {
	compact, err := c.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "    "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeListMap(buf *bytes.Buffer, m *ListMap) {
	buf.WriteByte('{')
	for i, key := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeKey(buf, key)
		writeList(buf, m.Get(key))
	}
	buf.WriteByte('}')
}

func writeList(buf *bytes.Buffer, values []string) {
	buf.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeString(buf, v)
	}
	buf.WriteByte(']')
}

func writeKey(buf *bytes.Buffer, key string) {
	writeString(buf, key)
	buf.WriteByte(':')
}

// writeString encodes s as a JSON string without HTML escaping.
func writeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	// Encode terminates values with a newline.
	buf.Truncate(buf.Len() - 1)
}
