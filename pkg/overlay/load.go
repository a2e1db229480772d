package overlay

import (
	stderrors "errors"
	"io/fs"

	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/logging"
	"github.com/arthur-debert/reslot/pkg/types"
	"github.com/tidwall/gjson"
)

// Load reads an existing config for additive merging. A missing file yields
// an empty config. A file that cannot be parsed is logged and also yields
// an empty config, so a broken artifact never blocks regenerating it.
func Load(fsys types.FS, path string) (*Config, error) {
	logger := logging.GetLogger("overlay")

	data, err := fsys.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			logger.Debug().Str("path", path).Msg("No existing config")
			return New(), nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read config %s", path).
			WithDetail("path", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Existing config is malformed, starting fresh")
		return New(), nil
	}

	logger.Debug().
		Str("path", path).
		Int("newDirInfos", len(cfg.newDirInfos)).
		Msg("Loaded existing config")
	return cfg, nil
}

// Parse decodes a config document, keeping every section's entries in
// document order. Unknown top-level keys are ignored.
func Parse(data []byte) (*Config, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New(errors.ErrConfigParse, "config is not valid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, errors.New(errors.ErrConfigParse, "config is not a JSON object")
	}

	cfg := New()

	if section := doc.Get(KeyNewDirInfos); section.Exists() {
		if !section.IsArray() {
			return nil, sectionError(KeyNewDirInfos, "an array")
		}
		for _, dir := range section.Array() {
			if dir.Type != gjson.String {
				return nil, sectionError(KeyNewDirInfos, "an array of strings")
			}
			cfg.AddNewDirInfo(dir.Str)
		}
	}

	if section := doc.Get(KeyNewDirInfosBase); section.Exists() {
		if !section.IsObject() {
			return nil, sectionError(KeyNewDirInfosBase, "an object")
		}
		var err error
		section.ForEach(func(key, value gjson.Result) bool {
			if value.Type != gjson.String {
				err = sectionError(KeyNewDirInfosBase, "an object of strings")
				return false
			}
			cfg.SetBase(key.Str, value.Str)
			return true
		})
		if err != nil {
			return nil, err
		}
	}

	for _, s := range []struct {
		key string
		dst *ListMap
	}{
		{KeyShareToVanilla, cfg.ShareToVanilla},
		{KeyNewDirFiles, cfg.NewDirFiles},
		{KeyShareToAdded, cfg.ShareToAdded},
	} {
		if err := parseListMap(doc.Get(s.key), s.key, s.dst); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func parseListMap(section gjson.Result, key string, dst *ListMap) error {
	if !section.Exists() {
		return nil
	}
	if !section.IsObject() {
		return sectionError(key, "an object")
	}

	var err error
	section.ForEach(func(k, values gjson.Result) bool {
		if !values.IsArray() {
			err = sectionError(key, "an object of arrays")
			return false
		}
		dst.Ensure(k.Str)
		for _, v := range values.Array() {
			if v.Type != gjson.String {
				err = sectionError(key, "an object of string arrays")
				return false
			}
			dst.Append(k.Str, v.Str)
		}
		return true
	})
	return err
}

func sectionError(key, want string) error {
	return errors.Newf(errors.ErrConfigParse, "config section %q must be %s", key, want).
		WithDetail("section", key)
}
