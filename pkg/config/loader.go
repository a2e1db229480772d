package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/arthur-debert/reslot/pkg/logging"
	"github.com/arthur-debert/reslot/pkg/share"
	"github.com/arthur-debert/reslot/pkg/slot"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides. Nested keys are separated by
// a double underscore: RESLOT_OUTPUT__CONFIG_NAME sets output.config_name.
const EnvPrefix = "RESLOT_"

// ModConfigNames are the mod-local config files, first match wins.
var ModConfigNames = []string{".reslot.toml", ".reslot.yaml", ".reslot.yml"}

// UserConfigNames are the user config files, first match wins.
var UserConfigNames = []string{"config.toml", "config.yaml", "config.yml"}

// LoadOptions selects the layers to load.
type LoadOptions struct {
	// UserConfigDir holds the user config file. Empty means
	// $XDG_CONFIG_HOME/reslot.
	UserConfigDir string
	// ModDir is searched for a mod-local config. Empty skips that layer.
	ModDir string
	// EnvFile is a dotenv file read before the environment. Empty means
	// .env in the working directory, if any.
	EnvFile string
	// Environ replaces os.Environ, mostly for tests.
	Environ []string
}

// DefaultUserConfigDir returns $XDG_CONFIG_HOME/reslot.
func DefaultUserConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "reslot")
}

// Default returns the embedded defaults alone.
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic("embedded defaults do not parse: " + err.Error())
	}
	cfg, err := decode(k)
	if err != nil {
		panic("embedded defaults do not decode: " + err.Error())
	}
	return cfg
}

// Load applies every layer and validates the result.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")
	var sources []string

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config
	userDir := opts.UserConfigDir
	if userDir == "" {
		userDir = DefaultUserConfigDir()
	}
	if path, ok := firstExisting(userDir, UserConfigNames); ok {
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
		sources = append(sources, path)
	}

	// 3. Mod-local config
	if opts.ModDir != "" {
		if path, ok := firstExisting(opts.ModDir, ModConfigNames); ok {
			if err := loadFile(k, path); err != nil {
				return nil, err
			}
			sources = append(sources, path)
		}
	}

	// 4. .env, then the environment
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		values, err := godotenv.Read(envFile)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to read %s", envFile).
				WithDetail("path", envFile)
		}
		if err := k.Load(confmap.Provider(envValues(values), "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply dotenv values")
		}
		sources = append(sources, envFile)
	}

	if opts.Environ != nil {
		if err := k.Load(confmap.Provider(envValues(environMap(opts.Environ)), "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply environment")
		}
	} else if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	cfg, err := decode(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().Strs("sources", sources).Str("policy", cfg.Share.Policy).Msg("Configuration loaded")
	return cfg, nil
}

func decode(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// Validate checks values the engine would otherwise reject mid-run.
func (c *Config) Validate() error {
	if _, err := share.ByName(c.Share.Policy); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "invalid share.policy %q", c.Share.Policy).
			WithDetail("key", "share.policy")
	}
	for fighter, table := range c.Share.Overrides {
		for from, to := range table {
			for _, name := range []string{from, to} {
				id, err := slot.Parse(name)
				if err != nil || !id.IsVanilla() {
					return errors.Newf(errors.ErrConfigParse, "share.overrides.%s: %q is not a vanilla slot", fighter, name).
						WithDetail("key", "share.overrides."+fighter)
				}
			}
		}
	}
	if c.Output.ConfigName == "" || strings.ContainsAny(c.Output.ConfigName, `/\`) {
		return errors.Newf(errors.ErrConfigParse, "invalid output.config_name %q", c.Output.ConfigName).
			WithDetail("key", "output.config_name")
	}
	return nil
}

// SlotOverrides converts the override table for the engine.
func (c *Config) SlotOverrides() slot.Overrides {
	if len(c.Share.Overrides) == 0 {
		return nil
	}
	out := make(slot.Overrides, len(c.Share.Overrides))
	for fighter, table := range c.Share.Overrides {
		out[fighter] = table
	}
	return out
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser = toml.Parser()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}

func firstExisting(dir string, names []string) (string, bool) {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// envKey maps RESLOT_SHARE__POLICY to share.policy.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// envValues keeps the prefixed variables and nests them by key.
func envValues(vars map[string]string) map[string]interface{} {
	out := make(map[string]interface{})
	for name, value := range vars {
		if !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		out[envKey(name)] = value
	}
	return out
}

func environMap(environ []string) map[string]string {
	out := make(map[string]string, len(environ))
	for _, kv := range environ {
		if name, value, ok := strings.Cut(kv, "="); ok {
			out[name] = value
		}
	}
	return out
}
