package config

// Config is the effective reslot configuration.
type Config struct {
	Resources Resources `koanf:"resources" toml:"resources" yaml:"resources"`
	Share     Share     `koanf:"share" toml:"share" yaml:"share"`
	Fighters  Fighters  `koanf:"fighters" toml:"fighters" yaml:"fighters"`
	Scan      Scan      `koanf:"scan" toml:"scan" yaml:"scan"`
	Output    Output    `koanf:"output" toml:"output" yaml:"output"`

	// Sources lists the files that contributed, in load order.
	Sources []string `koanf:"-" toml:"-" yaml:"-"`
}

// Resources locates the static game resources.
type Resources struct {
	DirInfo    string `koanf:"dir_info" toml:"dir_info" yaml:"dir_info"`
	KnownFiles string `koanf:"known_files" toml:"known_files" yaml:"known_files"`
}

// Share holds share slot settings.
type Share struct {
	// Policy names the share map routing, see share.Names.
	Policy string `koanf:"policy" toml:"policy" yaml:"policy"`
	// Overrides remaps the default share slot per fighter.
	Overrides map[string]map[string]string `koanf:"overrides" toml:"overrides,omitempty" yaml:"overrides,omitempty"`
}

// Fighters holds per fighter knowledge the layout does not carry.
type Fighters struct {
	Aliases      map[string][]string `koanf:"aliases" toml:"aliases,omitempty" yaml:"aliases,omitempty"`
	NoAddedSlots []string            `koanf:"no_added_slots" toml:"no_added_slots" yaml:"no_added_slots"`
}

// Scan configures the mod file scan.
type Scan struct {
	Ignore []string `koanf:"ignore" toml:"ignore" yaml:"ignore"`
}

// Output configures the written artifact.
type Output struct {
	ConfigName string `koanf:"config_name" toml:"config_name" yaml:"config_name"`
	Backup     bool   `koanf:"backup" toml:"backup" yaml:"backup"`
}
