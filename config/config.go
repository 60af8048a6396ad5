package config

//go:generate go run ../tools/schema-generator

// SessionsConfig defines where session transcripts are looked up.
type SessionsConfig struct {
	// ProjectsDir overrides the session storage root.
	// "" (default): ~/.claude/projects
	ProjectsDir string `yaml:"projects_dir,omitempty"`
}

// ReportConfig defines how suggestions are computed and printed.
type ReportConfig struct {
	// Format selects the output document format.
	// "json" (default), "yaml" or "table".
	Format string `yaml:"format,omitempty" jsonschema:"enum=json,enum=yaml,enum=table"`

	// ExcludeAllowed drops suggestions already granted by an allow rule in
	// the settings files.
	ExcludeAllowed bool `yaml:"exclude_allowed,omitempty"`

	// SplitCompound generalizes each command of a compound shell line
	// (pipelines, && chains, ; lists) separately.
	SplitCompound bool `yaml:"split_compound,omitempty"`

	// SettingsFiles lists the settings files consulted by ExcludeAllowed.
	// Empty (default): ~/.claude/settings.json plus the project's
	// .claude/settings.json and .claude/settings.local.json.
	SettingsFiles []string `yaml:"settings_files,omitempty"`
}

// Config is the top-level configuration structure for agperms.
type Config struct {
	Sessions SessionsConfig `yaml:"sessions,omitempty"`
	Report   ReportConfig   `yaml:"report,omitempty"`
}
