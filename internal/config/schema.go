// Package config provides configuration management for ccver.
package config

// Config is the root configuration for ccver. It only ever supplies
// defaults for CLI flags: an explicit flag always wins over a config
// value.
type Config struct {
	// Versioning configures the version-map algorithm.
	Versioning VersioningConfig `mapstructure:"versioning" json:"versioning"`
	// Output configures logging and CLI presentation.
	Output OutputConfig `mapstructure:"output" json:"output"`
}

// VersioningConfig configures tag naming and the promotion chain the
// version-map algorithm bumps branches against.
type VersioningConfig struct {
	// TagPrefix is the prefix existing version tags and newly created tags
	// carry (default: "v").
	TagPrefix string `mapstructure:"tag_prefix" json:"tag_prefix"`
	// FormatTemplate is the Formatter template used to render a version
	// for display (default: "v{major}.{minor}.{patch}-{prerelease}+{build}").
	FormatTemplate string `mapstructure:"format" json:"format"`
	// DefaultBranch is the branch identity assigned to a root commit with
	// no branch ref (default: "main").
	DefaultBranch string `mapstructure:"default_branch" json:"default_branch"`
	// PromotionChain orders the branch pipeline from the most
	// pre-release-heavy branch to the release branch
	// (default: ["develop", "staging", "main"]).
	PromotionChain []string `mapstructure:"promotion_chain" json:"promotion_chain"`
}

// OutputConfig configures logging and CLI presentation.
type OutputConfig struct {
	// Verbose promotes the logger to debug level.
	Verbose bool `mapstructure:"verbose" json:"verbose"`
	// Color enables styled terminal output.
	Color bool `mapstructure:"color" json:"color"`
	// LogLevel is the log level (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level" json:"log_level"`
	// JSON renders command output as a JSON object instead of plain text.
	JSON bool `mapstructure:"json" json:"json"`
}

// DefaultConfig returns ccver's built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Versioning: VersioningConfig{
			TagPrefix:      "v",
			FormatTemplate: "v{major}.{minor}.{patch}-{prerelease}+{build}",
			DefaultBranch:  "main",
			PromotionChain: []string{"develop", "staging", "main"},
		},
		Output: OutputConfig{
			Color:    true,
			LogLevel: "info",
		},
	}
}

// ConfigFileNames to search for, in order.
var ConfigFileNames = []string{".ccver", "ccver"}

// ConfigFileExtensions supported by Viper.
var ConfigFileExtensions = []string{"yaml", "yml", "json", "toml"}
