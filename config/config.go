package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the configuration file written by init.
	FileName = ".feat.toml"
	// EnvPrefix prefixes environment overrides, e.g. FEAT_DOCS_ROOT.
	EnvPrefix = "FEAT"
	// FeatureToken, LowerFeatureToken and FeatToken are the placeholders
	// accepted in DocPattern.
	FeatureToken      = "{FEATURE}"
	LowerFeatureToken = "{feature}"
	FeatToken         = "{feat}"
)

// searchOrder lists the files LoadFromDir tries, first match wins.
var searchOrder = []string{FileName, ".feat.yaml", ".feat.yml"}

// Config holds all configuration for the feat tool.
type Config struct {
	FeaturesRoot  string              `mapstructure:"features_root" toml:"features_root" yaml:"features_root"`
	DocsRoot      string              `mapstructure:"docs_root" toml:"docs_root" yaml:"docs_root"`
	DocPattern    string              `mapstructure:"doc_pattern" toml:"doc_pattern" yaml:"doc_pattern"`
	Languages     []string            `mapstructure:"languages" toml:"languages" yaml:"languages"`
	AutoDiscover  bool                `mapstructure:"auto_discover" toml:"auto_discover" yaml:"auto_discover"`
	Exclude       []string            `mapstructure:"exclude" toml:"exclude" yaml:"exclude"`
	LogLevel      string              `mapstructure:"log_level" toml:"log_level" yaml:"log_level"`
	RecordHistory bool                `mapstructure:"record_history" toml:"record_history" yaml:"record_history"`
	Features      map[string][]string `mapstructure:"-" toml:"features" yaml:"features"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `mapstructure:"-" toml:"-" yaml:"-"`
}

// Error reports a configuration file that exists but cannot be used.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid config %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		FeaturesRoot: "src",
		DocsRoot:     "docs/features",
		DocPattern:   "FEATURES_" + FeatureToken + ".md",
		Languages:    []string{"rust"},
		AutoDiscover: true,
		Exclude:      []string{},
		LogLevel:     "info",
		Features:     map[string][]string{},
	}
}

// Load loads configuration from a TOML or YAML file, chosen by extension.
// A missing file yields the defaults; a malformed one is an *Error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fromSources(nil, nil, "")
		}
		return nil, &Error{Path: path, Err: err}
	}

	var raw map[string]any
	var features struct {
		Features map[string][]string `toml:"features" yaml:"features"`
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &Error{Path: path, Err: err}
		}
		if err := yaml.Unmarshal(data, &features); err != nil {
			return nil, &Error{Path: path, Err: fmt.Errorf("features: %w", err)}
		}
	default:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, &Error{Path: path, Err: err}
		}
		if err := toml.Unmarshal(data, &features); err != nil {
			return nil, &Error{Path: path, Err: fmt.Errorf("features: %w", err)}
		}
	}

	cfg, err := fromSources(raw, features.Features, path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	return cfg, nil
}

// LoadFromDir loads .feat.toml, .feat.yaml or .feat.yml from dir, falling
// back to the defaults when none exists.
func LoadFromDir(dir string) (*Config, error) {
	for _, name := range searchOrder {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Load(filepath.Join(dir, FileName))
}

// fromSources layers defaults, file values and FEAT_* environment variables
// through viper. The features table bypasses viper, which folds map keys to
// lower case; feature names keep the case they were written with.
func fromSources(raw map[string]any, features map[string][]string, path string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("features_root", defaults.FeaturesRoot)
	v.SetDefault("docs_root", defaults.DocsRoot)
	v.SetDefault("doc_pattern", defaults.DocPattern)
	v.SetDefault("languages", defaults.Languages)
	v.SetDefault("auto_discover", defaults.AutoDiscover)
	v.SetDefault("exclude", defaults.Exclude)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("record_history", defaults.RecordHistory)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if raw != nil {
		delete(raw, "features")
		if err := v.MergeConfigMap(raw); err != nil {
			return nil, fmt.Errorf("failed to merge config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Features = map[string][]string{}
	for name, paths := range features {
		cfg.Features[name] = paths
	}
	if cfg.Languages == nil {
		cfg.Languages = []string{}
	}
	if cfg.Exclude == nil {
		cfg.Exclude = []string{}
	}
	cfg.Path = path

	return &cfg, nil
}

// Validate returns one message per configuration problem.
func (c *Config) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.FeaturesRoot) == "" {
		errs = append(errs, "features_root cannot be empty")
	}
	if strings.TrimSpace(c.DocsRoot) == "" {
		errs = append(errs, "docs_root cannot be empty")
	}
	if len(c.Languages) == 0 {
		errs = append(errs, "languages list cannot be empty")
	}
	for _, name := range sortedKeys(c.Features) {
		if len(c.Features[name]) == 0 {
			errs = append(errs, fmt.Sprintf("feature %q has no paths", name))
		}
	}
	return errs
}

// HistoryDBPath returns the path to the sync history database.
func HistoryDBPath(root string) string {
	return filepath.Join(root, ".feat", "history.db")
}

// EnsureFeatDir ensures the .feat directory exists.
func EnsureFeatDir(root string) error {
	return os.MkdirAll(filepath.Join(root, ".feat"), 0755)
}

// InitTemplate returns the .feat.toml written by init for a repository
// whose primary language is lang.
func InitTemplate(lang string) string {
	return fmt.Sprintf(`# feat configuration

features_root = "src"
docs_root = "docs/features"
doc_pattern = "FEATURES_{FEATURE}.md"
languages = [%q]
auto_discover = true

exclude = [
    "**/tests/**",
    "**/target/**",
    "**/__pycache__/**",
]

# Explicit feature mappings (optional, overrides auto-discovery)
[features]
# example = ["src/example"]
`, lang)
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
