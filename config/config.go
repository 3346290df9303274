// Package config loads and saves the featurekit tool configuration stored
// at featurekit_cfg/config.yaml inside the workspace.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lexcodex/featurekit/registry"
)

const (
	configDirName = "featurekit_cfg"

	// SchemaVersion is written into new config files.
	SchemaVersion = "1.0.0"

	// DefaultRegistryName names the registry when the config does not.
	DefaultRegistryName = "Web Code Editor"

	// DefaultSequenceLength is how many Fibonacci terms the demo prints.
	DefaultSequenceLength = 10

	EnvLogLevel  = "FEATUREKIT_LOG_LEVEL"
	EnvLogFormat = "FEATUREKIT_LOG_FORMAT"
)

// ConfigDir returns the workspace-local configuration directory.
func ConfigDir(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, configDirName)
}

// DefaultPath returns featurekit_cfg/config.yaml within the workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(ConfigDir(workspace), "config.yaml")
}

// Config matches featurekit_cfg/config.yaml.
type Config struct {
	Version  string         `yaml:"version"`
	Registry RegistryConfig `yaml:"registry"`
	Sequence SequenceConfig `yaml:"sequence"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// RegistryConfig describes the feature registry the CLI builds.
type RegistryConfig struct {
	Name          string   `yaml:"name"`
	Version       string   `yaml:"version"`
	SnapshotPath  string   `yaml:"snapshot_path"`
	ExtraFeatures []string `yaml:"extra_features"`
}

// SequenceConfig controls the demo sequence.
type SequenceConfig struct {
	Length int `yaml:"length"`
}

// AnalysisConfig sets the demo analysis target and the walk filter.
type AnalysisConfig struct {
	Target  string `yaml:"target"`
	Pattern string `yaml:"pattern"`
}

// LoggingConfig describes log output.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	EventsFile string `yaml:"events_file"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := newConfig()
	cfg.applyDefaults()
	return cfg
}

// newConfig presets fields whose zero value is a valid setting, so that only
// an absent key falls back to the default.
func newConfig() *Config {
	return &Config{Sequence: SequenceConfig{Length: DefaultSequenceLength}}
}

func (c *Config) applyDefaults() {
	if c.Version == "" {
		c.Version = SchemaVersion
	}
	if strings.TrimSpace(c.Registry.Name) == "" {
		c.Registry.Name = DefaultRegistryName
	}
	if c.Registry.Version == "" {
		c.Registry.Version = registry.DefaultVersion
	}
	if c.Registry.SnapshotPath == "" {
		c.Registry.SnapshotPath = registry.DefaultSnapshotPath
	}
	if c.Analysis.Pattern == "" {
		c.Analysis.Pattern = "*"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// ApplyEnv overrides logging settings from the environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
}

// Load reads the config at path or returns defaults when it is missing.
// Unset fields are filled with defaults either way.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	cfg := newConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config missing")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ResolvePath anchors relative paths to the workspace and expands ~.
func ResolvePath(path, workspace string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	if filepath.IsAbs(path) || workspace == "" {
		return path
	}
	return filepath.Join(workspace, path)
}
