package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lexcodex/featurekit/analysis"
	"github.com/lexcodex/featurekit/config"
	"github.com/lexcodex/featurekit/framework"
	"github.com/lexcodex/featurekit/internal/logging"
	"github.com/lexcodex/featurekit/registry"
)

// ensureWorkspace resolves the workspace CLI flag to an absolute path,
// defaulting to cwd.
func ensureWorkspace() string {
	if workspace == "" {
		wd, _ := os.Getwd()
		workspace = wd
	} else if abs, err := filepath.Abs(workspace); err == nil {
		workspace = abs
	}
	return workspace
}

// currentConfig returns the loaded config or defaults when PersistentPreRunE
// has not run.
func currentConfig() *config.Config {
	if globalCfg == nil {
		return config.Default()
	}
	return globalCfg
}

// snapshotPath resolves the registry snapshot location, preferring override.
func snapshotPath(override string) string {
	path := override
	if path == "" {
		path = currentConfig().Registry.SnapshotPath
	}
	return config.ResolvePath(path, ensureWorkspace())
}

func registryOptions(ctx context.Context, version string) []registry.Option {
	return []registry.Option{
		registry.WithVersion(version),
		registry.WithLogger(logging.FromContext(ctx)),
		registry.WithTelemetry(telemetry),
	}
}

// newRegistry builds a fresh registry from config: default features plus
// the configured extras.
func newRegistry(ctx context.Context) (*registry.Registry, error) {
	cfg := currentConfig()
	reg, err := registry.New(cfg.Registry.Name, registryOptions(ctx, cfg.Registry.Version)...)
	if err != nil {
		return nil, err
	}
	for _, f := range cfg.Registry.ExtraFeatures {
		reg.AddFeature(f)
	}
	return reg, nil
}

// loadRegistry restores the registry from its snapshot when one exists and
// falls back to newRegistry otherwise. Configured extras are applied either
// way.
func loadRegistry(ctx context.Context, path string) (*registry.Registry, error) {
	snap, err := registry.LoadSnapshot(path)
	if err != nil {
		if isNotFound(err) {
			return newRegistry(ctx)
		}
		return nil, err
	}
	reg, err := registry.FromSnapshot(snap, registryOptions(ctx, snap.Version)...)
	if err != nil {
		return nil, err
	}
	for _, f := range currentConfig().Registry.ExtraFeatures {
		reg.AddFeature(f)
	}
	return reg, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, framework.ErrNotFound)
}

func newAnalyzer(ctx context.Context) *analysis.Analyzer {
	return analysis.New(
		analysis.WithBasePath(ensureWorkspace()),
		analysis.WithLogger(logging.FromContext(ctx)),
		analysis.WithTelemetry(telemetry),
	)
}

// readConfigMap deserializes config.yaml into a generic map for dotted lookups.
func readConfigMap(path string) (map[string]interface{}, error) {
	data := map[string]interface{}{}
	bytes, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// writeConfigMap persists the config map back to YAML, creating directories.
func writeConfigMap(path string, data map[string]interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	bytes, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	return os.WriteFile(path, bytes, 0o644)
}

// getConfigValue traverses a nested map using dotted notation.
func getConfigValue(data map[string]interface{}, key string) (interface{}, bool) {
	parts := strings.Split(key, ".")
	var current interface{} = data
	for _, part := range parts {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		value, ok := m[part]
		if !ok {
			return nil, false
		}
		current = value
	}
	return current, true
}

// setConfigValue mutates/creates nested keys referenced via dotted notation.
func setConfigValue(data map[string]interface{}, key string, value interface{}) error {
	parts := strings.Split(key, ".")
	current := data
	for i, part := range parts {
		if part == "" {
			return fmt.Errorf("invalid key %q", key)
		}
		if i == len(parts)-1 {
			current[part] = value
			return nil
		}
		next, ok := current[part].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			current[part] = next
		}
		current = next
	}
	return nil
}

// parseValue attempts to coerce CLI input into bool/int/float before storing.
func parseValue(input string) interface{} {
	if b, err := strconv.ParseBool(input); err == nil {
		return b
	}
	if i, err := strconv.ParseInt(input, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(input, 64); err == nil {
		return f
	}
	return input
}

// prettyValue renders nested values in a human-readable one-line format.
func prettyValue(v interface{}) string {
	switch value := v.(type) {
	case []interface{}:
		var parts []string
		for _, item := range value {
			parts = append(parts, prettyValue(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]interface{}:
		b, _ := yaml.Marshal(value)
		return strings.TrimSpace(string(b))
	default:
		return fmt.Sprint(value)
	}
}
