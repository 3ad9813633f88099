// Package config loads the relay configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/voxrelay/voxrelay/internal/forward"
)

// Defaults applied when the file or a field is absent.
const (
	DefaultCommandTemplate = "cat >> ~/voice-transcripts.log"
	DefaultTimeout         = 3 * time.Second
)

// file is the on-disk YAML schema.
type file struct {
	Enabled         bool    `yaml:"enabled"`
	Target          string  `yaml:"target"`
	IdentityFile    string  `yaml:"identity_file"`
	CommandTemplate string  `yaml:"command_template"`
	TimeoutSeconds  float64 `yaml:"timeout_seconds"`
}

// Default returns the configuration used when no file exists: relaying
// disabled, no target, default template and timeout.
func Default() *forward.Config {
	return &forward.Config{
		CommandTemplate: DefaultCommandTemplate,
		Timeout:         DefaultTimeout,
	}
}

// DefaultPath returns the conventional config file location, typically
// ~/.config/voxrelay/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "voxrelay", "config.yaml"), nil
}

// Load reads a YAML config file into a forward.Config. A missing file is
// not an error; defaults are returned. Fractional timeout_seconds values
// are honored.
func Load(path string) (*forward.Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg := &forward.Config{
		Enabled:         f.Enabled,
		Target:          f.Target,
		IdentityFile:    f.IdentityFile,
		CommandTemplate: f.CommandTemplate,
		Timeout:         time.Duration(f.TimeoutSeconds * float64(time.Second)),
	}
	if cfg.CommandTemplate == "" {
		cfg.CommandTemplate = DefaultCommandTemplate
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return cfg, nil
}
