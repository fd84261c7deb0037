// Package config handles workspace resolution and the per-workspace
// config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ganttsync/internal/model"

	"gopkg.in/yaml.v3"
)

const configFilename = "config.yaml"

type Config struct {
	// SeedIfEmpty imports the sample schedule the first time an empty
	// chart is opened.
	SeedIfEmpty bool `yaml:"seed_if_empty"`

	// Scales is the display-timescale config handed to the chart widget.
	Scales []model.ScaleConfig `yaml:"scales,omitempty"`
}

func Default() Config {
	return Config{
		SeedIfEmpty: true,
		Scales: []model.ScaleConfig{
			{Unit: "month", Step: 1, Format: "Jan 2006"},
			{Unit: "week", Step: 1, Format: "02"},
		},
	}
}

// WorkspaceDir resolves ~/.ganttsync/<name>, creating it if needed.
func WorkspaceDir(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "default"
	}
	// A workspace name is one path component under ~/.ganttsync; dot
	// names would escape into (or over) the home directory.
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid workspace name %q", name)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".ganttsync", name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// Load reads the workspace config. A missing file yields defaults; a
// malformed file is an error the user has to fix, not silently ignore.
func Load(dir string) (Config, error) {
	b, err := os.ReadFile(filepath.Join(dir, configFilename))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", configFilename, err)
	}
	return cfg, nil
}

func Save(dir string, cfg Config) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, configFilename), b, 0o644)
}
