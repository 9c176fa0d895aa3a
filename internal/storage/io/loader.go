package io

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/slok/task-cli/internal/model"
)

// ConfigYAMLRepository loads the task-cli configuration from YAML files.
type ConfigYAMLRepository struct {
	fs fs.FS
}

// NewConfigYAMLRepository creates a new YAML config repository.
func NewConfigYAMLRepository(filesystem fs.FS) *ConfigYAMLRepository {
	return &ConfigYAMLRepository{fs: filesystem}
}

// GetConfig loads the configuration file at path. A missing file error wraps fs.ErrNotExist.
func (r *ConfigYAMLRepository) GetConfig(ctx context.Context, path string) (model.Config, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.Config{}, fmt.Errorf("reading config file: %w", err)
	}

	if ctx.Err() != nil {
		return model.Config{}, ctx.Err()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.Config{}, fmt.Errorf("parsing YAML: %w", err)
	}

	m, err := cfg.toModel()
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return m, nil
}

// Config represents the YAML structure of the configuration file.
type Config struct {
	StorePath   string `yaml:"store_path"`
	Storage     string `yaml:"storage"`
	LockTimeout string `yaml:"lock_timeout"`
	ListFormat  string `yaml:"list_format"`
}

func (c Config) toModel() (model.Config, error) {
	cfg := model.Config{
		StorePath:  c.StorePath,
		Storage:    model.StorageType(c.Storage),
		ListFormat: c.ListFormat,
	}

	if cfg.Storage != "" {
		if err := cfg.Storage.Validate(); err != nil {
			return model.Config{}, err
		}
	}

	switch c.ListFormat {
	case "", "table", "json", "yaml":
	default:
		return model.Config{}, fmt.Errorf("invalid list_format %q (must be: table, json, yaml): %w", c.ListFormat, model.ErrNotValid)
	}

	if c.LockTimeout != "" {
		d, err := time.ParseDuration(c.LockTimeout)
		if err != nil {
			return model.Config{}, fmt.Errorf("invalid lock_timeout %q: %w", c.LockTimeout, model.ErrNotValid)
		}
		if d <= 0 {
			return model.Config{}, fmt.Errorf("lock_timeout must be positive, got: %s: %w", d, model.ErrNotValid)
		}
		cfg.LockTimeout = d
	}

	return cfg, nil
}
