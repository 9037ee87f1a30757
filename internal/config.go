package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config carries the defaults a command falls back to when no flag or
// positional argument overrides them.
type Config struct {
	// TablePath is the default embeddings file.
	TablePath string `yaml:"table_path,omitempty"`
	Dimension int    `yaml:"dimension,omitempty"`
	Metric    string `yaml:"metric,omitempty"`
	Mode      string `yaml:"mode,omitempty"`
	TopK      int    `yaml:"top_k,omitempty"`
	Strict    bool   `yaml:"strict,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Metric: "cosine",
		Mode:   "expression",
		TopK:   1,
	}
}

func DefaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "wordvec", "config.yaml")
}

// LoadConfig reads the config file at path, or the default location
// when path is empty. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
		if path == "" {
			return DefaultConfig(), nil
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.TopK < 1 {
		cfg.TopK = 1
	}

	return cfg, nil
}

// SaveConfig writes the config as yaml, creating the directory first.
func SaveConfig(path string, cfg *Config) error {
	if path == "" {
		path = DefaultConfigPath()
		if path == "" {
			return fmt.Errorf("no config path available")
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
