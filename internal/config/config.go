// # internal/config/config.go
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Path    string  `toml:"path"`
	Python  string  `toml:"python"`
	AutoFix bool    `toml:"auto_fix"`
	Exclude Exclude `toml:"exclude"`
	Watch   Watch   `toml:"watch"`
	History History `toml:"history"`
	Metrics Metrics `toml:"metrics"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

type History struct {
	Path string `toml:"path"` // Empty disables run history
}

type Metrics struct {
	Listen string `toml:"listen"` // Empty disables the /metrics listener
}

// DefaultExcludedDirs mirrors the directories no analysis run should enter:
// VCS metadata, caches, build artifacts, virtual environments, and generated
// migration trees.
var DefaultExcludedDirs = []string{
	"__pycache__",
	".git",
	".gitlab",
	".github",
	".idea",
	".venv",
	"venv",
	"env",
	".env",
	"node_modules",
	"build",
	"dist",
	".eggs",
	"*.egg-info",
	"alembic",
	"migrations",
}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Path == "" {
		c.Path = "."
	}
	if c.Python == "" {
		c.Python = "python3"
	}
	if len(c.Exclude.Dirs) == 0 {
		c.Exclude.Dirs = append([]string(nil), DefaultExcludedDirs...)
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = 500 * time.Millisecond
	}
}
