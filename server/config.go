package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/domlens/layout"
)

// Config is the top-level domlens service configuration.
type Config struct {
	Addr          string        `yaml:"addr"`
	DBPath        string        `yaml:"db_path"`
	ScreenshotDir string        `yaml:"screenshot_dir"`
	Browser       BrowserConfig `yaml:"browser"`
	Engine        layout.Config `yaml:"engine"`
}

// BrowserConfig controls Chrome lifecycle.
type BrowserConfig struct {
	Remote  string `yaml:"remote"`  // ws:// devtools URL, empty launches locally
	Bin     string `yaml:"bin"`     // chrome binary path override
	Stealth *bool  `yaml:"stealth"` // default true
}

// LoadConfig reads a YAML configuration file and applies defaults.
// An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("server: read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("server: parse config %s: %w", path, err)
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8460"
	}
	if c.DBPath == "" {
		c.DBPath = "domlens.db"
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "screenshots"
	}
}
