package bootstrap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"neuroctl/internal/common/fsutil"
)

// ModelArtifact names a model the daemon must hold before launch.
type ModelArtifact struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	Required bool   `json:"required" yaml:"required" toml:"required"`
}

// Settings holds every tunable of the bootstrap run. Defaults mirror the
// backend's layout; a settings file can override individual fields.
type Settings struct {
	AppRoot         string          `json:"app_root" yaml:"app_root" toml:"app_root"`
	DaemonURL       string          `json:"daemon_url" yaml:"daemon_url" toml:"daemon_url"`
	PollIntervalSec int             `json:"poll_interval_sec" yaml:"poll_interval_sec" toml:"poll_interval_sec"`
	MaxWaitSec      int             `json:"max_wait_sec" yaml:"max_wait_sec" toml:"max_wait_sec"`
	Models          []ModelArtifact `json:"models" yaml:"models" toml:"models"`
	AppPort         int             `json:"app_port" yaml:"app_port" toml:"app_port"`
	BrowserDelaySec int             `json:"browser_delay_sec" yaml:"browser_delay_sec" toml:"browser_delay_sec"`
	NoBrowser       bool            `json:"no_browser" yaml:"no_browser" toml:"no_browser"`
}

// DefaultSettings returns the compiled-in configuration for the persona
// backend shipped alongside this tool.
func DefaultSettings() Settings {
	return Settings{
		AppRoot:         "backend",
		DaemonURL:       "http://127.0.0.1:11434",
		PollIntervalSec: 1,
		MaxWaitSec:      15,
		Models: []ModelArtifact{
			{Name: "gemma3:4b-it-qat", Required: true},
			{Name: "nomic-embed-text", Required: true},
		},
		AppPort:         8000,
		BrowserDelaySec: 2,
	}
}

// LoadSettings reads a settings file based on its extension, overlaying it
// on the defaults so unset keys keep their compiled-in values.
// Supports: .yaml/.yml, .json, .toml
func LoadSettings(path string) (Settings, error) {
	cfg := DefaultSettings()
	if path == "" {
		return cfg, fmt.Errorf("empty settings path")
	}
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported settings extension: %s", ext)
	}
	if cfg.AppRoot, err = fsutil.ExpandHome(cfg.AppRoot); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (s Settings) maxWait() time.Duration { return time.Duration(s.MaxWaitSec) * time.Second }
func (s Settings) browserDelay() time.Duration {
	return time.Duration(s.BrowserDelaySec) * time.Second
}

// Paths derived from AppRoot. The backend tree is the source of truth for
// this layout: requirements.txt and config/ sit next to main.py.
func (s Settings) VenvDir() string          { return filepath.Join(s.AppRoot, ".venv") }
func (s Settings) RequirementsPath() string { return filepath.Join(s.AppRoot, "requirements.txt") }
func (s Settings) ActiveConfigPath() string {
	return filepath.Join(s.AppRoot, "config", "persona.json")
}
func (s Settings) TemplateConfigPath() string {
	return filepath.Join(s.AppRoot, "config", "persona.template.json")
}
func (s Settings) AppURL() string { return fmt.Sprintf("http://127.0.0.1:%d", s.AppPort) }

// venvBin resolves an executable inside the sandbox for the given family.
func (s Settings) venvBin(osf OSFamily, name string) string {
	if osf == OSWindows {
		return filepath.Join(s.VenvDir(), "Scripts", name+".exe")
	}
	return filepath.Join(s.VenvDir(), "bin", name)
}
