package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const appDir = "shellsim"

// Config is the optional config.toml read at startup. Flags override it.
type Config struct {
	Platform    string   `toml:"platform"`
	LogLevel    string   `toml:"log_level"`
	MasteryFile string   `toml:"mastery_file"`
	BootDelay   Duration `toml:"boot_delay"`
	Color       string   `toml:"color"`
}

// Duration is a TOML string such as "150ms". Set records whether the key
// was present so an absent key keeps the platform default.
type Duration struct {
	time.Duration
	Set bool
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	if v < 0 {
		return fmt.Errorf("invalid duration %q: must not be negative", text)
	}
	d.Duration = v
	d.Set = true
	return nil
}

func defaultConfig() Config {
	return Config{
		Platform: "mac",
		LogLevel: "warn",
		Color:    "auto",
	}
}

// configDir returns $XDG_CONFIG_HOME/shellsim or its platform equivalent.
func configDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(base, appDir), nil
}

// loadConfig reads path, or the default location when path is empty. Only
// an explicitly named file must exist.
func loadConfig(path string) (Config, []string, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return defaultConfig(), nil, nil
		}
		return cfg, nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}

	if err := cfg.validate(); err != nil {
		return cfg, unknown, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, unknown, nil
}

func (c Config) validate() error {
	switch strings.ToLower(c.Color) {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	return nil
}

// masteryPath returns the configured tracker file or the default next to
// the config file.
func (c Config) masteryPath() (string, error) {
	if c.MasteryFile != "" {
		return expandHome(c.MasteryFile)
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "mastery.json"), nil
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", p, err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
