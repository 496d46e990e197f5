package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"hilal/internal/calendar"
	"hilal/internal/format"
)

// GlobalConfig is ~/.hilal/config.json.
type GlobalConfig struct {
	// Calendar is the default calendar name (see calendar.Names).
	Calendar string `json:"calendar,omitempty"`

	// WeekStart is the default first column (0 = Sunday ... 6 = Saturday).
	WeekStart *int `json:"weekStart,omitempty"`

	// Format is the default CLI output format.
	Format string `json:"format,omitempty"`

	// StateDir overrides where hilal.sqlite lives.
	StateDir string `json:"stateDir,omitempty"`

	// TUI holds optional user preferences for the interactive month view.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Profile is the appearance profile id ("default", "mono").
	Profile string `json:"profile,omitempty"`
	// ShowOtherMonths renders the spill-over days of the adjacent months.
	ShowOtherMonths *bool `json:"showOtherMonths,omitempty"`
}

// ConfigKeys lists the keys accepted by Set, sorted.
func ConfigKeys() []string {
	keys := []string{"calendar", "weekStart", "format", "stateDir", "tui.profile", "tui.showOtherMonths"}
	sort.Strings(keys)
	return keys
}

// Set assigns a config value from its string form. An empty value clears the key.
func (c *GlobalConfig) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "calendar":
		if value != "" {
			if _, err := calendar.Lookup(value); err != nil {
				return err
			}
		}
		c.Calendar = strings.ToLower(value)
	case "weekStart":
		if value == "" {
			c.WeekStart = nil
			return nil
		}
		d, err := calendar.ParseWeekday(value)
		if err != nil {
			return err
		}
		if d < calendar.Sunday || d > calendar.Saturday {
			return fmt.Errorf("weekStart %d out of range (0-6)", d)
		}
		c.WeekStart = &d
	case "format":
		if !format.Valid(value) {
			return fmt.Errorf("unknown format: %s", value)
		}
		c.Format = strings.ToLower(value)
	case "stateDir":
		c.StateDir = value
	case "tui.profile":
		c.ensureTUI().Profile = value
	case "tui.showOtherMonths":
		if value == "" {
			c.ensureTUI().ShowOtherMonths = nil
			return nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("tui.showOtherMonths: %w", err)
		}
		c.ensureTUI().ShowOtherMonths = &b
	default:
		return fmt.Errorf("unknown config key %q (expected one of: %s)", key, strings.Join(ConfigKeys(), ", "))
	}
	return nil
}

func (c *GlobalConfig) ensureTUI() *TUIConfig {
	if c.TUI == nil {
		c.TUI = &TUIConfig{}
	}
	return c.TUI
}

// ShowOtherMonths defaults to true.
func (c *GlobalConfig) ShowOtherMonths() bool {
	if c == nil || c.TUI == nil || c.TUI.ShowOtherMonths == nil {
		return true
	}
	return *c.TUI.ShowOtherMonths
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.hilal).
	if v := strings.TrimSpace(os.Getenv("HILAL_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".hilal"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultStateDir is where hilal.sqlite lives unless --dir or stateDir say otherwise.
func DefaultStateDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Keep the previous config around as config.json.bak; failures here never block the save.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}

	// Unique temp names so a CLI and a running TUI never clobber each other's writes.
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}
