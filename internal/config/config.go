// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Trip      TripConfig      `toml:"trip"`
	Generator GeneratorConfig `toml:"generator"`
	Storage   StorageConfig   `toml:"storage"`
	UI        UIConfig        `toml:"ui"`
}

// TripConfig holds day scheduling settings applied to every plan.
type TripConfig struct {
	DayStart        string `toml:"day_start"`          // e.g., "09:00"
	DayEnd          string `toml:"day_end"`            // e.g., "21:00"
	SlotMinutes     int    `toml:"slot_minutes"`       // grid granularity, e.g., 30
	BreakMinutes    int    `toml:"break_minutes"`      // preferred gap between events
	MaxEventsPerDay int    `toml:"max_events_per_day"` // generation cap per day
	Pace            string `toml:"pace"`               // "relaxed", "balanced", "packed"
	PartySize       int    `toml:"party_size"`
}

// GeneratorConfig holds LLM provider settings for itinerary generation.
type GeneratorConfig struct {
	Provider string `toml:"provider"` // "openai", "ollama", "lmstudio"
	Model    string `toml:"model"`    // e.g., "gpt-4o"
	BaseURL  string `toml:"base_url"` // e.g., "http://localhost:11434"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Trip: TripConfig{
			DayStart:        "09:00",
			DayEnd:          "21:00",
			SlotMinutes:     30,
			BreakMinutes:    30,
			MaxEventsPerDay: 6,
			Pace:            "balanced",
			PartySize:       2,
		},
		Generator: GeneratorConfig{
			Provider: "openai",
			Model:    "gpt-4o",
			BaseURL:  "",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tripgrid.db"
	}
	return filepath.Join(home, ".local", "share", "tripgrid", "tripgrid.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "tripgrid", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRIPGRID_DAY_START"); v != "" {
		cfg.Trip.DayStart = v
	}
	if v := os.Getenv("TRIPGRID_DAY_END"); v != "" {
		cfg.Trip.DayEnd = v
	}
	if v := os.Getenv("TRIPGRID_PACE"); v != "" {
		cfg.Trip.Pace = v
	}

	if v := os.Getenv("TRIPGRID_PROVIDER"); v != "" {
		cfg.Generator.Provider = v
	}
	if v := os.Getenv("TRIPGRID_MODEL"); v != "" {
		cfg.Generator.Model = v
	}
	if v := os.Getenv("TRIPGRID_BASE_URL"); v != "" {
		cfg.Generator.BaseURL = v
	}

	if v := os.Getenv("TRIPGRID_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("TRIPGRID_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var validPaces = map[string]bool{
	"relaxed":  true,
	"balanced": true,
	"packed":   true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateTime(c.Trip.DayStart, "day_start"); err != nil {
		return err
	}
	if err := validateTime(c.Trip.DayEnd, "day_end"); err != nil {
		return err
	}
	if c.Trip.DayStart >= c.Trip.DayEnd {
		return errors.New("day_start must be before day_end")
	}

	if c.Trip.SlotMinutes <= 0 || c.Trip.SlotMinutes > 120 {
		return fmt.Errorf("slot_minutes must be between 1 and 120, got %d", c.Trip.SlotMinutes)
	}
	if c.Trip.BreakMinutes < 0 {
		return fmt.Errorf("break_minutes must not be negative, got %d", c.Trip.BreakMinutes)
	}
	if c.Trip.MaxEventsPerDay <= 0 {
		return fmt.Errorf("max_events_per_day must be positive, got %d", c.Trip.MaxEventsPerDay)
	}
	if c.Trip.PartySize <= 0 {
		return fmt.Errorf("party_size must be positive, got %d", c.Trip.PartySize)
	}
	if !validPaces[strings.ToLower(c.Trip.Pace)] {
		return fmt.Errorf("pace must be one of relaxed, balanced, packed, got %q", c.Trip.Pace)
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// validateTime checks if a time string is in HH:MM format.
func validateTime(t, field string) error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	hour := t[0:2]
	min := t[3:5]
	if !isDigits(hour) || !isDigits(min) {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	return nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
