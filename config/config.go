// Package config loads the dashboard configuration: a YAML file for the
// stable knobs (exclusion lists, synonym overrides, calendar identity) and
// environment variables for secrets. A missing file yields the defaults so a
// bare checkout still starts.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the dashboard API.
	Listen string `yaml:"listen"`

	// Teamup identifies the scheduling calendar to pull from.
	Teamup TeamupConfig `yaml:"teamup"`

	// HolidaySubcalendar is the display name of the subcalendar whose events
	// are designated holidays rather than employee attendance.
	HolidaySubcalendar string `yaml:"holiday_subcalendar"`

	// FullyExcluded lists employee names dropped from all computation.
	FullyExcluded []string `yaml:"fully_excluded"`

	// UtilizationExempt lists employee names kept visible but excluded from
	// field/office/overtime accounting.
	UtilizationExempt []string `yaml:"utilization_exempt"`

	// StatusSynonyms extends the built-in raw-label synonym table.
	StatusSynonyms map[string]string `yaml:"status_synonyms"`
}

// TeamupConfig identifies the upstream calendar. The API key is a secret and
// comes from the environment, never from this file.
type TeamupConfig struct {
	BaseURL     string `yaml:"base_url"`
	CalendarKey string `yaml:"calendar_key"`

	// APIKey is populated from TEAMUP_API_KEY; the yaml tag is "-" so a key
	// pasted into the file is ignored rather than silently honored.
	APIKey string `yaml:"-"`
}

// Default returns the in-memory default configuration.
func Default() *Config {
	return &Config{
		Listen:             ":8080",
		HolidaySubcalendar: "Holidays",
		Teamup: TeamupConfig{
			BaseURL: "https://api.teamup.com",
		},
		StatusSynonyms: map[string]string{},
	}
}

// Load reads the YAML file at path, overlays environment variables, and
// returns the merged configuration. A missing file is not an error; a
// malformed one is.
func Load(path string) (*Config, error) {
	// .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Defaults plus environment only.
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv overlays environment variables on the file values.
func applyEnv(cfg *Config) {
	if v := os.Getenv("TEAMUP_API_KEY"); v != "" {
		cfg.Teamup.APIKey = v
	}
	if v := os.Getenv("TEAMUP_CALENDAR_KEY"); v != "" {
		cfg.Teamup.CalendarKey = v
	}
	if v := os.Getenv("TEAMUP_BASE_URL"); v != "" {
		cfg.Teamup.BaseURL = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Listen = v
	}
}

// Validate checks that the configuration is usable for live fetching.
// Demo mode skips this: it needs no upstream calendar at all.
func (c *Config) Validate() error {
	if c.Teamup.CalendarKey == "" {
		return errors.New("config: teamup calendar_key is required (TEAMUP_CALENDAR_KEY)")
	}
	if c.Teamup.APIKey == "" {
		return errors.New("config: TEAMUP_API_KEY is required")
	}
	return nil
}
