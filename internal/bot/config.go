package bot

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/prastianhdd/task-manager/core/config"
	coredatabase "github.com/prastianhdd/task-manager/core/database"
)

// ReminderConfig controls the daily deadline reminder job.
type ReminderConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"REMINDER_ENABLED"`
	// At is the local wall-clock send time in HH:MM form.
	At string `yaml:"at" envconfig:"REMINDER_AT"`
	// Timezone is an IANA name such as "Asia/Jakarta"; empty means system local.
	Timezone string `yaml:"timezone" envconfig:"REMINDER_TIMEZONE"`
}

// Config is the full application configuration: the reusable core settings
// plus database and reminder sections.
type Config struct {
	Core     coreconfig.Config   `yaml:",inline"`
	Database coredatabase.Config `yaml:"database"`
	Reminder ReminderConfig      `yaml:"reminder"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Core
}

// LoadConfig reads configuration from a YAML file, applies environment
// overrides, and validates it.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if err := normalizeReminder(&cfg.Reminder); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalizeReminder(rc *ReminderConfig) error {
	rc.At = strings.TrimSpace(rc.At)
	if rc.At == "" {
		rc.At = "08:00"
	}
	var hh, mm int
	if _, err := fmt.Sscanf(rc.At, "%d:%d", &hh, &mm); err != nil {
		return fmt.Errorf("invalid reminder.at %q; expected HH:MM", rc.At)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return fmt.Errorf("invalid reminder.at %q; hour must be 0-23 and minute 0-59", rc.At)
	}
	return nil
}
