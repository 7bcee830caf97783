// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	BaseURL    string `yaml:"base_url"` // override for tests/sandboxes
}

type SenderConfig struct {
	MobileNumber   string `yaml:"mobile_number"`
	AlphanumericID string `yaml:"alphanumeric_id"`
}

// FlushPolicy controls when the ledger is written back to its file.
type FlushPolicy string

const (
	// FlushInterval runs a background watcher that writes the file whenever
	// the ledger changed since the last write.
	FlushInterval FlushPolicy = "interval"
	// FlushAfterSend writes the file after every successful send.
	FlushAfterSend FlushPolicy = "after-send"
	// FlushOnExit writes the file once, when the run finishes.
	FlushOnExit FlushPolicy = "on-exit"
)

type LedgerConfig struct {
	Path          string        `yaml:"path"`
	Flush         FlushPolicy   `yaml:"flush"`          // interval | after-send | on-exit
	FlushInterval time.Duration `yaml:"flush_interval"` // used when flush: interval
	Backup        bool          `yaml:"backup"`         // one-time .bak copy on load
}

type CampaignConfig struct {
	Name string `yaml:"name"`
	Body string `yaml:"body"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type AdminConfig struct {
	Port int `yaml:"port"` // 0 disables the health/metrics server
}

type Config struct {
	Twilio   TwilioConfig   `yaml:"twilio"`
	Sender   SenderConfig   `yaml:"sender"`
	Ledger   LedgerConfig   `yaml:"ledger"`
	Campaign CampaignConfig `yaml:"campaign"`
	Log      LogConfig      `yaml:"log"`
	Admin    AdminConfig    `yaml:"admin"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Runtime.Dev = dev
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Ledger.Flush == "" {
		cfg.Ledger.Flush = FlushInterval
	}
	if cfg.Ledger.FlushInterval <= 0 {
		cfg.Ledger.FlushInterval = 250 * time.Millisecond
	}
}

func validate(cfg *Config) error {
	if cfg.Ledger.Path == "" {
		return fmt.Errorf("config: ledger.path is required")
	}
	switch cfg.Ledger.Flush {
	case FlushInterval, FlushAfterSend, FlushOnExit:
	default:
		return fmt.Errorf("config: unknown ledger.flush %q", cfg.Ledger.Flush)
	}
	if !cfg.Runtime.Dev {
		if cfg.Twilio.AccountSID == "" || cfg.Twilio.AuthToken == "" {
			return fmt.Errorf("config: twilio.account_sid and twilio.auth_token are required outside dev mode")
		}
	}
	return nil
}
