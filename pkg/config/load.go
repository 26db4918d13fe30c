package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a YAML file at the specified path. It
// applies default values, validates the configuration, and returns any
// errors. Environment variables are not consulted; use LoadWithEnvOverrides
// for that.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Variables follow the naming convention
// NETPOLICY_SECTION_FIELD (e.g., NETPOLICY_RULES_PATH) and always take
// precedence over file-based configuration.
func LoadWithEnvOverrides(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies NETPOLICY_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("NETPOLICY_RULES_PATH"); val != "" {
		cfg.Rules.Path = val
	}
	if val := os.Getenv("NETPOLICY_RULES_FORMAT"); val != "" {
		cfg.Rules.Format = val
	}
	if val := os.Getenv("NETPOLICY_RULES_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Rules.Watch = b
		}
	}
	if val := os.Getenv("NETPOLICY_RULES_DEBOUNCE_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Rules.DebounceInterval = d
		}
	}

	if val := os.Getenv("NETPOLICY_LOG_LEVEL"); val != "" {
		cfg.Log.Level = val
	}
	if val := os.Getenv("NETPOLICY_LOG_FORMAT"); val != "" {
		cfg.Log.Format = val
	}

	if val := os.Getenv("NETPOLICY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("NETPOLICY_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Metrics.ListenAddress = val
	}
	if val := os.Getenv("NETPOLICY_METRICS_NAMESPACE"); val != "" {
		cfg.Metrics.Namespace = val
	}

	if val := os.Getenv("NETPOLICY_AUDIT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Audit.Enabled = b
		}
	}
	if val := os.Getenv("NETPOLICY_AUDIT_PATH"); val != "" {
		cfg.Audit.Path = val
	}
	if val := os.Getenv("NETPOLICY_AUDIT_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Audit.RetentionDays = i
		}
	}
	if val := os.Getenv("NETPOLICY_AUDIT_MAX_RECORDS"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Audit.MaxRecords = i
		}
	}
	if val := os.Getenv("NETPOLICY_AUDIT_PRUNE_SCHEDULE"); val != "" {
		cfg.Audit.PruneSchedule = val
	}
}
