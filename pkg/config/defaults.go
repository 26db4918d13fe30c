package config

import "time"

// Default values for configuration fields.
const (
	// Rules defaults
	DefaultRulesPath        = "./policies.yaml"
	DefaultRulesWatch       = false
	DefaultDebounceInterval = 100 * time.Millisecond

	// Log defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// Metrics defaults
	DefaultMetricsEnabled       = true
	DefaultMetricsListenAddress = "127.0.0.1:9090"
	DefaultMetricsNamespace     = "netpolicy"

	// Audit defaults
	DefaultAuditEnabled       = true
	DefaultAuditPath          = "data/audit.db"
	DefaultAuditRetentionDays = 30
	DefaultAuditMaxRecords    = int64(0)
	DefaultAuditPruneSchedule = "0 3 * * *"
)

// ApplyDefaults fills in default values for any unset configuration fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Rules.Path == "" {
		cfg.Rules.Path = DefaultRulesPath
	}
	if cfg.Rules.DebounceInterval == 0 {
		cfg.Rules.DebounceInterval = DefaultDebounceInterval
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}

	if cfg.Audit.Path == "" {
		cfg.Audit.Path = DefaultAuditPath
	}
	if cfg.Audit.RetentionDays == 0 {
		cfg.Audit.RetentionDays = DefaultAuditRetentionDays
	}
	if cfg.Audit.PruneSchedule == "" {
		cfg.Audit.PruneSchedule = DefaultAuditPruneSchedule
	}
}

// DefaultConfig returns a configuration with all defaults applied and
// metrics and audit enabled.
func DefaultConfig() *Config {
	cfg := &Config{
		Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
		Audit:   AuditConfig{Enabled: DefaultAuditEnabled},
	}
	ApplyDefaults(cfg)
	return cfg
}
