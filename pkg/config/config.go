package config

import "time"

// Config is the root configuration for the daemon.
type Config struct {
	// Rules configures where policy rules are loaded from.
	Rules RulesConfig `yaml:"rules"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `yaml:"metrics"`

	// Audit configures the decision audit trail.
	Audit AuditConfig `yaml:"audit"`
}

// RulesConfig configures the policy rule source.
type RulesConfig struct {
	// Path is the rules file to load ("policies.yaml" or "policies.rules").
	Path string `yaml:"path"`

	// Format forces the rules format ("yaml" or "dsl"). When empty the
	// format is inferred from the file extension.
	Format string `yaml:"format"`

	// Watch enables hot reload on file changes.
	Watch bool `yaml:"watch"`

	// DebounceInterval is the quiet period before a reload fires.
	DebounceInterval time.Duration `yaml:"debounce_interval"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus metrics endpoint.
type MetricsConfig struct {
	// Enabled turns the metrics HTTP server on.
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the metrics server address (host:port).
	ListenAddress string `yaml:"listen_address"`

	// Namespace is the metric name prefix.
	Namespace string `yaml:"namespace"`
}

// AuditConfig configures the decision audit trail.
type AuditConfig struct {
	// Enabled turns audit recording on.
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file path.
	Path string `yaml:"path"`

	// RetentionDays is how long records are kept (0 disables age pruning).
	RetentionDays int `yaml:"retention_days"`

	// MaxRecords caps the number of stored records (0 disables the cap).
	MaxRecords int64 `yaml:"max_records"`

	// PruneSchedule is a cron expression for the retention job.
	PruneSchedule string `yaml:"prune_schedule"`
}
