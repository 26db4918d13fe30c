package config

import (
	"fmt"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "rules.path").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration. All validation errors are
// collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	if cfg.Rules.Path == "" {
		errs = append(errs, FieldError{Field: "rules.path", Message: "must not be empty"})
	}
	switch cfg.Rules.Format {
	case "", "yaml", "dsl":
	default:
		errs = append(errs, FieldError{
			Field:   "rules.format",
			Message: fmt.Sprintf("must be \"yaml\" or \"dsl\", got %q", cfg.Rules.Format),
		})
	}
	if cfg.Rules.DebounceInterval < 0 {
		errs = append(errs, FieldError{Field: "rules.debounce_interval", Message: "must not be negative"})
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "log.level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error, got %q", cfg.Log.Level),
		})
	}
	switch cfg.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "log.format",
			Message: fmt.Sprintf("must be \"json\" or \"text\", got %q", cfg.Log.Format),
		})
	}

	if cfg.Metrics.Enabled && cfg.Metrics.ListenAddress == "" {
		errs = append(errs, FieldError{Field: "metrics.listen_address", Message: "must not be empty when metrics are enabled"})
	}

	if cfg.Audit.Enabled {
		if cfg.Audit.Path == "" {
			errs = append(errs, FieldError{Field: "audit.path", Message: "must not be empty when audit is enabled"})
		}
		if cfg.Audit.RetentionDays < 0 {
			errs = append(errs, FieldError{Field: "audit.retention_days", Message: "must not be negative"})
		}
		if cfg.Audit.MaxRecords < 0 {
			errs = append(errs, FieldError{Field: "audit.max_records", Message: "must not be negative"})
		}
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
