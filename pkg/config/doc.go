// Package config loads and validates the daemon configuration from YAML,
// with defaults and NETPOLICY_* environment variable overrides.
package config
