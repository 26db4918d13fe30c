// Package logging builds the daemon's structured slog logger from
// configuration (level and output format).
package logging
