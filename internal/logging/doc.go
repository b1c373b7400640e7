// Package logging constructs the slog logger used across digitize.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for machine consumption. Output can fan out to stdout/stderr
// and an append-only log file under the configured log directory. Level
// strings follow the usual debug/info/warn/error names.
package logging
