// Package config loads, normalizes, and validates digitize tool settings.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads the TOML file at ~/.config/digitize/config.toml or a
// project-local digitize.toml. The Config type carries the knobs that apply
// to every scan regardless of profile: scanner device and resolution, output
// and staging directories, OCR language, and logging. Named scan profiles
// live in their own file and belong to the profile package.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
