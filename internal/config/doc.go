// Package config loads, normalizes, and validates photosort configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. Only the CLI consults this package: the
// sorting core receives plain parameters, so a run never depends on files or
// environment variables it was not handed explicitly.
package config
