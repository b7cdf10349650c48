// Package config loads, validates, and normalizes the TOML configuration
// that drives the polymath daemon and CLI.
package config
