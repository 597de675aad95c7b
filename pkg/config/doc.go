// Package config handles configuration management for presetcheck.
// It layers embedded defaults, an optional TOML file, PRESETCHECK_
// environment variables and command line flags, in that order.
package config
