// Package config handles configuration management for reslot.
// It layers embedded defaults, the user's config file, a mod-local file and
// RESLOT_ environment variables with koanf, then decodes the result into
// a Config.
package config
