// Package config loads ktlens configuration with a fixed precedence:
// built-in defaults, then the project's .ktlens.yml, then KTLENS_*
// environment variables, then CLI flag overrides.
package config
