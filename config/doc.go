// Package config loads and validates the application configuration: a YAML
// file overlaid with environment variables (after a best-effort .env load),
// validated with struct tags.
package config
