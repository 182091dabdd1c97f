// Package config loads and validates YAML configuration for the sync
// engine. Values support ${VAR} environment expansion; missing optional
// fields receive defaults before validation.
package config
