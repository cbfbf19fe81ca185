// Package config handles loading and parsing of configuration from YAML files
// and environment variables. It defines the application configuration structure
// including server settings, logger options, the method-logging package filter,
// and the SQL repository logging switches, and supports watching the config
// file so the SQL logging level can change at runtime.
package config
