// Package config loads client configuration from multiple sources (YAML files,
// environment variables, an optional .env file, CLI flags) with precedence:
// CLI flags > YAML config > Environment variables > .env file > Defaults.
// The resolved Config is an immutable value handed to the rest of the client.
package config
