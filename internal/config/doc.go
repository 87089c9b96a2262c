// Package config loads and merges the service configuration from
// environment variables, command-line flags, and an optional JSON file.
//
// Sources are merged in priority order (environment first, then flags, then
// the JSON file) using a builder; the merged result is validated before use.
package config
