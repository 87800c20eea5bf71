// Package config handles configuration loading for reqx.
//
// It provides functionality for:
//   - Loading configuration from reqx.yaml or .reqx.yaml files
//   - Default configuration values
//   - Writing a starter config for reqx init
package config
