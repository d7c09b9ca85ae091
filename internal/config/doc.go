// Package config provides configuration structures and utilities for dupmeta.
// It resolves the settings of an analysis run from CLI flags, environment
// variables, an optional .dupmeta YAML file and built-in defaults.
package config
