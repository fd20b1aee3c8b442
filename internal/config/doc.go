// SPDX-License-Identifier: MPL-2.0

// Package config loads and validates funcview configuration.
//
// Configuration is resolved through Viper in layers: built-in defaults, then
// an optional config file, with a CUE schema guarding the file's shape. Two
// file formats are accepted in the config directory: config.cue (validated
// against the embedded schema) and config.toml. An explicit file path passed
// through LoadOptions takes precedence over directory lookup.
package config
