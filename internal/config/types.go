// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// RuntimeNative launches the engine through the host system shell (or
	// directly when no shell is configured).
	RuntimeNative RuntimeMode = "native"
	// RuntimeVirtual launches the engine through the embedded mvdan/sh
	// interpreter.
	RuntimeVirtual RuntimeMode = "virtual"
)

var (
	// ErrInvalidRuntimeMode is the sentinel wrapped by InvalidRuntimeModeError.
	ErrInvalidRuntimeMode = errors.New("invalid runtime mode")
	// ErrInvalidBinaryPath is returned when the engine binary path is
	// whitespace-only.
	ErrInvalidBinaryPath = errors.New("invalid engine binary path")
	// ErrInvalidCacheDir is returned when the cache directory is
	// whitespace-only.
	ErrInvalidCacheDir = errors.New("invalid cache directory")
)

type (
	// RuntimeMode selects how the engine subprocess is launched.
	RuntimeMode string

	// InvalidRuntimeModeError is returned when a RuntimeMode value is not
	// recognized. It wraps ErrInvalidRuntimeMode for errors.Is() compatibility.
	InvalidRuntimeModeError struct {
		Value RuntimeMode
	}

	// Config is the effective funcview configuration.
	Config struct {
		Engine EngineConfig `mapstructure:"engine"`
		Shell  ShellConfig  `mapstructure:"shell"`
		Cache  CacheConfig  `mapstructure:"cache"`
		UI     UIConfig     `mapstructure:"ui"`
	}

	// EngineConfig describes the engine CLI and how it is queried.
	EngineConfig struct {
		// Binary is the engine executable name or path.
		Binary string `mapstructure:"binary"`
		// QuerySubcommand accepts a query document on standard input.
		QuerySubcommand string `mapstructure:"query_subcommand"`
		// VarsFlag carries the JSON-encoded query variables.
		VarsFlag string `mapstructure:"vars_flag"`
		// Runtime selects the subprocess launch mode.
		Runtime RuntimeMode `mapstructure:"runtime"`
		// MarkerFile is the project descriptor that identifies an engine
		// workspace.
		MarkerFile string `mapstructure:"marker_file"`
	}

	// ShellConfig is the explicit execution environment for engine
	// invocations. These values are configuration, not ambient process
	// state read at call time.
	ShellConfig struct {
		// Path is the shell to launch the engine through; empty execs the
		// binary directly.
		Path string `mapstructure:"path"`
		// LoginFlag is passed to the shell before -c (typically "-l").
		LoginFlag string `mapstructure:"login_flag"`
		// PathOverride replaces PATH for the invocation when set.
		PathOverride string `mapstructure:"path_override"`
	}

	// CacheConfig controls the discovery cache.
	CacheConfig struct {
		// Enabled turns the cache on. When false the store is never read
		// or written.
		Enabled bool `mapstructure:"enabled"`
		// Dir is the cache database directory.
		Dir string `mapstructure:"dir"`
	}

	// UIConfig holds presentation preferences.
	UIConfig struct {
		// Verbose enables debug-level output.
		Verbose bool `mapstructure:"verbose"`
	}
)

// Error implements the error interface.
func (e *InvalidRuntimeModeError) Error() string {
	return fmt.Sprintf("invalid runtime mode %q (expected %q or %q)", e.Value, RuntimeNative, RuntimeVirtual)
}

// Unwrap returns ErrInvalidRuntimeMode for errors.Is() compatibility.
func (e *InvalidRuntimeModeError) Unwrap() error {
	return ErrInvalidRuntimeMode
}

// IsValid reports whether the mode is one of the recognized values.
func (m RuntimeMode) IsValid() bool {
	return m == RuntimeNative || m == RuntimeVirtual
}

// Validate checks constraints the CUE schema cannot express for values that
// may also arrive from defaults or an explicit TOML file.
func (c *Config) Validate() error {
	if !c.Engine.Runtime.IsValid() {
		return &InvalidRuntimeModeError{Value: c.Engine.Runtime}
	}
	if strings.TrimSpace(c.Engine.Binary) == "" {
		return ErrInvalidBinaryPath
	}
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Dir) == "" {
		return ErrInvalidCacheDir
	}
	return nil
}
