// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"funcview-cli/internal/issue"
)

const (
	// AppName is the application name, used for config and cache directories.
	AppName = "funcview"
	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the funcview configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// CacheDir returns the default cache database directory, under the user
// cache root.
func CacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user cache directory: %w", err)
	}
	return filepath.Join(base, AppName, "functions"), nil
}

// DefaultConfig returns the built-in configuration. The cache directory is
// resolved lazily at load time so DefaultConfig itself never fails.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Binary:          "dagger",
			QuerySubcommand: "query",
			VarsFlag:        "--var-json",
			Runtime:         RuntimeNative,
			MarkerFile:      "dagger.json",
		},
		Shell: ShellConfig{
			LoginFlag: "-l",
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		UI: UIConfig{},
	}
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. Callers that want caching can wrap this function.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("engine.binary", defaults.Engine.Binary)
	v.SetDefault("engine.query_subcommand", defaults.Engine.QuerySubcommand)
	v.SetDefault("engine.vars_flag", defaults.Engine.VarsFlag)
	v.SetDefault("engine.runtime", string(defaults.Engine.Runtime))
	v.SetDefault("engine.marker_file", defaults.Engine.MarkerFile)
	v.SetDefault("shell.path", defaults.Shell.Path)
	v.SetDefault("shell.login_flag", defaults.Shell.LoginFlag)
	v.SetDefault("shell.path_override", defaults.Shell.PathOverride)
	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.dir", defaults.Cache.Dir)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	resolvedPath := ""

	if opts.ConfigFilePath != "" {
		// An explicit --config path is used exclusively and must exist.
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'funcview config show' to see the effective configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := mergeConfigFile(v, opts.ConfigFilePath); err != nil {
			return nil, "", wrapLoadError(opts.ConfigFilePath, err)
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		for _, candidate := range []string{
			filepath.Join(cfgDir, ConfigFileName+".cue"),
			filepath.Join(cfgDir, ConfigFileName+".toml"),
		} {
			if !fileExists(candidate) {
				continue
			}
			if err := mergeConfigFile(v, candidate); err != nil {
				return nil, "", wrapLoadError(candidate, err)
			}
			resolvedPath = candidate
			break
		}
		// No config file found: defaults apply, not an error.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Cache.Dir == "" {
		dir, err := CacheDir()
		if err != nil {
			return nil, "", err
		}
		cfg.Cache.Dir = dir
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check the runtime mode is 'native' or 'virtual'").
			WithSuggestion("Check that engine.binary and cache.dir are not blank").
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

// mergeConfigFile merges one config file into Viper, dispatching on
// extension: .cue files are validated against the embedded schema, .toml
// files are decoded directly.
func mergeConfigFile(v *viper.Viper, path string) error {
	switch filepath.Ext(path) {
	case ".cue":
		return mergeCUE(v, path)
	case ".toml":
		return mergeTOML(v, path)
	default:
		return fmt.Errorf("unsupported config format %q (expected .cue or .toml)", filepath.Ext(path))
	}
}

// mergeCUE parses a CUE file, validates it against the #Config schema, and
// merges its contents into Viper.
func mergeCUE(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return fmt.Errorf("invalid CUE in %s: %w", path, userValue.Err())
	}

	// Unify with the schema; Concrete(false) because every field is optional.
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return fmt.Errorf("config does not match schema in %s: %w", path, err)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return fmt.Errorf("failed to decode config in %s: %w", path, err)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// mergeTOML decodes a TOML file and merges its contents into Viper.
func mergeTOML(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var configMap map[string]any
	if err := toml.Unmarshal(data, &configMap); err != nil {
		return fmt.Errorf("invalid TOML in %s: %w", path, err)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// wrapLoadError decorates a config file failure with user guidance.
func wrapLoadError(path string, err error) error {
	return issue.NewContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid syntax for its extension").
		WithSuggestion("Verify the configuration values match the expected schema").
		Wrap(err).
		BuildError()
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
