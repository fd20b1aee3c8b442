// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for funcview.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"funcview-cli/internal/config"
	"funcview-cli/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// cfg is the configuration loaded during initialization. Falls back to
	// defaults when loading fails.
	cfg *config.Config

	// logger is the shared CLI logger, writing to stderr so command output
	// on stdout stays machine-readable.
	logger = log.New(os.Stderr)

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "funcview",
		Short: "Browse the functions an engine workspace exposes",
		Long: TitleStyle.Render("funcview") + SubtitleStyle.Render(" - Browse the functions an engine workspace exposes") + `

funcview asks the build engine's CLI which functions the current
workspace's module exposes, normalizes their names and types, and
presents them for inspection and invocation. Results are cached with
content-hash staleness detection, so repeat listings are instant while
a background refresh keeps them current.

` + SubtitleStyle.Render("Quick Start:") + `
  1. cd into a workspace with an engine project descriptor
  2. Run 'funcview functions' to list its functions
  3. Run 'funcview describe <function>' for details

` + SubtitleStyle.Render("Examples:") + `
  funcview functions          List functions for the current workspace
  funcview functions --json   Emit the raw function list as JSON
  funcview describe deploy    Show one function's arguments and types
  funcview cache clear        Drop all cached discovery results`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/funcview/config.cue)")

	rootCmd.AddCommand(functionsCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads the config file and applies global flags.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	loaded, err := config.Load()
	if err != nil {
		// Surface config loading errors but keep going on defaults.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}
	if loaded == nil {
		loaded = config.DefaultConfig()
	}
	cfg = loaded

	if cfg.UI.Verbose {
		verbose = true
	}
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
}

// cmdContext returns the base context for command execution. Signal-driven
// cancellation is handled by fang.
func cmdContext() context.Context {
	return context.Background()
}

// formatErrorForDisplay renders an error for terminal output, preferring the
// actionable form with suggestions when available.
func formatErrorForDisplay(err error, verbose bool) string {
	var actionable *issue.ActionableError
	if errors.As(err, &actionable) {
		return actionable.Format(verbose)
	}
	return err.Error()
}
