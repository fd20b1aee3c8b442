// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cacheCmd groups cache maintenance subcommands
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the discovery cache",
}

// cacheClearCmd drops every cached discovery result
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop all cached discovery results",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.Cache.Enabled {
			fmt.Println(SubtitleStyle.Render("Caching is disabled; nothing to clear."))
			return nil
		}

		store, cleanup, err := openCacheStore(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
			return &ExitError{Code: 1, Err: err}
		}
		defer cleanup()

		if err := store.Clear(); err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
			return &ExitError{Code: 1, Err: err}
		}
		fmt.Println("Discovery cache cleared.")
		return nil
	},
}

// cacheStatusCmd shows what the cache currently holds
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cached entries and their content hashes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.Cache.Enabled {
			fmt.Println(SubtitleStyle.Render("Caching is disabled."))
			return nil
		}

		store, cleanup, err := openCacheStore(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
			return &ExitError{Code: 1, Err: err}
		}
		defer cleanup()

		keys, err := store.Keys()
		if err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
			return &ExitError{Code: 1, Err: err}
		}

		fmt.Println(TitleStyle.Render("Discovery Cache"))
		fmt.Println(SubtitleStyle.Render(fmt.Sprintf("  directory: %s", cfg.Cache.Dir)))
		fmt.Println(SubtitleStyle.Render(fmt.Sprintf("  entries:   %d", len(keys))))

		for _, key := range keys {
			hash, ok, err := store.ContentHash(key)
			if err != nil || !ok {
				continue
			}
			fmt.Printf("  %s  %s\n", FuncStyle.Render(key), SubtitleStyle.Render(shortHash(hash)))
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
}

// shortHash abbreviates a content hash for display.
func shortHash(hash string) string {
	if len(hash) <= 12 {
		return hash
	}
	return hash[:12]
}
