// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// configCmd groups configuration subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect funcview configuration",
}

// configShowCmd prints the effective configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		encoded, err := toml.Marshal(map[string]any{
			"engine": map[string]any{
				"binary":           cfg.Engine.Binary,
				"query_subcommand": cfg.Engine.QuerySubcommand,
				"vars_flag":        cfg.Engine.VarsFlag,
				"runtime":          string(cfg.Engine.Runtime),
				"marker_file":      cfg.Engine.MarkerFile,
			},
			"shell": map[string]any{
				"path":          cfg.Shell.Path,
				"login_flag":    cfg.Shell.LoginFlag,
				"path_override": cfg.Shell.PathOverride,
			},
			"cache": map[string]any{
				"enabled": cfg.Cache.Enabled,
				"dir":     cfg.Cache.Dir,
			},
			"ui": map[string]any{
				"verbose": cfg.UI.Verbose,
			},
		})
		if err != nil {
			return err
		}

		fmt.Println(TitleStyle.Render("Effective Configuration"))
		fmt.Println()
		fmt.Print(string(encoded))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
