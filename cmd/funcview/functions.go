// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"funcview-cli/internal/funcs"
	"funcview-cli/internal/workspace"
)

// jsonFlag controls raw JSON output for the functions command
var jsonFlag bool

// functionsCmd lists the functions the workspace's module exposes
var functionsCmd = &cobra.Command{
	Use:   "functions [workspace-path]",
	Short: "List the functions the workspace exposes",
	Long: `List the callable functions the engine reports for a workspace.

The workspace defaults to the current directory. Functions are grouped
by module; functions of a parent module render at the top level.

Results come from the discovery cache when available, with a background
refresh keeping them current.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return listFunctions(args)
	},
}

func init() {
	functionsCmd.Flags().BoolVar(&jsonFlag, "json", false, "emit the raw function list as JSON")
}

// resolveWorkspaceArg turns the optional positional argument into an
// absolute workspace path.
func resolveWorkspaceArg(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve workspace path %q: %w", dir, err)
	}
	return abs, nil
}

// listFunctions discovers and prints the workspace's functions.
func listFunctions(args []string) error {
	workspacePath, err := resolveWorkspaceArg(args)
	if err != nil {
		return err
	}

	if !workspace.IsProject(workspacePath, cfg.Engine.MarkerFile) {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Not an engine workspace: ")+
			SubtitleStyle.Render(fmt.Sprintf("no %s found in %s", cfg.Engine.MarkerFile, workspacePath)))
		return nil
	}

	svc, cleanup, err := newDiscoveryService(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}
	defer cleanup()

	list, err := svc.ListFunctions(cmdContext(), workspacePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}

	if jsonFlag {
		encoded, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
		return nil
	}

	renderFunctions(list)
	return nil
}

// renderFunctions prints the function list grouped by module, top-level
// functions first.
func renderFunctions(list []funcs.FunctionInfo) {
	if len(list) == 0 {
		fmt.Println(SubtitleStyle.Render("No functions found in this workspace."))
		return
	}

	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	moduleStyle := SubtitleStyle.Italic(true)

	byModule := make(map[string][]funcs.FunctionInfo)
	for _, fn := range list {
		byModule[fn.Module] = append(byModule[fn.Module], fn)
	}

	modules := make([]string, 0, len(byModule))
	for module := range byModule {
		modules = append(modules, module)
	}
	// Empty module first (top-level functions), then alphabetical.
	sort.Strings(modules)

	fmt.Println(TitleStyle.Render("Available Functions"))
	fmt.Println()

	for _, module := range modules {
		if module != "" {
			fmt.Println(moduleStyle.Render(module + ":"))
		}
		for _, fn := range byModule[module] {
			line := "  " + FuncStyle.Render(fn.Name)
			for _, arg := range fn.Args {
				if arg.Required {
					line += " " + descStyle.Render("<"+arg.Name+">")
				} else {
					line += " " + descStyle.Render("["+arg.Name+"]")
				}
			}
			fmt.Println(line)
			if fn.Description != "" {
				fmt.Println("      " + descStyle.Render(firstLine(fn.Description)))
			}
		}
		fmt.Println()
	}
}

// firstLine truncates a description to its first line for list output.
func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
