// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"funcview-cli/internal/funcs"
	"funcview-cli/internal/workspace"
)

// describeCmd shows one function's full signature and description
var describeCmd = &cobra.Command{
	Use:   "describe <function-name> [workspace-path]",
	Short: "Show one function's arguments, types, and description",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return describeFunction(args[0], args[1:])
	},
}

// describeFunction renders a single function as markdown.
func describeFunction(name string, pathArgs []string) error {
	workspacePath, err := resolveWorkspaceArg(pathArgs)
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

	matches := findFunctions(list, name)
	if len(matches) == 0 {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+fmt.Sprintf("function %q not found", name))
		return &ExitError{Code: 1, Err: fmt.Errorf("function %q not found", name)}
	}

	var md strings.Builder
	for _, fn := range matches {
		md.WriteString(functionMarkdown(fn))
	}

	rendered, err := glamour.Render(md.String(), "dark")
	if err != nil {
		// Fall back to plain markdown when the terminal renderer fails.
		fmt.Print(md.String())
		return nil
	}
	fmt.Print(rendered)
	return nil
}

// findFunctions returns every function matching name. Display names are not
// unique across modules, so a bare name can legitimately match more than
// once; "module/name" narrows to one module.
func findFunctions(list []funcs.FunctionInfo, name string) []funcs.FunctionInfo {
	module, bare, qualified := "", name, false
	if before, after, ok := strings.Cut(name, "/"); ok {
		module, bare, qualified = before, after, true
	}

	var matches []funcs.FunctionInfo
	for _, fn := range list {
		if fn.Name != bare {
			continue
		}
		if qualified && fn.Module != module {
			continue
		}
		matches = append(matches, fn)
	}
	return matches
}

// functionMarkdown renders one function as a markdown fragment.
func functionMarkdown(fn funcs.FunctionInfo) string {
	var md strings.Builder

	title := fn.Name
	if fn.Module != "" {
		title = fn.Module + "/" + fn.Name
	}
	fmt.Fprintf(&md, "# %s\n\n", title)

	if fn.Description != "" {
		md.WriteString(fn.Description)
		md.WriteString("\n\n")
	}

	fmt.Fprintf(&md, "Returns: `%s`\n\n", fn.ReturnType)

	if len(fn.Args) > 0 {
		md.WriteString("## Arguments\n\n")
		for _, arg := range fn.Args {
			requirement := "optional"
			if arg.Required {
				requirement = "required"
			}
			fmt.Fprintf(&md, "- `%s` (%s, %s)\n", arg.Name, arg.Type, requirement)
		}
		md.WriteString("\n")
	}

	return md.String()
}
