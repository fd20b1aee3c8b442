// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"os"
	"strings"
)

// ExecutionEnvironment carries the shell-related process state an invocation
// runs under. It is injected explicitly rather than read from ambient process
// state at call time, so tests and callers control exactly how the engine
// binary is launched.
type ExecutionEnvironment struct {
	// ShellPath is the shell to launch the engine through. Empty means the
	// engine binary is executed directly.
	ShellPath string
	// LoginShellFlag is an extra flag passed to the shell before -c
	// (typically "-l" so the shell loads the user's profile and PATH).
	// Ignored when ShellPath is empty.
	LoginShellFlag string
	// PathOverride replaces the PATH variable for the invocation when set.
	PathOverride string
}

// Environ returns the process environment for an invocation, with PATH
// replaced when an override is set.
func (e ExecutionEnvironment) Environ() []string {
	env := os.Environ()
	if e.PathOverride == "" {
		return env
	}

	out := make([]string, 0, len(env)+1)
	for _, kv := range env {
		if strings.HasPrefix(kv, "PATH=") {
			continue
		}
		out = append(out, kv)
	}
	return append(out, "PATH="+e.PathOverride)
}

// shellArgs returns the arguments that make the shell run script, including
// the login flag when configured.
func (e ExecutionEnvironment) shellArgs(script string) []string {
	var args []string
	if e.LoginShellFlag != "" {
		args = append(args, e.LoginShellFlag)
	}
	return append(args, "-c", script)
}
