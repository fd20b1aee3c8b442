// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// NativeRunner launches the engine as a regular subprocess. When the
// execution environment names a shell, the command is run through it
// (`shell [loginFlag] -c "..."`) so the user's profile and PATH apply;
// otherwise the binary is executed directly.
type NativeRunner struct{}

// NewNativeRunner creates a native runner.
func NewNativeRunner() *NativeRunner {
	return &NativeRunner{}
}

// Name returns the runner name.
func (r *NativeRunner) Name() string {
	return "native"
}

// Run executes the invocation and collects both output streams fully.
func (r *NativeRunner) Run(ctx context.Context, inv Invocation) (*Result, error) {
	var cmd *exec.Cmd
	if inv.Env.ShellPath != "" {
		script, err := inv.commandLine()
		if err != nil {
			return nil, err
		}
		cmd = exec.CommandContext(ctx, inv.Env.ShellPath, inv.Env.shellArgs(script)...)
	} else {
		cmd = exec.CommandContext(ctx, inv.Binary, inv.Args...)
	}

	cmd.Dir = inv.Dir
	cmd.Env = inv.Env.Environ()
	cmd.Stdin = strings.NewReader(inv.Stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("run %s: %w", inv.Binary, err)
		}
		result.ExitCode = exitErr.ExitCode()
	}

	return result, nil
}
