// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRunner executes the engine through the embedded mvdan/sh POSIX
// interpreter. It needs no shell on the host, so invocation behavior is
// identical everywhere; the interpreter still resolves the engine binary
// through PATH, which the execution environment may override.
type VirtualRunner struct{}

// NewVirtualRunner creates a virtual runner.
func NewVirtualRunner() *VirtualRunner {
	return &VirtualRunner{}
}

// Name returns the runner name.
func (r *VirtualRunner) Name() string {
	return "virtual"
}

// Run executes the invocation inside the interpreter and collects both
// output streams fully.
func (r *VirtualRunner) Run(ctx context.Context, inv Invocation) (*Result, error) {
	script, err := inv.commandLine()
	if err != nil {
		return nil, err
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(script), "engine")
	if err != nil {
		return nil, fmt.Errorf("parse engine command: %w", err)
	}

	var stdout, stderr bytes.Buffer
	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(inv.Env.Environ()...)),
		interp.StdIO(strings.NewReader(inv.Stdin), &stdout, &stderr),
	}
	if inv.Dir != "" {
		opts = append(opts, interp.Dir(inv.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create interpreter: %w", err)
	}

	err = runner.Run(ctx, prog)
	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitStatus interp.ExitStatus
		if !errors.As(err, &exitStatus) {
			return nil, fmt.Errorf("run %s: %w", inv.Binary, err)
		}
		result.ExitCode = int(exitStatus)
	}

	return result, nil
}
