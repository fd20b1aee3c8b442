// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

type (
	// Invocation describes one engine subprocess launch.
	Invocation struct {
		// Binary is the engine executable name or path.
		Binary string
		// Args are the arguments passed to the binary.
		Args []string
		// Stdin is written to the subprocess's standard input, which is then
		// closed.
		Stdin string
		// Dir is the working directory for the subprocess.
		Dir string
		// Env is the execution environment the subprocess runs under.
		Env ExecutionEnvironment
	}

	// Result captures a finished subprocess: both streams are collected fully
	// before the result is produced.
	Result struct {
		ExitCode int
		Stdout   string
		Stderr   string
	}

	// Runner launches an engine invocation and waits for it to finish. A
	// non-zero exit is reported through Result.ExitCode, not as an error;
	// errors mean the process could not be run at all.
	Runner interface {
		Run(ctx context.Context, inv Invocation) (*Result, error)
	}
)

// commandLine renders the invocation as a shell command string with every
// token quoted, suitable for `sh -c` or the embedded interpreter.
func (inv Invocation) commandLine() (string, error) {
	tokens := make([]string, 0, len(inv.Args)+1)
	for _, tok := range append([]string{inv.Binary}, inv.Args...) {
		quoted, err := syntax.Quote(tok, syntax.LangPOSIX)
		if err != nil {
			return "", fmt.Errorf("quote argument %q: %w", tok, err)
		}
		tokens = append(tokens, quoted)
	}
	return strings.Join(tokens, " "), nil
}
