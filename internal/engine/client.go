// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultBinary is the engine CLI executable.
	DefaultBinary = "dagger"
	// DefaultQuerySubcommand is the subcommand that accepts a query document
	// on standard input.
	DefaultQuerySubcommand = "query"
	// DefaultVarsFlag carries the JSON-encoded variable map.
	DefaultVarsFlag = "--var-json"

	// versionTimeout bounds the version probe. Query has no such bound: a
	// module query can legitimately run for minutes while the engine builds,
	// so callers needing bounded latency must wrap Query externally.
	versionTimeout = 10 * time.Second
)

// Client executes query documents against the engine CLI.
type Client struct {
	// Binary is the engine executable. Defaults to DefaultBinary.
	Binary string
	// Subcommand is the query subcommand. Defaults to DefaultQuerySubcommand.
	Subcommand string
	// VarsFlag is the flag carrying serialized variables. Defaults to
	// DefaultVarsFlag.
	VarsFlag string
	// Env is the execution environment invocations run under.
	Env ExecutionEnvironment
	// Runner launches the subprocess. Defaults to the native runner.
	Runner Runner
	// Logger receives per-invocation debug output. Defaults to the package
	// default logger.
	Logger *log.Logger
}

// Query runs one query document in workdir and returns the engine's JSON
// payload. The document goes to the subprocess's standard input; variables
// travel JSON-encoded in the vars flag. Both output streams are collected
// fully before the result is produced. A non-zero exit yields a
// *SubprocessError carrying stderr; unparseable output yields a
// *MalformedResponseError. No timeout is enforced here.
func (c *Client) Query(ctx context.Context, document string, vars map[string]any, workdir string) (json.RawMessage, error) {
	varsJSON, err := json.Marshal(vars)
	if err != nil {
		return nil, fmt.Errorf("encode query variables: %w", err)
	}

	binary := c.binary()
	args := []string{c.subcommand(), c.varsFlag(), string(varsJSON)}

	c.logger().Debug("running engine query", "binary", binary, "dir", workdir)
	result, err := c.runner().Run(ctx, Invocation{
		Binary: binary,
		Args:   args,
		Stdin:  document,
		Dir:    workdir,
		Env:    c.Env,
	})
	if err != nil {
		return nil, err
	}

	if result.ExitCode != 0 {
		return nil, &SubprocessError{
			Binary:   binary,
			ExitCode: result.ExitCode,
			Stderr:   strings.TrimSpace(result.Stderr),
		}
	}

	payload := []byte(result.Stdout)
	if !json.Valid(payload) {
		return nil, &MalformedResponseError{Binary: binary}
	}
	return json.RawMessage(payload), nil
}

// Version probes the engine binary. Unlike Query this invocation is bounded:
// it is used for availability checks where hanging is worse than failing.
func (c *Client) Version(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	binary := c.binary()
	result, err := c.runner().Run(ctx, Invocation{
		Binary: binary,
		Args:   []string{"version"},
		Env:    c.Env,
	})
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", &SubprocessError{
			Binary:   binary,
			ExitCode: result.ExitCode,
			Stderr:   strings.TrimSpace(result.Stderr),
		}
	}
	return strings.TrimSpace(result.Stdout), nil
}

func (c *Client) binary() string {
	if c.Binary != "" {
		return c.Binary
	}
	return DefaultBinary
}

func (c *Client) subcommand() string {
	if c.Subcommand != "" {
		return c.Subcommand
	}
	return DefaultQuerySubcommand
}

func (c *Client) varsFlag() string {
	if c.VarsFlag != "" {
		return c.VarsFlag
	}
	return DefaultVarsFlag
}

func (c *Client) runner() Runner {
	if c.Runner != nil {
		return c.Runner
	}
	return NewNativeRunner()
}

func (c *Client) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}
