// SPDX-License-Identifier: MPL-2.0

// Package engine drives the build engine's CLI as a subprocess.
//
// Query documents are written to the subprocess's standard input rather than
// passed as arguments, which sidesteps argument-length and escaping limits;
// the variable map travels JSON-encoded in a flag. Two runners are available:
// the native runner launches the engine through the configured system shell
// (or directly when none is configured), and the virtual runner executes it
// through the embedded mvdan/sh interpreter, which behaves identically on
// hosts with no usable shell.
package engine
