// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"reflect"
	"strings"
	"testing"

	"funcview-cli/internal/testutil"
)

func TestEnvironPathOverride(t *testing.T) {
	t.Cleanup(testutil.MustSetenv(t, "PATH", "/original/bin"))

	t.Run("no override keeps PATH", func(t *testing.T) {
		env := ExecutionEnvironment{}.Environ()
		if !containsEntry(env, "PATH=/original/bin") {
			t.Error("PATH missing from plain environment")
		}
	})

	t.Run("override replaces PATH", func(t *testing.T) {
		env := ExecutionEnvironment{PathOverride: "/custom/bin"}.Environ()
		if !containsEntry(env, "PATH=/custom/bin") {
			t.Error("override PATH missing")
		}
		if containsEntry(env, "PATH=/original/bin") {
			t.Error("original PATH survived the override")
		}
	})
}

func containsEntry(env []string, entry string) bool {
	for _, kv := range env {
		if kv == entry {
			return true
		}
	}
	return false
}

func TestShellArgs(t *testing.T) {
	tests := []struct {
		name string
		env  ExecutionEnvironment
		want []string
	}{
		{
			name: "plain shell",
			env:  ExecutionEnvironment{ShellPath: "/bin/sh"},
			want: []string{"-c", "dagger version"},
		},
		{
			name: "login shell",
			env:  ExecutionEnvironment{ShellPath: "/bin/bash", LoginShellFlag: "-l"},
			want: []string{"-l", "-c", "dagger version"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.env.shellArgs("dagger version")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("shellArgs = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInvocationCommandLine(t *testing.T) {
	inv := Invocation{
		Binary: "dagger",
		Args:   []string{"query", "--var-json", `{"path":"/my proj"}`},
	}

	line, err := inv.commandLine()
	if err != nil {
		t.Fatalf("commandLine: %v", err)
	}
	if !strings.HasPrefix(line, "dagger query ") {
		t.Errorf("command line = %q", line)
	}
	// The JSON payload contains a space and quotes and must arrive as one
	// shell token.
	if !strings.Contains(line, `'{"path":"/my proj"}'`) {
		t.Errorf("vars payload not quoted as one token: %q", line)
	}
}
