// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"funcview-cli/internal/funcs"
)

func TestResolveWorkspaceArg(t *testing.T) {
	t.Run("defaults to current directory", func(t *testing.T) {
		got, err := resolveWorkspaceArg(nil)
		if err != nil {
			t.Fatalf("resolveWorkspaceArg: %v", err)
		}
		if !filepath.IsAbs(got) {
			t.Errorf("path %q is not absolute", got)
		}
	})

	t.Run("positional argument made absolute", func(t *testing.T) {
		dir := t.TempDir()
		got, err := resolveWorkspaceArg([]string{dir})
		if err != nil {
			t.Fatalf("resolveWorkspaceArg: %v", err)
		}
		if got != dir {
			t.Errorf("path = %q, want %q", got, dir)
		}
	})
}

func sampleList() []funcs.FunctionInfo {
	return []funcs.FunctionInfo{
		{Name: "build", Module: "", FunctionID: "fn-1", ReturnType: "Container"},
		{Name: "test", Module: "cli", FunctionID: "fn-2", ReturnType: "String"},
		{Name: "test", Module: "server", FunctionID: "fn-3", ReturnType: "Void"},
	}
}

func TestFindFunctions(t *testing.T) {
	list := sampleList()

	t.Run("bare name matches across modules", func(t *testing.T) {
		matches := findFunctions(list, "test")
		if len(matches) != 2 {
			t.Fatalf("got %d matches, want 2", len(matches))
		}
	})

	t.Run("qualified name narrows to one module", func(t *testing.T) {
		matches := findFunctions(list, "cli/test")
		if len(matches) != 1 {
			t.Fatalf("got %d matches, want 1", len(matches))
		}
		if matches[0].FunctionID != "fn-2" {
			t.Errorf("matched %q, want fn-2", matches[0].FunctionID)
		}
	})

	t.Run("top-level function", func(t *testing.T) {
		matches := findFunctions(list, "build")
		if len(matches) != 1 || matches[0].FunctionID != "fn-1" {
			t.Fatalf("unexpected matches: %+v", matches)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if matches := findFunctions(list, "deploy"); len(matches) != 0 {
			t.Errorf("got %d matches, want 0", len(matches))
		}
	})

	t.Run("qualified mismatch", func(t *testing.T) {
		if matches := findFunctions(list, "cli/build"); len(matches) != 0 {
			t.Errorf("got %d matches, want 0", len(matches))
		}
	})
}

func TestFunctionMarkdown(t *testing.T) {
	fn := funcs.FunctionInfo{
		Name:        "deploy",
		Module:      "cli",
		Description: "Deploys the thing.",
		ReturnType:  "Container",
		Args: []funcs.ArgumentInfo{
			{Name: "source", Type: "Directory", Required: true},
			{Name: "tag", Type: "String", Required: false},
		},
	}

	md := functionMarkdown(fn)

	if !strings.Contains(md, "# cli/deploy") {
		t.Errorf("title missing module qualifier: %q", md)
	}
	if !strings.Contains(md, "Deploys the thing.") {
		t.Errorf("description missing: %q", md)
	}
	if !strings.Contains(md, "Returns: `Container`") {
		t.Errorf("return type missing: %q", md)
	}
	if !strings.Contains(md, "- `source` (Directory, required)") {
		t.Errorf("required arg missing: %q", md)
	}
	if !strings.Contains(md, "- `tag` (String, optional)") {
		t.Errorf("optional arg missing: %q", md)
	}
}

func TestFunctionMarkdownTopLevel(t *testing.T) {
	md := functionMarkdown(funcs.FunctionInfo{Name: "build", ReturnType: "Void"})
	if !strings.Contains(md, "# build\n") {
		t.Errorf("top-level title must be unqualified: %q", md)
	}
	if strings.Contains(md, "## Arguments") {
		t.Errorf("argument section must be omitted without args: %q", md)
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("one\ntwo"); got != "one" {
		t.Errorf("firstLine = %q, want %q", got, "one")
	}
	if got := firstLine("single"); got != "single" {
		t.Errorf("firstLine = %q, want %q", got, "single")
	}
}
