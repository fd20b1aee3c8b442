// SPDX-License-Identifier: MPL-2.0

package funcs

import (
	"reflect"
	"testing"
)

func TestDetectRoot(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  RootDetection
	}{
		{
			name:  "no modules",
			names: nil,
			want:  RootDetection{State: NoRoot},
		},
		{
			name:  "single module",
			names: []string{"App"},
			want:  RootDetection{State: NoRoot},
		},
		{
			name:  "unrelated modules",
			names: []string{"Alpha", "Beta"},
			want:  RootDetection{State: NoRoot},
		},
		{
			name:  "one root",
			names: []string{"App", "AppCli", "AppServer"},
			want:  RootDetection{State: SingleRoot, Root: "App", Candidates: []string{"App"}},
		},
		{
			name:  "two prefixing modules is ambiguous",
			names: []string{"App", "AppCli", "Tool", "ToolBox"},
			want:  RootDetection{State: AmbiguousRoot, Candidates: []string{"App", "Tool"}},
		},
		{
			name:  "chain counts both prefixes",
			names: []string{"App", "AppCli", "AppCliExtras"},
			want:  RootDetection{State: AmbiguousRoot, Candidates: []string{"App", "AppCli"}},
		},
		{
			name:  "empty name never a candidate",
			names: []string{"", "App", "AppCli"},
			want:  RootDetection{State: SingleRoot, Root: "App", Candidates: []string{"App"}},
		},
		{
			name:  "duplicate names do not double count",
			names: []string{"App", "App", "AppCli"},
			want:  RootDetection{State: SingleRoot, Root: "App", Candidates: []string{"App"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectRoot(tt.names)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DetectRoot(%v) = %+v, want %+v", tt.names, got, tt.want)
			}
		})
	}
}

func TestLongestParent(t *testing.T) {
	names := []string{"App", "AppCli", "AppCliExtras", "Tool"}

	tests := []struct {
		name      string
		module    string
		want      string
		wantFound bool
	}{
		{name: "direct child", module: "AppCli", want: "App", wantFound: true},
		{name: "longest prefix wins", module: "AppCliExtras", want: "AppCli", wantFound: true},
		{name: "no parent", module: "Tool", want: "", wantFound: false},
		{name: "self excluded", module: "App", want: "", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := longestParent(tt.module, names)
			if got != tt.want || found != tt.wantFound {
				t.Errorf("longestParent(%q) = (%q, %v), want (%q, %v)", tt.module, got, found, tt.want, tt.wantFound)
			}
		})
	}
}

func TestModuleDisplayName(t *testing.T) {
	singleRoot := RootDetection{State: SingleRoot, Root: "App", Candidates: []string{"App"}}
	noRoot := RootDetection{State: NoRoot}

	tests := []struct {
		name     string
		raw      string
		isParent bool
		root     RootDetection
		parent   string
		want     string
	}{
		{name: "parent collapses to empty", raw: "App", isParent: true, root: singleRoot, want: ""},
		{name: "root child sheds prefix", raw: "AppCli", root: singleRoot, parent: "App", want: "cli"},
		{name: "separator trimmed after strip", raw: "App-Server", root: singleRoot, parent: "App", want: "server"},
		{name: "standalone keeps own name", raw: "BuildTools", root: noRoot, want: "build-tools"},
		{name: "parent strip without root", raw: "ToolBox", root: noRoot, parent: "Tool", want: "box"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := moduleDisplayName(tt.raw, tt.isParent, tt.root, tt.parent)
			if got != tt.want {
				t.Errorf("moduleDisplayName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
