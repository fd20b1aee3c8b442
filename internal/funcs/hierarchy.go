// SPDX-License-Identifier: MPL-2.0

package funcs

import (
	"strings"

	"golang.org/x/exp/slices"
)

// RootState classifies the outcome of root-module detection.
type RootState int

const (
	// NoRoot means no module prefixes any other module.
	NoRoot RootState = iota
	// SingleRoot means exactly one module prefixes others and is treated as
	// the workspace root namespace.
	SingleRoot
	// AmbiguousRoot means two or more modules each prefix others, so no root
	// is designated and all modules are treated as flat.
	AmbiguousRoot
)

// String returns a human-readable state name.
func (s RootState) String() string {
	switch s {
	case NoRoot:
		return "no root"
	case SingleRoot:
		return "single root"
	case AmbiguousRoot:
		return "ambiguous"
	default:
		return "unknown"
	}
}

// RootDetection is the result of inferring a root module from raw module
// names. The inference is heuristic: two unrelated modules that happen to
// share a name prefix are indistinguishable from a real parent/child pair,
// which is why the ambiguous case is reported rather than guessed at.
type RootDetection struct {
	// State classifies the outcome.
	State RootState
	// Root is the designated root module name when State is SingleRoot.
	Root string
	// Candidates lists every module whose name strictly prefixes another,
	// sorted for deterministic output.
	Candidates []string
}

// DetectRoot inspects raw module names and designates a root module iff
// exactly one module's name is a strict, non-empty prefix of at least one
// other module's name. It is a pure function of the name list.
func DetectRoot(names []string) RootDetection {
	var candidates []string
	for _, name := range names {
		if name == "" {
			continue
		}
		if prefixesAnother(name, names) {
			candidates = append(candidates, name)
		}
	}
	slices.Sort(candidates)
	candidates = slices.Compact(candidates)

	switch len(candidates) {
	case 0:
		return RootDetection{State: NoRoot}
	case 1:
		return RootDetection{State: SingleRoot, Root: candidates[0], Candidates: candidates}
	default:
		return RootDetection{State: AmbiguousRoot, Candidates: candidates}
	}
}

// prefixesAnother reports whether name is a strict prefix of some longer
// name in the list.
func prefixesAnother(name string, names []string) bool {
	for _, other := range names {
		if len(other) > len(name) && strings.HasPrefix(other, name) {
			return true
		}
	}
	return false
}

// longestParent returns the longest other module name that strictly prefixes
// name, and whether one exists. Longest-prefix-match: with modules "app" and
// "app-cli" both prefixing "app-cli-extras", the parent is "app-cli".
func longestParent(name string, names []string) (string, bool) {
	parent := ""
	found := false
	for _, other := range names {
		if other == "" || other == name {
			continue
		}
		if len(other) < len(name) && strings.HasPrefix(name, other) && len(other) > len(parent) {
			parent = other
			found = true
		}
	}
	return parent, found
}

// moduleDisplayName computes the module name shown to users. Parent modules
// collapse to the empty string; children of the root or of an inferred parent
// shed that prefix plus any leading separators; standalone modules keep their
// raw name. Non-empty results are kebab-cased.
func moduleDisplayName(raw string, isParent bool, root RootDetection, parent string) string {
	if isParent {
		return ""
	}

	name := raw
	switch {
	case root.State == SingleRoot && raw != root.Root && strings.HasPrefix(raw, root.Root):
		name = strings.TrimLeft(strings.TrimPrefix(raw, root.Root), "-_")
	case parent != "":
		name = strings.TrimLeft(strings.TrimPrefix(raw, parent), "-_")
	}

	if name == "" {
		return ""
	}
	return ToKebabCase(name)
}
