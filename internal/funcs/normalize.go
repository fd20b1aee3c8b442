// SPDX-License-Identifier: MPL-2.0

package funcs

import "strings"

// TypeUnknown is the display name for descriptors that carry no usable
// type information.
const TypeUnknown = "unknown"

// scalarNames maps lowercased kind remainders to friendly scalar names.
// Unrecognized remainders pass through unchanged so custom scalars keep
// their own names.
var scalarNames = map[string]string{
	"string":  "String",
	"int":     "Int",
	"integer": "Int",
	"float":   "Float",
	"double":  "Float",
	"boolean": "Boolean",
	"object":  "Object",
	"array":   "Array",
	"list":    "Array",
	"map":     "Object",
	"void":    "Void",
	"nil":     "Void",
	"null":    "Void",
}

// NormalizeType maps a heterogeneous type descriptor to a canonical display
// name. A concrete named type (asObject.name) is authoritative and returned
// verbatim; otherwise the kind string is decoded. A nil or empty descriptor
// yields "unknown".
func NormalizeType(td *TypeDescriptor) string {
	switch {
	case td == nil:
		return TypeUnknown
	case td.ObjectName != "":
		return td.ObjectName
	case td.Kind != "":
		return decodeKind(td.Kind)
	default:
		return TypeUnknown
	}
}

// decodeKind decodes an engine kind string into a friendly name. It tries,
// in order, stripping an "OBJECT_" prefix, a "KIND_" prefix, and a
// "_KIND"/"_kind" suffix, mapping the lowercased remainder through the
// scalar table. When none of those forms match, the whole string is matched
// uppercased against the direct scalar literals; anything still unmatched is
// returned unchanged, which preserves concrete named types that arrive as
// bare kind strings.
func decodeKind(kind string) string {
	if rest, ok := strings.CutPrefix(kind, "OBJECT_"); ok {
		return mapScalar(rest)
	}
	if rest, ok := strings.CutPrefix(kind, "KIND_"); ok {
		return mapScalar(rest)
	}
	if rest, ok := strings.CutSuffix(kind, "_KIND"); ok {
		return mapScalar(rest)
	}
	if rest, ok := strings.CutSuffix(kind, "_kind"); ok {
		return mapScalar(rest)
	}

	switch strings.ToUpper(kind) {
	case "STRING", "ID":
		return "String"
	case "INT", "INTEGER":
		return "Int"
	case "FLOAT":
		return "Float"
	case "BOOLEAN":
		return "Boolean"
	}

	return kind
}

// mapScalar lowercases a stripped kind remainder and maps it through the
// scalar table, passing unrecognized names through unchanged.
func mapScalar(rest string) string {
	lowered := strings.ToLower(rest)
	if friendly, ok := scalarNames[lowered]; ok {
		return friendly
	}
	return lowered
}

// requiredMarker is the literal an argument description may carry to signal
// that the argument is mandatory when the engine omits the optional flag.
const requiredMarker = "[required]"

// argRequired derives whether an argument must be supplied. The engine's
// optional flag is the primary signal when present; otherwise the description
// is checked for the "[required]" marker.
func argRequired(td *TypeDescriptor, description string) bool {
	if td != nil && td.Optional != nil {
		return !*td.Optional
	}
	return strings.Contains(description, requiredMarker)
}
