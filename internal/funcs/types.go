// SPDX-License-Identifier: MPL-2.0

package funcs

import "encoding/json"

type (
	// FunctionInfo describes one callable function discovered in a workspace.
	// It is the stable output entity consumed by the CLI layer and cached
	// between runs.
	FunctionInfo struct {
		// Name is the kebab-case display name used for invocation.
		// Display names are not unique: collapsed module naming can produce
		// the same name in two different modules.
		Name string `json:"name"`
		// Description is the function's own description, if the engine
		// provided one.
		Description string `json:"description,omitempty"`
		// FunctionID is the engine's opaque identifier for the function.
		// It is the stable identity used by all downstream consumers, never
		// the display name.
		FunctionID string `json:"functionId"`
		// Module is the kebab-case display name of the owning module. It is
		// empty when the owning module is a parent module, so that top-level
		// functions render at the top level of any consuming tree.
		Module string `json:"module"`
		// IsParentModule reports whether the owning module is a prefix of at
		// least one other module in the same workspace.
		IsParentModule bool `json:"isParentModule"`
		// ParentModule is the kebab-case name of the inferred parent module,
		// or empty when the owning module has none.
		ParentModule string `json:"parentModule,omitempty"`
		// ReturnType is the normalized display name of the return type.
		ReturnType string `json:"returnType"`
		// Args lists the function's arguments in declaration order.
		Args []ArgumentInfo `json:"args"`
	}

	// ArgumentInfo describes one typed argument of a function.
	ArgumentInfo struct {
		// Name is the kebab-case argument name.
		Name string `json:"name"`
		// Type is the normalized display name of the argument type.
		Type string `json:"type"`
		// Required reports whether the argument must be supplied.
		Required bool `json:"required"`
	}

	// TypeDescriptor is the engine's heterogeneous type encoding. On the wire
	// it is either a bare string kind or an object carrying a kind, an
	// optional concrete named type, and an optionality flag.
	TypeDescriptor struct {
		// Kind is the raw kind string (e.g. "STRING_KIND", "OBJECT_STRING").
		Kind string
		// ObjectName is the concrete named type (e.g. "Container") when the
		// descriptor carries one. It is authoritative over Kind.
		ObjectName string
		// Optional is the engine's optionality flag, when present.
		Optional *bool
	}
)

// UnmarshalJSON accepts both descriptor encodings: a bare JSON string kind,
// or an object of the form {"kind": ..., "optional": ..., "asObject": {"name": ...}}.
// A JSON null leaves the descriptor zero-valued, which normalizes to "unknown".
func (t *TypeDescriptor) UnmarshalJSON(data []byte) error {
	var kind string
	if err := json.Unmarshal(data, &kind); err == nil {
		t.Kind = kind
		return nil
	}

	var obj struct {
		Kind     string `json:"kind"`
		Optional *bool  `json:"optional"`
		AsObject *struct {
			Name string `json:"name"`
		} `json:"asObject"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	t.Kind = obj.Kind
	t.Optional = obj.Optional
	if obj.AsObject != nil {
		t.ObjectName = obj.AsObject.Name
	}
	return nil
}

// --- Raw wire types (one resolver call only, never retained) ---

type (
	// rawObjectEntry is one element of the objects array returned by the
	// module query. Entries without an asObject payload are skipped.
	rawObjectEntry struct {
		AsObject *rawModule `json:"asObject"`
	}

	// rawModule is a named grouping of functions as the engine reports it.
	rawModule struct {
		Name      string        `json:"name"`
		Functions []rawFunction `json:"functions"`
	}

	// rawFunction is one function as the engine reports it.
	rawFunction struct {
		ID          string          `json:"id"`
		Name        string          `json:"name"`
		Description string          `json:"description"`
		ReturnType  *TypeDescriptor `json:"returnType"`
		Args        []rawArgument   `json:"args"`
	}

	// rawArgument is one typed argument as the engine reports it.
	rawArgument struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		TypeDef     *TypeDescriptor `json:"typeDef"`
	}
)
