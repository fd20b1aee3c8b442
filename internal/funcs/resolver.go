// SPDX-License-Identifier: MPL-2.0

package funcs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
)

// directoryIDQuery resolves a workspace path to the engine's opaque
// content-addressed directory handle.
const directoryIDQuery = `query WorkspaceDirectory($path: String!) {
  host {
    directory(path: $path) {
      id
    }
  }
}`

// moduleFunctionsQuery loads the directory behind a handle as a module and
// returns its objects with nested functions, argument lists, and type
// descriptors.
const moduleFunctionsQuery = `query ModuleFunctions($directoryID: DirectoryID!) {
  loadDirectoryFromID(id: $directoryID) {
    asModule {
      objects {
        asObject {
          name
          functions {
            id
            name
            description
            returnType {
              kind
              asObject {
                name
              }
            }
            args {
              name
              description
              typeDef {
                kind
                optional
                asObject {
                  name
                }
              }
            }
          }
        }
      }
    }
  }
}`

// QueryClient executes one engine query document against a working directory.
// The engine CLI client in internal/engine satisfies this; tests substitute
// stubs.
type QueryClient interface {
	Query(ctx context.Context, document string, vars map[string]any, workdir string) (json.RawMessage, error)
}

// Resolver turns a workspace path into the list of functions its engine
// module exposes. It issues the two fixed queries, infers the module
// hierarchy from name prefixes, and normalizes names and types for display.
type Resolver struct {
	client QueryClient
	logger *log.Logger
}

// NewResolver creates a resolver over the given query client. A nil logger
// falls back to the package default.
func NewResolver(client QueryClient, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{client: client, logger: logger}
}

// Resolve discovers the functions exposed by the workspace at path.
//
// A workspace the engine cannot resolve to a directory handle, or one whose
// module exposes no objects, yields an empty list and no error. Failures of
// the engine subprocess or malformed responses are returned as errors rather
// than collapsed into an empty result, so callers can tell "nothing found"
// from "tool failed".
func (r *Resolver) Resolve(ctx context.Context, workspacePath string) ([]FunctionInfo, error) {
	directoryID, err := r.resolveDirectoryID(ctx, workspacePath)
	if err != nil {
		return nil, err
	}
	if directoryID == "" {
		r.logger.Debug("workspace has no directory handle", "path", workspacePath)
		return nil, nil
	}

	modules, err := r.fetchModules(ctx, directoryID, workspacePath)
	if err != nil {
		return nil, err
	}
	if len(modules) == 0 {
		r.logger.Debug("workspace module exposes no objects", "path", workspacePath)
		return nil, nil
	}

	return r.assemble(modules), nil
}

// resolveDirectoryID runs the directory query. An absent id field is not an
// error: it means the engine has no handle for the path.
func (r *Resolver) resolveDirectoryID(ctx context.Context, workspacePath string) (string, error) {
	raw, err := r.client.Query(ctx, directoryIDQuery, map[string]any{"path": workspacePath}, workspacePath)
	if err != nil {
		return "", fmt.Errorf("resolve workspace directory: %w", err)
	}

	var payload struct {
		Host struct {
			Directory struct {
				ID string `json:"id"`
			} `json:"directory"`
		} `json:"host"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("decode directory response: %w", err)
	}

	return payload.Host.Directory.ID, nil
}

// fetchModules runs the module query and filters out null object entries.
func (r *Resolver) fetchModules(ctx context.Context, directoryID, workspacePath string) ([]rawModule, error) {
	raw, err := r.client.Query(ctx, moduleFunctionsQuery, map[string]any{"directoryID": directoryID}, workspacePath)
	if err != nil {
		return nil, fmt.Errorf("load module functions: %w", err)
	}

	var payload struct {
		LoadDirectoryFromID struct {
			AsModule struct {
				Objects []rawObjectEntry `json:"objects"`
			} `json:"asModule"`
		} `json:"loadDirectoryFromID"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode module response: %w", err)
	}

	var modules []rawModule
	for _, entry := range payload.LoadDirectoryFromID.AsModule.Objects {
		if entry.AsObject == nil {
			continue
		}
		modules = append(modules, *entry.AsObject)
	}
	return modules, nil
}

// assemble applies the hierarchy heuristic and the name/type normalizers to
// the raw modules, producing the final function list.
func (r *Resolver) assemble(modules []rawModule) []FunctionInfo {
	names := make([]string, len(modules))
	for i, m := range modules {
		names[i] = m.Name
	}

	root := DetectRoot(names)
	if root.State == AmbiguousRoot {
		r.logger.Debug("ambiguous root modules, treating all as standalone", "candidates", root.Candidates)
	}

	var out []FunctionInfo
	for _, module := range modules {
		if len(module.Functions) == 0 {
			r.logger.Warn("module object has no functions, skipping", "module", module.Name)
			continue
		}

		isParent := prefixesAnother(module.Name, names) && module.Name != ""

		parent := ""
		if !isParent {
			parent, _ = longestParent(module.Name, names)
		}

		display := moduleDisplayName(module.Name, isParent, root, parent)

		parentDisplay := ""
		if parent != "" {
			parentDisplay = ToKebabCase(parent)
		}

		for _, fn := range module.Functions {
			out = append(out, FunctionInfo{
				Name:           ToKebabCase(fn.Name),
				Description:    fn.Description,
				FunctionID:     fn.ID,
				Module:         display,
				IsParentModule: isParent,
				ParentModule:   parentDisplay,
				ReturnType:     NormalizeType(fn.ReturnType),
				Args:           assembleArgs(fn.Args),
			})
		}
	}
	return out
}

// assembleArgs maps raw arguments to their display form. The result is never
// nil so cached entries round-trip with a stable shape.
func assembleArgs(raw []rawArgument) []ArgumentInfo {
	args := make([]ArgumentInfo, 0, len(raw))
	for _, a := range raw {
		args = append(args, ArgumentInfo{
			Name:     ToKebabCase(a.Name),
			Type:     NormalizeType(a.TypeDef),
			Required: argRequired(a.TypeDef, a.Description),
		})
	}
	return args
}
