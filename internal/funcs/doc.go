// SPDX-License-Identifier: MPL-2.0

// Package funcs discovers the callable functions an engine workspace exposes
// and shapes them for display and invocation.
//
// This package intentionally combines two related concerns:
//   - Resolution: querying the engine for raw module objects and inferring the
//     module hierarchy from name prefixes
//   - Caching: the stale-while-revalidate policy layered over resolution
//
// These concerns are tightly coupled because the cache key, the cached value,
// and the refresh policy all depend on the resolver's output shape. Splitting
// them would create unnecessary indirection without meaningful abstraction
// benefit.
//
// File organization:
//   - types.go: FunctionInfo, ArgumentInfo, and the raw wire types
//   - kebab.go: identifier casing for invocation-ready names
//   - normalize.go: type descriptor normalization
//   - hierarchy.go: pure root/parent inference over raw module names
//   - resolver.go: the two engine queries and result assembly
//   - service.go: the caching front door (ListFunctions / ClearCache)
package funcs
