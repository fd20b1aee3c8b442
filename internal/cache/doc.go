// SPDX-License-Identifier: MPL-2.0

// Package cache provides a content-hash-keyed persistent store for discovery
// results.
//
// The Store is a thin adapter over a pluggable key/value Backend and must not
// assume any particular backing implementation: BadgerBackend persists between
// runs, MemoryBackend backs tests and cache-disabled operation. Staleness is
// detected by content, not age: every Set records a SHA-256 digest of a
// canonical (key-sorted) serialization of the value, so field reordering never
// registers as a change and no entry ever expires by time.
package cache
