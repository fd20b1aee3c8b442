// SPDX-License-Identifier: MPL-2.0

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
)

// Entry is the stored unit: the serialized value together with the content
// hash recorded when it was written.
type Entry struct {
	Data        json.RawMessage `json:"data"`
	ContentHash string          `json:"contentHash"`
}

// Store is a content-hash-keyed cache over a Backend. Values are stored as
// JSON alongside a digest of their canonical serialization so callers can ask
// whether new data actually differs before overwriting.
type Store struct {
	backend Backend
	logger  *log.Logger
}

// NewStore creates a store over the given backend. A nil logger falls back to
// the package default.
func NewStore(backend Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{backend: backend, logger: logger}
}

// Get loads the value stored under key into out. It reports whether the key
// existed.
func (s *Store) Get(key string, out any) (bool, error) {
	raw, ok, err := s.backend.Get(key)
	if err != nil {
		return false, fmt.Errorf("cache get %q: %w", key, err)
	}
	if !ok {
		return false, nil
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return false, fmt.Errorf("decode cache entry %q: %w", key, err)
	}
	if err := json.Unmarshal(entry.Data, out); err != nil {
		return false, fmt.Errorf("decode cached value %q: %w", key, err)
	}
	return true, nil
}

// Set stores value under key together with its content hash. The entry is
// written as one backend value, so readers never observe data without its
// hash.
func (s *Store) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value %q: %w", key, err)
	}
	hash, err := contentHash(value)
	if err != nil {
		return fmt.Errorf("hash cache value %q: %w", key, err)
	}

	entry, err := json.Marshal(Entry{Data: data, ContentHash: hash})
	if err != nil {
		return fmt.Errorf("encode cache entry %q: %w", key, err)
	}
	if err := s.backend.Set(key, entry); err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}

	s.logger.Debug("cache entry written", "key", key, "hash", hash)
	return nil
}

// Remove deletes the entry under key, if any.
func (s *Store) Remove(key string) error {
	if err := s.backend.Delete(key); err != nil {
		return fmt.Errorf("cache remove %q: %w", key, err)
	}
	return nil
}

// Clear deletes every entry in the store.
func (s *Store) Clear() error {
	keys, err := s.backend.Keys()
	if err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	for _, key := range keys {
		if err := s.backend.Delete(key); err != nil {
			return fmt.Errorf("cache clear %q: %w", key, err)
		}
	}
	s.logger.Debug("cache cleared", "entries", len(keys))
	return nil
}

// Has reports whether key is present.
func (s *Store) Has(key string) (bool, error) {
	_, ok, err := s.backend.Get(key)
	if err != nil {
		return false, fmt.Errorf("cache has %q: %w", key, err)
	}
	return ok, nil
}

// Keys returns every stored key.
func (s *Store) Keys() ([]string, error) {
	return s.backend.Keys()
}

// ContentHash returns the hash recorded for key, and whether the key exists.
func (s *Store) ContentHash(key string) (string, bool, error) {
	raw, ok, err := s.backend.Get(key)
	if err != nil {
		return "", false, fmt.Errorf("cache hash %q: %w", key, err)
	}
	if !ok {
		return "", false, nil
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return "", false, fmt.Errorf("decode cache entry %q: %w", key, err)
	}
	return entry.ContentHash, true, nil
}

// HasDataChanged reports whether value differs in content from what is stored
// under key. A key with no recorded hash always reports changed.
func (s *Store) HasDataChanged(key string, value any) (bool, error) {
	stored, ok, err := s.ContentHash(key)
	if err != nil {
		return false, err
	}
	if !ok || stored == "" {
		return true, nil
	}

	hash, err := contentHash(value)
	if err != nil {
		return false, fmt.Errorf("hash cache value %q: %w", key, err)
	}
	return hash != stored, nil
}

// contentHash digests the canonical serialization of value. The value is
// round-tripped through generic JSON before hashing because encoding/json
// emits map keys in sorted order, making the digest independent of struct
// field ordering.
func contentHash(value any) (string, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return "", err
	}

	var generic any
	if err := json.Unmarshal(encoded, &generic); err != nil {
		return "", err
	}
	canonical, err := json.Marshal(generic)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// Key derives a stable cache key from a fixed prefix and an arbitrary
// qualifier (typically a filesystem path). The digest form keeps keys safe
// for any storage backend regardless of what characters the qualifier
// contains.
func Key(prefix, qualifier string) string {
	sum := sha256.Sum256([]byte(prefix + ":" + qualifier))
	return prefix + ":" + hex.EncodeToString(sum[:])
}
