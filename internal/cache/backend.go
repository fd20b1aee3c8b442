// SPDX-License-Identifier: MPL-2.0

package cache

// Backend is the durable key/value contract the Store adapts. Implementations
// must tolerate arbitrary byte values and report absence as a miss, not an
// error.
type Backend interface {
	// Get returns the value for key and whether it exists.
	Get(key string) ([]byte, bool, error)
	// Set stores value under key, overwriting any previous value.
	Set(key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	// Keys returns every stored key.
	Keys() ([]string, error)
}
