package storage

import "errors"

// ErrKeyNotFound is returned by Get when no record exists for a key.
var ErrKeyNotFound = errors.New("key not found")

// Entry is one key/value pair of a batch write.
type Entry struct {
	Key   string
	Value interface{}
}

// Store is the key-value contract all backends implement. Values are
// marshalled to JSON on the way in and unmarshalled on the way out.
type Store interface {
	// Set stores a value for a key, overwriting any previous value.
	Set(key string, value interface{}) error
	// SetBatch stores all entries atomically: either every entry is
	// written or none is.
	SetBatch(entries []Entry) error
	// Get retrieves a value for a key into the given pointer.
	// Returns an error wrapping ErrKeyNotFound when the key is absent.
	Get(key string, value interface{}) error
	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error
	// List returns all keys with a given prefix.
	List(prefix string) ([]string, error)
	// Close releases the backend's resources.
	Close() error
}

// IsNotFound reports whether an error means the key was absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}
