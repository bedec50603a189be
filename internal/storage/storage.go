package storage

// FileStore is an opaque key-addressed blob store for uploaded files.
// Keys are relative paths like "product_images/<uuid>.png".
type FileStore interface {
	// Put stores data under the given folder and returns the new key.
	Put(data []byte, ext, folder string) (string, error)
	// Delete removes the object for key. Deleting a missing key is not
	// an error.
	Delete(key string) error
	// URL derives the publicly resolvable URL for a key; empty key
	// yields an empty URL.
	URL(key string) string
}
