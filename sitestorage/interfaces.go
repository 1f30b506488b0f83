// Package sitestorage persists site documents outside the edit session: the
// durable draft cache written after every edit, and the published snapshot
// store the publish payload is handed to. Both sit on small keyed blob
// adapters with memory, file and redis implementations.
package sitestorage

import (
	"context"

	"github.com/indyavik/theme-1-multi-site/sitedoc"
)

// Adapter is a minimal keyed blob store.
type Adapter interface {
	// Put stores data under key, replacing any previous value.
	Put(ctx context.Context, key string, data []byte) error
	// Get returns the data stored under key, or common.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// List returns all stored keys.
	List(ctx context.Context) ([]string, error)
}

// DocumentSerializer converts documents to and from their stored form.
type DocumentSerializer interface {
	Serialize(doc *sitedoc.Document) ([]byte, error)
	Deserialize(data []byte) (*sitedoc.Document, error)
}
