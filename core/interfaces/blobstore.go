// ABOUTME: BlobStore is the key-value store backing the user favorites record
// ABOUTME: Writes are revision-checked so concurrent writers surface as conflicts

package interfaces

import "context"

// Blob is one stored value together with the revision it was read at
type Blob struct {
	// Content is the opaque blob payload
	Content string

	// Revision identifies the stored version; it is passed back on writes
	// for optimistic concurrency
	Revision string
}

// BlobStore is the key-value store behind the favorites record.
//
// Get returns a NotFoundError when the key is absent. Put and Delete take
// the revision the caller last read; a mismatch with the server's current
// revision fails with a ConflictError. An empty ifRevision on Put means the
// blob must not exist yet. Implementations may also fail with
// NotAuthorizedError.
type BlobStore interface {
	// Get retrieves the blob stored under key
	Get(ctx context.Context, key string) (*Blob, error)

	// Put stores content under key, guarded by ifRevision, and returns
	// the new revision
	Put(ctx context.Context, key string, content string, ifRevision string) (string, error)

	// Delete removes the blob under key, guarded by ifRevision.
	// Deleting an absent key returns nil.
	Delete(ctx context.Context, key string, ifRevision string) error
}
