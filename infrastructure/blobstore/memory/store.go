// ABOUTME: In-memory revision-checked blob store
// ABOUTME: The reference implementation of the optimistic-write contract, used in tests

package memory

import (
	"context"
	"strconv"
	"sync"

	cerrors "marketplace-client-api/core/errors"
	"marketplace-client-api/core/interfaces"
)

type entry struct {
	content  string
	revision string
}

// Store is an in-memory BlobStore with optimistic revision checks. It keeps
// the exact conflict semantics of the persistent implementations so tests
// exercise the same contract.
type Store struct {
	mu    sync.Mutex
	blobs map[string]entry
	seq   int
}

// New creates an empty store
func New() *Store {
	return &Store{blobs: make(map[string]entry)}
}

// Get retrieves the blob stored under key
func (s *Store) Get(ctx context.Context, key string) (*interfaces.Blob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.blobs[key]
	if !ok {
		return nil, &cerrors.NotFoundError{Resource: "blob", URI: key}
	}
	return &interfaces.Blob{Content: e.content, Revision: e.revision}, nil
}

// Put stores content under key, guarded by ifRevision
func (s *Store) Put(ctx context.Context, key, content, ifRevision string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.blobs[key]
	if exists && e.revision != ifRevision {
		return "", &cerrors.ConflictError{Key: key, Message: "revision mismatch"}
	}
	if !exists && ifRevision != "" {
		return "", &cerrors.ConflictError{Key: key, Message: "blob no longer exists"}
	}

	s.seq++
	rev := strconv.Itoa(s.seq)
	s.blobs[key] = entry{content: content, revision: rev}
	return rev, nil
}

// Delete removes the blob under key, guarded by ifRevision. Deleting an
// absent key is a no-op.
func (s *Store) Delete(ctx context.Context, key, ifRevision string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.blobs[key]
	if !exists {
		return nil
	}
	if e.revision != ifRevision {
		return &cerrors.ConflictError{Key: key, Message: "revision mismatch"}
	}
	delete(s.blobs, key)
	return nil
}
