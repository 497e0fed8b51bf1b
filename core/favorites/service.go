// ABOUTME: Favorites synchronizer reconciling local favorite state with the blob store
// ABOUTME: Mutating operations retry optimistic conflicts; display corrections absorb the lag

package favorites

import (
	"context"
	"sync"

	"marketplace-client-api/core/domain"
	cerrors "marketplace-client-api/core/errors"
	"marketplace-client-api/core/interfaces"
)

// maxWriteAttempts bounds the read-modify-write retry loop
const maxWriteAttempts = 3

// Service synchronizes the user's favorite set with the blob store. It keeps
// an in-memory last-known set for synchronous queries between round trips,
// plus per-node display corrections that keep server-reported favorite
// counters visually consistent right after a local toggle.
//
// The in-memory state is guarded by the instance lock; network writes happen
// outside it. Two goroutines racing on a write are resolved by the store's
// optimistic revision check, not by mutual exclusion.
type Service struct {
	store interfaces.BlobStore
	log   interfaces.Logger

	mu           sync.Mutex
	known        map[string]struct{}
	corrections  map[string]int
	lastRevision string
}

// NewService creates a synchronizer over the given blob store
func NewService(store interfaces.BlobStore, log interfaces.Logger) *Service {
	return &Service{
		store:       store,
		log:         log,
		known:       make(map[string]struct{}),
		corrections: make(map[string]int),
	}
}

// FavoriteIDs reads the favorites record and replaces the in-memory
// last-known set. An absent blob is an empty set, not an error.
func (s *Service) FavoriteIDs(ctx context.Context) ([]string, error) {
	blob, err := s.store.Get(ctx, BlobKey)
	if err != nil && !cerrors.IsNotFound(err) {
		return nil, err
	}

	ids := make(map[string]struct{})
	revision := ""
	if blob != nil {
		ids = decodeIDs(blob.Content)
		revision = blob.Revision
	}

	s.mu.Lock()
	s.known = ids
	s.lastRevision = revision
	s.mu.Unlock()

	return sortedIDs(ids), nil
}

// KnownFavorite reports the last-known favorite status of a node without a
// round trip
func (s *Service) KnownFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.known[id]
	return ok
}

// SetFavorites writes the given nodes as the complete favorite set. An empty
// set deletes the record. This is a single optimistic write against the
// revision last read; callers wanting conflict retry use the mutating
// wrappers instead.
func (s *Service) SetFavorites(ctx context.Context, nodes []*domain.Node) error {
	desired := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if n != nil && n.ID != "" {
			desired[n.ID] = struct{}{}
		}
	}
	return s.writeSet(ctx, desired)
}

// SetFavorite marks or unmarks a single node, retrying the full
// read-modify-write on conflicts.
func (s *Service) SetFavorite(ctx context.Context, node *domain.Node, favorite bool) error {
	if node == nil || node.ID == "" {
		return nil
	}
	return s.mutate(ctx, func(ids map[string]struct{}) {
		if favorite {
			ids[node.ID] = struct{}{}
		} else {
			delete(ids, node.ID)
		}
	})
}

// AddFavorites marks every given node as a favorite, retrying the full
// read-modify-write on conflicts.
func (s *Service) AddFavorites(ctx context.Context, nodes []*domain.Node) error {
	return s.mutate(ctx, func(ids map[string]struct{}) {
		for _, n := range nodes {
			if n != nil && n.ID != "" {
				ids[n.ID] = struct{}{}
			}
		}
	})
}

// RemoveFavorites unmarks every given node, retrying the full
// read-modify-write on conflicts.
func (s *Service) RemoveFavorites(ctx context.Context, nodes []*domain.Node) error {
	return s.mutate(ctx, func(ids map[string]struct{}) {
		for _, n := range nodes {
			if n != nil && n.ID != "" {
				delete(ids, n.ID)
			}
		}
	})
}

// mutate runs apply over a fresh copy of the server-side set and writes the
// result, retrying only on optimistic conflicts. Authorization failures and
// cancellations surface immediately, as does any other error.
func (s *Service) mutate(ctx context.Context, apply func(ids map[string]struct{})) error {
	var lastConflict error
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		if _, err := s.FavoriteIDs(ctx); err != nil {
			return err
		}

		s.mu.Lock()
		desired := make(map[string]struct{}, len(s.known))
		for id := range s.known {
			desired[id] = struct{}{}
		}
		s.mu.Unlock()

		apply(desired)

		err := s.writeSet(ctx, desired)
		if err == nil {
			return nil
		}
		if !cerrors.IsConflict(err) {
			return err
		}
		lastConflict = err
		s.debug("favorites write conflicted, retrying", map[string]interface{}{
			"attempt": attempt + 1,
		})
	}
	return lastConflict
}

// writeSet performs the optimistic write and, on success, folds the diff
// against the previous set into the correction map.
func (s *Service) writeSet(ctx context.Context, desired map[string]struct{}) error {
	s.mu.Lock()
	revision := s.lastRevision
	s.mu.Unlock()

	var newRevision string
	if len(desired) == 0 {
		if err := s.store.Delete(ctx, BlobKey, revision); err != nil {
			return err
		}
	} else {
		rev, err := s.store.Put(ctx, BlobKey, encodeIDs(desired), revision)
		if err != nil {
			return err
		}
		newRevision = rev
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range desired {
		if _, had := s.known[id]; !had {
			s.adjustCorrectionLocked(id, 1)
		}
	}
	for id := range s.known {
		if _, still := desired[id]; !still {
			s.adjustCorrectionLocked(id, -1)
		}
	}
	s.known = desired
	s.lastRevision = newRevision
	return nil
}

// adjustCorrectionLocked bumps a display correction, clamped to {-1, 0, 1}.
// A correction that nets to zero is dropped from the map.
func (s *Service) adjustCorrectionLocked(id string, delta int) {
	c := s.corrections[id] + delta
	if c > 1 {
		c = 1
	}
	if c < -1 {
		c = -1
	}
	if c == 0 {
		delete(s.corrections, id)
		return
	}
	s.corrections[id] = c
}

// CorrectionFor returns the display correction recorded for a node id
func (s *Service) CorrectionFor(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.corrections[id]
}

// AdjustedFavoriteCount layers the local display correction on top of the
// server-reported favorite counter. The result never goes below zero.
func (s *Service) AdjustedFavoriteCount(node *domain.Node) int {
	if node == nil {
		return 0
	}
	count := node.Favorited + s.CorrectionFor(node.ID)
	if count < 0 {
		return 0
	}
	return count
}

func (s *Service) debug(msg string, fields map[string]interface{}) {
	if s.log != nil {
		s.log.Debug(msg, fields)
	}
}
