// ABOUTME: Redis-backed blob store using WATCH/MULTI for optimistic writes
// ABOUTME: Revisions live next to the content in a per-key hash

package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	cerrors "marketplace-client-api/core/errors"
	"marketplace-client-api/core/interfaces"
	"marketplace-client-api/pkg/config"
)

const (
	contentField  = "content"
	revisionField = "revision"
)

// Store implements the BlobStore interface on Redis. Each blob is a hash of
// content and revision; writes run inside a WATCH/MULTI transaction so a
// concurrent writer aborts the exec and surfaces as a conflict.
type Store struct {
	client *redis.Client
}

// NewStore connects to Redis and verifies the connection
func NewStore(cfg config.RedisConfig) (*Store, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{client: client}, nil
}

// Get retrieves the blob stored under key
func (s *Store) Get(ctx context.Context, key string) (*interfaces.Blob, error) {
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, s.classify(ctx, key, err)
	}
	if len(fields) == 0 {
		return nil, &cerrors.NotFoundError{Resource: "blob", URI: key}
	}
	return &interfaces.Blob{
		Content:  fields[contentField],
		Revision: fields[revisionField],
	}, nil
}

// Put stores content under key, guarded by ifRevision
func (s *Store) Put(ctx context.Context, key, content, ifRevision string) (string, error) {
	var newRevision string

	txn := func(tx *redis.Tx) error {
		current, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}
		if err := checkRevision(key, current, ifRevision); err != nil {
			return err
		}
		newRevision = nextRevision(current[revisionField])

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, contentField, content, revisionField, newRevision)
			return nil
		})
		return err
	}

	if err := s.client.Watch(ctx, txn, key); err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return "", &cerrors.ConflictError{Key: key, Message: "concurrent write"}
		}
		return "", s.classify(ctx, key, err)
	}
	return newRevision, nil
}

// Delete removes the blob under key, guarded by ifRevision. Deleting an
// absent key is a no-op.
func (s *Store) Delete(ctx context.Context, key, ifRevision string) error {
	txn := func(tx *redis.Tx) error {
		current, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}
		if len(current) == 0 {
			return nil
		}
		if current[revisionField] != ifRevision {
			return &cerrors.ConflictError{Key: key, Message: "revision mismatch"}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			return nil
		})
		return err
	}

	if err := s.client.Watch(ctx, txn, key); err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return &cerrors.ConflictError{Key: key, Message: "concurrent write"}
		}
		return s.classify(ctx, key, err)
	}
	return nil
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// classify maps driver failures onto the error taxonomy. Conflicts raised
// inside a transaction pass through unchanged.
func (s *Store) classify(ctx context.Context, key string, err error) error {
	if cerrors.IsConflict(err) {
		return err
	}
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &cerrors.CancelledError{URI: key}
	}
	return &cerrors.TransientTransportError{URI: key, Cause: err}
}

func checkRevision(key string, current map[string]string, ifRevision string) error {
	exists := len(current) > 0
	if exists && current[revisionField] != ifRevision {
		return &cerrors.ConflictError{Key: key, Message: "revision mismatch"}
	}
	if !exists && ifRevision != "" {
		return &cerrors.ConflictError{Key: key, Message: "blob no longer exists"}
	}
	return nil
}

func nextRevision(current string) string {
	n, err := strconv.Atoi(current)
	if err != nil {
		return "1"
	}
	return strconv.Itoa(n + 1)
}
