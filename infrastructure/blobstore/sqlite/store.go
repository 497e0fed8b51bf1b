// ABOUTME: SQLite-backed blob store for single-machine persistent favorites
// ABOUTME: Optimistic writes ride a version column checked in the UPDATE predicate

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	cerrors "marketplace-client-api/core/errors"
	"marketplace-client-api/core/interfaces"
)

// Store implements the BlobStore interface on a local SQLite database. Each
// blob carries a monotonically increasing version; conditional UPDATE and
// DELETE statements enforce the optimistic-write contract without explicit
// locking.
type Store struct {
	db       *sql.DB
	filePath string
}

// NewStore opens (or creates) the database at filePath
func NewStore(filePath string) (*Store, error) {
	if filePath == "" {
		filePath = "marketplace.db"
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	store := &Store{db: db, filePath: filePath}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS blobs (
			key TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			version INTEGER NOT NULL
		);
	`
	_, err := s.db.Exec(query)
	return err
}

// Get retrieves the blob stored under key
func (s *Store) Get(ctx context.Context, key string) (*interfaces.Blob, error) {
	var content string
	var version int64

	query := "SELECT content, version FROM blobs WHERE key = ?"
	err := s.db.QueryRowContext(ctx, query, key).Scan(&content, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &cerrors.NotFoundError{Resource: "blob", URI: key}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}

	return &interfaces.Blob{
		Content:  content,
		Revision: strconv.FormatInt(version, 10),
	}, nil
}

// Put stores content under key, guarded by ifRevision
func (s *Store) Put(ctx context.Context, key, content, ifRevision string) (string, error) {
	if ifRevision == "" {
		query := "INSERT INTO blobs (key, content, version) VALUES (?, ?, 1)"
		if _, err := s.db.ExecContext(ctx, query, key, content); err != nil {
			if isConstraintViolation(err) {
				return "", &cerrors.ConflictError{Key: key, Message: "blob already exists"}
			}
			return "", fmt.Errorf("failed to create blob: %w", err)
		}
		return "1", nil
	}

	version, err := strconv.ParseInt(ifRevision, 10, 64)
	if err != nil {
		return "", &cerrors.ConflictError{Key: key, Message: "unrecognized revision"}
	}

	query := "UPDATE blobs SET content = ?, version = version + 1 WHERE key = ? AND version = ?"
	result, err := s.db.ExecContext(ctx, query, content, key, version)
	if err != nil {
		return "", fmt.Errorf("failed to update blob: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("failed to update blob: %w", err)
	}
	if affected == 0 {
		return "", &cerrors.ConflictError{Key: key, Message: "revision mismatch"}
	}
	return strconv.FormatInt(version+1, 10), nil
}

// Delete removes the blob under key, guarded by ifRevision. Deleting an
// absent key is a no-op.
func (s *Store) Delete(ctx context.Context, key, ifRevision string) error {
	if ifRevision == "" {
		var exists int
		err := s.db.QueryRowContext(ctx, "SELECT 1 FROM blobs WHERE key = ?", key).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to check blob: %w", err)
		}
		return &cerrors.ConflictError{Key: key, Message: "revision mismatch"}
	}

	version, err := strconv.ParseInt(ifRevision, 10, 64)
	if err != nil {
		return &cerrors.ConflictError{Key: key, Message: "unrecognized revision"}
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM blobs WHERE key = ? AND version = ?", key, version)
	if err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	if affected == 0 {
		var exists int
		err := s.db.QueryRowContext(ctx, "SELECT 1 FROM blobs WHERE key = ?", key).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to check blob: %w", err)
		}
		return &cerrors.ConflictError{Key: key, Message: "revision mismatch"}
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func isConstraintViolation(err error) bool {
	// go-sqlite3 reports primary-key violations as "UNIQUE constraint failed"
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
