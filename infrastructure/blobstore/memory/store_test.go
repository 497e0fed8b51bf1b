package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "marketplace-client-api/core/errors"
)

func TestGet_AbsentKeyIsNotFound(t *testing.T) {
	store := New()
	_, err := store.Get(context.Background(), "missing")
	assert.True(t, cerrors.IsNotFound(err))
}

func TestPut_CreateThenReadBack(t *testing.T) {
	store := New()
	ctx := context.Background()

	rev, err := store.Put(ctx, "k", "1,2,3", "")
	require.NoError(t, err)
	require.NotEmpty(t, rev)

	blob, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "1,2,3", blob.Content)
	assert.Equal(t, rev, blob.Revision)
}

func TestPut_StaleRevisionConflicts(t *testing.T) {
	store := New()
	ctx := context.Background()

	rev1, err := store.Put(ctx, "k", "a", "")
	require.NoError(t, err)
	_, err = store.Put(ctx, "k", "b", rev1)
	require.NoError(t, err)

	_, err = store.Put(ctx, "k", "c", rev1)
	assert.True(t, cerrors.IsConflict(err), "stale write should conflict, got %v", err)
}

func TestPut_CreateOnlyConflictsWhenBlobExists(t *testing.T) {
	store := New()
	ctx := context.Background()

	_, err := store.Put(ctx, "k", "a", "")
	require.NoError(t, err)

	_, err = store.Put(ctx, "k", "b", "")
	assert.True(t, cerrors.IsConflict(err))
}

func TestDelete_AbsentKeyIsNoOp(t *testing.T) {
	store := New()
	assert.NoError(t, store.Delete(context.Background(), "missing", ""))
}

func TestDelete_StaleRevisionConflicts(t *testing.T) {
	store := New()
	ctx := context.Background()

	rev1, err := store.Put(ctx, "k", "a", "")
	require.NoError(t, err)
	rev2, err := store.Put(ctx, "k", "b", rev1)
	require.NoError(t, err)

	assert.True(t, cerrors.IsConflict(store.Delete(ctx, "k", rev1)))
	require.NoError(t, store.Delete(ctx, "k", rev2))

	_, err = store.Get(ctx, "k")
	assert.True(t, cerrors.IsNotFound(err))
}
