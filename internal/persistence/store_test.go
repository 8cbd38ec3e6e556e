package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Basics(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "token", "abc"))
	val, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", val)

	require.NoError(t, store.Delete(ctx, "token"))
	_, err = store.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Deleting a missing key is not an error.
	assert.NoError(t, store.Delete(ctx, "token"))
	assert.NoError(t, store.Ping(ctx))
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "state.json")

	store := NewFileStore(path)
	require.NoError(t, store.Set(ctx, "token", "abc"))
	require.NoError(t, store.Set(ctx, "darkMode", "true"))
	require.NoError(t, store.Delete(ctx, "darkMode"))

	reopened := NewFileStore(path)
	val, err := reopened.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", val)

	_, err = reopened.Get(ctx, "darkMode")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestFileStore_MissingFileReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "never-written.json"))

	_, err := store.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.NoError(t, store.Ping(ctx))
}

func TestNamespace_IsolatesKeyspaces(t *testing.T) {
	ctx := context.Background()
	shared := NewMemoryStore()

	alice := Namespace(shared, "sess:a:")
	bob := Namespace(shared, "sess:b:")

	require.NoError(t, alice.Set(ctx, "token", "alice-token"))
	require.NoError(t, bob.Set(ctx, "token", "bob-token"))

	val, err := alice.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "alice-token", val)

	require.NoError(t, alice.Delete(ctx, "token"))
	_, err = alice.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	val, err = bob.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "bob-token", val)
}
