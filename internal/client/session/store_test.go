package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/msgquota/internal/client/models"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	return store
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	sess := models.Session{Token: "tok-123", Role: models.RoleUser}
	require.NoError(t, store.Save(sess))
	require.Equal(t, sess, store.Load())
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	store := newTestStore(t)
	require.Equal(t, models.Session{}, store.Load())
	require.False(t, store.Load().LoggedIn())
}

func TestFileStore_LoadCorruptFile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.path, []byte("{not json"), 0600))
	require.Equal(t, models.Session{}, store.Load())
}

func TestFileStore_LoadHalfPair(t *testing.T) {
	store := newTestStore(t)
	// Token without role violates the both-or-neither invariant.
	require.NoError(t, os.WriteFile(store.path, []byte(`{"token":"t","role":""}`), 0600))
	require.Equal(t, models.Session{}, store.Load())
}

func TestFileStore_Clear(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(models.Session{Token: "t", Role: models.RoleAdmin}))
	require.NoError(t, store.Clear())
	require.False(t, store.Load().LoggedIn())

	// Clearing again is a no-op.
	require.NoError(t, store.Clear())
}
