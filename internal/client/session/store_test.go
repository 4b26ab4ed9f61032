package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreSetReplacesWholeValue(t *testing.T) {
	store := NewStore()
	require.Equal(t, Context{}, store.Get())

	store.Set(Context{User: &Profile{ID: "u1", Name: "John"}, Token: "tok-1"})
	store.Set(Context{Token: "tok-2"})

	// No merging: the second Set dropped the user.
	got := store.Get()
	require.Nil(t, got.User)
	require.Equal(t, "tok-2", got.Token)
}

func TestStoreSubscribe(t *testing.T) {
	store := NewStore()

	var seen []string
	unsubscribe := store.Subscribe(func(c Context) {
		seen = append(seen, c.Token)
	})

	store.Set(Context{Token: "a"})
	store.Set(Context{Token: "a"}) // same value still notifies
	store.Set(Context{Token: "b"})
	unsubscribe()
	store.Set(Context{Token: "c"})

	require.Equal(t, []string{"a", "a", "b"}, seen)
}

func TestFileStorageRoundTrip(t *testing.T) {
	storage, err := NewFileStorage(filepath.Join(t.TempDir(), "nested", "auth.json"))
	require.NoError(t, err)

	_, found, err := storage.Load()
	require.NoError(t, err)
	require.False(t, found)

	want := Context{User: &Profile{ID: "u1", Email: "john@example.com"}, Token: "tok"}
	require.NoError(t, storage.Save(want))

	got, found, err := storage.Load()
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, want.Token, got.Token)
	require.Equal(t, want.User.Email, got.User.Email)
}

func TestFileStorageRemoveIdempotent(t *testing.T) {
	storage, err := NewFileStorage(filepath.Join(t.TempDir(), "auth.json"))
	require.NoError(t, err)

	require.NoError(t, storage.Save(Context{Token: "tok"}))
	require.NoError(t, storage.Remove())
	require.NoError(t, storage.Remove())

	_, found, err := storage.Load()
	require.NoError(t, err)
	require.False(t, found)
}

func TestFileStorageCorruptBlob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	storage, err := NewFileStorage(path)
	require.NoError(t, err)

	_, _, err = storage.Load()
	require.Error(t, err)
}

type recordingHeader struct {
	tokens []string
}

func (r *recordingHeader) SetAuthHeader(token string) {
	r.tokens = append(r.tokens, token)
}

func newTestManager(t *testing.T, path string) (*Manager, *recordingHeader) {
	t.Helper()
	storage, err := NewFileStorage(path)
	require.NoError(t, err)
	header := &recordingHeader{}
	manager, err := NewManager(NewStore(), storage, header)
	require.NoError(t, err)
	return manager, header
}

func TestManagerHydratesFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")

	first, _ := newTestManager(t, path)
	require.NoError(t, first.Login(&Profile{ID: "u1", Name: "John"}, "tok"))

	// A fresh manager over the same blob restores the session.
	second, header := newTestManager(t, path)
	got := second.Store().Get()
	require.Equal(t, "tok", got.Token)
	require.Equal(t, "u1", got.User.ID)
	require.Equal(t, []string{"tok"}, header.tokens)
}

func TestManagerHydratesEmptyWithoutBlob(t *testing.T) {
	manager, header := newTestManager(t, filepath.Join(t.TempDir(), "auth.json"))

	got := manager.Store().Get()
	require.Nil(t, got.User)
	require.Empty(t, got.Token)
	require.Equal(t, []string{""}, header.tokens)
}

func TestManagerLogout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")
	manager, header := newTestManager(t, path)

	require.NoError(t, manager.Login(&Profile{ID: "u1"}, "tok"))
	require.NoError(t, manager.Logout())
	require.NoError(t, manager.Logout()) // second logout is a no-op

	got := manager.Store().Get()
	require.Nil(t, got.User)
	require.Empty(t, got.Token)
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))

	// hydrate, login, two logouts
	require.Equal(t, []string{"", "tok", "", ""}, header.tokens)
}

func TestStoreSetterDoesNotPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")
	manager, _ := newTestManager(t, path)

	manager.Store().Set(Context{User: &Profile{ID: "u1"}, Token: "tok"})

	// Only Login/Logout touch disk.
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}
