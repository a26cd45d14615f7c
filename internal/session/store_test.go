package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestOpenMissingFileIsLoggedOut(t *testing.T) {
	s := Open(sessionPath(t))
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token())
	_, ok := s.User()
	assert.False(t, ok)
}

func TestLoginPersistsAcrossReopen(t *testing.T) {
	path := sessionPath(t)
	u := User{UserID: "id-1", FirstName: "A", Email: "a@b.com"}

	s := Open(path)
	require.NoError(t, s.Login("tok-123", u))
	assert.True(t, s.Authenticated())

	// A fresh store, like a page reload, restores the logged-in state.
	reopened := Open(path)
	assert.True(t, reopened.Authenticated())
	assert.Equal(t, "tok-123", reopened.Token())
	got, ok := reopened.User()
	require.True(t, ok)
	assert.Equal(t, u, got)
}

func TestLogoutClears(t *testing.T) {
	path := sessionPath(t)
	s := Open(path)
	require.NoError(t, s.Login("tok", User{UserID: "id", Email: "a@b.com"}))
	require.NoError(t, s.Logout())

	assert.False(t, s.Authenticated())
	assert.False(t, Open(path).Authenticated())
}

func TestLogoutWithoutLoginIsFine(t *testing.T) {
	s := Open(sessionPath(t))
	require.NoError(t, s.Logout())
}

func TestOpenCorruptFileClearsIt(t *testing.T) {
	path := sessionPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := Open(path)
	assert.False(t, s.Authenticated())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "corrupt file should be removed")
}

func TestOpenPartialSessionClearsIt(t *testing.T) {
	path := sessionPath(t)
	// Token without user: half a session is no session.
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"tok"}`), 0o600))

	s := Open(path)
	assert.False(t, s.Authenticated())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
