package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	fs := NewFileStorage(path)

	s, err := fs.Load()
	require.NoError(t, err)
	assert.False(t, s.LoggedIn())

	want := Session{Token: "tok", Username: "alice"}
	require.NoError(t, fs.Save(want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := NewFileStorage(path).Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, fs.Clear())
	require.NoError(t, fs.Clear())
	s, err = fs.Load()
	require.NoError(t, err)
	assert.Equal(t, Session{}, s)
}

func TestFileStorage_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStorage(path).Load()
	assert.Error(t, err)

	_, err = New("http://localhost", NewFileStorage(path))
	assert.Error(t, err)
}

func TestMemoryStorage(t *testing.T) {
	m := NewMemoryStorage()
	require.NoError(t, m.Save(Session{Token: "t"}))

	s, _ := m.Load()
	assert.True(t, s.LoggedIn())

	require.NoError(t, m.Clear())
	s, _ = m.Load()
	assert.False(t, s.LoggedIn())
}
