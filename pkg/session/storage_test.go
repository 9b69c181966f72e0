package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autopartes-api/pkg/session"
)

func TestFileStorage_SetGetDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.json")
	fs := session.NewFileStorage(path)

	_, found, err := fs.Get(session.KeyAuth)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, fs.Set(session.KeyAuth, []byte(`{"a":1}`)))
	require.NoError(t, fs.Set(session.KeyProfile, []byte(`{"b":2}`)))

	v, found, err := session.NewFileStorage(path).Get(session.KeyAuth)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"a":1}`, string(v))

	require.NoError(t, fs.Delete(session.KeyAuth))
	_, found, _ = fs.Get(session.KeyAuth)
	assert.False(t, found)
	_, found, _ = fs.Get(session.KeyProfile)
	assert.True(t, found)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStorage_RechazaJSONInvalido(t *testing.T) {
	fs := session.NewFileStorage(filepath.Join(t.TempDir(), "s.json"))
	assert.Error(t, fs.Set("x", []byte("no-json")))
}

func TestFileStorage_ArchivoCorruptoSeTrataComoVacio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0o600))
	fs := session.NewFileStorage(path)
	_, found, err := fs.Get(session.KeyAuth)
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, fs.Set(session.KeyAuth, []byte(`{}`)))
}

func TestLoadJSON(t *testing.T) {
	mem := session.NewMemoryStorage()
	var out map[string]int
	found, err := session.LoadJSON(mem, session.KeySaleDraft, &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, session.SaveJSON(mem, session.KeySaleDraft, map[string]int{"n": 3}))
	found, err = session.LoadJSON(mem, session.KeySaleDraft, &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, out["n"])
}
