package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naybriones202/registro-academico/internal/app/models/dto"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	store := NewSessionStoreAt(filepath.Join(t.TempDir(), "nested", "session.json"))

	session := &Session{
		Usuario: dto.UserResponse{ID: 9, Cedula: "0912345678", Nombre: "Carla", Rol: "profesor"},
		Token:   "abc",
	}
	require.NoError(t, store.Save(session))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, session.Usuario, loaded.Usuario)
	assert.Equal(t, "abc", loaded.Token)
}

func TestSessionStoreLoadMissingFile(t *testing.T) {
	store := NewSessionStoreAt(filepath.Join(t.TempDir(), "session.json"))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSessionStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{no es json"), 0o600))

	loaded, err := NewSessionStoreAt(path).Load()
	require.NoError(t, err, "a corrupt cache falls through to the login view")
	assert.Nil(t, loaded)
}

func TestSessionStoreClearIsIdempotent(t *testing.T) {
	store := NewSessionStoreAt(filepath.Join(t.TempDir(), "session.json"))

	require.NoError(t, store.Clear())

	require.NoError(t, store.Save(&Session{Usuario: dto.UserResponse{ID: 1}}))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
