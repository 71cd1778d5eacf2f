package statefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testState struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFileStorage_SaveAndLoad(t *testing.T) {
	storage := NewFileStorage(t.TempDir(), zerolog.Nop())

	saved := testState{Name: "cart", Count: 3}
	require.NoError(t, storage.Save("test.ns.v1", saved))

	var loaded testState
	found, err := storage.Load("test.ns.v1", &loaded)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, saved, loaded)
}

func TestFileStorage_LoadMissingNamespace(t *testing.T) {
	storage := NewFileStorage(t.TempDir(), zerolog.Nop())

	var loaded testState
	found, err := storage.Load("never.saved", &loaded)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, testState{}, loaded)
}

func TestFileStorage_LoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	storage := NewFileStorage(dir, zerolog.Nop())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))

	var loaded testState
	found, err := storage.Load("broken", &loaded)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStorage_Clear(t *testing.T) {
	storage := NewFileStorage(t.TempDir(), zerolog.Nop())

	require.NoError(t, storage.Save("test.ns.v1", testState{Name: "x"}))
	require.NoError(t, storage.Clear("test.ns.v1"))

	var loaded testState
	found, err := storage.Load("test.ns.v1", &loaded)
	require.NoError(t, err)
	assert.False(t, found)

	// Clearing an absent namespace is a no-op.
	require.NoError(t, storage.Clear("test.ns.v1"))
}

func TestMemoryStorage_RoundTrip(t *testing.T) {
	storage := NewMemoryStorage()

	require.NoError(t, storage.Save("ns", testState{Name: "draft", Count: 1}))

	var loaded testState
	found, err := storage.Load("ns", &loaded)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "draft", loaded.Name)

	require.NoError(t, storage.Clear("ns"))
	found, err = storage.Load("ns", &loaded)
	require.NoError(t, err)
	assert.False(t, found)
}
