package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docvault-cli/internal/core/domain"
)

func testSettingsStore(t *testing.T) *SettingsStore {
	t.Helper()

	store, err := NewSettingsStore(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	return store
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	store := testSettingsStore(t)

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := testSettingsStore(t)

	settings := domain.DefaultSettings()
	settings.Chunking.Size = 500
	settings.Search.TopK = 7
	settings.Completion.Model = "llama3.2"

	require.NoError(t, store.Save(settings))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	store := testSettingsStore(t)

	partial := "[search]\ntop_k = 10\n\n[embedding]\nrate_limit = 2.5\n"
	require.NoError(t, os.WriteFile(store.Path(), []byte(partial), 0600))

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 10, settings.Search.TopK)
	assert.Equal(t, 2.5, settings.Embedding.RateLimit)
	assert.Equal(t, 1000, settings.Chunking.Size)
	assert.Equal(t, domain.AIProviderOllama, settings.Embedding.Provider)
}

func TestLoadMalformedFile(t *testing.T) {
	store := testSettingsStore(t)

	require.NoError(t, os.WriteFile(store.Path(), []byte("not = [valid"), 0600))

	_, err := store.Load()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	store := testSettingsStore(t)

	bad := "[chunking]\nsize = -1\n"
	require.NoError(t, os.WriteFile(store.Path(), []byte(bad), 0600))

	_, err := store.Load()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaveRejectsInvalidSettings(t *testing.T) {
	store := testSettingsStore(t)

	settings := domain.DefaultSettings()
	settings.Search.TopK = 0

	assert.ErrorIs(t, store.Save(settings), domain.ErrInvalidInput)
}

func TestSaveCreatesDirectoryWithRestrictedPermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSettingsStore(filepath.Join(dir, "nested", "config.toml"))
	require.NoError(t, err)

	require.NoError(t, store.Save(domain.DefaultSettings()))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
