package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docvault-cli/internal/core/ports/driven"
)

func TestLoadCreatesDefaultFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptChatSystem)
	require.NoError(t, err)
	assert.Contains(t, prompt, "retrieval assistant")

	// Lazy init materialised the default file and README.
	_, err = os.Stat(filepath.Join(dir, driven.PromptChatSystem+".txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "README.md"))
	assert.NoError(t, err)
}

func TestLoadPrefersUserFile(t *testing.T) {
	dir := t.TempDir()
	custom := "Answer like a pirate.\n"
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, driven.PromptChatSystem+".txt"), []byte(custom), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptChatSystem)
	require.NoError(t, err)
	assert.Equal(t, "Answer like a pirate.", prompt)
}

func TestLoadUnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("no_such_prompt")
	assert.Error(t, err)
}

func TestReloadPicksUpEdits(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptChatSystem)
	require.NoError(t, err)

	path := filepath.Join(dir, driven.PromptChatSystem+".txt")
	require.NoError(t, os.WriteFile(path, []byte("edited"), 0600))

	// Cached value survives until Reload.
	prompt, err := store.Load(driven.PromptChatSystem)
	require.NoError(t, err)
	assert.NotEqual(t, "edited", prompt)

	store.Reload()
	prompt, err = store.Load(driven.PromptChatSystem)
	require.NoError(t, err)
	assert.Equal(t, "edited", prompt)
}
