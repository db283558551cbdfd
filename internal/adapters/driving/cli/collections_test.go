package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionsCmd_Use(t *testing.T) {
	assert.Equal(t, "collections", collectionsCmd.Use)
}

func TestCollectionsCmd_ListsCollections(t *testing.T) {
	docStore = &fakeDocStore{collections: []string{"migraine_guide", "notes"}}
	defer resetServices()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"collections"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "migraine_guide")
	assert.Contains(t, buf.String(), "notes")
}

func TestCollectionsCmd_EmptyDatabase(t *testing.T) {
	docStore = &fakeDocStore{}
	defer resetServices()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"collections"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No collections.")
}
