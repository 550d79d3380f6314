package concat

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Cache:
// - Sizes below one are rejected
// - Repeated runs over unchanged content reuse the cached skeleton
// - Changed content is extracted again under a new key
// - Failed extractions are not cached
// - A nil cache reports zero entries

func TestNewCache_InvalidSize(t *testing.T) {
	t.Parallel()

	_, err := NewCache(0)
	require.Error(t, err)
}

func TestCache_ReusesSkeletons(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"main.go":   goSource,
		"broken.py": "def broken(:\n    pass\n",
	})
	cache, err := NewCache(16)
	require.NoError(t, err)
	opts := Options{Extract: true, Cache: cache}
	paths := []string{"main.go", "broken.py"}

	first, err := Concatenate(context.Background(), root, paths, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, StatusFailed, first.Files[1].Status)

	second, err := Concatenate(context.Background(), root, paths, opts)
	require.NoError(t, err)
	assert.Equal(t, first.Text(), second.Text())
	assert.Equal(t, 1, cache.Len())

	changed := "package main\n\nfunc other() {\n\tprintln(2)\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte(changed), 0o644))

	third, err := Concatenate(context.Background(), root, paths, opts)
	require.NoError(t, err)
	assert.Equal(t, "package main\n\nfunc other() {\n}\n", third.Files[0].Content)
	assert.Equal(t, 2, cache.Len())
}

func TestCache_NilIsEmpty(t *testing.T) {
	t.Parallel()

	var cache *Cache
	assert.Equal(t, 0, cache.Len())
}
