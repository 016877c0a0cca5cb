package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, ok := c.Get(ctx, "eduland:courses")
	assert.False(t, ok, "a fresh cache has no entries")

	c.Set(ctx, "eduland:courses", []byte(`[{"id":"c1"}]`), time.Minute)

	data, ok := c.Get(ctx, "eduland:courses")
	require.True(t, ok)
	assert.Equal(t, `[{"id":"c1"}]`, string(data))

	c.Delete(ctx, "eduland:courses")
	_, ok = c.Get(ctx, "eduland:courses")
	assert.False(t, ok)
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	c.Set(ctx, "key", []byte("value"), 10*time.Millisecond)
	_, ok := c.Get(ctx, "key")
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get(ctx, "key")
	assert.False(t, ok, "expired entries read as absent")
}

func TestFileCacheZeroTTLNeverExpires(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	c.Set(ctx, "key", []byte("value"), 0)
	data, ok := c.Get(ctx, "key")
	require.True(t, ok)
	assert.Equal(t, "value", string(data))
}

func TestFileCacheCorruptEntryReadsAsAbsent(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	require.NoError(t, err)
	ctx := context.Background()

	c.Set(ctx, "key", []byte("value"), time.Minute)
	require.NoError(t, os.WriteFile(c.path("key"), []byte("not json"), 0o600))

	_, ok := c.Get(ctx, "key")
	assert.False(t, ok)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "corrupt entries are removed on read")
}

func TestFileCacheKeysMapToDistinctFiles(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	c.Set(ctx, "eduland:lessons/a", []byte("a"), time.Minute)
	c.Set(ctx, "eduland:lessons/b", []byte("b"), time.Minute)

	a, ok := c.Get(ctx, "eduland:lessons/a")
	require.True(t, ok)
	b, ok := c.Get(ctx, "eduland:lessons/b")
	require.True(t, ok)
	assert.NotEqual(t, string(a), string(b))

	// Keys with path separators must not escape the cache directory.
	assert.Equal(t, filepath.Dir(c.path("eduland:lessons/a")), filepath.Dir(c.path("x")))
}
