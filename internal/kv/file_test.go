package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "first", "1"))
	require.NoError(t, s.Set(ctx, "second", "2"))
	require.NoError(t, s.Remove(ctx, "first"))
	require.NoError(t, s.Set(ctx, "third", "3"))

	s2, err := OpenFileStore(path)
	require.NoError(t, err)

	n, err := s2.Len(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	// enumeration order survives the reload
	k0, err := s2.Key(ctx, 0)
	require.NoError(t, err)
	k1, err := s2.Key(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "third"}, []string{k0, k1})

	v, err := s2.Get(ctx, "second")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}

func TestOpenFileStore_MissingFileIsEmpty(t *testing.T) {
	s, err := OpenFileStore(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	n, err := s.Len(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestOpenFileStore_CorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := OpenFileStore(path)
	assert.Error(t, err)
}
