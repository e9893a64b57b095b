package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewLocalStore(dir)

	_, err := store.Open(ctx, "missing.gbm")
	require.ErrorIs(t, err, ErrNotFound)

	data := []byte("column file payload for the local store test")
	require.NoError(t, store.Put(ctx, "fm-0001.gbm", data))

	// The blob landed as a plain file.
	onDisk, err := os.ReadFile(filepath.Join(dir, "fm-0001.gbm"))
	require.NoError(t, err)
	require.Equal(t, data, onDisk)

	b, err := store.Open(ctx, "fm-0001.gbm")
	require.NoError(t, err)
	defer b.Close()

	require.Equal(t, int64(len(data)), b.Size())

	buf := make([]byte, 6)
	n, err := b.ReadAt(ctx, buf, 7)
	require.NoError(t, err)
	require.Equal(t, "file p", string(buf[:n]))

	// Zero-copy path.
	m, ok := b.(Mappable)
	require.True(t, ok)
	raw, err := m.Bytes()
	require.NoError(t, err)
	require.Equal(t, data, raw)

	require.NoError(t, store.Delete(ctx, "fm-0001.gbm"))
	require.NoError(t, store.Delete(ctx, "fm-0001.gbm")) // idempotent
	_, err = store.Open(ctx, "fm-0001.gbm")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_CreateStreamsAndRenames(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewLocalStore(dir)

	w, err := store.Create(ctx, "nested/dir/part.gbm")
	require.NoError(t, err)
	_, err = w.Write([]byte("abc"))
	require.NoError(t, err)

	// Target path must not exist until Close.
	_, statErr := os.Stat(filepath.Join(dir, "nested", "dir", "part.gbm"))
	require.True(t, os.IsNotExist(statErr))

	require.NoError(t, w.Close())

	got, err := ReadAll(ctx, store, "nested/dir/part.gbm")
	require.NoError(t, err)
	require.Equal(t, "abc", string(got))
}

func TestLocalStore_List(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Empty(t, names)

	require.NoError(t, store.Put(ctx, "train/fm-1.gbm", []byte("x")))
	require.NoError(t, store.Put(ctx, "train/fm-2.gbm", []byte("y")))
	require.NoError(t, store.Put(ctx, "valid/fm-1.gbm", []byte("z")))

	names, err = store.List(ctx, "train/")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"train/fm-1.gbm", "train/fm-2.gbm"}, names)
}

func TestLocalStore_WriteLimit(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir(), WithWriteLimit(1<<20))

	// Larger than the limiter burst; must still complete.
	data := make([]byte, 1<<20+4096)
	for i := range data {
		data[i] = byte(i)
	}
	require.NoError(t, store.Put(ctx, "big.gbm", data))

	got, err := ReadAll(ctx, store, "big.gbm")
	require.NoError(t, err)
	require.Equal(t, data, got)
}
