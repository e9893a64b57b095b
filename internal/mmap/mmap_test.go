package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapping_OpenReadClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	content := []byte("bin vector column data")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	m, err := Open(path)
	require.NoError(t, err)

	require.Equal(t, len(content), m.Size())
	require.Equal(t, content, m.Bytes())

	require.NoError(t, m.Close())
	require.Nil(t, m.Bytes())
	require.NoError(t, m.Close()) // idempotent
}

func TestMapping_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	m, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, 0, m.Size())
	require.NoError(t, m.Close())
}

func TestMapping_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.bin"))
	require.Error(t, err)
}
