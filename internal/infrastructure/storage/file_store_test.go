package storage

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndRead(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	data := []byte("%PDF-1.4 contenuto")
	stored, err := store.Save(ctx, "ddt481.pdf", data)
	require.NoError(t, err)

	assert.Equal(t, int64(len(data)), stored.Size)
	assert.Len(t, stored.Checksum, 64, "BLAKE2b-256 esadecimale")
	assert.Contains(t, stored.Path, ".pdf", "estensione preservata")
	assert.NotContains(t, stored.Path, "ddt481", "il nome originale non finisce su disco")

	got, err := store.Read(ctx, stored.Path)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestSameContentSameChecksum(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	a, err := store.Save(ctx, "a.pdf", []byte("stesso contenuto"))
	require.NoError(t, err)
	b, err := store.Save(ctx, "b.pdf", []byte("stesso contenuto"))
	require.NoError(t, err)

	assert.Equal(t, a.Checksum, b.Checksum)
	assert.NotEqual(t, a.Path, b.Path, "file distinti anche a parità di contenuto")
}

func TestRemoveIsRetryable(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	stored, err := store.Save(ctx, "ddt.pdf", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, stored.Path))
	// Il file è già sparito: la seconda rimozione non è un errore.
	require.NoError(t, store.Remove(ctx, stored.Path))

	_, err = store.Read(ctx, stored.Path)
	assert.Error(t, err)
}

// I path relativi vengono sempre riancorati alla radice: un tentativo di
// traversal non può mai risolvere fuori dalla directory degli allegati.
func TestPathTraversalStaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root)
	require.NoError(t, err)

	for _, path := range []string{"../../etc/passwd", "../fuori.pdf", "a/../../b.pdf"} {
		full, err := store.resolve(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(full, root+string(filepath.Separator)),
			"path %q risolto fuori radice: %s", path, full)
	}

	_, err = store.Read(context.Background(), "../../etc/passwd")
	assert.Error(t, err, "il path riancorato non esiste sotto la radice")
}
