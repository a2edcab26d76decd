package ports

import "context"

// StoredFile riferimento a un file salvato nello store.
type StoredFile struct {
	Path     string
	Size     int64
	Checksum string // BLAKE2b-256, esadecimale
}

// FileStore è il port dello storage allegati. I contenuti non passano mai dal
// database: le righe allegato referenziano il Path ritornato dallo store.
type FileStore interface {
	Save(ctx context.Context, filename string, data []byte) (*StoredFile, error)
	Read(ctx context.Context, path string) ([]byte, error)
	Remove(ctx context.Context, path string) error
}
