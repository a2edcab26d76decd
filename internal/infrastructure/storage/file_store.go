package storage

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/acgclimaservice/magazzino/internal/application/ports"
)

var _ ports.FileStore = (*LocalStore)(nil)

// LocalStore salva gli allegati sul filesystem sotto una directory radice,
// partizionati per anno/mese. I path ritornati sono relativi alla radice.
type LocalStore struct {
	root string
}

// NewLocalStore crea la directory radice se assente.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("crea directory allegati: %w", err)
	}
	return &LocalStore{root: root}, nil
}

// Save scrive il file e ritorna path relativo, dimensione e checksum BLAKE2b-256.
// Il nome su disco è un UUID: il filename originale vive solo nella riga allegato.
func (s *LocalStore) Save(ctx context.Context, filename string, data []byte) (*ports.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sum := blake2b.Sum256(data)

	now := time.Now().UTC()
	dir := filepath.Join(fmt.Sprintf("%04d", now.Year()), fmt.Sprintf("%02d", now.Month()))
	if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
		return nil, fmt.Errorf("crea directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	rel := filepath.Join(dir, uuid.New().String()+ext)
	if err := os.WriteFile(filepath.Join(s.root, rel), data, 0o644); err != nil {
		return nil, fmt.Errorf("scrivi file: %w", err)
	}

	return &ports.StoredFile{
		Path:     rel,
		Size:     int64(len(data)),
		Checksum: hex.EncodeToString(sum[:]),
	}, nil
}

// Read ritorna il contenuto di un file salvato.
func (s *LocalStore) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("leggi file: %w", err)
	}
	return data, nil
}

// Remove elimina un file salvato. Ignora i file già assenti: la rimozione
// avviene dopo il commit dell'annullo e deve essere ritentabile.
func (s *LocalStore) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("rimuovi file: %w", err)
	}
	return nil
}

// resolve blocca i path che uscirebbero dalla directory radice.
func (s *LocalStore) resolve(path string) (string, error) {
	full := filepath.Join(s.root, filepath.Clean("/"+path))
	if !strings.HasPrefix(full, filepath.Clean(s.root)+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q fuori dalla radice", path)
	}
	return full, nil
}
