package entity

import "time"

// Attachment è un file (tipicamente il PDF del DDT originale) legato a un documento.
// Checksum è il BLAKE2b-256 del contenuto, usato per evitare doppioni.
type Attachment struct {
	ID         string
	DocumentID string
	Filename   string
	MIME       string
	Path       string // relativo alla directory dati
	Size       int64
	Checksum   string
	CreatedAt  time.Time
}
