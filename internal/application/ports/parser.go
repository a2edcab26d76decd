package ports

import (
	"context"

	"github.com/acgclimaservice/magazzino/internal/application/dto"
)

// DocumentParser estrae le righe candidate da un DDT fornitore in PDF.
// L'implementazione di riferimento usa il provider AI configurato; il parsing
// non tocca mai il registro, produce solo candidati da rivedere.
type DocumentParser interface {
	ParseDocument(ctx context.Context, pdf []byte) (*dto.ParsedDocument, error)
}
