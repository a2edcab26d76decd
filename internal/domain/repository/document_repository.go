package repository

import (
	"context"
	"time"

	"github.com/acgclimaservice/magazzino/internal/domain/entity"
)

// DocumentFilter filtra i listati documenti.
type DocumentFilter struct {
	Type   string
	Status entity.DocumentStatus
	From   *time.Time
	To     *time.Time
	Text   string // ricerca su partner e note
	Limit  int
	Offset int
}

// DocumentRepository è il port di persistenza per testate e righe documento.
// Le scritture di conferma/storno/annullo avvengono sempre dentro una transazione
// (repos legati alla tx via TxRunner).
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	// GetForUpdate blocca la testata (SELECT FOR UPDATE) per serializzare le
	// transizioni di stato concorrenti sullo stesso documento.
	GetForUpdate(ctx context.Context, id string) (*entity.Document, error)
	UpdateHeader(ctx context.Context, doc *entity.Document) error
	// SetConfirmed scrive numero, anno, data e stato in conferma. La violazione
	// del vincolo UNIQUE (tipo, anno, numero) risale come domain.ErrDuplicate.
	SetConfirmed(ctx context.Context, doc *entity.Document) error
	SetStatus(ctx context.Context, id string, status entity.DocumentStatus) error
	// Delete rimuove la testata: l'annullo cancella prima righe e allegati,
	// poi la testata, nella stessa transazione.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter DocumentFilter) ([]*entity.Document, error)
	CountByStatus(ctx context.Context, status entity.DocumentStatus) (int, error)
	// MaxNumber ritorna il massimo numero già assegnato per (tipo, anno), 0 se nessuno.
	MaxNumber(ctx context.Context, docType string, year int) (int, error)

	AddLine(ctx context.Context, line *entity.DocumentLine) error
	GetLine(ctx context.Context, lineID string) (*entity.DocumentLine, error)
	UpdateLine(ctx context.Context, line *entity.DocumentLine) error
	DeleteLine(ctx context.Context, lineID string) error
	// ListLines ritorna le righe in ordine di posizione (l'ordine di elaborazione in conferma).
	ListLines(ctx context.Context, documentID string) ([]*entity.DocumentLine, error)
	DeleteLinesByDocument(ctx context.Context, documentID string) error
}
