package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/acgclimaservice/magazzino/internal/domain/entity"
)

// MovementFilter filtra il registro movimenti.
type MovementFilter struct {
	ArticleID   string
	WarehouseID string
	DocumentID  string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// MovementRepository è il port del registro movimenti: solo append e letture.
// Nessuna update o delete: lo storno è modellato da nuovi movimenti compensativi.
type MovementRepository interface {
	// Record inserisce il movimento e valorizza ID e Seq (progressivo di inserimento).
	Record(ctx context.Context, movement *entity.Movement) error
	// List ritorna i movimenti ordinati per data e poi per Seq, il tie-break
	// per movimenti con lo stesso istante (righe confermate insieme).
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	ListByDocument(ctx context.Context, documentID string) ([]*entity.Movement, error)
	// SumForPair somma i delta con segno dei movimenti della coppia: è il valore
	// che la giacenza materializzata deve sempre eguagliare.
	SumForPair(ctx context.Context, articleID, warehouseID string) (decimal.Decimal, error)
}
