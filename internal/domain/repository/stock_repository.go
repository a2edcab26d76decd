package repository

import (
	"context"

	"github.com/acgclimaservice/magazzino/internal/domain/entity"
)

// BelowMinimumRow è una riga della lista sottoscorta.
type BelowMinimumRow struct {
	Article entity.Article
	Stock   entity.StockLevel
}

// StockRepository è il port della giacenza per (articolo, magazzino).
// Upsert va invocato nella stessa transazione del movimento che lo giustifica:
// movimento e aggiornamento giacenza committano o falliscono insieme.
type StockRepository interface {
	// Get ritorna la giacenza corrente, quantità zero se la coppia non esiste ancora.
	Get(ctx context.Context, articleID, warehouseID string) (*entity.StockLevel, error)
	// GetForUpdate blocca la riga (SELECT FOR UPDATE); la crea a zero se assente.
	GetForUpdate(ctx context.Context, articleID, warehouseID string) (*entity.StockLevel, error)
	Upsert(ctx context.Context, stock *entity.StockLevel) error
	ListByArticle(ctx context.Context, articleID string) ([]*entity.StockLevel, error)
	ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.StockLevel, error)
	// ListBelowMinimum ritorna gli articoli con giacenza sotto scorta minima,
	// globale o per singolo magazzino se warehouseID non è vuoto.
	ListBelowMinimum(ctx context.Context, warehouseID string) ([]BelowMinimumRow, error)
}
