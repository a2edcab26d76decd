package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevelDTO giacenza corrente di una coppia (articolo, magazzino).
type StockLevelDTO struct {
	ArticleID   string          `json:"article_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StockQueryResponse risposta di queryStock: totale e dettaglio per magazzino.
type StockQueryResponse struct {
	ArticleID string          `json:"article_id"`
	Total     decimal.Decimal `json:"total"`
	Breakdown []StockLevelDTO `json:"breakdown,omitempty"`
}

// BelowMinimumDTO riga della lista sottoscorta.
type BelowMinimumDTO struct {
	ArticleID    string          `json:"article_id"`
	InternalCode string          `json:"internal_code"`
	Description  string          `json:"description"`
	WarehouseID  string          `json:"warehouse_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	MinStock     decimal.Decimal `json:"min_stock"`
	ReorderQty   decimal.Decimal `json:"reorder_qty"`
	LastCost     decimal.Decimal `json:"last_cost"`
}

// ManualMovementRequest registra un movimento manuale senza documento.
type ManualMovementRequest struct {
	Kind            string          `json:"kind" validate:"required,oneof=CARICO SCARICO TRASFERIMENTO"`
	ArticleID       string          `json:"article_id" validate:"required,uuid4"`
	FromWarehouseID string          `json:"from_warehouse_id"`
	ToWarehouseID   string          `json:"to_warehouse_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Note            string          `json:"note"`
}
