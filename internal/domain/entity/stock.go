package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel è la giacenza corrente per coppia (articolo, magazzino).
// È una proiezione materializzata del registro movimenti: deve sempre essere
// uguale alla somma dei delta con segno dei movimenti della coppia, e mai negativa
// (CHECK a livello di schema, verifica transazionale al momento del decremento).
// Creata pigramente al primo movimento che tocca la coppia.
type StockLevel struct {
	ArticleID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
