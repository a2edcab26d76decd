package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipi di movimento. Lo storno non modifica mai i movimenti originali:
// viene registrato come nuovo movimento compensativo di tipo STORNO_*.
const (
	MovementInbound     = "CARICO"
	MovementOutbound    = "SCARICO"
	MovementTransfer    = "TRASFERIMENTO"
	MovementReversalIn  = "STORNO_CARICO"  // compensa un carico: decrementa la giacenza
	MovementReversalOut = "STORNO_SCARICO" // compensa uno scarico: reintegra la giacenza
)

// Movement è la registrazione immutabile di un delta di quantità applicato
// alla giacenza. Seq è il progressivo di inserimento: a parità di Date decide
// l'ordine (le righe confermate insieme condividono lo stesso istante).
// DocumentID è nil per i movimenti manuali.
type Movement struct {
	ID              string
	Seq             int64
	Date            time.Time
	ArticleID       string
	Quantity        decimal.Decimal // sempre positiva; il segno dipende dal tipo e dal magazzino
	Kind            string
	FromWarehouseID *string
	ToWarehouseID   *string
	DocumentID      *string
	Note            string
	CreatedAt       time.Time
}

// SignedQuantityFor ritorna il delta con segno che questo movimento applica
// alla giacenza del magazzino indicato: positivo se il magazzino è destinazione,
// negativo se è origine, zero se il movimento non lo tocca.
func (m *Movement) SignedQuantityFor(warehouseID string) decimal.Decimal {
	if m.ToWarehouseID != nil && *m.ToWarehouseID == warehouseID {
		return m.Quantity
	}
	if m.FromWarehouseID != nil && *m.FromWarehouseID == warehouseID {
		return m.Quantity.Neg()
	}
	return decimal.Zero
}
