package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Article rappresenta un articolo a catalogo (identità immutabile).
// LastCost viene aggiornato alla conferma di ogni DDT di ingresso con il prezzo riga;
// MinStock e ReorderQty guidano la lista sottoscorta.
type Article struct {
	ID               string
	InternalCode     string // codice interno univoco (es. "DUO-000123")
	SupplierCode     string
	ManufacturerCode string
	Description      string
	Supplier         string
	Manufacturer     string
	Barcode          string
	MinStock         decimal.Decimal // scorta minima (14,3)
	ReorderQty       decimal.Decimal
	LastCost         decimal.Decimal // ultimo costo noto (10,2)
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
