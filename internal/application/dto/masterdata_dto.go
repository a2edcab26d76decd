package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArticleRequest crea o modifica un articolo a catalogo.
type ArticleRequest struct {
	InternalCode     string          `json:"internal_code"`
	SupplierCode     string          `json:"supplier_code"`
	ManufacturerCode string          `json:"manufacturer_code"`
	Description      string          `json:"description"`
	Supplier         string          `json:"supplier"`
	Manufacturer     string          `json:"manufacturer"`
	Barcode          string          `json:"barcode"`
	MinStock         decimal.Decimal `json:"min_stock"`
	ReorderQty       decimal.Decimal `json:"reorder_qty"`
}

// ArticleDTO proiezione di un articolo.
type ArticleDTO struct {
	ID               string          `json:"id"`
	InternalCode     string          `json:"internal_code"`
	SupplierCode     string          `json:"supplier_code,omitempty"`
	ManufacturerCode string          `json:"manufacturer_code,omitempty"`
	Description      string          `json:"description"`
	Supplier         string          `json:"supplier,omitempty"`
	Manufacturer     string          `json:"manufacturer,omitempty"`
	Barcode          string          `json:"barcode,omitempty"`
	MinStock         decimal.Decimal `json:"min_stock"`
	ReorderQty       decimal.Decimal `json:"reorder_qty"`
	LastCost         decimal.Decimal `json:"last_cost"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// WarehouseRequest crea un magazzino.
type WarehouseRequest struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// PartnerRequest crea un partner.
type PartnerRequest struct {
	Name string `json:"name" validate:"required"`
	Kind string `json:"kind" validate:"required,oneof=Cliente Fornitore"`
}

// LedgerAccountRequest crea un mastrino.
type LedgerAccountRequest struct {
	Code        string `json:"code" validate:"required"`
	Description string `json:"description"`
	Kind        string `json:"kind" validate:"required,oneof=ACQUISTO RICAVO"`
}
