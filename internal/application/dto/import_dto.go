package dto

import "github.com/shopspring/decimal"

// ParsedLine riga candidata estratta dal PDF di un DDT fornitore.
type ParsedLine struct {
	SupplierCode string          `json:"supplier_code"`
	Description  string          `json:"description" validate:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// ParsedDocument esito del parsing di un DDT fornitore.
type ParsedDocument struct {
	SupplierName string       `json:"supplier_name"`
	SupplierVAT  string       `json:"supplier_vat"`
	DocumentRef  string       `json:"document_ref"`
	DocumentDate string       `json:"document_date"`
	Lines        []ParsedLine `json:"lines"`
}

// ImportRequest conferma un import: il chiamante può correggere le righe
// candidate prima di generare la bozza.
type ImportRequest struct {
	WarehouseID string       `json:"warehouse_id" validate:"required,uuid4"`
	Supplier    string       `json:"supplier" validate:"required"`
	DocumentRef string       `json:"document_ref"`
	JobRef      string       `json:"job_ref"`
	Lines       []ParsedLine `json:"lines" validate:"required,min=1,dive"`
}

// ImportResponse riferimento alla bozza generata.
type ImportResponse struct {
	DocumentID string `json:"document_id"`
	LineCount  int    `json:"line_count"`
	Warnings   []string `json:"warnings,omitempty"`
}
