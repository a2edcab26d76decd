package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDraftRequest crea una bozza di documento.
type CreateDraftRequest struct {
	Type        string `json:"type" validate:"required,oneof=DDT_IN DDT_OUT"`
	PartnerID   string `json:"partner_id" validate:"required,uuid4"`
	WarehouseID string `json:"warehouse_id" validate:"required,uuid4"`
	SupplierRef string `json:"supplier_ref"`
	JobRef      string `json:"job_ref"`
	Note        string `json:"note"`
}

// LineRequest aggiunge o modifica una riga documento.
type LineRequest struct {
	ArticleID   string          `json:"article_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LedgerCode  string          `json:"ledger_code"`
}

// UpdateLineRequest modifica parziale di una riga: i campi omessi restano
// invariati, i campi presenti vengono applicati anche se azzerano il valore.
type UpdateLineRequest struct {
	ArticleID   *string          `json:"article_id"`
	Description *string          `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	LedgerCode  *string          `json:"ledger_code"`
}

// DocumentLineDTO proiezione di una riga.
type DocumentLineDTO struct {
	ID          string          `json:"id"`
	ArticleID   string          `json:"article_id"`
	ArticleCode string          `json:"article_code,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LedgerCode  string          `json:"ledger_code,omitempty"`
	Position    int             `json:"position"`
}

// MovementDTO proiezione di un movimento del registro.
type MovementDTO struct {
	ID            string          `json:"id"`
	Seq           int64           `json:"seq"`
	Date          time.Time       `json:"date"`
	ArticleID     string          `json:"article_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Kind          string          `json:"kind"`
	FromWarehouse string          `json:"from_warehouse,omitempty"`
	ToWarehouse   string          `json:"to_warehouse,omitempty"`
	DocumentID    string          `json:"document_id,omitempty"`
	Note          string          `json:"note,omitempty"`
}

// AttachmentDTO proiezione di un allegato (riferimento, non contenuto).
type AttachmentDTO struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	MIME     string `json:"mime"`
	Size     int64  `json:"size"`
	Checksum string `json:"checksum"`
}

// DocumentDTO proiezione della testata.
type DocumentDTO struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Number      *int       `json:"number"`
	Year        *int       `json:"year"`
	Date        *time.Time `json:"date"`
	Status      string     `json:"status"`
	PartnerID   string     `json:"partner_id"`
	PartnerName string     `json:"partner_name,omitempty"`
	WarehouseID string     `json:"warehouse_id"`
	SupplierRef string     `json:"supplier_ref,omitempty"`
	JobRef      string     `json:"job_ref,omitempty"`
	Note        string     `json:"note,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// DocumentDetailDTO proiezione completa: testata, righe, movimenti, allegati.
type DocumentDetailDTO struct {
	Document    DocumentDTO       `json:"document"`
	Lines       []DocumentLineDTO `json:"lines"`
	Movements   []MovementDTO     `json:"movements"`
	Attachments []AttachmentDTO   `json:"attachments"`
}

// StatusResponse risposta delle transizioni di stato.
type StatusResponse struct {
	Status string `json:"status"`
}
