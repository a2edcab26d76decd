package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipi di documento: DDT di ingresso (carico da fornitore) e di uscita (scarico verso cliente).
const (
	DocumentTypeIn  = "DDT_IN"
	DocumentTypeOut = "DDT_OUT"
)

// DocumentStatus è lo stato del ciclo di vita di un documento.
// Transizioni ammesse: Bozza → Confermato → Stornato e Bozza → Annullato.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "Bozza"
	StatusConfirmed DocumentStatus = "Confermato"
	StatusReversed  DocumentStatus = "Stornato"
	StatusVoided    DocumentStatus = "Annullato"
)

// Document è la testata di un DDT con le sue righe ordinate.
// Numero, anno e data restano nil finché il documento è in bozza: vengono
// assegnati in conferma, mai riusati anche se il documento viene poi stornato.
type Document struct {
	ID          string
	Type        string // DocumentTypeIn | DocumentTypeOut
	Number      *int
	Year        *int
	Date        *time.Time
	CreatedAt   time.Time
	Status      DocumentStatus
	PartnerID   string
	WarehouseID string
	SupplierRef string // es. "DDT 123 del 15/08/2025"
	JobRef      string // commessa
	Note        string
	Lines       []DocumentLine
}

// DocumentLine è una riga documento: articolo, quantità (3 decimali, > 0),
// prezzo unitario (2 decimali) e mastrino opzionale. Modificabile solo in bozza.
type DocumentLine struct {
	ID          string
	DocumentID  string
	ArticleID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LedgerCode  string
	Position    int
	CreatedAt   time.Time
}

// ValidDocumentType verifica che il tipo sia DDT_IN o DDT_OUT.
func ValidDocumentType(t string) bool {
	return t == DocumentTypeIn || t == DocumentTypeOut
}

// IsEditable indica se testata e righe sono ancora modificabili.
func (d *Document) IsEditable() bool {
	return d.Status == StatusDraft
}

// ConfirmCheck valuta la transizione Bozza → Confermato.
// Ritorna noop=true se il documento è già confermato (la conferma è idempotente);
// ok=false per ogni altro stato non ammesso.
func (d *Document) ConfirmCheck() (noop, ok bool) {
	switch d.Status {
	case StatusConfirmed:
		return true, false
	case StatusDraft:
		return false, true
	default:
		return false, false
	}
}

// ReverseCheck valuta la transizione Confermato → Stornato.
// noop=true se già stornato (lo storno ripetuto è un no-op).
func (d *Document) ReverseCheck() (noop, ok bool) {
	switch d.Status {
	case StatusReversed:
		return true, false
	case StatusConfirmed:
		return false, true
	default:
		return false, false
	}
}

// VoidCheck valuta l'annullamento: ammesso solo in bozza, ed è una cancellazione
// fisica (nessun movimento esiste ancora, la numerazione non viene consumata).
func (d *Document) VoidCheck() bool {
	return d.Status == StatusDraft
}

// MovementKind ritorna il tipo di movimento generato in conferma da una riga
// di questo documento: carico per i DDT_IN, scarico per i DDT_OUT.
func (d *Document) MovementKind() string {
	if d.Type == DocumentTypeIn {
		return MovementInbound
	}
	return MovementOutbound
}

// ReversalKind ritorna il tipo del movimento compensativo di storno.
func (d *Document) ReversalKind() string {
	if d.Type == DocumentTypeIn {
		return MovementReversalIn
	}
	return MovementReversalOut
}
