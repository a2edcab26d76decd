package entity

// Tipi di mastrino.
const (
	LedgerAccountPurchase = "ACQUISTO"
	LedgerAccountRevenue  = "RICAVO"
)

// LedgerAccount è un mastrino contabile: un'etichetta di classificazione per le
// righe documento. Non è un piano dei conti: sulla riga se ne valida solo l'esistenza.
type LedgerAccount struct {
	ID          string
	Code        string // univoco, es. "0590001003"
	Description string
	Kind        string // LedgerAccountPurchase | LedgerAccountRevenue
}

// ValidLedgerAccountKind verifica che il tipo sia uno dei valori ammessi.
func ValidLedgerAccountKind(kind string) bool {
	return kind == LedgerAccountPurchase || kind == LedgerAccountRevenue
}
