package entity

import "time"

// Tipi di partner commerciale.
const (
	PartnerCustomer = "Cliente"
	PartnerSupplier = "Fornitore"
)

// Partner è la controparte di un documento: fornitore per i DDT di ingresso,
// cliente (o commessa) per quelli di uscita.
type Partner struct {
	ID        string
	Name      string // univoco
	Kind      string // PartnerCustomer | PartnerSupplier
	CreatedAt time.Time
}

// ValidPartnerKind verifica che il tipo sia uno dei valori ammessi.
func ValidPartnerKind(kind string) bool {
	return kind == PartnerCustomer || kind == PartnerSupplier
}
