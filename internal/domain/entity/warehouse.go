package entity

import "time"

// Warehouse è un luogo di giacenza (magazzino fisso, furgone, cantiere).
type Warehouse struct {
	ID        string
	Code      string // codice breve univoco, es. "MAG1", "FURG2"
	Name      string
	CreatedAt time.Time
}
