package domain

import (
	"errors"
	"fmt"
)

// Errori di dominio (senza dipendenze esterne).
var (
	ErrNotFound               = errors.New("risorsa non trovata")
	ErrDuplicate              = errors.New("risorsa duplicata")
	ErrValidation             = errors.New("dati non validi")
	ErrInvalidStateTransition = errors.New("transizione di stato non ammessa")
	ErrEmptyDocument          = errors.New("documento senza righe")
	ErrNumberAssignmentFailed = errors.New("assegnazione numero documento fallita")
)

// InsufficientStockError indica che un prelievo porterebbe la giacenza sotto zero.
// Porta l'articolo incriminato così il chiamante può correggere la riga e riprovare.
type InsufficientStockError struct {
	ArticleID   string
	WarehouseID string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("giacenza insufficiente per articolo %s in magazzino %s", e.ArticleID, e.WarehouseID)
}

// IsInsufficientStock riconosce l'errore di giacenza lungo la catena di wrap.
func IsInsufficientStock(err error) bool {
	var ise *InsufficientStockError
	return errors.As(err, &ise)
}

// Validationf costruisce un errore di validazione con dettaglio, agganciato a ErrValidation
// (errors.Is(err, ErrValidation) resta vero).
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
