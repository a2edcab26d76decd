package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/acgclimaservice/magazzino/internal/domain"
	"github.com/acgclimaservice/magazzino/internal/domain/entity"
)

// maxNumberingAttempts limita i tentativi quando due conferme concorrenti si
// contendono lo stesso numero per (tipo, anno). La contesa qui è attesa e
// gestita, non eccezionale; oltre il limite si restituisce
// ErrNumberAssignmentFailed e il chiamante può ripetere l'intera Confirm.
const maxNumberingAttempts = 3

// Confirm esegue la transizione Bozza → Confermato in una sola transazione:
// assegna data (istante di conferma), anno fiscale e numero progressivo, genera
// un movimento per riga in ordine di posizione aggiornando le giacenze, e per i
// DDT di ingresso propaga il prezzo riga come ultimo costo dell'articolo.
//
// Il numero è max+1 per (tipo, anno); il vincolo UNIQUE a livello di schema fa
// da arbitro tra conferme concorrenti: chi perde la corsa riprova l'intera
// transazione. Nessun numero viene mai riusato, nemmeno dopo uno storno.
//
// Confermare un documento già confermato è un no-op che ritorna successo, così
// i retry dei client sono innocui.
func (s *Service) Confirm(ctx context.Context, documentID string) (entity.DocumentStatus, error) {
	for attempt := 1; attempt <= maxNumberingAttempts; attempt++ {
		status, err := s.tryConfirm(ctx, documentID)
		if err == nil {
			return status, nil
		}
		// Collisione sul numero: l'intera transazione è stata annullata, riprova.
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		return "", err
	}
	return "", domain.ErrNumberAssignmentFailed
}

func (s *Service) tryConfirm(ctx context.Context, documentID string) (entity.DocumentStatus, error) {
	var result entity.DocumentStatus
	err := s.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		doc, err := r.Documents().GetForUpdate(ctx, documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		noop, ok := doc.ConfirmCheck()
		if noop {
			result = entity.StatusConfirmed
			return nil
		}
		if !ok {
			return domain.ErrInvalidStateTransition
		}

		lines, err := r.Documents().ListLines(ctx, documentID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyDocument
		}

		now := time.Now().UTC()
		year := now.Year()
		max, err := r.Documents().MaxNumber(ctx, doc.Type, year)
		if err != nil {
			return err
		}
		number := max + 1
		doc.Number = &number
		doc.Year = &year
		doc.Date = &now

		// Righe in ordine di posizione: il fallimento è deterministico sulla
		// prima riga con giacenza insufficiente e annulla tutto.
		for _, line := range lines {
			if err := s.applyConfirmedLine(ctx, r, doc, line, now); err != nil {
				return err
			}
		}

		doc.Status = entity.StatusConfirmed
		if err := r.Documents().SetConfirmed(ctx, doc); err != nil {
			return err
		}
		result = entity.StatusConfirmed
		return nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

// applyConfirmedLine applica l'effetto di una riga: delta di giacenza più un
// movimento che lo giustifica, nella stessa transazione.
func (s *Service) applyConfirmedLine(ctx context.Context, r Repos, doc *entity.Document, line *entity.DocumentLine, now time.Time) error {
	mov := &entity.Movement{
		ID:         uuid.New().String(),
		Date:       now,
		ArticleID:  line.ArticleID,
		Quantity:   line.Quantity,
		Kind:       doc.MovementKind(),
		DocumentID: &doc.ID,
		CreatedAt:  now,
	}

	switch doc.Type {
	case entity.DocumentTypeOut:
		if err := applyStockDelta(ctx, r, line.ArticleID, doc.WarehouseID, line.Quantity.Neg()); err != nil {
			return err
		}
		mov.FromWarehouseID = &doc.WarehouseID
	default: // DDT_IN
		if err := applyStockDelta(ctx, r, line.ArticleID, doc.WarehouseID, line.Quantity); err != nil {
			return err
		}
		mov.ToWarehouseID = &doc.WarehouseID
		// Effetto collaterale osservabile del carico: il prezzo riga diventa
		// l'ultimo costo noto dell'articolo.
		if err := r.Articles().UpdateLastCost(ctx, line.ArticleID, line.UnitPrice); err != nil {
			return err
		}
	}

	return r.Movements().Record(ctx, mov)
}
