package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/acgclimaservice/magazzino/internal/domain"
	"github.com/acgclimaservice/magazzino/internal/domain/entity"
)

// Reverse esegue la transizione Confermato → Stornato emettendo, per ogni riga
// originale, un movimento compensativo di segno opposto. I movimenti originali
// restano intatti (il registro è solo append) e il numero documento resta assegnato.
//
// Lo storno di un DDT di ingresso è un decremento e può fallire con giacenza
// insufficiente: non si può stornare un carico se la merce è già stata consumata
// altrove. Lo storno di un DDT di uscita reintegra la giacenza senza limite
// superiore. Stornare un documento già stornato è un no-op.
func (s *Service) Reverse(ctx context.Context, documentID string) (entity.DocumentStatus, error) {
	var result entity.DocumentStatus
	err := s.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		doc, err := r.Documents().GetForUpdate(ctx, documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		noop, ok := doc.ReverseCheck()
		if noop {
			result = entity.StatusReversed
			return nil
		}
		if !ok {
			return domain.ErrInvalidStateTransition
		}

		lines, err := r.Documents().ListLines(ctx, documentID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, line := range lines {
			if err := s.applyReversalLine(ctx, r, doc, line, now); err != nil {
				return err
			}
		}

		if err := r.Documents().SetStatus(ctx, documentID, entity.StatusReversed); err != nil {
			return err
		}
		result = entity.StatusReversed
		return nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

func (s *Service) applyReversalLine(ctx context.Context, r Repos, doc *entity.Document, line *entity.DocumentLine, now time.Time) error {
	mov := &entity.Movement{
		ID:         uuid.New().String(),
		Date:       now,
		ArticleID:  line.ArticleID,
		Quantity:   line.Quantity,
		Kind:       doc.ReversalKind(),
		DocumentID: &doc.ID,
		CreatedAt:  now,
	}

	switch doc.Type {
	case entity.DocumentTypeIn:
		// Compensa un carico: la merce esce dal magazzino del documento.
		if err := applyStockDelta(ctx, r, line.ArticleID, doc.WarehouseID, line.Quantity.Neg()); err != nil {
			return err
		}
		mov.FromWarehouseID = &doc.WarehouseID
	default: // DDT_OUT
		// Compensa uno scarico: reintegro senza controllo di tetto.
		if err := applyStockDelta(ctx, r, line.ArticleID, doc.WarehouseID, line.Quantity); err != nil {
			return err
		}
		mov.ToWarehouseID = &doc.WarehouseID
	}

	return r.Movements().Record(ctx, mov)
}
