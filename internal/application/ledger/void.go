package ledger

import (
	"context"

	"github.com/acgclimaservice/magazzino/internal/domain"
)

// Void annulla una bozza con cancellazione fisica: prima gli allegati, poi le
// righe, poi la testata, in un'unica transazione (la cascata è esplicita, non
// delegata allo schema). Nessun movimento esiste ancora, quindi le giacenze non
// vengono toccate e la numerazione di (tipo, anno) non viene consumata.
// Irreversibile; ammesso solo in bozza.
//
// Ritorna i percorsi dei file allegati rimossi dal database: la cancellazione
// fisica dei file spetta al chiamante, dopo il commit, per non tenere la
// transazione aperta su I/O esterno.
func (s *Service) Void(ctx context.Context, documentID string) ([]string, error) {
	var orphanFiles []string
	err := s.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		doc, err := r.Documents().GetForUpdate(ctx, documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if !doc.VoidCheck() {
			return domain.ErrInvalidStateTransition
		}

		attachments, err := r.Attachments().ListByDocument(ctx, documentID)
		if err != nil {
			return err
		}
		for _, a := range attachments {
			orphanFiles = append(orphanFiles, a.Path)
		}
		if err := r.Attachments().DeleteByDocument(ctx, documentID); err != nil {
			return err
		}
		if err := r.Documents().DeleteLinesByDocument(ctx, documentID); err != nil {
			return err
		}
		return r.Documents().Delete(ctx, documentID)
	})
	if err != nil {
		return nil, err
	}
	return orphanFiles, nil
}
