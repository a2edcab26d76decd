package ledger

import (
	"context"

	"github.com/acgclimaservice/magazzino/internal/domain/repository"
)

// Repos raggruppa i repository legati a una stessa transazione.
type Repos interface {
	Documents() repository.DocumentRepository
	Movements() repository.MovementRepository
	Stock() repository.StockRepository
	Articles() repository.ArticleRepository
	Attachments() repository.AttachmentRepository
}

// TxRunner esegue fn dentro una transazione di BD, passando repository legati a
// quella tx. Commit se fn ritorna nil, Rollback altrimenti: movimento, giacenza
// e stato documento cambiano insieme o per niente.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}
