package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acgclimaservice/magazzino/internal/application/ledger"
	"github.com/acgclimaservice/magazzino/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner esegue callback dentro una transazione PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner costruisce il runner sul pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// txRepos lega i repository alla transazione corrente.
type txRepos struct {
	documents   *DocumentRepo
	movements   *MovementRepo
	stock       *StockRepo
	articles    *ArticleRepo
	attachments *AttachmentRepo
}

func (r *txRepos) Documents() repository.DocumentRepository     { return r.documents }
func (r *txRepos) Movements() repository.MovementRepository     { return r.movements }
func (r *txRepos) Stock() repository.StockRepository            { return r.stock }
func (r *txRepos) Articles() repository.ArticleRepository       { return r.articles }
func (r *txRepos) Attachments() repository.AttachmentRepository { return r.attachments }

// Run apre una transazione, esegue fn con repository legati alla tx e fa
// Commit o Rollback. Rollback anche su panic, via defer.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos ledger.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := &txRepos{
		documents:   NewDocumentRepository(tx),
		movements:   NewMovementRepository(tx),
		stock:       NewStockRepository(tx),
		articles:    NewArticleRepository(tx),
		attachments: NewAttachmentRepository(tx),
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
