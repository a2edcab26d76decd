package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/acgclimaservice/magazzino/internal/domain/entity"
	"github.com/acgclimaservice/magazzino/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementazione di MovementRepository su PostgreSQL (pool o tx).
// Il registro è solo-append: nessuna UPDATE o DELETE sui movimenti.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository costruisce l'adapter. Passare pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, seq, data, articolo_id, quantita, tipo, magazzino_da, magazzino_a, documento_id, note, created_at`

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(
		&m.ID, &m.Seq, &m.Date, &m.ArticleID, &m.Quantity, &m.Kind,
		&m.FromWarehouseID, &m.ToWarehouseID, &m.DocumentID, &m.Note, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Record inserisce il movimento e valorizza ID e Seq (BIGSERIAL).
func (r *MovementRepo) Record(ctx context.Context, movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimenti (id, data, articolo_id, quantita, tipo, magazzino_da, magazzino_a, documento_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		movement.ID, movement.Date, movement.ArticleID, movement.Quantity, movement.Kind,
		movement.FromWarehouseID, movement.ToWarehouseID, movement.DocumentID, movement.Note, movement.CreatedAt,
	).Scan(&movement.Seq)
	if err != nil {
		return fmt.Errorf("record movimento: %w", err)
	}
	return nil
}

// List ritorna i movimenti filtrati, ordinati per data e poi per seq.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movimenti WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ArticleID != "" {
		query += fmt.Sprintf(" AND articolo_id = $%d", pos)
		args = append(args, filter.ArticleID)
		pos++
	}
	if filter.WarehouseID != "" {
		query += fmt.Sprintf(" AND (magazzino_da = $%d OR magazzino_a = $%d)", pos, pos)
		args = append(args, filter.WarehouseID)
		pos++
	}
	if filter.DocumentID != "" {
		query += fmt.Sprintf(" AND documento_id = $%d", pos)
		args = append(args, filter.DocumentID)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND data >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND data <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY data DESC, seq DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimenti: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movimento: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListByDocument ritorna i movimenti generati da un documento, in ordine di
// registrazione (seq crescente: prima i movimenti di conferma, poi gli storni).
func (r *MovementRepo) ListByDocument(ctx context.Context, documentID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movimenti WHERE documento_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list movimenti documento: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movimento: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// SumForPair somma i delta con segno dei movimenti della coppia (articolo,
// magazzino): il valore che la giacenza materializzata deve eguagliare.
func (r *MovementRepo) SumForPair(ctx context.Context, articleID, warehouseID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE
				WHEN magazzino_a = $2 THEN quantita
				WHEN magazzino_da = $2 THEN -quantita
				ELSE 0
			END
		), 0)
		FROM movimenti WHERE articolo_id = $1 AND (magazzino_a = $2 OR magazzino_da = $2)`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, articleID, warehouseID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum movimenti: %w", err)
	}
	return sum, nil
}
