package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/acgclimaservice/magazzino/internal/domain"
	"github.com/acgclimaservice/magazzino/internal/domain/entity"
	"github.com/acgclimaservice/magazzino/internal/domain/repository"
)

var _ repository.LedgerAccountRepository = (*LedgerAccountRepo)(nil)

// LedgerAccountRepo implementazione di LedgerAccountRepository su PostgreSQL.
type LedgerAccountRepo struct {
	q Querier
}

func NewLedgerAccountRepository(q Querier) *LedgerAccountRepo {
	return &LedgerAccountRepo{q: q}
}

// Create persiste un mastrino. Codice duplicato risale come domain.ErrDuplicate.
func (r *LedgerAccountRepo) Create(ctx context.Context, account *entity.LedgerAccount) error {
	query := `INSERT INTO mastrini (id, codice, descrizione, tipo) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, account.ID, account.Code, account.Description, account.Kind)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("mastrino %q: %w", account.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("create mastrino: %w", err)
	}
	return nil
}

func (r *LedgerAccountRepo) GetByCode(ctx context.Context, code string) (*entity.LedgerAccount, error) {
	var a entity.LedgerAccount
	err := r.q.QueryRow(ctx, `SELECT id, codice, descrizione, tipo FROM mastrini WHERE codice = $1`, code).
		Scan(&a.ID, &a.Code, &a.Description, &a.Kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mastrino: %w", err)
	}
	return &a, nil
}

// List ritorna i mastrini, filtrati per tipo se kind non è vuoto.
func (r *LedgerAccountRepo) List(ctx context.Context, kind string) ([]*entity.LedgerAccount, error) {
	query := `SELECT id, codice, descrizione, tipo FROM mastrini`
	args := []any{}
	if kind != "" {
		query += ` WHERE tipo = $1`
		args = append(args, kind)
	}
	query += ` ORDER BY codice`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list mastrini: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerAccount
	for rows.Next() {
		var a entity.LedgerAccount
		if err := rows.Scan(&a.ID, &a.Code, &a.Description, &a.Kind); err != nil {
			return nil, fmt.Errorf("scan mastrino: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// FirstByKind ritorna il primo mastrino del tipo (per codice), nil se nessuno.
func (r *LedgerAccountRepo) FirstByKind(ctx context.Context, kind string) (*entity.LedgerAccount, error) {
	var a entity.LedgerAccount
	err := r.q.QueryRow(ctx,
		`SELECT id, codice, descrizione, tipo FROM mastrini WHERE tipo = $1 ORDER BY codice LIMIT 1`, kind).
		Scan(&a.ID, &a.Code, &a.Description, &a.Kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("first mastrino: %w", err)
	}
	return &a, nil
}
