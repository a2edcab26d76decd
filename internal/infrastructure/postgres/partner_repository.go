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

var _ repository.PartnerRepository = (*PartnerRepo)(nil)

// PartnerRepo implementazione di PartnerRepository su PostgreSQL.
type PartnerRepo struct {
	q Querier
}

func NewPartnerRepository(q Querier) *PartnerRepo {
	return &PartnerRepo{q: q}
}

// Create persiste un partner. Nome duplicato risale come domain.ErrDuplicate.
func (r *PartnerRepo) Create(ctx context.Context, partner *entity.Partner) error {
	query := `INSERT INTO partner (id, nome, tipo, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, partner.ID, partner.Name, partner.Kind, partner.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("partner %q: %w", partner.Name, domain.ErrDuplicate)
		}
		return fmt.Errorf("create partner: %w", err)
	}
	return nil
}

func (r *PartnerRepo) GetByID(ctx context.Context, id string) (*entity.Partner, error) {
	return r.getOne(ctx, `SELECT id, nome, tipo, created_at FROM partner WHERE id = $1`, id)
}

func (r *PartnerRepo) GetByName(ctx context.Context, name string) (*entity.Partner, error) {
	return r.getOne(ctx, `SELECT id, nome, tipo, created_at FROM partner WHERE nome = $1`, name)
}

func (r *PartnerRepo) getOne(ctx context.Context, query string, arg any) (*entity.Partner, error) {
	var p entity.Partner
	err := r.q.QueryRow(ctx, query, arg).Scan(&p.ID, &p.Name, &p.Kind, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get partner: %w", err)
	}
	return &p, nil
}

// List ritorna i partner, filtrati per tipo se kind non è vuoto.
func (r *PartnerRepo) List(ctx context.Context, kind string) ([]*entity.Partner, error) {
	query := `SELECT id, nome, tipo, created_at FROM partner`
	args := []any{}
	if kind != "" {
		query += ` WHERE tipo = $1`
		args = append(args, kind)
	}
	query += ` ORDER BY nome`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list partner: %w", err)
	}
	defer rows.Close()
	var list []*entity.Partner
	for rows.Next() {
		var p entity.Partner
		if err := rows.Scan(&p.ID, &p.Name, &p.Kind, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
