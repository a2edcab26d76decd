package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/acgclimaservice/magazzino/internal/domain"
	"github.com/acgclimaservice/magazzino/internal/domain/entity"
	"github.com/acgclimaservice/magazzino/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// ArticleRepo implementazione di ArticleRepository su PostgreSQL (pool o tx).
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository costruisce l'adapter. Passare pool o tx (Querier).
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

const articleColumns = `id, codice_interno, codice_fornitore, codice_produttore, descrizione, fornitore, produttore, barcode, scorta_minima, qta_riordino, ultimo_costo, created_at, updated_at`

func scanArticle(row pgx.Row) (*entity.Article, error) {
	var a entity.Article
	err := row.Scan(
		&a.ID, &a.InternalCode, &a.SupplierCode, &a.ManufacturerCode, &a.Description,
		&a.Supplier, &a.Manufacturer, &a.Barcode, &a.MinStock, &a.ReorderQty, &a.LastCost,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste un nuovo articolo. Il codice interno duplicato risale come
// domain.ErrDuplicate.
func (r *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	query := `
		INSERT INTO articoli (` + articleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		article.ID, article.InternalCode, article.SupplierCode, article.ManufacturerCode,
		article.Description, article.Supplier, article.Manufacturer, article.Barcode,
		article.MinStock, article.ReorderQty, article.LastCost,
		article.CreatedAt, article.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("codice %q: %w", article.InternalCode, domain.ErrDuplicate)
		}
		return fmt.Errorf("create articolo: %w", err)
	}
	return nil
}

// GetByID ritorna l'articolo, nil se assente.
func (r *ArticleRepo) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articoli WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByInternalCode ritorna l'articolo con il codice interno dato, nil se assente.
func (r *ArticleRepo) GetByInternalCode(ctx context.Context, code string) (*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articoli WHERE codice_interno = $1`
	return r.getOne(ctx, query, code)
}

// GetBySupplierCode ritorna l'articolo per (codice fornitore, fornitore), nil se assente.
func (r *ArticleRepo) GetBySupplierCode(ctx context.Context, supplierCode, supplier string) (*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articoli WHERE codice_fornitore = $1 AND fornitore = $2`
	return r.getOne(ctx, query, supplierCode, supplier)
}

func (r *ArticleRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Article, error) {
	a, err := scanArticle(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get articolo: %w", err)
	}
	return a, nil
}

// Update aggiorna l'anagrafica dell'articolo.
func (r *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	query := `
		UPDATE articoli
		SET codice_fornitore = $2, codice_produttore = $3, descrizione = $4, fornitore = $5,
		    produttore = $6, barcode = $7, scorta_minima = $8, qta_riordino = $9, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		article.ID, article.SupplierCode, article.ManufacturerCode, article.Description,
		article.Supplier, article.Manufacturer, article.Barcode, article.MinStock, article.ReorderQty,
	)
	if err != nil {
		return fmt.Errorf("update articolo: %w", err)
	}
	return nil
}

// UpdateLastCost aggiorna il solo ultimo costo noto (conferma DDT di ingresso).
func (r *ArticleRepo) UpdateLastCost(ctx context.Context, id string, cost decimal.Decimal) error {
	query := `UPDATE articoli SET ultimo_costo = $2, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id, cost); err != nil {
		return fmt.Errorf("update ultimo costo: %w", err)
	}
	return nil
}

// List ricerca per testo su codici e descrizione, ordinata per codice interno.
func (r *ArticleRepo) List(ctx context.Context, text string, limit, offset int) ([]*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articoli WHERE 1=1`
	args := []any{}
	pos := 1
	if text != "" {
		query += fmt.Sprintf(` AND (codice_interno ILIKE $%d OR codice_fornitore ILIKE $%d OR descrizione ILIKE $%d OR barcode = $%d)`,
			pos, pos, pos, pos+1)
		args = append(args, "%"+text+"%", text)
		pos += 2
	}
	query += fmt.Sprintf(" ORDER BY codice_interno LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articoli: %w", err)
	}
	defer rows.Close()
	var list []*entity.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan articolo: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
