package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/acgclimaservice/magazzino/internal/domain/entity"
	"github.com/acgclimaservice/magazzino/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementazione di StockRepository su PostgreSQL (pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository costruisce l'adapter. Passare pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get ritorna la giacenza corrente, quantità zero se la coppia non esiste.
func (r *StockRepo) Get(ctx context.Context, articleID, warehouseID string) (*entity.StockLevel, error) {
	query := `
		SELECT articolo_id, magazzino_id, quantita, updated_at
		FROM giacenze WHERE articolo_id = $1 AND magazzino_id = $2`
	var s entity.StockLevel
	err := r.q.QueryRow(ctx, query, articleID, warehouseID).Scan(
		&s.ArticleID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{ArticleID: articleID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get giacenza: %w", err)
	}
	return &s, nil
}

// GetForUpdate blocca la riga di giacenza (SELECT FOR UPDATE); la crea a zero
// se assente, così il lock esiste anche per coppie mai movimentate.
func (r *StockRepo) GetForUpdate(ctx context.Context, articleID, warehouseID string) (*entity.StockLevel, error) {
	insert := `
		INSERT INTO giacenze (articolo_id, magazzino_id, quantita, updated_at)
		VALUES ($1, $2, 0, $3)
		ON CONFLICT (articolo_id, magazzino_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, articleID, warehouseID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("init giacenza: %w", err)
	}
	query := `
		SELECT articolo_id, magazzino_id, quantita, updated_at
		FROM giacenze WHERE articolo_id = $1 AND magazzino_id = $2
		FOR UPDATE`
	var s entity.StockLevel
	err := r.q.QueryRow(ctx, query, articleID, warehouseID).Scan(
		&s.ArticleID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get giacenza for update: %w", err)
	}
	return &s, nil
}

// Upsert inserisce o aggiorna la quantità per (articolo, magazzino).
// Il CHECK (quantita >= 0) a livello schema è l'ultima barriera contro i negativi.
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.StockLevel) error {
	query := `
		INSERT INTO giacenze (articolo_id, magazzino_id, quantita, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (articolo_id, magazzino_id)
		DO UPDATE SET quantita = EXCLUDED.quantita, updated_at = now()`
	_, err := r.q.Exec(ctx, query, stock.ArticleID, stock.WarehouseID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert giacenza: %w", err)
	}
	return nil
}

// ListByArticle ritorna le giacenze di un articolo su tutti i magazzini.
func (r *StockRepo) ListByArticle(ctx context.Context, articleID string) ([]*entity.StockLevel, error) {
	query := `
		SELECT articolo_id, magazzino_id, quantita, updated_at
		FROM giacenze WHERE articolo_id = $1 ORDER BY magazzino_id`
	return r.list(ctx, query, articleID)
}

// ListByWarehouse ritorna le giacenze di un magazzino.
func (r *StockRepo) ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.StockLevel, error) {
	query := `
		SELECT articolo_id, magazzino_id, quantita, updated_at
		FROM giacenze WHERE magazzino_id = $1 ORDER BY articolo_id`
	return r.list(ctx, query, warehouseID)
}

func (r *StockRepo) list(ctx context.Context, query string, arg any) ([]*entity.StockLevel, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list giacenze: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevel
	for rows.Next() {
		var s entity.StockLevel
		if err := rows.Scan(&s.ArticleID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan giacenza: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListBelowMinimum ritorna gli articoli con giacenza sotto scorta minima,
// globale o per singolo magazzino se warehouseID non è vuoto.
func (r *StockRepo) ListBelowMinimum(ctx context.Context, warehouseID string) ([]repository.BelowMinimumRow, error) {
	query := `
		SELECT a.id, a.codice_interno, a.codice_fornitore, a.codice_produttore, a.descrizione,
		       a.fornitore, a.produttore, a.barcode, a.scorta_minima, a.qta_riordino, a.ultimo_costo,
		       a.created_at, a.updated_at,
		       g.articolo_id, g.magazzino_id, g.quantita, g.updated_at
		FROM giacenze g
		JOIN articoli a ON a.id = g.articolo_id
		WHERE a.scorta_minima > 0 AND g.quantita < a.scorta_minima`
	args := []any{}
	if warehouseID != "" {
		query += ` AND g.magazzino_id = $1`
		args = append(args, warehouseID)
	}
	query += ` ORDER BY a.codice_interno, g.magazzino_id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sottoscorta: %w", err)
	}
	defer rows.Close()
	var list []repository.BelowMinimumRow
	for rows.Next() {
		var row repository.BelowMinimumRow
		if err := rows.Scan(
			&row.Article.ID, &row.Article.InternalCode, &row.Article.SupplierCode,
			&row.Article.ManufacturerCode, &row.Article.Description,
			&row.Article.Supplier, &row.Article.Manufacturer, &row.Article.Barcode,
			&row.Article.MinStock, &row.Article.ReorderQty, &row.Article.LastCost,
			&row.Article.CreatedAt, &row.Article.UpdatedAt,
			&row.Stock.ArticleID, &row.Stock.WarehouseID, &row.Stock.Quantity, &row.Stock.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sottoscorta: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
