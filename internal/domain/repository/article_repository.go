package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/acgclimaservice/magazzino/internal/domain/entity"
)

// ArticleRepository è il port di persistenza per gli articoli a catalogo.
type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	GetByID(ctx context.Context, id string) (*entity.Article, error)
	GetByInternalCode(ctx context.Context, code string) (*entity.Article, error)
	GetBySupplierCode(ctx context.Context, supplierCode, supplier string) (*entity.Article, error)
	Update(ctx context.Context, article *entity.Article) error
	// UpdateLastCost aggiorna il solo ultimo costo noto (effetto collaterale
	// della conferma di un DDT di ingresso).
	UpdateLastCost(ctx context.Context, id string, cost decimal.Decimal) error
	List(ctx context.Context, text string, limit, offset int) ([]*entity.Article, error)
}
