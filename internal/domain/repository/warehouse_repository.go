package repository

import (
	"context"

	"github.com/acgclimaservice/magazzino/internal/domain/entity"
)

// WarehouseRepository è il port di persistenza per i magazzini.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	GetByCode(ctx context.Context, code string) (*entity.Warehouse, error)
	List(ctx context.Context) ([]*entity.Warehouse, error)
}
