package repository

import (
	"context"

	"github.com/acgclimaservice/magazzino/internal/domain/entity"
)

// PartnerRepository è il port di persistenza per clienti e fornitori.
type PartnerRepository interface {
	Create(ctx context.Context, partner *entity.Partner) error
	GetByID(ctx context.Context, id string) (*entity.Partner, error)
	GetByName(ctx context.Context, name string) (*entity.Partner, error)
	List(ctx context.Context, kind string) ([]*entity.Partner, error)
}
