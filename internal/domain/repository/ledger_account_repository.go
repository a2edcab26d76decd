package repository

import (
	"context"

	"github.com/acgclimaservice/magazzino/internal/domain/entity"
)

// LedgerAccountRepository è il port di persistenza per i mastrini.
type LedgerAccountRepository interface {
	Create(ctx context.Context, account *entity.LedgerAccount) error
	GetByCode(ctx context.Context, code string) (*entity.LedgerAccount, error)
	List(ctx context.Context, kind string) ([]*entity.LedgerAccount, error)
	// FirstByKind ritorna il primo mastrino del tipo (ordinato per codice),
	// usato come default in import. nil se non ce ne sono.
	FirstByKind(ctx context.Context, kind string) (*entity.LedgerAccount, error)
}
