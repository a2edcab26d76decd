// Package masterdata gestisce le anagrafiche: articoli, magazzini, partner e
// mastrini. Operazioni CRUD senza effetti sul registro movimenti.
package masterdata

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acgclimaservice/magazzino/internal/domain"
	"github.com/acgclimaservice/magazzino/internal/domain/entity"
	"github.com/acgclimaservice/magazzino/internal/domain/repository"
)

// Service facciata sulle anagrafiche.
type Service struct {
	articles   repository.ArticleRepository
	warehouses repository.WarehouseRepository
	partners   repository.PartnerRepository
	accounts   repository.LedgerAccountRepository
}

func NewService(
	articles repository.ArticleRepository,
	warehouses repository.WarehouseRepository,
	partners repository.PartnerRepository,
	accounts repository.LedgerAccountRepository,
) *Service {
	return &Service{articles: articles, warehouses: warehouses, partners: partners, accounts: accounts}
}

// ArticleInput dati per creazione e modifica articolo.
type ArticleInput struct {
	InternalCode     string
	SupplierCode     string
	ManufacturerCode string
	Description      string
	Supplier         string
	Manufacturer     string
	Barcode          string
	MinStock         decimal.Decimal
	ReorderQty       decimal.Decimal
}

// CreateArticle crea un articolo a catalogo. Codice interno univoco.
func (s *Service) CreateArticle(ctx context.Context, input ArticleInput) (string, error) {
	code := strings.TrimSpace(input.InternalCode)
	if code == "" {
		return "", domain.Validationf("codice interno obbligatorio")
	}
	if strings.TrimSpace(input.Description) == "" {
		return "", domain.Validationf("descrizione obbligatoria")
	}
	if input.MinStock.IsNegative() || input.ReorderQty.IsNegative() {
		return "", domain.Validationf("scorta minima e riordino non possono essere negativi")
	}
	now := time.Now().UTC()
	art := &entity.Article{
		ID:               uuid.New().String(),
		InternalCode:     code,
		SupplierCode:     strings.TrimSpace(input.SupplierCode),
		ManufacturerCode: strings.TrimSpace(input.ManufacturerCode),
		Description:      strings.TrimSpace(input.Description),
		Supplier:         strings.TrimSpace(input.Supplier),
		Manufacturer:     strings.TrimSpace(input.Manufacturer),
		Barcode:          strings.TrimSpace(input.Barcode),
		MinStock:         entity.QuantizeQty(input.MinStock),
		ReorderQty:       entity.QuantizeQty(input.ReorderQty),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.articles.Create(ctx, art); err != nil {
		return "", err
	}
	return art.ID, nil
}

// UpdateArticle aggiorna l'anagrafica. Il codice interno non si cambia mai:
// è l'identità dell'articolo su documenti e movimenti storici.
func (s *Service) UpdateArticle(ctx context.Context, id string, input ArticleInput) error {
	art, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if art == nil {
		return domain.ErrNotFound
	}
	if input.MinStock.IsNegative() || input.ReorderQty.IsNegative() {
		return domain.Validationf("scorta minima e riordino non possono essere negativi")
	}
	if d := strings.TrimSpace(input.Description); d != "" {
		art.Description = d
	}
	art.SupplierCode = strings.TrimSpace(input.SupplierCode)
	art.ManufacturerCode = strings.TrimSpace(input.ManufacturerCode)
	art.Supplier = strings.TrimSpace(input.Supplier)
	art.Manufacturer = strings.TrimSpace(input.Manufacturer)
	art.Barcode = strings.TrimSpace(input.Barcode)
	art.MinStock = entity.QuantizeQty(input.MinStock)
	art.ReorderQty = entity.QuantizeQty(input.ReorderQty)
	return s.articles.Update(ctx, art)
}

// GetArticle ritorna un articolo per ID.
func (s *Service) GetArticle(ctx context.Context, id string) (*entity.Article, error) {
	art, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if art == nil {
		return nil, domain.ErrNotFound
	}
	return art, nil
}

// SearchArticles ricerca a testo libero su codici, descrizione e barcode.
func (s *Service) SearchArticles(ctx context.Context, text string, limit, offset int) ([]*entity.Article, error) {
	return s.articles.List(ctx, strings.TrimSpace(text), limit, offset)
}

// CreateWarehouse crea un magazzino con codice breve univoco.
func (s *Service) CreateWarehouse(ctx context.Context, code, name string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || strings.TrimSpace(name) == "" {
		return "", domain.Validationf("codice e nome magazzino obbligatori")
	}
	wh := &entity.Warehouse{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.warehouses.Create(ctx, wh); err != nil {
		return "", err
	}
	return wh.ID, nil
}

// ListWarehouses ritorna tutti i magazzini.
func (s *Service) ListWarehouses(ctx context.Context) ([]*entity.Warehouse, error) {
	return s.warehouses.List(ctx)
}

// CreatePartner crea un cliente o fornitore. Nome univoco.
func (s *Service) CreatePartner(ctx context.Context, name, kind string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.Validationf("nome partner obbligatorio")
	}
	if !entity.ValidPartnerKind(kind) {
		return "", domain.Validationf("tipo partner %q non valido", kind)
	}
	p := &entity.Partner{
		ID:        uuid.New().String(),
		Name:      name,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.partners.Create(ctx, p); err != nil {
		return "", err
	}
	return p.ID, nil
}

// ListPartners ritorna i partner, filtrati per tipo se kind non è vuoto.
func (s *Service) ListPartners(ctx context.Context, kind string) ([]*entity.Partner, error) {
	if kind != "" && !entity.ValidPartnerKind(kind) {
		return nil, domain.Validationf("tipo partner %q non valido", kind)
	}
	return s.partners.List(ctx, kind)
}

// CreateLedgerAccount crea un mastrino. Codice univoco.
func (s *Service) CreateLedgerAccount(ctx context.Context, code, description, kind string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", domain.Validationf("codice mastrino obbligatorio")
	}
	if !entity.ValidLedgerAccountKind(kind) {
		return "", domain.Validationf("tipo mastrino %q non valido", kind)
	}
	a := &entity.LedgerAccount{
		ID:          uuid.New().String(),
		Code:        code,
		Description: strings.TrimSpace(description),
		Kind:        kind,
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		return "", err
	}
	return a.ID, nil
}

// ListLedgerAccounts ritorna i mastrini, filtrati per tipo se kind non è vuoto.
func (s *Service) ListLedgerAccounts(ctx context.Context, kind string) ([]*entity.LedgerAccount, error) {
	if kind != "" && !entity.ValidLedgerAccountKind(kind) {
		return nil, domain.Validationf("tipo mastrino %q non valido", kind)
	}
	return s.accounts.List(ctx, kind)
}
