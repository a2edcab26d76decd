package masterdata

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acgclimaservice/magazzino/internal/domain"
	"github.com/acgclimaservice/magazzino/internal/domain/entity"
	"github.com/acgclimaservice/magazzino/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake minimi per le anagrafiche
// ──────────────────────────────────────────────────────────────────────────────

type fakeArticles struct {
	byID map[string]*entity.Article
}

func (f *fakeArticles) Create(_ context.Context, a *entity.Article) error {
	if f.byID == nil {
		f.byID = map[string]*entity.Article{}
	}
	f.byID[a.ID] = a
	return nil
}
func (f *fakeArticles) GetByID(_ context.Context, id string) (*entity.Article, error) {
	return f.byID[id], nil
}
func (f *fakeArticles) GetByInternalCode(_ context.Context, _ string) (*entity.Article, error) {
	return nil, nil
}
func (f *fakeArticles) GetBySupplierCode(_ context.Context, _, _ string) (*entity.Article, error) {
	return nil, nil
}
func (f *fakeArticles) Update(_ context.Context, a *entity.Article) error {
	f.byID[a.ID] = a
	return nil
}
func (f *fakeArticles) UpdateLastCost(_ context.Context, _ string, _ decimal.Decimal) error {
	return nil
}
func (f *fakeArticles) List(_ context.Context, _ string, _, _ int) ([]*entity.Article, error) {
	return nil, nil
}

type fakeWarehouses struct {
	created []*entity.Warehouse
}

func (f *fakeWarehouses) Create(_ context.Context, w *entity.Warehouse) error {
	f.created = append(f.created, w)
	return nil
}
func (f *fakeWarehouses) GetByID(_ context.Context, _ string) (*entity.Warehouse, error) {
	return nil, nil
}
func (f *fakeWarehouses) GetByCode(_ context.Context, _ string) (*entity.Warehouse, error) {
	return nil, nil
}
func (f *fakeWarehouses) List(_ context.Context) ([]*entity.Warehouse, error) { return nil, nil }

type fakePartners struct {
	created []*entity.Partner
}

func (f *fakePartners) Create(_ context.Context, p *entity.Partner) error {
	f.created = append(f.created, p)
	return nil
}
func (f *fakePartners) GetByID(_ context.Context, _ string) (*entity.Partner, error) {
	return nil, nil
}
func (f *fakePartners) GetByName(_ context.Context, _ string) (*entity.Partner, error) {
	return nil, nil
}
func (f *fakePartners) List(_ context.Context, _ string) ([]*entity.Partner, error) {
	return nil, nil
}

type fakeAccounts struct {
	created []*entity.LedgerAccount
}

func (f *fakeAccounts) Create(_ context.Context, a *entity.LedgerAccount) error {
	f.created = append(f.created, a)
	return nil
}
func (f *fakeAccounts) GetByCode(_ context.Context, _ string) (*entity.LedgerAccount, error) {
	return nil, nil
}
func (f *fakeAccounts) List(_ context.Context, _ string) ([]*entity.LedgerAccount, error) {
	return nil, nil
}
func (f *fakeAccounts) FirstByKind(_ context.Context, _ string) (*entity.LedgerAccount, error) {
	return nil, nil
}

var (
	_ repository.ArticleRepository       = (*fakeArticles)(nil)
	_ repository.WarehouseRepository     = (*fakeWarehouses)(nil)
	_ repository.PartnerRepository       = (*fakePartners)(nil)
	_ repository.LedgerAccountRepository = (*fakeAccounts)(nil)
)

func newTestService() (*Service, *fakeArticles, *fakeWarehouses, *fakePartners, *fakeAccounts) {
	arts := &fakeArticles{}
	whs := &fakeWarehouses{}
	parts := &fakePartners{}
	accs := &fakeAccounts{}
	return NewService(arts, whs, parts, accs), arts, whs, parts, accs
}

// ──────────────────────────────────────────────────────────────────────────────
// Articoli
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateArticle(t *testing.T) {
	svc, arts, _, _, _ := newTestService()
	ctx := context.Background()

	id, err := svc.CreateArticle(ctx, ArticleInput{
		InternalCode: "  IDR-000001 ",
		Description:  "Tubo rame 22mm",
		MinStock:     decimal.RequireFromString("5.5555"),
	})
	require.NoError(t, err)

	art := arts.byID[id]
	require.NotNil(t, art)
	assert.Equal(t, "IDR-000001", art.InternalCode)
	assert.Equal(t, "5.556", art.MinStock.StringFixed(3), "scorta minima quantizzata a 3 decimali")

	_, err = svc.CreateArticle(ctx, ArticleInput{Description: "senza codice"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateArticle(ctx, ArticleInput{InternalCode: "X", Description: "ok", MinStock: decimal.RequireFromString("-1")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateArticleKeepsInternalCode(t *testing.T) {
	svc, arts, _, _, _ := newTestService()
	ctx := context.Background()

	id, err := svc.CreateArticle(ctx, ArticleInput{InternalCode: "IDR-000001", Description: "Tubo rame 22mm"})
	require.NoError(t, err)

	err = svc.UpdateArticle(ctx, id, ArticleInput{
		InternalCode: "ALTRO-CODICE",
		Description:  "Tubo rame 22mm sbavato",
		Supplier:     "Idraulica Rossi",
	})
	require.NoError(t, err)

	art := arts.byID[id]
	assert.Equal(t, "IDR-000001", art.InternalCode, "il codice interno è immutabile")
	assert.Equal(t, "Tubo rame 22mm sbavato", art.Description)
	assert.Equal(t, "Idraulica Rossi", art.Supplier)

	err = svc.UpdateArticle(ctx, "inesistente", ArticleInput{Description: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Magazzini, partner, mastrini
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateWarehouseUppercasesCode(t *testing.T) {
	svc, _, whs, _, _ := newTestService()

	_, err := svc.CreateWarehouse(context.Background(), " furg1 ", "Furgone Mario")
	require.NoError(t, err)
	require.Len(t, whs.created, 1)
	assert.Equal(t, "FURG1", whs.created[0].Code)

	_, err = svc.CreateWarehouse(context.Background(), "", "Senza codice")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreatePartnerValidatesKind(t *testing.T) {
	svc, _, _, parts, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreatePartner(ctx, "Idraulica Rossi", entity.PartnerSupplier)
	require.NoError(t, err)
	require.Len(t, parts.created, 1)

	_, err = svc.CreatePartner(ctx, "Tizio", "Intermediario")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreatePartner(ctx, "  ", entity.PartnerCustomer)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateLedgerAccountValidatesKind(t *testing.T) {
	svc, _, _, _, accs := newTestService()
	ctx := context.Background()

	_, err := svc.CreateLedgerAccount(ctx, "0590001003", "Acquisto materiale", entity.LedgerAccountPurchase)
	require.NoError(t, err)
	require.Len(t, accs.created, 1)

	_, err = svc.CreateLedgerAccount(ctx, "X", "Tipo ignoto", "SPESE")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.ListLedgerAccounts(ctx, "SPESE")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
