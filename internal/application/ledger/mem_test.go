package ledger_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acgclimaservice/magazzino/internal/application/ledger"
	"github.com/acgclimaservice/magazzino/internal/domain"
	"github.com/acgclimaservice/magazzino/internal/domain/entity"
	"github.com/acgclimaservice/magazzino/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store in memoria con semantica transazionale: Run lavora su un clone e
// pubblica solo al commit, come il TxRunner PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type memDB struct {
	docs        map[string]entity.Document
	lines       map[string]entity.DocumentLine
	movements   []entity.Movement
	seq         int64
	stock       map[string]entity.StockLevel // chiave "articolo|magazzino"
	articles    map[string]entity.Article
	warehouses  map[string]entity.Warehouse
	partners    map[string]entity.Partner
	accounts    map[string]entity.LedgerAccount
	attachments map[string]entity.Attachment
}

func newMemDB() *memDB {
	return &memDB{
		docs:        map[string]entity.Document{},
		lines:       map[string]entity.DocumentLine{},
		stock:       map[string]entity.StockLevel{},
		articles:    map[string]entity.Article{},
		warehouses:  map[string]entity.Warehouse{},
		partners:    map[string]entity.Partner{},
		accounts:    map[string]entity.LedgerAccount{},
		attachments: map[string]entity.Attachment{},
	}
}

func stockKey(articleID, warehouseID string) string {
	return articleID + "|" + warehouseID
}

func (d *memDB) clone() *memDB {
	c := newMemDB()
	for k, v := range d.docs {
		c.docs[k] = v
	}
	for k, v := range d.lines {
		c.lines[k] = v
	}
	c.movements = append(c.movements, d.movements...)
	c.seq = d.seq
	for k, v := range d.stock {
		c.stock[k] = v
	}
	for k, v := range d.articles {
		c.articles[k] = v
	}
	for k, v := range d.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range d.partners {
		c.partners[k] = v
	}
	for k, v := range d.accounts {
		c.accounts[k] = v
	}
	for k, v := range d.attachments {
		c.attachments[k] = v
	}
	return c
}

// fixture tiene lo stato condiviso tra transazioni: il contatore di collisioni
// simulate sopravvive ai rollback, come farebbe un documento concorrente reale.
type fixture struct {
	db *memDB
	// SetConfirmed fallisce con ErrDuplicate finché il contatore è positivo.
	confirmCollisions int
}

func newFixture() *fixture {
	return &fixture{db: newMemDB()}
}

// Run implementa ledger.TxRunner: clone, esegui, pubblica al commit.
func (fx *fixture) Run(ctx context.Context, fn func(ctx context.Context, r ledger.Repos) error) error {
	tx := fx.db.clone()
	if err := fn(ctx, &memRepos{fx: fx, tx: tx}); err != nil {
		return err
	}
	fx.db = tx
	return nil
}

// newService costruisce il servizio con tutti i repository sul fixture.
func (fx *fixture) newService() *ledger.Service {
	r := &memRepos{fx: fx}
	return ledger.NewService(
		fx,
		r.Documents(), r.Movements(), r.Stock(), r.Articles(),
		&warehouseRepo{r}, &partnerRepo{r}, &accountRepo{r}, r.Attachments(),
	)
}

// memRepos implementa ledger.Repos. Con tx valorizzato opera sul clone
// transazionale, altrimenti sullo stato committato.
type memRepos struct {
	fx *fixture
	tx *memDB
}

func (r *memRepos) d() *memDB {
	if r.tx != nil {
		return r.tx
	}
	return r.fx.db
}

func (r *memRepos) Documents() repository.DocumentRepository     { return &documentRepo{r} }
func (r *memRepos) Movements() repository.MovementRepository     { return &movementRepo{r} }
func (r *memRepos) Stock() repository.StockRepository            { return &stockRepo{r} }
func (r *memRepos) Articles() repository.ArticleRepository       { return &articleRepo{r} }
func (r *memRepos) Attachments() repository.AttachmentRepository { return &attachmentRepo{r} }

// ── DocumentRepository ────────────────────────────────────────────────────────

type documentRepo struct{ r *memRepos }

func (p *documentRepo) Create(_ context.Context, doc *entity.Document) error {
	p.r.d().docs[doc.ID] = *doc
	return nil
}

func (p *documentRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	if doc, ok := p.r.d().docs[id]; ok {
		return &doc, nil
	}
	return nil, nil
}

func (p *documentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Document, error) {
	return p.GetByID(ctx, id)
}

func (p *documentRepo) UpdateHeader(_ context.Context, doc *entity.Document) error {
	p.r.d().docs[doc.ID] = *doc
	return nil
}

func (p *documentRepo) SetConfirmed(_ context.Context, doc *entity.Document) error {
	if p.r.fx.confirmCollisions > 0 {
		p.r.fx.confirmCollisions--
		return fmt.Errorf("numero %d/%d già assegnato: %w", *doc.Number, *doc.Year, domain.ErrDuplicate)
	}
	for id, other := range p.r.d().docs {
		if id == doc.ID || other.Number == nil {
			continue
		}
		if other.Type == doc.Type && *other.Year == *doc.Year && *other.Number == *doc.Number {
			return fmt.Errorf("numero %d/%d già assegnato: %w", *doc.Number, *doc.Year, domain.ErrDuplicate)
		}
	}
	p.r.d().docs[doc.ID] = *doc
	return nil
}

func (p *documentRepo) SetStatus(_ context.Context, id string, status entity.DocumentStatus) error {
	doc := p.r.d().docs[id]
	doc.Status = status
	p.r.d().docs[id] = doc
	return nil
}

func (p *documentRepo) Delete(_ context.Context, id string) error {
	delete(p.r.d().docs, id)
	return nil
}

func (p *documentRepo) List(_ context.Context, filter repository.DocumentFilter) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, doc := range p.r.d().docs {
		if filter.Type != "" && doc.Type != filter.Type {
			continue
		}
		if filter.Status != "" && doc.Status != filter.Status {
			continue
		}
		d := doc
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (p *documentRepo) CountByStatus(_ context.Context, status entity.DocumentStatus) (int, error) {
	n := 0
	for _, doc := range p.r.d().docs {
		if doc.Status == status {
			n++
		}
	}
	return n, nil
}

func (p *documentRepo) MaxNumber(_ context.Context, docType string, year int) (int, error) {
	max := 0
	for _, doc := range p.r.d().docs {
		if doc.Type == docType && doc.Year != nil && *doc.Year == year && doc.Number != nil && *doc.Number > max {
			max = *doc.Number
		}
	}
	return max, nil
}

func (p *documentRepo) AddLine(_ context.Context, line *entity.DocumentLine) error {
	p.r.d().lines[line.ID] = *line
	return nil
}

func (p *documentRepo) GetLine(_ context.Context, lineID string) (*entity.DocumentLine, error) {
	if l, ok := p.r.d().lines[lineID]; ok {
		return &l, nil
	}
	return nil, nil
}

func (p *documentRepo) UpdateLine(_ context.Context, line *entity.DocumentLine) error {
	p.r.d().lines[line.ID] = *line
	return nil
}

func (p *documentRepo) DeleteLine(_ context.Context, lineID string) error {
	delete(p.r.d().lines, lineID)
	return nil
}

func (p *documentRepo) ListLines(_ context.Context, documentID string) ([]*entity.DocumentLine, error) {
	var out []*entity.DocumentLine
	for _, l := range p.r.d().lines {
		if l.DocumentID == documentID {
			line := l
			out = append(out, &line)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (p *documentRepo) DeleteLinesByDocument(_ context.Context, documentID string) error {
	for id, l := range p.r.d().lines {
		if l.DocumentID == documentID {
			delete(p.r.d().lines, id)
		}
	}
	return nil
}

// ── MovementRepository ────────────────────────────────────────────────────────

type movementRepo struct{ r *memRepos }

func (p *movementRepo) Record(_ context.Context, movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	p.r.d().seq++
	movement.Seq = p.r.d().seq
	p.r.d().movements = append(p.r.d().movements, *movement)
	return nil
}

func (p *movementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for i := range p.r.d().movements {
		m := p.r.d().movements[i]
		if filter.ArticleID != "" && m.ArticleID != filter.ArticleID {
			continue
		}
		if filter.WarehouseID != "" && m.SignedQuantityFor(filter.WarehouseID).IsZero() {
			continue
		}
		if filter.DocumentID != "" && (m.DocumentID == nil || *m.DocumentID != filter.DocumentID) {
			continue
		}
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Seq > out[j].Seq
	})
	return out, nil
}

func (p *movementRepo) ListByDocument(_ context.Context, documentID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for i := range p.r.d().movements {
		m := p.r.d().movements[i]
		if m.DocumentID != nil && *m.DocumentID == documentID {
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

func (p *movementRepo) SumForPair(_ context.Context, articleID, warehouseID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for i := range p.r.d().movements {
		m := p.r.d().movements[i]
		if m.ArticleID == articleID {
			sum = sum.Add(m.SignedQuantityFor(warehouseID))
		}
	}
	return sum, nil
}

// ── StockRepository ───────────────────────────────────────────────────────────

type stockRepo struct{ r *memRepos }

func (p *stockRepo) Get(_ context.Context, articleID, warehouseID string) (*entity.StockLevel, error) {
	if s, ok := p.r.d().stock[stockKey(articleID, warehouseID)]; ok {
		return &s, nil
	}
	return &entity.StockLevel{ArticleID: articleID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
}

func (p *stockRepo) GetForUpdate(ctx context.Context, articleID, warehouseID string) (*entity.StockLevel, error) {
	return p.Get(ctx, articleID, warehouseID)
}

func (p *stockRepo) Upsert(_ context.Context, stock *entity.StockLevel) error {
	p.r.d().stock[stockKey(stock.ArticleID, stock.WarehouseID)] = *stock
	return nil
}

func (p *stockRepo) ListByArticle(_ context.Context, articleID string) ([]*entity.StockLevel, error) {
	var out []*entity.StockLevel
	for k, s := range p.r.d().stock {
		if strings.HasPrefix(k, articleID+"|") {
			level := s
			out = append(out, &level)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WarehouseID < out[j].WarehouseID })
	return out, nil
}

func (p *stockRepo) ListByWarehouse(_ context.Context, warehouseID string) ([]*entity.StockLevel, error) {
	var out []*entity.StockLevel
	for k, s := range p.r.d().stock {
		if strings.HasSuffix(k, "|"+warehouseID) {
			level := s
			out = append(out, &level)
		}
	}
	return out, nil
}

func (p *stockRepo) ListBelowMinimum(_ context.Context, warehouseID string) ([]repository.BelowMinimumRow, error) {
	var out []repository.BelowMinimumRow
	for _, s := range p.r.d().stock {
		if warehouseID != "" && s.WarehouseID != warehouseID {
			continue
		}
		art, ok := p.r.d().articles[s.ArticleID]
		if !ok || !art.MinStock.IsPositive() {
			continue
		}
		if s.Quantity.LessThan(art.MinStock) {
			out = append(out, repository.BelowMinimumRow{Article: art, Stock: s})
		}
	}
	return out, nil
}

// ── ArticleRepository ─────────────────────────────────────────────────────────

type articleRepo struct{ r *memRepos }

func (p *articleRepo) Create(_ context.Context, article *entity.Article) error {
	p.r.d().articles[article.ID] = *article
	return nil
}

func (p *articleRepo) GetByID(_ context.Context, id string) (*entity.Article, error) {
	if a, ok := p.r.d().articles[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (p *articleRepo) GetByInternalCode(_ context.Context, code string) (*entity.Article, error) {
	for _, a := range p.r.d().articles {
		if a.InternalCode == code {
			art := a
			return &art, nil
		}
	}
	return nil, nil
}

func (p *articleRepo) GetBySupplierCode(_ context.Context, supplierCode, supplier string) (*entity.Article, error) {
	for _, a := range p.r.d().articles {
		if a.SupplierCode == supplierCode && a.Supplier == supplier {
			art := a
			return &art, nil
		}
	}
	return nil, nil
}

func (p *articleRepo) Update(_ context.Context, article *entity.Article) error {
	p.r.d().articles[article.ID] = *article
	return nil
}

func (p *articleRepo) UpdateLastCost(_ context.Context, id string, cost decimal.Decimal) error {
	a := p.r.d().articles[id]
	a.LastCost = cost
	p.r.d().articles[id] = a
	return nil
}

func (p *articleRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.Article, error) {
	var out []*entity.Article
	for _, a := range p.r.d().articles {
		art := a
		out = append(out, &art)
	}
	return out, nil
}

// ── Repository di contorno ────────────────────────────────────────────────────

type warehouseRepo struct{ r *memRepos }

func (p *warehouseRepo) Create(_ context.Context, warehouse *entity.Warehouse) error {
	p.r.d().warehouses[warehouse.ID] = *warehouse
	return nil
}

func (p *warehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	if w, ok := p.r.d().warehouses[id]; ok {
		return &w, nil
	}
	return nil, nil
}

func (p *warehouseRepo) GetByCode(_ context.Context, code string) (*entity.Warehouse, error) {
	for _, w := range p.r.d().warehouses {
		if w.Code == code {
			wh := w
			return &wh, nil
		}
	}
	return nil, nil
}

func (p *warehouseRepo) List(_ context.Context) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range p.r.d().warehouses {
		wh := w
		out = append(out, &wh)
	}
	return out, nil
}

type partnerRepo struct{ r *memRepos }

func (p *partnerRepo) Create(_ context.Context, partner *entity.Partner) error {
	p.r.d().partners[partner.ID] = *partner
	return nil
}

func (p *partnerRepo) GetByID(_ context.Context, id string) (*entity.Partner, error) {
	if pa, ok := p.r.d().partners[id]; ok {
		return &pa, nil
	}
	return nil, nil
}

func (p *partnerRepo) GetByName(_ context.Context, name string) (*entity.Partner, error) {
	for _, pa := range p.r.d().partners {
		if pa.Name == name {
			partner := pa
			return &partner, nil
		}
	}
	return nil, nil
}

func (p *partnerRepo) List(_ context.Context, kind string) ([]*entity.Partner, error) {
	var out []*entity.Partner
	for _, pa := range p.r.d().partners {
		if kind != "" && pa.Kind != kind {
			continue
		}
		partner := pa
		out = append(out, &partner)
	}
	return out, nil
}

type accountRepo struct{ r *memRepos }

func (p *accountRepo) Create(_ context.Context, account *entity.LedgerAccount) error {
	p.r.d().accounts[account.ID] = *account
	return nil
}

func (p *accountRepo) GetByCode(_ context.Context, code string) (*entity.LedgerAccount, error) {
	for _, a := range p.r.d().accounts {
		if a.Code == code {
			acc := a
			return &acc, nil
		}
	}
	return nil, nil
}

func (p *accountRepo) List(_ context.Context, kind string) ([]*entity.LedgerAccount, error) {
	var out []*entity.LedgerAccount
	for _, a := range p.r.d().accounts {
		if kind != "" && a.Kind != kind {
			continue
		}
		acc := a
		out = append(out, &acc)
	}
	return out, nil
}

func (p *accountRepo) FirstByKind(_ context.Context, kind string) (*entity.LedgerAccount, error) {
	list, _ := p.List(context.Background(), kind)
	if len(list) == 0 {
		return nil, nil
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list[0], nil
}

type attachmentRepo struct{ r *memRepos }

func (p *attachmentRepo) Create(_ context.Context, attachment *entity.Attachment) error {
	p.r.d().attachments[attachment.ID] = *attachment
	return nil
}

func (p *attachmentRepo) ListByDocument(_ context.Context, documentID string) ([]*entity.Attachment, error) {
	var out []*entity.Attachment
	for _, a := range p.r.d().attachments {
		if a.DocumentID == documentID {
			att := a
			out = append(out, &att)
		}
	}
	return out, nil
}

func (p *attachmentRepo) DeleteByDocument(_ context.Context, documentID string) error {
	for id, a := range p.r.d().attachments {
		if a.DocumentID == documentID {
			delete(p.r.d().attachments, id)
		}
	}
	return nil
}

var (
	_ ledger.TxRunner                    = (*fixture)(nil)
	_ ledger.Repos                       = (*memRepos)(nil)
	_ repository.DocumentRepository      = (*documentRepo)(nil)
	_ repository.MovementRepository      = (*movementRepo)(nil)
	_ repository.StockRepository         = (*stockRepo)(nil)
	_ repository.ArticleRepository       = (*articleRepo)(nil)
	_ repository.WarehouseRepository     = (*warehouseRepo)(nil)
	_ repository.PartnerRepository       = (*partnerRepo)(nil)
	_ repository.LedgerAccountRepository = (*accountRepo)(nil)
	_ repository.AttachmentRepository    = (*attachmentRepo)(nil)
)

// ── Seed di comodo ────────────────────────────────────────────────────────────

func (fx *fixture) seedWarehouse(code string) string {
	id := uuid.New().String()
	fx.db.warehouses[id] = entity.Warehouse{ID: id, Code: code, Name: "Magazzino " + code, CreatedAt: time.Now().UTC()}
	return id
}

func (fx *fixture) seedPartner(name, kind string) string {
	id := uuid.New().String()
	fx.db.partners[id] = entity.Partner{ID: id, Name: name, Kind: kind, CreatedAt: time.Now().UTC()}
	return id
}

func (fx *fixture) seedArticle(code string) string {
	id := uuid.New().String()
	fx.db.articles[id] = entity.Article{
		ID:           id,
		InternalCode: code,
		Description:  "Articolo " + code,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	return id
}

func (fx *fixture) seedStock(articleID, warehouseID string, qty decimal.Decimal) {
	fx.db.stock[stockKey(articleID, warehouseID)] = entity.StockLevel{
		ArticleID:   articleID,
		WarehouseID: warehouseID,
		Quantity:    qty,
		UpdatedAt:   time.Now().UTC(),
	}
}

func (fx *fixture) stockQty(articleID, warehouseID string) decimal.Decimal {
	if s, ok := fx.db.stock[stockKey(articleID, warehouseID)]; ok {
		return s.Quantity
	}
	return decimal.Zero
}
