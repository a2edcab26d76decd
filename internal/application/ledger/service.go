package ledger

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

// Service è la facciata transazionale del registro di magazzino: bozze, righe,
// conferma, storno, annullo, movimenti manuali e interrogazioni. Ogni operazione
// è un'unità atomica; nessun effetto parziale è mai visibile al chiamante.
type Service struct {
	tx         TxRunner
	documents  repository.DocumentRepository
	movements  repository.MovementRepository
	stock      repository.StockRepository
	articles   repository.ArticleRepository
	warehouses repository.WarehouseRepository
	partners   repository.PartnerRepository
	accounts   repository.LedgerAccountRepository
	attachs    repository.AttachmentRepository
}

// NewService costruisce la facciata. I repository fuori transazione servono le
// letture; le scritture passano sempre dal TxRunner.
func NewService(
	tx TxRunner,
	documents repository.DocumentRepository,
	movements repository.MovementRepository,
	stock repository.StockRepository,
	articles repository.ArticleRepository,
	warehouses repository.WarehouseRepository,
	partners repository.PartnerRepository,
	accounts repository.LedgerAccountRepository,
	attachs repository.AttachmentRepository,
) *Service {
	return &Service{
		tx:         tx,
		documents:  documents,
		movements:  movements,
		stock:      stock,
		articles:   articles,
		warehouses: warehouses,
		partners:   partners,
		accounts:   accounts,
		attachs:    attachs,
	}
}

// CreateDraftInput dati per la creazione di una bozza.
type CreateDraftInput struct {
	Type        string
	PartnerID   string
	WarehouseID string
	SupplierRef string
	JobRef      string
	Note        string
}

// CreateDraft crea un documento in bozza: nessun numero, anno o data, nessun
// effetto su giacenze. Più bozze possono coesistere ed essere modificate liberamente.
func (s *Service) CreateDraft(ctx context.Context, input CreateDraftInput) (string, error) {
	if !entity.ValidDocumentType(input.Type) {
		return "", domain.Validationf("tipo documento %q non valido", input.Type)
	}
	if input.PartnerID == "" || input.WarehouseID == "" {
		return "", domain.Validationf("partner e magazzino sono obbligatori")
	}
	partner, err := s.partners.GetByID(ctx, input.PartnerID)
	if err != nil {
		return "", err
	}
	if partner == nil {
		return "", domain.ErrNotFound
	}
	wh, err := s.warehouses.GetByID(ctx, input.WarehouseID)
	if err != nil {
		return "", err
	}
	if wh == nil {
		return "", domain.ErrNotFound
	}

	doc := &entity.Document{
		ID:          uuid.New().String(),
		Type:        input.Type,
		Status:      entity.StatusDraft,
		PartnerID:   input.PartnerID,
		WarehouseID: input.WarehouseID,
		SupplierRef: strings.TrimSpace(input.SupplierRef),
		JobRef:      strings.TrimSpace(input.JobRef),
		Note:        strings.TrimSpace(input.Note),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID, nil
}

// LineInput dati di una riga documento.
type LineInput struct {
	ArticleID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LedgerCode  string
}

func (s *Service) validateLineInput(ctx context.Context, r Repos, input LineInput) error {
	if input.ArticleID == "" {
		return domain.Validationf("articolo obbligatorio")
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return domain.Validationf("quantità deve essere positiva")
	}
	if input.UnitPrice.LessThan(decimal.Zero) {
		return domain.Validationf("prezzo non può essere negativo")
	}
	art, err := r.Articles().GetByID(ctx, input.ArticleID)
	if err != nil {
		return err
	}
	if art == nil {
		return domain.ErrNotFound
	}
	if code := strings.TrimSpace(input.LedgerCode); code != "" {
		acc, err := s.accounts.GetByCode(ctx, code)
		if err != nil {
			return err
		}
		if acc == nil {
			return domain.Validationf("mastrino %q inesistente", code)
		}
	}
	return nil
}

// AddLine aggiunge una riga a una bozza. Nessun controllo di giacenza qui, nemmeno
// per i DDT di uscita: la verifica avviene in conferma, quando il consumo è definitivo.
func (s *Service) AddLine(ctx context.Context, documentID string, input LineInput) (string, error) {
	var lineID string
	err := s.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		doc, err := r.Documents().GetForUpdate(ctx, documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if !doc.IsEditable() {
			return domain.ErrInvalidStateTransition
		}
		if err := s.validateLineInput(ctx, r, input); err != nil {
			return err
		}
		lines, err := r.Documents().ListLines(ctx, documentID)
		if err != nil {
			return err
		}
		// Posizione = massimo + 1, non conteggio + 1: dopo una rimozione il
		// conteggio riuserebbe una posizione già occupata e l'ordine delle
		// righe diventerebbe ambiguo.
		position := 0
		for _, l := range lines {
			if l.Position > position {
				position = l.Position
			}
		}
		line := &entity.DocumentLine{
			ID:          uuid.New().String(),
			DocumentID:  documentID,
			ArticleID:   input.ArticleID,
			Description: strings.TrimSpace(input.Description),
			Quantity:    entity.QuantizeQty(input.Quantity),
			UnitPrice:   entity.QuantizeMoney(input.UnitPrice),
			LedgerCode:  strings.TrimSpace(input.LedgerCode),
			Position:    position + 1,
			CreatedAt:   time.Now().UTC(),
		}
		if err := r.Documents().AddLine(ctx, line); err != nil {
			return err
		}
		lineID = line.ID
		return nil
	})
	return lineID, err
}

// UpdateLineInput modifica parziale di una riga: i campi nil restano invariati,
// i campi valorizzati vengono applicati anche quando azzerano il valore
// (prezzo a 0.00, descrizione o mastrino svuotati).
type UpdateLineInput struct {
	ArticleID   *string
	Description *string
	Quantity    *decimal.Decimal
	UnitPrice   *decimal.Decimal
	LedgerCode  *string
}

// UpdateLine modifica una riga di una bozza.
func (s *Service) UpdateLine(ctx context.Context, lineID string, input UpdateLineInput) error {
	return s.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		line, err := r.Documents().GetLine(ctx, lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		doc, err := r.Documents().GetForUpdate(ctx, line.DocumentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if !doc.IsEditable() {
			return domain.ErrInvalidStateTransition
		}
		if input.ArticleID != nil && *input.ArticleID != line.ArticleID {
			if *input.ArticleID == "" {
				return domain.Validationf("articolo obbligatorio")
			}
			art, err := r.Articles().GetByID(ctx, *input.ArticleID)
			if err != nil {
				return err
			}
			if art == nil {
				return domain.ErrNotFound
			}
			line.ArticleID = *input.ArticleID
		}
		if input.Description != nil {
			line.Description = strings.TrimSpace(*input.Description)
		}
		if input.Quantity != nil {
			if !input.Quantity.GreaterThan(decimal.Zero) {
				return domain.Validationf("quantità deve essere positiva")
			}
			line.Quantity = entity.QuantizeQty(*input.Quantity)
		}
		if input.UnitPrice != nil {
			if input.UnitPrice.LessThan(decimal.Zero) {
				return domain.Validationf("prezzo non può essere negativo")
			}
			line.UnitPrice = entity.QuantizeMoney(*input.UnitPrice)
		}
		if input.LedgerCode != nil {
			code := strings.TrimSpace(*input.LedgerCode)
			if code != "" {
				acc, err := s.accounts.GetByCode(ctx, code)
				if err != nil {
					return err
				}
				if acc == nil {
					return domain.Validationf("mastrino %q inesistente", code)
				}
			}
			line.LedgerCode = code
		}
		return r.Documents().UpdateLine(ctx, line)
	})
}

// RemoveLine elimina una riga da una bozza.
func (s *Service) RemoveLine(ctx context.Context, lineID string) error {
	return s.tx.Run(ctx, func(ctx context.Context, r Repos) error {
		line, err := r.Documents().GetLine(ctx, lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		doc, err := r.Documents().GetForUpdate(ctx, line.DocumentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if !doc.IsEditable() {
			return domain.ErrInvalidStateTransition
		}
		return r.Documents().DeleteLine(ctx, lineID)
	})
}

// applyStockDelta blocca la riga di giacenza e applica il delta, fallendo con
// InsufficientStockError se il risultato sarebbe negativo. Da invocare solo
// dentro la transazione del movimento che giustifica il delta.
func applyStockDelta(ctx context.Context, r Repos, articleID, warehouseID string, delta decimal.Decimal) error {
	stock, err := r.Stock().GetForUpdate(ctx, articleID, warehouseID)
	if err != nil {
		return err
	}
	newQty := stock.Quantity.Add(delta)
	if newQty.IsNegative() {
		return &domain.InsufficientStockError{ArticleID: articleID, WarehouseID: warehouseID}
	}
	stock.Quantity = newQty
	stock.UpdatedAt = time.Now().UTC()
	return r.Stock().Upsert(ctx, stock)
}
