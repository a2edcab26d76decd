package importing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acgclimaservice/magazzino/internal/application/dto"
	"github.com/acgclimaservice/magazzino/internal/application/ledger"
	"github.com/acgclimaservice/magazzino/internal/application/ports"
	"github.com/acgclimaservice/magazzino/internal/domain"
	"github.com/acgclimaservice/magazzino/internal/domain/entity"
	"github.com/acgclimaservice/magazzino/internal/domain/repository"
)

// maxPDFSize limite sul PDF in import.
const maxPDFSize = 10 << 20

// Service è la pipeline di import DDT fornitore: parsing del PDF in righe
// candidate, poi generazione della bozza di ingresso con allegato. Le due fasi
// sono separate: il chiamante rivede e corregge i candidati prima del commit.
type Service struct {
	parser   ports.DocumentParser
	store    ports.FileStore
	ledger   *ledger.Service
	partners repository.PartnerRepository
	articles repository.ArticleRepository
	accounts repository.LedgerAccountRepository
	validate *validator.Validate
}

func NewService(
	parser ports.DocumentParser,
	store ports.FileStore,
	ledgerSvc *ledger.Service,
	partners repository.PartnerRepository,
	articles repository.ArticleRepository,
	accounts repository.LedgerAccountRepository,
) *Service {
	return &Service{
		parser:   parser,
		store:    store,
		ledger:   ledgerSvc,
		partners: partners,
		articles: articles,
		accounts: accounts,
		validate: validator.New(),
	}
}

// Parse estrae le righe candidate dal PDF. Nessun effetto sul registro.
func (s *Service) Parse(ctx context.Context, pdf []byte) (*dto.ParsedDocument, error) {
	if len(pdf) == 0 {
		return nil, domain.Validationf("PDF vuoto")
	}
	if len(pdf) > maxPDFSize {
		return nil, domain.Validationf("PDF oltre il limite di %d MB", maxPDFSize>>20)
	}
	parsed, err := s.parser.ParseDocument(ctx, pdf)
	if err != nil {
		return nil, fmt.Errorf("parsing documento: %w", err)
	}
	for i := range parsed.Lines {
		parsed.Lines[i].Description = normalizeText(parsed.Lines[i].Description)
		parsed.Lines[i].Unit = normalizeUnit(parsed.Lines[i].Unit)
		parsed.Lines[i].SupplierCode = strings.TrimSpace(parsed.Lines[i].SupplierCode)
	}
	parsed.SupplierName = normalizeText(parsed.SupplierName)
	return parsed, nil
}

// Commit genera la bozza di ingresso dalle righe riviste: fornitore e articoli
// mancanti vengono creati a catalogo, il PDF resta allegato alla bozza.
// La bozza segue poi il ciclo di vita ordinario, conferma inclusa.
func (s *Service) Commit(ctx context.Context, req dto.ImportRequest, pdf []byte, filename string) (*dto.ImportResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.Validationf("richiesta import non valida: %v", err)
	}
	var warnings []string

	supplier, err := s.partners.GetByName(ctx, req.Supplier)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		supplier = &entity.Partner{
			ID:        uuid.New().String(),
			Name:      normalizeText(req.Supplier),
			Kind:      entity.PartnerSupplier,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.partners.Create(ctx, supplier); err != nil {
			return nil, err
		}
		warnings = append(warnings, fmt.Sprintf("fornitore %q creato", supplier.Name))
	}

	ledgerCode := ""
	if acc, err := s.accounts.FirstByKind(ctx, entity.LedgerAccountPurchase); err != nil {
		return nil, err
	} else if acc != nil {
		ledgerCode = acc.Code
	} else {
		warnings = append(warnings, "nessun mastrino di acquisto configurato")
	}

	docID, err := s.ledger.CreateDraft(ctx, ledger.CreateDraftInput{
		Type:        entity.DocumentTypeIn,
		PartnerID:   supplier.ID,
		WarehouseID: req.WarehouseID,
		SupplierRef: req.DocumentRef,
		JobRef:      req.JobRef,
	})
	if err != nil {
		return nil, err
	}

	prefix := codePrefix(supplier.Name)
	count := 0
	for i, line := range req.Lines {
		if !line.Quantity.GreaterThan(decimal.Zero) {
			warnings = append(warnings, fmt.Sprintf("riga %d scartata: quantità non positiva", i+1))
			continue
		}
		art, created, err := s.resolveArticle(ctx, prefix, supplier.Name, line)
		if err != nil {
			return nil, s.discardDraft(ctx, docID, err)
		}
		if created {
			warnings = append(warnings, fmt.Sprintf("articolo %s creato a catalogo", art.InternalCode))
		}
		if _, err := s.ledger.AddLine(ctx, docID, ledger.LineInput{
			ArticleID:   art.ID,
			Description: normalizeText(line.Description),
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LedgerCode:  ledgerCode,
		}); err != nil {
			return nil, s.discardDraft(ctx, docID, err)
		}
		count++
	}
	if count == 0 {
		return nil, s.discardDraft(ctx, docID, domain.ErrEmptyDocument)
	}

	stored, err := s.store.Save(ctx, filename, pdf)
	if err != nil {
		return nil, s.discardDraft(ctx, docID, fmt.Errorf("salvataggio allegato: %w", err))
	}
	if _, err := s.ledger.AttachFile(ctx, docID, filename, "application/pdf", stored); err != nil {
		return nil, s.discardDraft(ctx, docID, err)
	}

	return &dto.ImportResponse{DocumentID: docID, LineCount: count, Warnings: warnings}, nil
}

// discardDraft annulla la bozza parziale quando la pipeline fallisce a metà:
// niente bozze orfane da un import interrotto. Le anagrafiche già create
// restano, sono get-or-create e vengono riusate al tentativo successivo.
func (s *Service) discardDraft(ctx context.Context, docID string, cause error) error {
	if _, err := s.ledger.Void(ctx, docID); err != nil {
		return fmt.Errorf("%w (bozza parziale %s non rimossa: %v)", cause, docID, err)
	}
	return cause
}

// resolveArticle cerca l'articolo per codice fornitore, poi per codice interno
// generato; se assente lo crea a catalogo con il prefisso del fornitore.
func (s *Service) resolveArticle(ctx context.Context, prefix, supplier string, line dto.ParsedLine) (*entity.Article, bool, error) {
	if line.SupplierCode != "" {
		art, err := s.articles.GetBySupplierCode(ctx, line.SupplierCode, supplier)
		if err != nil {
			return nil, false, err
		}
		if art != nil {
			return art, false, nil
		}
	}

	internalCode := prefix + "-" + line.SupplierCode
	if line.SupplierCode == "" {
		internalCode = prefix + "-" + strings.ToUpper(uuid.New().String()[:8])
	}
	art, err := s.articles.GetByInternalCode(ctx, internalCode)
	if err != nil {
		return nil, false, err
	}
	if art != nil {
		return art, false, nil
	}

	art = &entity.Article{
		ID:           uuid.New().String(),
		InternalCode: internalCode,
		SupplierCode: line.SupplierCode,
		Description:  normalizeText(line.Description),
		Supplier:     supplier,
		LastCost:     entity.QuantizeMoney(line.UnitPrice),
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := s.articles.Create(ctx, art); err != nil {
		return nil, false, err
	}
	return art, true, nil
}
