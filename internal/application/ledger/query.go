package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/acgclimaservice/magazzino/internal/application/dto"
	"github.com/acgclimaservice/magazzino/internal/domain"
	"github.com/acgclimaservice/magazzino/internal/domain/entity"
	"github.com/acgclimaservice/magazzino/internal/domain/repository"
)

// GetDocument ritorna la proiezione completa di un documento: testata, righe in
// ordine di posizione, movimenti generati e riferimenti agli allegati.
func (s *Service) GetDocument(ctx context.Context, id string) (*dto.DocumentDetailDTO, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := s.documents.ListLines(ctx, id)
	if err != nil {
		return nil, err
	}
	movements, err := s.movements.ListByDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	attachments, err := s.attachs.ListByDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.DocumentDetailDTO{
		Document:    s.toDocumentDTO(ctx, doc),
		Lines:       make([]dto.DocumentLineDTO, 0, len(lines)),
		Movements:   make([]dto.MovementDTO, 0, len(movements)),
		Attachments: make([]dto.AttachmentDTO, 0, len(attachments)),
	}
	for _, l := range lines {
		row := dto.DocumentLineDTO{
			ID:          l.ID,
			ArticleID:   l.ArticleID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LedgerCode:  l.LedgerCode,
			Position:    l.Position,
		}
		if art, err := s.articles.GetByID(ctx, l.ArticleID); err == nil && art != nil {
			row.ArticleCode = art.InternalCode
		}
		detail.Lines = append(detail.Lines, row)
	}
	for _, m := range movements {
		detail.Movements = append(detail.Movements, toMovementDTO(m))
	}
	for _, a := range attachments {
		detail.Attachments = append(detail.Attachments, dto.AttachmentDTO{
			ID:       a.ID,
			Filename: a.Filename,
			MIME:     a.MIME,
			Size:     a.Size,
			Checksum: a.Checksum,
		})
	}
	return detail, nil
}

// ListDocuments ritorna le testate che soddisfano il filtro.
func (s *Service) ListDocuments(ctx context.Context, filter repository.DocumentFilter) ([]dto.DocumentDTO, error) {
	docs, err := s.documents.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentDTO, 0, len(docs))
	for _, d := range docs {
		out = append(out, s.toDocumentDTO(ctx, d))
	}
	return out, nil
}

// DraftCount conta le bozze in attesa di conferma.
func (s *Service) DraftCount(ctx context.Context) (int, error) {
	return s.documents.CountByStatus(ctx, entity.StatusDraft)
}

// QueryStock ritorna la giacenza di un articolo: se warehouseID è vuoto,
// il totale su tutti i magazzini con il dettaglio per magazzino.
func (s *Service) QueryStock(ctx context.Context, articleID, warehouseID string) (*dto.StockQueryResponse, error) {
	art, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if art == nil {
		return nil, domain.ErrNotFound
	}

	resp := &dto.StockQueryResponse{ArticleID: articleID, Total: decimal.Zero}
	if warehouseID != "" {
		st, err := s.stock.Get(ctx, articleID, warehouseID)
		if err != nil {
			return nil, err
		}
		resp.Total = st.Quantity
		resp.Breakdown = []dto.StockLevelDTO{toStockDTO(st)}
		return resp, nil
	}

	levels, err := s.stock.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	resp.Breakdown = make([]dto.StockLevelDTO, 0, len(levels))
	for _, st := range levels {
		resp.Total = resp.Total.Add(st.Quantity)
		resp.Breakdown = append(resp.Breakdown, toStockDTO(st))
	}
	return resp, nil
}

// ListBelowMinimum ritorna gli articoli sotto scorta minima, con la quantità
// di riordino suggerita, globale o per singolo magazzino.
func (s *Service) ListBelowMinimum(ctx context.Context, warehouseID string) ([]dto.BelowMinimumDTO, error) {
	rows, err := s.stock.ListBelowMinimum(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BelowMinimumDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.BelowMinimumDTO{
			ArticleID:    r.Article.ID,
			InternalCode: r.Article.InternalCode,
			Description:  r.Article.Description,
			WarehouseID:  r.Stock.WarehouseID,
			Quantity:     r.Stock.Quantity,
			MinStock:     r.Article.MinStock,
			ReorderQty:   r.Article.ReorderQty,
			LastCost:     r.Article.LastCost,
		})
	}
	return out, nil
}

// ListMovements ritorna il registro movimenti filtrato, ordinato per data
// e progressivo di inserimento.
func (s *Service) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]dto.MovementDTO, error) {
	movements, err := s.movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementDTO(m))
	}
	return out, nil
}

// ExportData raccoglie testata, controparte, magazzino e righe per stampa PDF
// ed export XML.
func (s *Service) ExportData(ctx context.Context, id string) (*entity.Document, *entity.Partner, *entity.Warehouse, []*entity.DocumentLine, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if doc == nil {
		return nil, nil, nil, nil, domain.ErrNotFound
	}
	partner, err := s.partners.GetByID(ctx, doc.PartnerID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if partner == nil {
		return nil, nil, nil, nil, domain.ErrNotFound
	}
	warehouse, err := s.warehouses.GetByID(ctx, doc.WarehouseID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if warehouse == nil {
		return nil, nil, nil, nil, domain.ErrNotFound
	}
	lines, err := s.documents.ListLines(ctx, id)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return doc, partner, warehouse, lines, nil
}

func (s *Service) toDocumentDTO(ctx context.Context, doc *entity.Document) dto.DocumentDTO {
	d := dto.DocumentDTO{
		ID:          doc.ID,
		Type:        doc.Type,
		Number:      doc.Number,
		Year:        doc.Year,
		Date:        doc.Date,
		Status:      string(doc.Status),
		PartnerID:   doc.PartnerID,
		WarehouseID: doc.WarehouseID,
		SupplierRef: doc.SupplierRef,
		JobRef:      doc.JobRef,
		Note:        doc.Note,
		CreatedAt:   doc.CreatedAt,
	}
	if p, err := s.partners.GetByID(ctx, doc.PartnerID); err == nil && p != nil {
		d.PartnerName = p.Name
	}
	return d
}

func toMovementDTO(m *entity.Movement) dto.MovementDTO {
	out := dto.MovementDTO{
		ID:        m.ID,
		Seq:       m.Seq,
		Date:      m.Date,
		ArticleID: m.ArticleID,
		Quantity:  m.Quantity,
		Kind:      m.Kind,
		Note:      m.Note,
	}
	if m.FromWarehouseID != nil {
		out.FromWarehouse = *m.FromWarehouseID
	}
	if m.ToWarehouseID != nil {
		out.ToWarehouse = *m.ToWarehouseID
	}
	if m.DocumentID != nil {
		out.DocumentID = *m.DocumentID
	}
	return out
}

func toStockDTO(st *entity.StockLevel) dto.StockLevelDTO {
	return dto.StockLevelDTO{
		ArticleID:   st.ArticleID,
		WarehouseID: st.WarehouseID,
		Quantity:    st.Quantity,
		UpdatedAt:   st.UpdatedAt,
	}
}
