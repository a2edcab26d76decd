package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/acgclimaservice/magazzino/internal/application/dto"
	"github.com/acgclimaservice/magazzino/internal/application/ledger"
	"github.com/acgclimaservice/magazzino/internal/application/ports"
	"github.com/acgclimaservice/magazzino/internal/domain/entity"
	"github.com/acgclimaservice/magazzino/internal/domain/repository"
	"github.com/acgclimaservice/magazzino/internal/infrastructure/pdf"
	"github.com/acgclimaservice/magazzino/internal/infrastructure/xmlexport"
	"github.com/acgclimaservice/magazzino/pkg/logger"
)

// DocumentHandler gestisce il ciclo di vita dei documenti via HTTP.
type DocumentHandler struct {
	svc    *ledger.Service
	pdfGen *pdf.MarotoPDFGenerator
	xmlGen *xmlexport.DDTBuilderService
	store  ports.FileStore
	log    *logger.Logger
}

// NewDocumentHandler costruisce l'handler.
func NewDocumentHandler(
	svc *ledger.Service,
	pdfGen *pdf.MarotoPDFGenerator,
	xmlGen *xmlexport.DDTBuilderService,
	store ports.FileStore,
	log *logger.Logger,
) *DocumentHandler {
	return &DocumentHandler{svc: svc, pdfGen: pdfGen, xmlGen: xmlGen, store: store, log: log}
}

// Create godoc
// @Summary      Crea una bozza di documento
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDraftRequest  true  "type, partner_id, warehouse_id"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo non valido"})
	}
	id, err := h.svc.CreateDraft(c.Context(), ledger.CreateDraftInput{
		Type:        in.Type,
		PartnerID:   in.PartnerID,
		WarehouseID: in.WarehouseID,
		SupplierRef: in.SupplierRef,
		JobRef:      in.JobRef,
		Note:        in.Note,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// GetByID godoc
// @Summary      Dettaglio documento: testata, righe, movimenti, allegati
// @Tags         documents
// @Produce      json
// @Param        id  path  string  true  "ID documento"
// @Success      200  {object}  dto.DocumentDetailDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	detail, err := h.svc.GetDocument(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(detail)
}

// List godoc
// @Summary      Lista documenti con filtri
// @Tags         documents
// @Produce      json
// @Param        type    query  string  false  "DDT_IN | DDT_OUT"
// @Param        status  query  string  false  "Bozza | Confermato | Stornato"
// @Param        q       query  string  false  "ricerca su partner, commessa e note"
// @Success      200  {array}  dto.DocumentDTO
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginazione non valida"})
	}
	page.DefaultPage()

	filter := repository.DocumentFilter{
		Type:   c.Query("type"),
		Status: entity.DocumentStatus(c.Query("status")),
		Text:   c.Query("q"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from non valida (YYYY-MM-DD)"})
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to non valida (YYYY-MM-DD)"})
		}
		filter.To = &t
	}

	docs, err := h.svc.ListDocuments(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(docs), "documents": docs})
}

// DraftCount godoc
// @Summary      Numero di bozze in attesa
// @Tags         documents
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/documents/drafts/count [get]
func (h *DocumentHandler) DraftCount(c *fiber.Ctx) error {
	n, err := h.svc.DraftCount(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"drafts": n})
}

// AddLine godoc
// @Summary      Aggiunge una riga a una bozza
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID documento"
// @Param        body  body  dto.LineRequest  true  "article_id, quantity, unit_price"
// @Success      201   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/lines [post]
func (h *DocumentHandler) AddLine(c *fiber.Ctx) error {
	var in dto.LineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo non valido"})
	}
	lineID, err := h.svc.AddLine(c.Context(), c.Params("id"), ledger.LineInput{
		ArticleID:   in.ArticleID,
		Description: in.Description,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		LedgerCode:  in.LedgerCode,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": lineID})
}

// UpdateLine godoc
// @Summary      Modifica una riga di una bozza
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        lineId  path  string           true  "ID riga"
// @Param        body    body  dto.UpdateLineRequest  true  "campi da modificare (gli omessi restano invariati)"
// @Success      200     {object}  map[string]string
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/documents/lines/{lineId} [put]
func (h *DocumentHandler) UpdateLine(c *fiber.Ctx) error {
	var in dto.UpdateLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo non valido"})
	}
	err := h.svc.UpdateLine(c.Context(), c.Params("lineId"), ledger.UpdateLineInput{
		ArticleID:   in.ArticleID,
		Description: in.Description,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		LedgerCode:  in.LedgerCode,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "riga aggiornata"})
}

// RemoveLine godoc
// @Summary      Elimina una riga da una bozza
// @Tags         documents
// @Param        lineId  path  string  true  "ID riga"
// @Success      200     {object}  map[string]string
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/documents/lines/{lineId} [delete]
func (h *DocumentHandler) RemoveLine(c *fiber.Ctx) error {
	if err := h.svc.RemoveLine(c.Context(), c.Params("lineId")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "riga eliminata"})
}

// Confirm godoc
// @Summary      Conferma un documento: assegna numero e data, genera i movimenti
// @Tags         documents
// @Produce      json
// @Param        id  path  string  true  "ID documento"
// @Success      200  {object}  dto.StatusResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/confirm [post]
func (h *DocumentHandler) Confirm(c *fiber.Ctx) error {
	status, err := h.svc.Confirm(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	h.log.Info().Str("document_id", c.Params("id")).Msg("documento confermato")
	return c.JSON(dto.StatusResponse{Status: string(status)})
}

// Reverse godoc
// @Summary      Storna un documento confermato con movimenti compensativi
// @Tags         documents
// @Produce      json
// @Param        id  path  string  true  "ID documento"
// @Success      200  {object}  dto.StatusResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/reverse [post]
func (h *DocumentHandler) Reverse(c *fiber.Ctx) error {
	status, err := h.svc.Reverse(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	h.log.Info().Str("document_id", c.Params("id")).Msg("documento stornato")
	return c.JSON(dto.StatusResponse{Status: string(status)})
}

// Void godoc
// @Summary      Annulla una bozza (cancellazione definitiva)
// @Tags         documents
// @Param        id  path  string  true  "ID documento"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Void(c *fiber.Ctx) error {
	orphans, err := h.svc.Void(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	// I file vengono rimossi dopo il commit; un errore qui non invalida l'annullo.
	for _, path := range orphans {
		if err := h.store.Remove(c.Context(), path); err != nil {
			h.log.Warn().Str("path", path).Err(err).Msg("rimozione allegato fallita")
		}
	}
	return c.JSON(fiber.Map{"message": "documento annullato"})
}

// PrintPDF godoc
// @Summary      Stampa PDF del documento
// @Tags         documents
// @Produce      application/pdf
// @Param        id  path  string  true  "ID documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/pdf [get]
func (h *DocumentHandler) PrintPDF(c *fiber.Ctx) error {
	doc, partner, warehouse, lines, err := h.svc.ExportData(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.pdfGen.GenerateDocumentPDF(c.Context(), doc, partner, warehouse, lines)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="ddt-%s.pdf"`, doc.ID))
	return c.Send(out)
}

// ExportXML godoc
// @Summary      Export XML del documento confermato
// @Tags         documents
// @Produce      application/xml
// @Param        id  path  string  true  "ID documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/xml [get]
func (h *DocumentHandler) ExportXML(c *fiber.Ctx) error {
	doc, partner, warehouse, lines, err := h.svc.ExportData(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.xmlGen.Build(doc, partner, warehouse, lines)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="ddt-%s.xml"`, doc.ID))
	return c.Send(out)
}

// DownloadAttachment godoc
// @Summary      Scarica un allegato del documento
// @Tags         documents
// @Param        id            path  string  true  "ID documento"
// @Param        attachmentId  path  string  true  "ID allegato"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/attachments/{attachmentId} [get]
func (h *DocumentHandler) DownloadAttachment(c *fiber.Ctx) error {
	att, err := h.svc.GetAttachment(c.Context(), c.Params("id"), c.Params("attachmentId"))
	if err != nil {
		return writeError(c, err)
	}
	data, err := h.store.Read(c.Context(), att.Path)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, att.MIME)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, att.Filename))
	return c.Send(data)
}
