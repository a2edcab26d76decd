package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/acgclimaservice/magazzino/internal/application/dto"
	"github.com/acgclimaservice/magazzino/internal/application/ledger"
	"github.com/acgclimaservice/magazzino/internal/domain/repository"
)

// StockHandler gestisce giacenze, registro movimenti e movimenti manuali.
type StockHandler struct {
	svc *ledger.Service
}

// NewStockHandler costruisce l'handler.
func NewStockHandler(svc *ledger.Service) *StockHandler {
	return &StockHandler{svc: svc}
}

// QueryStock godoc
// @Summary      Giacenza di un articolo, totale o per magazzino
// @Tags         stock
// @Produce      json
// @Param        articleId     path   string  true   "ID articolo"
// @Param        warehouse_id  query  string  false  "limita a un magazzino"
// @Success      200  {object}  dto.StockQueryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{articleId} [get]
func (h *StockHandler) QueryStock(c *fiber.Ctx) error {
	resp, err := h.svc.QueryStock(c.Context(), c.Params("articleId"), c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// BelowMinimum godoc
// @Summary      Articoli sotto scorta minima
// @Tags         stock
// @Produce      json
// @Param        warehouse_id  query  string  false  "limita a un magazzino"
// @Success      200  {array}  dto.BelowMinimumDTO
// @Router       /api/stock/below-minimum [get]
func (h *StockHandler) BelowMinimum(c *fiber.Ctx) error {
	list, err := h.svc.ListBelowMinimum(c.Context(), c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "articles": list})
}

// ListMovements godoc
// @Summary      Registro movimenti con filtri
// @Tags         stock
// @Produce      json
// @Param        article_id    query  string  false  "filtra per articolo"
// @Param        warehouse_id  query  string  false  "filtra per magazzino (origine o destinazione)"
// @Param        document_id   query  string  false  "filtra per documento"
// @Success      200  {array}  dto.MovementDTO
// @Router       /api/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginazione non valida"})
	}
	page.DefaultPage()

	filter := repository.MovementFilter{
		ArticleID:   c.Query("article_id"),
		WarehouseID: c.Query("warehouse_id"),
		DocumentID:  c.Query("document_id"),
		Limit:       page.Limit,
		Offset:      page.Offset,
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

	list, err := h.svc.ListMovements(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "movements": list})
}

// RegisterManualMovement godoc
// @Summary      Registra un movimento manuale (carico, scarico o trasferimento)
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ManualMovementRequest  true  "kind, article_id, quantity, magazzini"
// @Success      201   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *StockHandler) RegisterManualMovement(c *fiber.Ctx) error {
	var in dto.ManualMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo non valido"})
	}
	id, err := h.svc.RegisterManualMovement(c.Context(), ledger.ManualMovementInput{
		Kind:            in.Kind,
		ArticleID:       in.ArticleID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Quantity:        in.Quantity,
		Note:            in.Note,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}
