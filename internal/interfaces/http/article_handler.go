package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acgclimaservice/magazzino/internal/application/dto"
	"github.com/acgclimaservice/magazzino/internal/application/masterdata"
	"github.com/acgclimaservice/magazzino/internal/domain/entity"
)

// ArticleHandler gestisce il catalogo articoli via HTTP.
type ArticleHandler struct {
	svc *masterdata.Service
}

// NewArticleHandler costruisce l'handler.
func NewArticleHandler(svc *masterdata.Service) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

func toArticleDTO(a *entity.Article) dto.ArticleDTO {
	return dto.ArticleDTO{
		ID:               a.ID,
		InternalCode:     a.InternalCode,
		SupplierCode:     a.SupplierCode,
		ManufacturerCode: a.ManufacturerCode,
		Description:      a.Description,
		Supplier:         a.Supplier,
		Manufacturer:     a.Manufacturer,
		Barcode:          a.Barcode,
		MinStock:         a.MinStock,
		ReorderQty:       a.ReorderQty,
		LastCost:         a.LastCost,
		UpdatedAt:        a.UpdatedAt,
	}
}

// Create godoc
// @Summary      Crea un articolo a catalogo
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ArticleRequest  true  "internal_code, description"
// @Success      201   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/articles [post]
func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	var in dto.ArticleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo non valido"})
	}
	id, err := h.svc.CreateArticle(c.Context(), articleInput(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// GetByID godoc
// @Summary      Dettaglio articolo
// @Tags         articles
// @Produce      json
// @Param        id  path  string  true  "ID articolo"
// @Success      200  {object}  dto.ArticleDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articles/{id} [get]
func (h *ArticleHandler) GetByID(c *fiber.Ctx) error {
	art, err := h.svc.GetArticle(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toArticleDTO(art))
}

// List godoc
// @Summary      Ricerca articoli per codice, descrizione o barcode
// @Tags         articles
// @Produce      json
// @Param        q  query  string  false  "testo di ricerca"
// @Success      200  {array}  dto.ArticleDTO
// @Router       /api/articles [get]
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginazione non valida"})
	}
	page.DefaultPage()

	articles, err := h.svc.SearchArticles(c.Context(), c.Query("q"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ArticleDTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, toArticleDTO(a))
	}
	return c.JSON(fiber.Map{"total": len(out), "articles": out})
}

// Update godoc
// @Summary      Aggiorna l'anagrafica di un articolo
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID articolo"
// @Param        body  body  dto.ArticleRequest  true  "campi da modificare"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/articles/{id} [put]
func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	var in dto.ArticleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo non valido"})
	}
	if err := h.svc.UpdateArticle(c.Context(), c.Params("id"), articleInput(in)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "articolo aggiornato"})
}

func articleInput(in dto.ArticleRequest) masterdata.ArticleInput {
	return masterdata.ArticleInput{
		InternalCode:     in.InternalCode,
		SupplierCode:     in.SupplierCode,
		ManufacturerCode: in.ManufacturerCode,
		Description:      in.Description,
		Supplier:         in.Supplier,
		Manufacturer:     in.Manufacturer,
		Barcode:          in.Barcode,
		MinStock:         in.MinStock,
		ReorderQty:       in.ReorderQty,
	}
}
