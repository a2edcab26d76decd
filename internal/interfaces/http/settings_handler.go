package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acgclimaservice/magazzino/internal/application/dto"
	"github.com/acgclimaservice/magazzino/internal/application/masterdata"
)

// SettingsHandler gestisce magazzini, partner e mastrini.
type SettingsHandler struct {
	svc *masterdata.Service
}

// NewSettingsHandler costruisce l'handler.
func NewSettingsHandler(svc *masterdata.Service) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// CreateWarehouse godoc
// @Summary      Crea un magazzino
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WarehouseRequest  true  "code, name"
// @Success      201   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/warehouses [post]
func (h *SettingsHandler) CreateWarehouse(c *fiber.Ctx) error {
	var in dto.WarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo non valido"})
	}
	id, err := h.svc.CreateWarehouse(c.Context(), in.Code, in.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// ListWarehouses godoc
// @Summary      Lista magazzini
// @Tags         settings
// @Produce      json
// @Success      200  {array}  entity.Warehouse
// @Router       /api/warehouses [get]
func (h *SettingsHandler) ListWarehouses(c *fiber.Ctx) error {
	list, err := h.svc.ListWarehouses(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// CreatePartner godoc
// @Summary      Crea un cliente o fornitore
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PartnerRequest  true  "name, kind (Cliente | Fornitore)"
// @Success      201   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/partners [post]
func (h *SettingsHandler) CreatePartner(c *fiber.Ctx) error {
	var in dto.PartnerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo non valido"})
	}
	id, err := h.svc.CreatePartner(c.Context(), in.Name, in.Kind)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// ListPartners godoc
// @Summary      Lista partner
// @Tags         settings
// @Produce      json
// @Param        kind  query  string  false  "Cliente | Fornitore"
// @Success      200  {array}  entity.Partner
// @Router       /api/partners [get]
func (h *SettingsHandler) ListPartners(c *fiber.Ctx) error {
	list, err := h.svc.ListPartners(c.Context(), c.Query("kind"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// CreateLedgerAccount godoc
// @Summary      Crea un mastrino
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LedgerAccountRequest  true  "code, kind (ACQUISTO | RICAVO)"
// @Success      201   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger-accounts [post]
func (h *SettingsHandler) CreateLedgerAccount(c *fiber.Ctx) error {
	var in dto.LedgerAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo non valido"})
	}
	id, err := h.svc.CreateLedgerAccount(c.Context(), in.Code, in.Description, in.Kind)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// ListLedgerAccounts godoc
// @Summary      Lista mastrini
// @Tags         settings
// @Produce      json
// @Param        kind  query  string  false  "ACQUISTO | RICAVO"
// @Success      200  {array}  entity.LedgerAccount
// @Router       /api/ledger-accounts [get]
func (h *SettingsHandler) ListLedgerAccounts(c *fiber.Ctx) error {
	list, err := h.svc.ListLedgerAccounts(c.Context(), c.Query("kind"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
