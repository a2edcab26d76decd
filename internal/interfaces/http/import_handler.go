package http

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/acgclimaservice/magazzino/internal/application/dto"
	"github.com/acgclimaservice/magazzino/internal/application/importing"
	"github.com/acgclimaservice/magazzino/pkg/logger"
)

// parseTimeout limite sulle chiamate al provider AI.
const parseTimeout = 90 * time.Second

// ImportHandler gestisce l'import dei DDT fornitore da PDF.
type ImportHandler struct {
	svc *importing.Service
	log *logger.Logger
}

// NewImportHandler costruisce l'handler.
func NewImportHandler(svc *importing.Service, log *logger.Logger) *ImportHandler {
	return &ImportHandler{svc: svc, log: log}
}

// Parse godoc
// @Summary      Estrae le righe candidate da un PDF di DDT fornitore
// @Description  Nessun effetto sul registro: il risultato va rivisto e poi
// @Description  confermato con /api/import/commit.
// @Tags         import
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "PDF del DDT"
// @Success      200   {object}  dto.ParsedDocument
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/import/parse [post]
func (h *ImportHandler) Parse(c *fiber.Ctx) error {
	data, _, err := h.readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Context(), parseTimeout)
	defer cancel()

	parsed, err := h.svc.Parse(ctx, data)
	if err != nil {
		h.log.Warn().Err(err).Msg("parsing PDF fallito")
		return writeError(c, err)
	}
	return c.JSON(parsed)
}

// Commit godoc
// @Summary      Genera la bozza di ingresso dalle righe riviste
// @Description  Il PDF viene riallegato alla bozza; fornitore e articoli
// @Description  mancanti vengono creati a catalogo.
// @Tags         import
// @Accept       multipart/form-data
// @Produce      json
// @Param        file     formData  file    true  "PDF del DDT"
// @Param        payload  formData  string  true  "dto.ImportRequest in JSON"
// @Success      201  {object}  dto.ImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/import/commit [post]
func (h *ImportHandler) Commit(c *fiber.Ctx) error {
	data, filename, err := h.readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	var req dto.ImportRequest
	if err := json.Unmarshal([]byte(c.FormValue("payload")), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "payload JSON non valido"})
	}

	resp, err := h.svc.Commit(c.Context(), req, data, filename)
	if err != nil {
		return writeError(c, err)
	}
	h.log.Info().Str("document_id", resp.DocumentID).Int("lines", resp.LineCount).Msg("import completato")
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// readUpload legge il campo multipart "file" e ritorna contenuto e nome.
func (h *ImportHandler) readUpload(c *fiber.Ctx) ([]byte, string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "campo file mancante")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer func(f multipart.File) { _ = f.Close() }(f)

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, fh.Filename, nil
}
