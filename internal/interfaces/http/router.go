package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dipendenze per il router.
type RouterDeps struct {
	Documents *DocumentHandler
	Stock     *StockHandler
	Articles  *ArticleHandler
	Settings  *SettingsHandler
	Import    *ImportHandler
}

// Router registra le rotte dell'API. L'autenticazione è demandata al reverse
// proxy a monte: qui nessun middleware di auth.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Documenti: ciclo di vita completo
	docs := api.Group("/documents")
	docs.Post("/", deps.Documents.Create)
	docs.Get("/", deps.Documents.List)
	docs.Get("/drafts/count", deps.Documents.DraftCount)
	docs.Get("/:id", deps.Documents.GetByID)
	docs.Delete("/:id", deps.Documents.Void)
	docs.Post("/:id/confirm", deps.Documents.Confirm)
	docs.Post("/:id/reverse", deps.Documents.Reverse)
	docs.Get("/:id/pdf", deps.Documents.PrintPDF)
	docs.Get("/:id/xml", deps.Documents.ExportXML)
	docs.Get("/:id/attachments/:attachmentId", deps.Documents.DownloadAttachment)
	docs.Post("/:id/lines", deps.Documents.AddLine)
	docs.Put("/lines/:lineId", deps.Documents.UpdateLine)
	docs.Delete("/lines/:lineId", deps.Documents.RemoveLine)

	// Giacenze e registro movimenti
	stock := api.Group("/stock")
	stock.Get("/below-minimum", deps.Stock.BelowMinimum)
	stock.Get("/:articleId", deps.Stock.QueryStock)
	api.Get("/movements", deps.Stock.ListMovements)
	api.Post("/movements", deps.Stock.RegisterManualMovement)

	// Catalogo articoli
	articles := api.Group("/articles")
	articles.Post("/", deps.Articles.Create)
	articles.Get("/", deps.Articles.List)
	articles.Get("/:id", deps.Articles.GetByID)
	articles.Put("/:id", deps.Articles.Update)

	// Anagrafiche di contorno
	api.Post("/warehouses", deps.Settings.CreateWarehouse)
	api.Get("/warehouses", deps.Settings.ListWarehouses)
	api.Post("/partners", deps.Settings.CreatePartner)
	api.Get("/partners", deps.Settings.ListPartners)
	api.Post("/ledger-accounts", deps.Settings.CreateLedgerAccount)
	api.Get("/ledger-accounts", deps.Settings.ListLedgerAccounts)

	// Import DDT fornitore
	imp := api.Group("/import")
	imp.Post("/parse", deps.Import.Parse)
	imp.Post("/commit", deps.Import.Commit)
}
