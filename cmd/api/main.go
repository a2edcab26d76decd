package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/acgclimaservice/magazzino/internal/application/importing"
	"github.com/acgclimaservice/magazzino/internal/application/ledger"
	"github.com/acgclimaservice/magazzino/internal/application/masterdata"
	infraai "github.com/acgclimaservice/magazzino/internal/infrastructure/ai"
	infrapdf "github.com/acgclimaservice/magazzino/internal/infrastructure/pdf"
	"github.com/acgclimaservice/magazzino/internal/infrastructure/postgres"
	"github.com/acgclimaservice/magazzino/internal/infrastructure/storage"
	"github.com/acgclimaservice/magazzino/internal/infrastructure/xmlexport"
	httpRouter "github.com/acgclimaservice/magazzino/internal/interfaces/http"
	"github.com/acgclimaservice/magazzino/pkg/config"
	"github.com/acgclimaservice/magazzino/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carica configurazione: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("avvio applicazione")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connessione a PostgreSQL")
	}
	defer pool.Close()

	documentRepo := postgres.NewDocumentRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	articleRepo := postgres.NewArticleRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	partnerRepo := postgres.NewPartnerRepository(pool)
	accountRepo := postgres.NewLedgerAccountRepository(pool)
	attachmentRepo := postgres.NewAttachmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerSvc := ledger.NewService(
		txRunner,
		documentRepo, movementRepo, stockRepo, articleRepo,
		warehouseRepo, partnerRepo, accountRepo, attachmentRepo,
	)
	masterdataSvc := masterdata.NewService(articleRepo, warehouseRepo, partnerRepo, accountRepo)

	fileStore, err := storage.NewLocalStore(cfg.App.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("storage allegati")
	}

	anthropicSvc := infraai.NewAnthropicService(cfg.AI.APIKey, cfg.AI.Model)
	importSvc := importing.NewService(anthropicSvc, fileStore, ledgerSvc, partnerRepo, articleRepo, accountRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.CompanyName)
	xmlBuilder := xmlexport.NewDDTBuilderService()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    16 << 20, // upload PDF in import
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 120, // il parsing AI può superare il minuto
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI in locale: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Magazzino API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Documents: httpRouter.NewDocumentHandler(ledgerSvc, pdfGenerator, xmlBuilder, fileStore, log),
		Stock:     httpRouter.NewStockHandler(ledgerSvc),
		Articles:  httpRouter.NewArticleHandler(masterdataSvc),
		Settings:  httpRouter.NewSettingsHandler(masterdataSvc),
		Import:    httpRouter.NewImportHandler(importSvc, log),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("server HTTP terminato")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("spegnimento in corso")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown HTTP")
	}
}
