package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/vendor-directory/internal/application/usecase"
	infracache "github.com/jhoicas/vendor-directory/internal/infrastructure/cache"
	"github.com/jhoicas/vendor-directory/internal/infrastructure/observability"
	infrapdf "github.com/jhoicas/vendor-directory/internal/infrastructure/pdf"
	"github.com/jhoicas/vendor-directory/internal/infrastructure/postgres"
	"github.com/jhoicas/vendor-directory/internal/infrastructure/supabase"
	httpRouter "github.com/jhoicas/vendor-directory/internal/interfaces/http"
	"github.com/jhoicas/vendor-directory/pkg/config"
	"github.com/jhoicas/vendor-directory/pkg/i18n"
	"github.com/jhoicas/vendor-directory/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	metrics := observability.NewCollector("vendor_directory")

	taxonomyRepo := postgres.NewTaxonomyRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	taxonomyCache := infracache.NewTaxonomyCache(cfg.Cache.TaxonomyTTL, metrics)

	taxonomyUC := usecase.NewTaxonomyUseCase(taxonomyRepo, taxonomyCache, metrics, log)
	vendorUC := usecase.NewVendorUseCase(
		vendorRepo, txRunner, taxonomyUC, infrapdf.NewVendorSheetGenerator(), metrics, log,
	)

	// Precarga del árbol: un fallo aquí no impide arrancar, se reintenta en la primera petición.
	if _, err := taxonomyUC.Tree(ctx); err != nil {
		log.Warn().Err(err).Msg("precarga de taxonomía")
	}

	verifier, err := supabase.NewVerifier(cfg.Supabase, log)
	if err != nil {
		log.Fatal().Err(err).Msg("verificador de identidad")
	}
	if cfg.Supabase.JWTSecret == "" {
		log.Info().Str("url", cfg.Supabase.URL).Msg("tokens verificados contra Supabase Auth")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(httpRouter.ObserveMiddleware(log, metrics))
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Vendor Directory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		TaxonomyUC: taxonomyUC,
		VendorUC:   vendorUC,
		Verifier:   verifier,
		Negotiator: i18n.NewNegotiator(cfg.I18n.DefaultLocale),
		Log:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
