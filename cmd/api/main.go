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

	"github.com/jhoicas/Inventario-historico-api/internal/application/auth"
	"github.com/jhoicas/Inventario-historico-api/internal/application/report"
	infraexcel "github.com/jhoicas/Inventario-historico-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/Inventario-historico-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-historico-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-historico-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Inventario-historico-api/internal/interfaces/http"
	"github.com/jhoicas/Inventario-historico-api/pkg/config"
	"github.com/jhoicas/Inventario-historico-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	userRepo := postgres.NewUserRepository(pool)
	moveRepo := postgres.NewStockMoveRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	attachmentStore, err := storage.NewMinioStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacén de adjuntos")
	}

	xlsxExporter := infraexcel.NewExporter()
	pdfGenerator := infrapdf.NewMarotoReportGenerator()

	reportUC := report.NewReportUseCase(
		txRunner, moveRepo, locationRepo, productRepo, reportRepo,
		xlsxExporter, pdfGenerator, attachmentStore, log,
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Histórico API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReportUC:  reportUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
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
