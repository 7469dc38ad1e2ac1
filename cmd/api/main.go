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

	_ "github.com/jhoicas/mini-estoque/docs"
	"github.com/jhoicas/mini-estoque/internal/application/auth"
	"github.com/jhoicas/mini-estoque/internal/application/inventory"
	"github.com/jhoicas/mini-estoque/internal/application/usecase"
	infrapdf "github.com/jhoicas/mini-estoque/internal/infrastructure/pdf"
	"github.com/jhoicas/mini-estoque/internal/infrastructure/postgres"
	"github.com/jhoicas/mini-estoque/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/mini-estoque/internal/interfaces/http"
	"github.com/jhoicas/mini-estoque/pkg/config"
	"github.com/jhoicas/mini-estoque/pkg/logger"
	"github.com/jhoicas/mini-estoque/pkg/validator"
)

// @title        Mini Estoque API
// @version      1.0
// @description  Cadastro de produtos, estoque e movimentações de entrada/saída.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
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

	applied, err := postgres.EnsureSchema(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar esquema")
	}
	log.Info().Int("migraciones_aplicadas", applied).Msg("esquema listo")

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := usecase.NewProductUseCase(productRepo)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, movementRepo, log)
	reportUC := usecase.NewReportUseCase(
		productUC,
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		spreadsheet.NewExcelizeGenerator(),
	)
	authUC := auth.NewAuthUseCase(
		auth.Credentials{User: cfg.Auth.User, Password: cfg.Auth.Password},
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Mini Estoque API",
	}))

	app.Get("/health", httpRouter.HealthHandler(cfg.App.Name, pool, log))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        productUC,
		ReportUC:         reportUC,
		RegisterMovement: registerMovementUC,
		AuthUC:           authUC,
		Validator:        validator.MustNew(),
		Logger:           log,
		JWTSecret:        cfg.JWT.Secret,
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
