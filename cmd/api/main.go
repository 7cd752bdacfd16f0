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

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/auth"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/importer"
	apppayout "github.com/mohan98521/gtm-variable-pay-sub001/internal/application/payout"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/plans"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/ports"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/usecase"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/infrastructure/cache"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/infrastructure/export"
	infrapdf "github.com/mohan98521/gtm-variable-pay-sub001/internal/infrastructure/pdf"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/infrastructure/postgres"
	httpRouter "github.com/mohan98521/gtm-variable-pay-sub001/internal/interfaces/http"
	"github.com/mohan98521/gtm-variable-pay-sub001/pkg/config"
	"github.com/mohan98521/gtm-variable-pay-sub001/pkg/logger"
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

	// Bus de caché: Redis si está configurado, no-op en caso contrario.
	var bus ports.CacheBus = ports.NoopBus{}
	if cfg.Redis.Enabled() {
		redisBus, err := cache.NewRedisBus(cfg.Redis, log.Component("cache"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisBus.Close()
		bus = redisBus
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché Redis habilitada")
	}

	employeeRepo := postgres.NewEmployeeRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	targetRepo := postgres.NewTargetRepository(pool)
	payoutRepo := postgres.NewPayoutRepository(pool)
	currencyRepo := postgres.NewCurrencyRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	dealRepo := postgres.NewDealRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, employeeRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo, bus)
	planUC := usecase.NewPlanUseCase(planRepo, bus)
	copyPlanUC := plans.NewCopyPlanUseCase(txRunner, bus)
	targetUC := usecase.NewTargetUseCase(targetRepo, planRepo, userRepo, employeeRepo, bus)
	payoutUC := usecase.NewPayoutUseCase(payoutRepo, employeeRepo, bus)
	currencyUC := usecase.NewCurrencyUseCase(currencyRepo, employeeRepo, bus)
	roleUC := usecase.NewRoleUseCase(roleRepo, bus)
	dealUC := usecase.NewDealSpiffUseCase(dealRepo, employeeRepo, bus)

	employeeImporter := importer.NewEmployeeImporter(employeeRepo, planRepo, userRepo, targetRepo, bus)
	targetImporter := importer.NewTargetImporter(targetRepo, employeeRepo, bus)

	workingsUC := apppayout.NewWorkingsUseCase(payoutRepo, currencyRepo, bus)
	exportUC := apppayout.NewExportUseCase(
		workingsUC, payoutRepo, employeeRepo,
		export.NewWorkingsCSV(), export.NewWorkbook(),
		infrapdf.NewMarotoStatementRenderer(),
	)

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
		Title:    "GTM Variable Pay API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		EmployeeUC:       employeeUC,
		EmployeeImporter: employeeImporter,
		EmployeeRepo:     employeeRepo,
		EmployeeCSV:      export.NewEmployeeCSV(),
		PlanUC:           planUC,
		CopyPlanUC:       copyPlanUC,
		TargetUC:         targetUC,
		TargetImporter:   targetImporter,
		PayoutUC:         payoutUC,
		WorkingsUC:       workingsUC,
		ExportUC:         exportUC,
		CurrencyUC:       currencyUC,
		RoleUC:           roleUC,
		DealUC:           dealUC,
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
