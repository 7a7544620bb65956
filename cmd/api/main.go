package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/restaurante-api/internal/application/analytics"
	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/application/inventory"
	"github.com/jhoicas/restaurante-api/internal/application/orders"
	"github.com/jhoicas/restaurante-api/internal/application/payables"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/application/tenant"
	"github.com/jhoicas/restaurante-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/restaurante-api/internal/infrastructure/pdf"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/postgres"
	infraqr "github.com/jhoicas/restaurante-api/internal/infrastructure/qr"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/realtime"
	httpRouter "github.com/jhoicas/restaurante-api/internal/interfaces/http"
	"github.com/jhoicas/restaurante-api/migrations"
	"github.com/jhoicas/restaurante-api/pkg/config"
	"github.com/jhoicas/restaurante-api/pkg/jwt"
	"github.com/jhoicas/restaurante-api/pkg/logger"
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
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool, migrations.FS, log.Component("migrate"))
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("applied", applied).Msg("migraciones al día")
	}

	restaurantRepo := postgres.NewRestaurantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	insumoRepo := postgres.NewInsumoRepository(pool)
	movimientoRepo := postgres.NewMovimientoInsumoRepository(pool)
	proveedorRepo := postgres.NewProveedorRepository(pool)
	cuentaRepo := postgres.NewCuentaPorPagarRepository(pool)
	productoRepo := postgres.NewProductoRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	pedidoRepo := postgres.NewPedidoRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	tenants := tenant.NewResolver(restaurantRepo, tenant.Defaults{
		Timezone: cfg.App.Timezone,
		Currency: cfg.App.Currency,
		Locale:   cfg.App.Locale,
	})

	// Tiempo real: hub WebSocket para pantallas de cocina y caja en su propio puerto
	var (
		publisher ports.PedidoPublisher = ports.NopPublisher{}
		hub       *realtime.Hub
		rtServer  *realtime.Server
	)
	if cfg.Realtime.Enabled {
		hub = realtime.NewHub(func(token string) (string, error) {
			_, restaurantID, _, err := jwt.Parse(cfg.JWT.Secret, token)
			if err != nil {
				return "", err
			}
			if restaurantID == "" {
				return "", errors.New("token sin restaurante")
			}
			return restaurantID, nil
		}, realtime.Options{}, log.Component("realtime"))
		go hub.Run(ctx)
		publisher = hub

		rtServer = realtime.NewServer(hub, cfg.Realtime.Port, cfg.Realtime.MDNS, log.Zerolog())
		go func() {
			if err := rtServer.ListenAndServe(); err != nil {
				log.Error().Err(err).Msg("servidor de tiempo real finalizado")
			}
		}()
	}

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	qrGenerator := infraqr.NewGenerator()

	authUC := auth.NewAuthUseCase(userRepo, restaurantRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	restaurantUC := usecase.NewRestaurantUseCase(restaurantRepo, cfg.App.Timezone, cfg.App.Currency)
	insumoUC := inventory.NewInsumoUseCase(insumoRepo, movimientoRepo, tenants)
	movimientoUC := inventory.NewMovimientoUseCase(txRunner, tenants, log.Component("inventory"))
	reposicionUC := inventory.NewReposicionUseCase(insumoRepo, proveedorRepo)
	proveedorUC := usecase.NewProveedorUseCase(proveedorRepo, insumoRepo)
	cuentaUC := payables.NewUseCase(txRunner, cuentaRepo, proveedorRepo, restaurantRepo, tenants, log.Component("payables"))
	productoUC := usecase.NewProductoUseCase(txRunner, productoRepo, insumoRepo)
	clienteUC := usecase.NewClienteUseCase(clienteRepo)
	pedidoUC := orders.NewUseCase(
		txRunner, pedidoRepo, productoRepo, clienteRepo, movimientoUC, tenants,
		publisher, pdfGenerator, qrGenerator,
		orders.Config{PublicBaseURL: cfg.Public.BaseURL},
		log.Component("orders"),
	)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo, tenants)
	dashboardUC := appanalytics.NewDashboardUseCase(reportRepo, pedidoRepo, insumoRepo, cuentaRepo, tenants, pdfGenerator)

	if cfg.Jobs.OverdueIntervalMinutes > 0 {
		go runOverdueSweep(ctx, cuentaUC, time.Duration(cfg.Jobs.OverdueIntervalMinutes)*time.Minute, log.Component("jobs"))
	}

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
		Title:    "Restaurante API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		RestaurantUC: restaurantUC,
		InsumoUC:     insumoUC,
		MovimientoUC: movimientoUC,
		ReposicionUC: reposicionUC,
		ProveedorUC:  proveedorUC,
		CuentaUC:     cuentaUC,
		ProductoUC:   productoUC,
		ClienteUC:    clienteUC,
		PedidoUC:     pedidoUC,
		LedgerUC:     ledgerUC,
		DashboardUC:  dashboardUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if rtServer != nil {
		if err := rtServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("apagado del servidor de tiempo real")
		}
		<-hub.Done()
	}

	log.Info().Msg("aplicación detenida")
}

// runOverdueSweep marca cuentas vencidas de todos los restaurantes cada interval.
func runOverdueSweep(ctx context.Context, uc *payables.UseCase, interval time.Duration, log zerolog.Logger) {
	sweep := func() {
		n, err := uc.MarcarVencidasTodos(ctx)
		if err != nil {
			log.Error().Err(err).Int("marcadas", n).Msg("barrido de cuentas vencidas con errores")
			return
		}
		log.Info().Int("marcadas", n).Msg("barrido de cuentas vencidas")
	}
	sweep()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep()
		}
	}
}
