package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/restaurante-api/internal/application/tenant"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/postgres"
	"github.com/jhoicas/restaurante-api/pkg/config"
	"github.com/jhoicas/restaurante-api/pkg/logger"
)

type globalFlags struct {
	verbose bool
	timeout time.Duration
}

// env recursos compartidos por los subcomandos.
type env struct {
	cfg     *config.Config
	log     *logger.Logger
	pool    *pgxpool.Pool
	tenants *tenant.Resolver
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "restctl",
		Short: "Mantenimiento de la API de restaurantes",
		Long: `restctl ejecuta tareas operativas contra la misma base de datos de la API.

Subcomandos:
  migrate         - aplica migrations/*.sql pendientes
  vencidas        - marca como vencidas las cuentas por pagar atrasadas
  reporte-ventas  - genera el PDF de ventas de un restaurante`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log en nivel debug")
	root.PersistentFlags().DurationVar(&g.timeout, "timeout", 5*time.Minute, "Tiempo máximo de la operación")

	root.AddCommand(newMigrateCmd(g))
	root.AddCommand(newVencidasCmd(g))
	root.AddCommand(newReporteVentasCmd(g))
	return root
}

// setup carga configuración y abre el pool; el llamador cierra el pool.
func (g *globalFlags) setup(cmd *cobra.Command) (context.Context, context.CancelFunc, *env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	level := "info"
	if g.verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: level, Out: cmd.ErrOrStderr()})

	ctx, cancel := context.WithTimeout(cmd.Context(), g.timeout)
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		cancel()
		return nil, nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	restaurants := postgres.NewRestaurantRepository(pool)
	return ctx, cancel, &env{
		cfg:  cfg,
		log:  log,
		pool: pool,
		tenants: tenant.NewResolver(restaurants, tenant.Defaults{
			Timezone: cfg.App.Timezone,
			Currency: cfg.App.Currency,
			Locale:   cfg.App.Locale,
		}),
	}, nil
}
