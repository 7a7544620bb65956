package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/restaurante-api/internal/application/payables"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/postgres"
)

func newVencidasCmd(g *globalFlags) *cobra.Command {
	var restaurantID string
	cmd := &cobra.Command{
		Use:   "vencidas",
		Short: "Marca como vencidas las cuentas por pagar atrasadas",
		Long: `Marca como vencidas las cuentas pendientes o parciales cuyo vencimiento es
anterior a hoy en la zona horaria de cada restaurante. Sin --restaurante
recorre todos los restaurantes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel, e, err := g.setup(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			defer e.pool.Close()

			uc := payables.NewUseCase(
				postgres.NewTxRunner(e.pool),
				postgres.NewCuentaPorPagarRepository(e.pool),
				postgres.NewProveedorRepository(e.pool),
				postgres.NewRestaurantRepository(e.pool),
				e.tenants,
				e.log.Component("payables"),
			)
			var n int
			if restaurantID != "" {
				n, err = uc.MarcarVencidas(ctx, restaurantID)
			} else {
				n, err = uc.MarcarVencidasTodos(ctx)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cuentas marcadas como vencidas: %d\n", n)
			return err
		},
	}
	cmd.Flags().StringVar(&restaurantID, "restaurante", "", "ID del restaurante (por defecto todos)")
	return cmd
}
