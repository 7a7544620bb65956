package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appanalytics "github.com/jhoicas/restaurante-api/internal/application/analytics"
	infrapdf "github.com/jhoicas/restaurante-api/internal/infrastructure/pdf"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/postgres"
)

func newReporteVentasCmd(g *globalFlags) *cobra.Command {
	var restaurantID, desde, hasta, out string
	cmd := &cobra.Command{
		Use:   "reporte-ventas",
		Short: "Genera el reporte de ventas en PDF",
		Long: `Genera el PDF de ventas por día y productos más vendidos entre --desde y
--hasta (YYYY-MM-DD, ambas inclusive, en la zona del restaurante).`,
		Example: "  restctl reporte-ventas --restaurante 6f1c... --desde 2026-05-01 --hasta 2026-05-31 --out mayo.pdf",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel, e, err := g.setup(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			defer e.pool.Close()

			uc := appanalytics.NewDashboardUseCase(
				postgres.NewReportRepository(e.pool),
				postgres.NewPedidoRepository(e.pool),
				postgres.NewInsumoRepository(e.pool),
				postgres.NewCuentaPorPagarRepository(e.pool),
				e.tenants,
				infrapdf.NewMarotoPDFGenerator(),
			)
			pdf, err := uc.ReporteVentasPDF(ctx, restaurantID, desde, hasta)
			if err != nil {
				return fmt.Errorf("reporte de ventas: %w", err)
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reporte escrito en %s (%d bytes)\n", out, len(pdf))
			return nil
		},
	}
	cmd.Flags().StringVar(&restaurantID, "restaurante", "", "ID del restaurante")
	cmd.Flags().StringVar(&desde, "desde", "", "Fecha inicial YYYY-MM-DD (por defecto inicio de mes)")
	cmd.Flags().StringVar(&hasta, "hasta", "", "Fecha final YYYY-MM-DD (por defecto hoy)")
	cmd.Flags().StringVar(&out, "out", "reporte-ventas.pdf", "Archivo de salida")
	_ = cmd.MarkFlagRequired("restaurante")
	return cmd
}
