// Package analytics contiene los casos de uso de los tableros de ventas y el
// reporte PDF. Solo los pedidos entregados cuentan como venta.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/application/tenant"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/reporting"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/jhoicas/restaurante-api/pkg/timeutil"
)

const (
	maxDiasRango    = 366
	maxTopN         = 50
	defaultTopN     = 10
	reporteTopN     = 10 // productos en el PDF
	ventanaProximas = 7
)

// DashboardUseCase genera el resumen del día y del mes en curso y los reportes
// por rango de fechas.
//
// Fuente de datos: ReportRepository (read-only) más contadores de pedidos,
// insumos y cuentas por pagar.
type DashboardUseCase struct {
	reports repository.ReportRepository
	pedidos repository.PedidoRepository
	insumos repository.InsumoRepository
	cuentas repository.CuentaPorPagarRepository
	tenants *tenant.Resolver
	pdf     ports.PDFGenerator
	now     func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	reports repository.ReportRepository,
	pedidos repository.PedidoRepository,
	insumos repository.InsumoRepository,
	cuentas repository.CuentaPorPagarRepository,
	tenants *tenant.Resolver,
	pdf ports.PDFGenerator,
) *DashboardUseCase {
	return &DashboardUseCase{
		reports: reports,
		pedidos: pedidos,
		insumos: insumos,
		cuentas: cuentas,
		tenants: tenants,
		pdf:     pdf,
		now:     time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// Resumen construye el DashboardResumenDTO del restaurante.
//
// Cinco consultas en paralelo:
//  1. Ventas(hoy)               → VentasHoy + PedidosHoy
//  2. Ventas(mes)               → VentasMes + PedidosMes + TicketPromedioMes
//  3. CountAbiertos             → PedidosAbiertos
//  4. CountBajoStock            → InsumosBajoStock
//  5. Resumen cuentas por pagar → CuentasVencidas + MontoVencido
func (uc *DashboardUseCase) Resumen(ctx context.Context, restaurantID string) (*dto.DashboardResumenDTO, error) {
	info, err := uc.tenants.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	now := uc.now()

	// ── Rangos de fecha (zona del restaurante, expresados en UTC) ─────────────
	todayStart, todayEnd := timeutil.DayRange(now, info.Loc)
	monthStart, _ := timeutil.MonthRange(now, info.Loc)

	var (
		ventasHoy, ventasMes []reporting.Venta
		abiertos, bajoStock  int
		cuentas              *repository.CuentasResumen
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := uc.reports.Ventas(gctx, restaurantID, todayStart, todayEnd)
		if err != nil {
			return fmt.Errorf("dashboard: ventas de hoy: %w", err)
		}
		ventasHoy = v
		return nil
	})
	g.Go(func() error {
		v, err := uc.reports.Ventas(gctx, restaurantID, monthStart, todayEnd)
		if err != nil {
			return fmt.Errorf("dashboard: ventas del mes: %w", err)
		}
		ventasMes = v
		return nil
	})
	g.Go(func() error {
		n, err := uc.pedidos.CountAbiertos(gctx, restaurantID)
		if err != nil {
			return fmt.Errorf("dashboard: pedidos abiertos: %w", err)
		}
		abiertos = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.insumos.CountBajoStock(gctx, restaurantID)
		if err != nil {
			return fmt.Errorf("dashboard: insumos bajo stock: %w", err)
		}
		bajoStock = n
		return nil
	})
	g.Go(func() error {
		r, err := uc.cuentas.Resumen(gctx, restaurantID, todayStart, todayStart.AddDate(0, 0, ventanaProximas))
		if err != nil {
			return fmt.Errorf("dashboard: cuentas por pagar: %w", err)
		}
		cuentas = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totalHoy, pedidosHoy := reporting.Totales(ventasHoy)
	totalMes, pedidosMes := reporting.Totales(ventasMes)

	return &dto.DashboardResumenDTO{
		VentasHoy:          totalHoy,
		VentasMes:          totalMes,
		PedidosHoy:         pedidosHoy,
		PedidosMes:         pedidosMes,
		TicketPromedioMes:  reporting.TicketPromedio(totalMes, pedidosMes),
		PedidosAbiertos:    abiertos,
		InsumosBajoStock:   bajoStock,
		CuentasVencidas:    cuentas.CuentasVencidas,
		MontoVencido:       cuentas.TotalVencido,
		VentasHoyFormatted: info.Money.Format(totalHoy),
		VentasMesFormatted: info.Money.Format(totalMes),
		Moneda:             info.Currency,
		Fecha:              timeutil.DayKey(now, info.Loc),
		DateLabel:          monthLabel(now.In(info.Loc)),
	}, nil
}

// rango resuelve [from, to) y valida el máximo de días.
func (uc *DashboardUseCase) rango(ctx context.Context, restaurantID, desde, hasta string) (*tenant.Info, time.Time, time.Time, error) {
	info, err := uc.tenants.Get(ctx, restaurantID)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	from, to, err := timeutil.LocalDateRange(desde, hasta, uc.now(), info.Loc)
	if err != nil {
		return nil, time.Time{}, time.Time{}, errors.Join(domain.ErrInvalidInput, err)
	}
	if timeutil.CalendarDays(from, to.Add(-time.Nanosecond), info.Loc) > maxDiasRango {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("rango mayor a %d días: %w", maxDiasRango, domain.ErrInvalidInput)
	}
	return info, from, to, nil
}

func topN(n int) (int, error) {
	if n <= 0 {
		return defaultTopN, nil
	}
	if n > maxTopN {
		return 0, fmt.Errorf("n máximo %d: %w", maxTopN, domain.ErrInvalidInput)
	}
	return n, nil
}

// VentasPorDia buckets diarios entre desde y hasta (fechas locales inclusive),
// con los días sin ventas en cero.
func (uc *DashboardUseCase) VentasPorDia(ctx context.Context, restaurantID, desde, hasta string) (*dto.VentasDiariasResponse, error) {
	info, from, to, err := uc.rango(ctx, restaurantID, desde, hasta)
	if err != nil {
		return nil, err
	}
	ventas, err := uc.reports.Ventas(ctx, restaurantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("ventas por día: %w", err)
	}
	total, pedidos := reporting.Totales(ventas)
	res := &dto.VentasDiariasResponse{
		Desde:          timeutil.DayKey(from, info.Loc),
		Hasta:          timeutil.DayKey(to.Add(-time.Nanosecond), info.Loc),
		Total:          total,
		Pedidos:        pedidos,
		TicketPromedio: reporting.TicketPromedio(total, pedidos),
	}
	for _, d := range reporting.GroupByDay(ventas, from, to, info.Loc) {
		res.Dias = append(res.Dias, dto.VentaDiariaDTO{Fecha: d.Fecha, Pedidos: d.Pedidos, Total: d.Total})
	}
	return res, nil
}

// TopProductos productos más vendidos por ingreso.
func (uc *DashboardUseCase) TopProductos(ctx context.Context, restaurantID, desde, hasta string, n int) ([]dto.TopProductoDTO, error) {
	n, err := topN(n)
	if err != nil {
		return nil, err
	}
	_, from, to, err := uc.rango(ctx, restaurantID, desde, hasta)
	if err != nil {
		return nil, err
	}
	items, err := uc.reports.ItemsVendidos(ctx, restaurantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("top productos: %w", err)
	}
	out := make([]dto.TopProductoDTO, 0, n)
	for _, r := range reporting.TopProductos(items, n) {
		out = append(out, dto.TopProductoDTO{ProductoID: r.ProductoID, Nombre: r.Nombre, Cantidad: r.Cantidad, Total: r.Total})
	}
	return out, nil
}

// TopClientes clientes con mayor gasto; los pedidos sin cliente no cuentan.
func (uc *DashboardUseCase) TopClientes(ctx context.Context, restaurantID, desde, hasta string, n int) ([]dto.TopClienteDTO, error) {
	n, err := topN(n)
	if err != nil {
		return nil, err
	}
	_, from, to, err := uc.rango(ctx, restaurantID, desde, hasta)
	if err != nil {
		return nil, err
	}
	ventas, err := uc.reports.Ventas(ctx, restaurantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("top clientes: %w", err)
	}
	out := make([]dto.TopClienteDTO, 0, n)
	for _, r := range reporting.TopClientes(ventas, n) {
		out = append(out, dto.TopClienteDTO{ClienteID: r.ClienteID, Nombre: r.Nombre, Pedidos: r.Pedidos, Total: r.Total})
	}
	return out, nil
}

// ReporteVentasPDF PDF con ventas por día y top de productos del rango.
func (uc *DashboardUseCase) ReporteVentasPDF(ctx context.Context, restaurantID, desde, hasta string) ([]byte, error) {
	info, from, to, err := uc.rango(ctx, restaurantID, desde, hasta)
	if err != nil {
		return nil, err
	}

	var (
		ventas []reporting.Venta
		items  []reporting.ItemVendido
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ventas, err = uc.reports.Ventas(gctx, restaurantID, from, to)
		return err
	})
	g.Go(func() (err error) {
		items, err = uc.reports.ItemsVendidos(gctx, restaurantID, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reporte de ventas: %w", err)
	}

	total, pedidos := reporting.Totales(ventas)
	data := ports.ReporteVentasData{
		Restaurante:    info.Restaurant.Name,
		NIT:            info.Restaurant.NIT,
		Desde:          timeutil.DayKey(from, info.Loc),
		Hasta:          timeutil.DayKey(to.Add(-time.Nanosecond), info.Loc),
		Total:          info.Money.Format(total),
		Pedidos:        pedidos,
		TicketPromedio: info.Money.Format(reporting.TicketPromedio(total, pedidos)),
		GeneradoEn:     uc.now().In(info.Loc).Format("02/01/2006 15:04"),
	}
	for _, d := range reporting.GroupByDay(ventas, from, to, info.Loc) {
		data.Dias = append(data.Dias, ports.ReporteDia{Fecha: d.Fecha, Pedidos: d.Pedidos, Total: info.Money.Format(d.Total)})
	}
	for _, p := range reporting.TopProductos(items, reporteTopN) {
		data.TopProductos = append(data.TopProductos, ports.ReporteProducto{
			Nombre:   p.Nombre,
			Cantidad: p.Cantidad.String(),
			Total:    info.Money.Format(p.Total),
		})
	}
	return uc.pdf.ReporteVentas(ctx, data)
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
