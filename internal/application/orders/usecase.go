// Package orders orquesta el ciclo de vida de los pedidos: creación con precios
// conciliados, cambios de estado con consumo de insumos e ingreso financiero,
// y los documentos asociados (ticket y QR de seguimiento).
package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/application/tenant"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/pedido"
	"github.com/jhoicas/restaurante-api/internal/domain/pricing"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/jhoicas/restaurante-api/pkg/timeutil"
)

const qrSize = 256

var metodosPago = map[string]bool{"": true, "efectivo": true, "tarjeta": true, "transferencia": true}

// Consumidor descuenta insumos de producción dentro de la transacción del pedido.
// Lo implementa inventory.MovimientoUseCase.
type Consumidor interface {
	ConsumirEnTx(
		ctx context.Context,
		repos ports.TxRepos,
		restaurantID, currency, userID, pedidoID string,
		consumo map[string]decimal.Decimal,
		now time.Time,
	) error
}

// Config parámetros de documentos.
type Config struct {
	PublicBaseURL string // base de la URL de seguimiento codificada en el QR
}

// UseCase pedidos.
type UseCase struct {
	txRunner   ports.TxRunner
	repo       repository.PedidoRepository
	productos  repository.ProductoRepository
	clientes   repository.ClienteRepository
	consumidor Consumidor
	tenants    *tenant.Resolver
	publisher  ports.PedidoPublisher
	pdf        ports.PDFGenerator
	qr         ports.QRGenerator
	cfg        Config
	log        zerolog.Logger
	now        func() time.Time
}

// NewUseCase construye el caso de uso. publisher nil equivale a ports.NopPublisher.
func NewUseCase(
	txRunner ports.TxRunner,
	repo repository.PedidoRepository,
	productos repository.ProductoRepository,
	clientes repository.ClienteRepository,
	consumidor Consumidor,
	tenants *tenant.Resolver,
	publisher ports.PedidoPublisher,
	pdf ports.PDFGenerator,
	qr ports.QRGenerator,
	cfg Config,
	log zerolog.Logger,
) *UseCase {
	if publisher == nil {
		publisher = ports.NopPublisher{}
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	return &UseCase{
		txRunner:   txRunner,
		repo:       repo,
		productos:  productos,
		clientes:   clientes,
		consumidor: consumidor,
		tenants:    tenants,
		publisher:  publisher,
		pdf:        pdf,
		qr:         qr,
		cfg:        cfg,
		log:        log,
		now:        time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Create registra un pedido en estado pendiente. Los precios salen de la carta;
// si el POS envía total_esperado y difiere del calculado retorna ErrPriceMismatch.
func (uc *UseCase) Create(ctx context.Context, restaurantID, userID string, in dto.CreatePedidoRequest) (*dto.PedidoResponse, error) {
	if err := validarCreate(in); err != nil {
		return nil, err
	}
	info, err := uc.tenants.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if in.ClienteID != "" {
		cli, err := uc.clientes.GetByID(ctx, in.ClienteID)
		if err != nil {
			return nil, err
		}
		if cli == nil || cli.RestaurantID != restaurantID {
			return nil, domain.ErrNotFound
		}
	}

	ids := make([]string, 0, len(in.Items))
	for _, it := range in.Items {
		ids = append(ids, it.ProductoID)
	}
	prods, err := uc.productos.GetByIDs(ctx, restaurantID, ids)
	if err != nil {
		return nil, err
	}
	catalogo := make(map[string]*entity.Producto, len(prods))
	for _, p := range prods {
		catalogo[p.ID] = p
	}

	lineas := make([]pricing.Linea, 0, len(in.Items))
	for _, it := range in.Items {
		p, ok := catalogo[it.ProductoID]
		if !ok || p.RestaurantID != restaurantID {
			return nil, fmt.Errorf("producto %s: %w", it.ProductoID, domain.ErrNotFound)
		}
		if !p.Activo {
			return nil, fmt.Errorf("producto %s inactivo: %w", p.Nombre, domain.ErrInvalidInput)
		}
		lineas = append(lineas, pricing.Linea{
			ProductoID:   p.ID,
			Cantidad:     it.Cantidad,
			Precio:       p.Precio,
			TasaImpuesto: p.TasaImpuesto,
		})
	}
	calc, err := pricing.ProcesarCalculosFinancieros(pricing.Entrada{
		Lineas:           lineas,
		ImpuestoIncluido: info.Restaurant.TaxIncluded,
		Descuento:        in.Descuento,
		TotalEsperado:    in.TotalEsperado,
		Moneda:           info.Currency,
	})
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	p := &entity.Pedido{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		Tipo:         in.Tipo,
		Mesa:         strings.TrimSpace(in.Mesa),
		ClienteID:    in.ClienteID,
		Estado:       entity.PedidoPendiente,
		Subtotal:     calc.Subtotal,
		Impuestos:    calc.Impuestos,
		Descuento:    calc.Descuento,
		Total:        calc.Total,
		MetodoPago:   in.MetodoPago,
		Notas:        in.Notas,
		CreadoPor:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for i, l := range calc.Lineas {
		p.Items = append(p.Items, entity.PedidoItem{
			ID:             uuid.New().String(),
			PedidoID:       p.ID,
			ProductoID:     l.ProductoID,
			Nombre:         catalogo[l.ProductoID].Nombre,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.Precio,
			TasaImpuesto:   l.TasaImpuesto,
			Base:           l.Base,
			Impuesto:       l.Impuesto,
			Total:          l.Total,
			Notas:          in.Items[i].Notas,
		})
	}

	err = uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		numero, err := repos.Pedidos.NextNumero(ctx, restaurantID)
		if err != nil {
			return err
		}
		p.Numero = numero
		if err := repos.Pedidos.Create(ctx, p); err != nil {
			return err
		}
		return repos.Pedidos.AddHistorial(ctx, &entity.PedidoEstadoCambio{
			PedidoID:    p.ID,
			EstadoHasta: entity.PedidoPendiente,
			UsuarioID:   userID,
			Fecha:       now,
		})
	})
	if err != nil {
		return nil, err
	}
	p.Historial = []entity.PedidoEstadoCambio{{PedidoID: p.ID, EstadoHasta: entity.PedidoPendiente, UsuarioID: userID, Fecha: now}}

	uc.log.Info().
		Str("restaurant_id", restaurantID).
		Str("pedido_id", p.ID).
		Int("numero", p.Numero).
		Str("total", p.Total.String()).
		Msg("pedido creado")
	uc.publisher.Publish(ctx, toEvento(ports.EventoPedidoNuevo, p, ""))

	res := toPedidoResponse(p)
	res.TotalFormatted = info.Money.Format(p.Total)
	return res, nil
}

func validarCreate(in dto.CreatePedidoRequest) error {
	switch in.Tipo {
	case entity.PedidoTipoMesa:
		if strings.TrimSpace(in.Mesa) == "" {
			return fmt.Errorf("mesa requerida: %w", domain.ErrInvalidInput)
		}
	case entity.PedidoTipoDomicilio:
		if in.ClienteID == "" {
			return fmt.Errorf("cliente requerido para domicilio: %w", domain.ErrInvalidInput)
		}
	case entity.PedidoTipoLlevar:
	default:
		return domain.ErrInvalidInput
	}
	if len(in.Items) == 0 || !metodosPago[in.MetodoPago] {
		return domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ProductoID == "" || !it.Cantidad.IsPositive() {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// CambioEstadoInput solicitud de transición.
type CambioEstadoInput struct {
	RestaurantID string
	UserID       string
	Role         string
	PedidoID     string
	Estado       string
}

// CambiarEstado aplica la transición en una transacción. Entrar a en_preparacion
// descuenta los insumos de la receta; entregado registra el ingreso. Si algo
// falla no cambia nada.
func (uc *UseCase) CambiarEstado(ctx context.Context, in CambioEstadoInput) (*dto.PedidoResponse, error) {
	if !pedido.ValidEstado(in.Estado) {
		return nil, domain.ErrInvalidInput
	}
	if in.Role == entity.RoleCocina && !pedido.CocinaPuede(in.Estado) {
		return nil, domain.ErrForbidden
	}
	info, err := uc.tenants.Get(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()

	var (
		p        *entity.Pedido
		anterior string
	)
	err = uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		var err error
		p, err = repos.Pedidos.GetForUpdate(ctx, in.PedidoID)
		if err != nil {
			return err
		}
		if p == nil || p.RestaurantID != in.RestaurantID {
			return domain.ErrNotFound
		}
		anterior = p.Estado
		ok, err := repos.Pedidos.IsTransitionAllowed(ctx, anterior, in.Estado)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s → %s: %w", anterior, in.Estado, domain.ErrInvalidTransition)
		}

		if pedido.ConsumeInsumos(in.Estado) {
			consumo, err := consumoReceta(ctx, repos.Productos, p.Items)
			if err != nil {
				return err
			}
			if err := uc.consumidor.ConsumirEnTx(ctx, repos, p.RestaurantID, info.Currency, in.UserID, p.ID, consumo, now); err != nil {
				return err
			}
		}
		if pedido.GeneraIngreso(in.Estado) && p.Total.IsPositive() {
			if err := repos.Ledger.Create(ctx, &entity.LedgerEntry{
				ID:           uuid.New().String(),
				RestaurantID: p.RestaurantID,
				Tipo:         entity.LedgerIngreso,
				Origen:       entity.OrigenPedido,
				ReferenciaID: p.ID,
				Monto:        p.Total,
				Descripcion:  fmt.Sprintf("Pedido #%d", p.Numero),
				Fecha:        now,
			}); err != nil {
				return err
			}
		}

		if err := repos.Pedidos.UpdateEstado(ctx, p.ID, in.Estado, now); err != nil {
			return err
		}
		cambio := entity.PedidoEstadoCambio{
			PedidoID:    p.ID,
			EstadoDesde: anterior,
			EstadoHasta: in.Estado,
			UsuarioID:   in.UserID,
			Fecha:       now,
		}
		if err := repos.Pedidos.AddHistorial(ctx, &cambio); err != nil {
			return err
		}
		p.Estado = in.Estado
		p.UpdatedAt = now
		p.Historial = append(p.Historial, cambio)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("restaurant_id", in.RestaurantID).
		Str("pedido_id", p.ID).
		Str("desde", anterior).
		Str("hasta", in.Estado).
		Msg("estado de pedido actualizado")
	uc.publisher.Publish(ctx, toEvento(ports.EventoPedidoActualizado, p, anterior))

	res := toPedidoResponse(p)
	res.TotalFormatted = info.Money.Format(p.Total)
	return res, nil
}

// consumoReceta suma receta × cantidad por insumo para todas las líneas.
func consumoReceta(ctx context.Context, productos repository.ProductoRepository, items []entity.PedidoItem) (map[string]decimal.Decimal, error) {
	consumo := make(map[string]decimal.Decimal)
	recetas := make(map[string][]entity.RecetaItem)
	for _, it := range items {
		receta, ok := recetas[it.ProductoID]
		if !ok {
			var err error
			if receta, err = productos.GetReceta(ctx, it.ProductoID); err != nil {
				return nil, err
			}
			recetas[it.ProductoID] = receta
		}
		for _, r := range receta {
			consumo[r.InsumoID] = consumo[r.InsumoID].Add(r.Cantidad.Mul(it.Cantidad))
		}
	}
	return consumo, nil
}

func (uc *UseCase) get(ctx context.Context, restaurantID, id string) (*entity.Pedido, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.RestaurantID != restaurantID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// GetByID pedido con ítems e historial.
func (uc *UseCase) GetByID(ctx context.Context, restaurantID, id string) (*dto.PedidoResponse, error) {
	info, err := uc.tenants.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	p, err := uc.get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	res := toPedidoResponse(p)
	res.TotalFormatted = info.Money.Format(p.Total)
	return res, nil
}

// ListInput filtros; Estados separados por coma y fechas locales YYYY-MM-DD inclusive.
type ListInput struct {
	Estados   string
	ClienteID string
	Desde     string
	Hasta     string
	Limit     int
	Offset    int
}

// List pedidos del restaurante, más recientes primero.
func (uc *UseCase) List(ctx context.Context, restaurantID string, in ListInput) (*dto.PedidoListResponse, error) {
	info, err := uc.tenants.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	f := repository.PedidoFilter{ClienteID: in.ClienteID, Limit: in.Limit, Offset: in.Offset}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	for _, e := range strings.Split(in.Estados, ",") {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !pedido.ValidEstado(e) {
			return nil, domain.ErrInvalidInput
		}
		f.Estados = append(f.Estados, e)
	}
	if in.Desde != "" {
		from, err := timeutil.ParseLocalDate(in.Desde, info.Loc)
		if err != nil {
			return nil, errors.Join(domain.ErrInvalidInput, err)
		}
		from = from.UTC()
		f.From = &from
	}
	if in.Hasta != "" {
		to, err := timeutil.ParseLocalDate(in.Hasta, info.Loc)
		if err != nil {
			return nil, errors.Join(domain.ErrInvalidInput, err)
		}
		to = to.AddDate(0, 0, 1).UTC()
		f.To = &to
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return nil, domain.ErrInvalidInput
	}

	list, err := uc.repo.List(ctx, restaurantID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PedidoResponse, 0, len(list))
	for _, p := range list {
		r := toPedidoResponse(p)
		r.TotalFormatted = info.Money.Format(p.Total)
		items = append(items, *r)
	}
	return &dto.PedidoListResponse{Items: items, Page: dto.PageResponse{Limit: f.Limit, Offset: f.Offset}}, nil
}

// HistorialCliente pedidos de un cliente del restaurante.
func (uc *UseCase) HistorialCliente(ctx context.Context, restaurantID, clienteID string, limit, offset int) (*dto.PedidoListResponse, error) {
	cli, err := uc.clientes.GetByID(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	if cli == nil || cli.RestaurantID != restaurantID {
		return nil, domain.ErrNotFound
	}
	return uc.List(ctx, restaurantID, ListInput{ClienteID: clienteID, Limit: limit, Offset: offset})
}

// ColaCocina pedidos pendientes y en preparación, el más antiguo primero.
func (uc *UseCase) ColaCocina(ctx context.Context, restaurantID string) ([]dto.PedidoResponse, error) {
	list, err := uc.repo.ListCola(ctx, restaurantID, []string{entity.PedidoPendiente, entity.PedidoEnPreparacion})
	if err != nil {
		return nil, err
	}
	out := make([]dto.PedidoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPedidoResponse(p))
	}
	return out, nil
}

// TrackingURL URL pública de seguimiento de un pedido.
func (uc *UseCase) TrackingURL(pedidoID string) string {
	return uc.cfg.PublicBaseURL + "/seguimiento/" + pedidoID
}

// TrackingQR PNG con la URL de seguimiento.
func (uc *UseCase) TrackingQR(ctx context.Context, restaurantID, id string) ([]byte, error) {
	p, err := uc.get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	return uc.qr.PNG(uc.TrackingURL(p.ID), qrSize)
}

// Ticket PDF imprimible del pedido, con montos en la moneda del restaurante.
func (uc *UseCase) Ticket(ctx context.Context, restaurantID, id string) ([]byte, error) {
	info, err := uc.tenants.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	p, err := uc.get(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	data := ports.TicketData{
		Restaurante: info.Restaurant.Name,
		NIT:         info.Restaurant.NIT,
		Direccion:   info.Restaurant.Address,
		Numero:      p.Numero,
		Tipo:        p.Tipo,
		Mesa:        p.Mesa,
		Cliente:     p.ClienteNombre,
		Fecha:       p.CreatedAt.In(info.Loc).Format("02/01/2006 15:04"),
		Subtotal:    info.Money.Format(p.Subtotal),
		Impuestos:   info.Money.Format(p.Impuestos),
		Descuento:   info.Money.Format(p.Descuento),
		Total:       info.Money.Format(p.Total),
		TrackingURL: uc.TrackingURL(p.ID),
	}
	for _, it := range p.Items {
		data.Items = append(data.Items, ports.TicketItem{
			Cantidad: it.Cantidad.String(),
			Nombre:   it.Nombre,
			Total:    info.Money.Format(it.Total),
		})
	}
	return uc.pdf.TicketPedido(ctx, data)
}

func toEvento(tipo string, p *entity.Pedido, anterior string) ports.PedidoEvento {
	ev := ports.PedidoEvento{
		Tipo:           tipo,
		RestaurantID:   p.RestaurantID,
		PedidoID:       p.ID,
		Numero:         p.Numero,
		TipoPedido:     p.Tipo,
		Mesa:           p.Mesa,
		Estado:         p.Estado,
		EstadoAnterior: anterior,
		Fecha:          p.UpdatedAt,
	}
	for _, it := range p.Items {
		ev.Items = append(ev.Items, ports.PedidoEventoItem{Nombre: it.Nombre, Cantidad: it.Cantidad, Notas: it.Notas})
	}
	return ev
}

func toPedidoResponse(p *entity.Pedido) *dto.PedidoResponse {
	res := &dto.PedidoResponse{
		ID:            p.ID,
		Numero:        p.Numero,
		Tipo:          p.Tipo,
		Mesa:          p.Mesa,
		ClienteID:     p.ClienteID,
		ClienteNombre: p.ClienteNombre,
		Estado:        p.Estado,
		Subtotal:      p.Subtotal,
		Impuestos:     p.Impuestos,
		Descuento:     p.Descuento,
		Total:         p.Total,
		MetodoPago:    p.MetodoPago,
		Notas:         p.Notas,
		CreadoPor:     p.CreadoPor,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	for _, it := range p.Items {
		res.Items = append(res.Items, dto.PedidoItemResponse{
			ProductoID:     it.ProductoID,
			Nombre:         it.Nombre,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			TasaImpuesto:   it.TasaImpuesto,
			Base:           it.Base,
			Impuesto:       it.Impuesto,
			Total:          it.Total,
			Notas:          it.Notas,
		})
	}
	for _, h := range p.Historial {
		res.Historial = append(res.Historial, dto.EstadoCambioResponse{
			EstadoDesde: h.EstadoDesde,
			EstadoHasta: h.EstadoHasta,
			UsuarioID:   h.UsuarioID,
			Fecha:       h.Fecha,
		})
	}
	return res
}
