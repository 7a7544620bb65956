// Package apptest provee repositorios en memoria y un TxRunner con rollback
// para probar los casos de uso sin base de datos.
package apptest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/pedido"
	"github.com/jhoicas/restaurante-api/internal/domain/reporting"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

type provKey struct{ proveedorID, insumoID string }

type state struct {
	restaurants map[string]entity.Restaurant
	users       map[string]entity.User
	insumos     map[string]entity.Insumo
	movimientos []entity.MovimientoInsumo
	proveedores map[string]entity.Proveedor
	provInsumos map[provKey]entity.ProveedorInsumo
	cuentas     map[string]entity.CuentaPorPagar
	pagos       []entity.PagoCuenta
	productos   map[string]entity.Producto
	recetas     map[string][]entity.RecetaItem
	clientes    map[string]entity.Cliente
	pedidos     map[string]entity.Pedido
	historial   []entity.PedidoEstadoCambio
	ledger      []entity.LedgerEntry
	numeros     map[string]int
}

func (s state) clone() state {
	c := state{
		restaurants: make(map[string]entity.Restaurant, len(s.restaurants)),
		users:       make(map[string]entity.User, len(s.users)),
		insumos:     make(map[string]entity.Insumo, len(s.insumos)),
		movimientos: append([]entity.MovimientoInsumo(nil), s.movimientos...),
		proveedores: make(map[string]entity.Proveedor, len(s.proveedores)),
		provInsumos: make(map[provKey]entity.ProveedorInsumo, len(s.provInsumos)),
		cuentas:     make(map[string]entity.CuentaPorPagar, len(s.cuentas)),
		pagos:       append([]entity.PagoCuenta(nil), s.pagos...),
		productos:   make(map[string]entity.Producto, len(s.productos)),
		recetas:     make(map[string][]entity.RecetaItem, len(s.recetas)),
		clientes:    make(map[string]entity.Cliente, len(s.clientes)),
		pedidos:     make(map[string]entity.Pedido, len(s.pedidos)),
		historial:   append([]entity.PedidoEstadoCambio(nil), s.historial...),
		ledger:      append([]entity.LedgerEntry(nil), s.ledger...),
		numeros:     make(map[string]int, len(s.numeros)),
	}
	for k, v := range s.restaurants {
		c.restaurants[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.insumos {
		c.insumos[k] = v
	}
	for k, v := range s.proveedores {
		c.proveedores[k] = v
	}
	for k, v := range s.provInsumos {
		c.provInsumos[k] = v
	}
	for k, v := range s.cuentas {
		c.cuentas[k] = v
	}
	for k, v := range s.productos {
		c.productos[k] = v
	}
	for k, v := range s.recetas {
		c.recetas[k] = v
	}
	for k, v := range s.clientes {
		c.clientes[k] = v
	}
	for k, v := range s.pedidos {
		c.pedidos[k] = v
	}
	for k, v := range s.numeros {
		c.numeros[k] = v
	}
	return c
}

// Store base de datos en memoria compartida por todos los repositorios.
type Store struct {
	mu    sync.Mutex
	txMu  sync.Mutex
	st    state
	trans pedido.Table
}

// NewStore crea un store vacío con la tabla de transiciones por defecto.
func NewStore() *Store {
	return &Store{st: state{}.clone(), trans: pedido.NewTable(pedido.DefaultTransitions)}
}

// Repos devuelve todos los repositorios sobre el store.
func (s *Store) Repos() ports.TxRepos {
	return ports.TxRepos{
		Insumos:     s.Insumos(),
		Movimientos: s.Movimientos(),
		Proveedores: s.Proveedores(),
		Cuentas:     s.Cuentas(),
		Productos:   s.Productos(),
		Pedidos:     s.Pedidos(),
		Ledger:      s.Ledger(),
	}
}

// Run implementa ports.TxRunner: si fn falla se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	snap := s.st.clone()
	s.mu.Unlock()
	if err := fn(s.Repos()); err != nil {
		s.mu.Lock()
		s.st = snap
		s.mu.Unlock()
		return err
	}
	return nil
}

var _ ports.TxRunner = (*Store)(nil)

// AllMovimientos movimientos registrados (copia).
func (s *Store) AllMovimientos() []entity.MovimientoInsumo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.MovimientoInsumo(nil), s.st.movimientos...)
}

// AllLedger entradas del libro (copia).
func (s *Store) AllLedger() []entity.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.LedgerEntry(nil), s.st.ledger...)
}

func newID(id string) string {
	if id == "" {
		return uuid.New().String()
	}
	return id
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// ── Restaurantes / usuarios ────────────────────────────────────────────────

type restaurantRepo struct{ s *Store }

// Restaurants repositorio de restaurantes.
func (s *Store) Restaurants() repository.RestaurantRepository { return restaurantRepo{s} }

func (r restaurantRepo) Create(_ context.Context, x *entity.Restaurant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.st.restaurants {
		if v.NIT == x.NIT {
			return domain.ErrDuplicate
		}
	}
	x.ID = newID(x.ID)
	r.s.st.restaurants[x.ID] = *x
	return nil
}

func (r restaurantRepo) GetByID(_ context.Context, id string) (*entity.Restaurant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.st.restaurants[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r restaurantRepo) List(_ context.Context, limit, offset int) ([]*entity.Restaurant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Restaurant
	for _, v := range r.s.st.restaurants {
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r restaurantRepo) ListIDs(_ context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []string
	for id := range r.s.st.restaurants {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

type userRepo struct{ s *Store }

// Users repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.st.users {
		if strings.EqualFold(v.Email, u.Email) && v.RestaurantID == u.RestaurantID {
			return domain.ErrDuplicate
		}
	}
	u.ID = newID(u.ID)
	r.s.st.users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.st.users[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.st.users {
		if strings.EqualFold(v.Email, email) {
			v := v
			return &v, nil
		}
	}
	return nil, nil
}

func (r userRepo) GetByEmailAndRestaurant(_ context.Context, email, restaurantID string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.st.users {
		if strings.EqualFold(v.Email, email) && v.RestaurantID == restaurantID {
			v := v
			return &v, nil
		}
	}
	return nil, nil
}

// ── Insumos ────────────────────────────────────────────────────────────────

type insumoRepo struct{ s *Store }

// Insumos repositorio de insumos.
func (s *Store) Insumos() repository.InsumoRepository { return insumoRepo{s} }

func (r insumoRepo) Create(_ context.Context, x *entity.Insumo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.st.insumos {
		if v.RestaurantID == x.RestaurantID && strings.EqualFold(v.Nombre, x.Nombre) {
			return domain.ErrDuplicate
		}
	}
	x.ID = newID(x.ID)
	r.s.st.insumos[x.ID] = *x
	return nil
}

func (r insumoRepo) GetByID(_ context.Context, id string) (*entity.Insumo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.st.insumos[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r insumoRepo) GetForUpdate(ctx context.Context, id string) (*entity.Insumo, error) {
	return r.GetByID(ctx, id)
}

func (r insumoRepo) Update(_ context.Context, x *entity.Insumo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.insumos[x.ID]
	if !ok {
		return nil
	}
	x.Stock, x.CostoUnitario = cur.Stock, cur.CostoUnitario
	r.s.st.insumos[x.ID] = *x
	return nil
}

func (r insumoRepo) UpdateStockAndCost(_ context.Context, id string, stock, costo decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := r.s.st.insumos[id]
	v.Stock, v.CostoUnitario = stock, costo
	r.s.st.insumos[id] = v
	return nil
}

func (r insumoRepo) SetActivo(_ context.Context, id string, activo bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := r.s.st.insumos[id]
	v.Activo = activo
	r.s.st.insumos[id] = v
	return nil
}

func (r insumoRepo) List(_ context.Context, restaurantID string, f repository.InsumoFilter) ([]*entity.Insumo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Insumo
	for _, v := range r.s.st.insumos {
		v := v
		if v.RestaurantID != restaurantID || (!v.Activo && !f.IncluirInactivos) {
			continue
		}
		if f.Search != "" && !containsFold(v.Nombre, f.Search) {
			continue
		}
		if f.Categoria != "" && v.Categoria != f.Categoria {
			continue
		}
		if f.SoloBajoStock && !v.BajoStock() {
			continue
		}
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return page(out, f.Limit, f.Offset), nil
}

func (r insumoRepo) ListBajoStock(ctx context.Context, restaurantID string) ([]*entity.Insumo, error) {
	return r.List(ctx, restaurantID, repository.InsumoFilter{SoloBajoStock: true})
}

func (r insumoRepo) CountBajoStock(ctx context.Context, restaurantID string) (int, error) {
	list, err := r.ListBajoStock(ctx, restaurantID)
	return len(list), err
}

type movimientoRepo struct{ s *Store }

// Movimientos repositorio del kardex.
func (s *Store) Movimientos() repository.MovimientoInsumoRepository { return movimientoRepo{s} }

func (r movimientoRepo) Create(_ context.Context, m *entity.MovimientoInsumo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.ID = newID(m.ID)
	r.s.st.movimientos = append(r.s.st.movimientos, *m)
	return nil
}

func (r movimientoRepo) ListByInsumo(_ context.Context, insumoID string, from, to *time.Time, limit, offset int) ([]*entity.MovimientoInsumo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.MovimientoInsumo
	for i := len(r.s.st.movimientos) - 1; i >= 0; i-- {
		m := r.s.st.movimientos[i]
		if m.InsumoID != insumoID {
			continue
		}
		if from != nil && m.Fecha.Before(*from) {
			continue
		}
		if to != nil && !m.Fecha.Before(*to) {
			continue
		}
		out = append(out, &m)
	}
	return page(out, limit, offset), nil
}

// ── Proveedores ────────────────────────────────────────────────────────────

type proveedorRepo struct{ s *Store }

// Proveedores repositorio de proveedores.
func (s *Store) Proveedores() repository.ProveedorRepository { return proveedorRepo{s} }

func (r proveedorRepo) Create(_ context.Context, p *entity.Proveedor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.st.proveedores {
		if v.RestaurantID == p.RestaurantID && v.NIT == p.NIT {
			return domain.ErrDuplicate
		}
	}
	p.ID = newID(p.ID)
	r.s.st.proveedores[p.ID] = *p
	return nil
}

func (r proveedorRepo) GetByID(_ context.Context, id string) (*entity.Proveedor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.st.proveedores[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r proveedorRepo) Update(_ context.Context, p *entity.Proveedor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.proveedores[p.ID] = *p
	return nil
}

func (r proveedorRepo) SetActivo(_ context.Context, id string, activo bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := r.s.st.proveedores[id]
	v.Activo = activo
	r.s.st.proveedores[id] = v
	return nil
}

func (r proveedorRepo) List(_ context.Context, restaurantID string, soloActivos bool, limit, offset int) ([]*entity.Proveedor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Proveedor
	for _, v := range r.s.st.proveedores {
		v := v
		if v.RestaurantID == restaurantID && (v.Activo || !soloActivos) {
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return page(out, limit, offset), nil
}

func (r proveedorRepo) UpsertInsumo(_ context.Context, rel *entity.ProveedorInsumo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.provInsumos[provKey{rel.ProveedorID, rel.InsumoID}] = *rel
	return nil
}

func (r proveedorRepo) UpdateCostoInsumo(_ context.Context, proveedorID, insumoID string, costo decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := provKey{proveedorID, insumoID}
	v, ok := r.s.st.provInsumos[k]
	if !ok {
		v = entity.ProveedorInsumo{ProveedorID: proveedorID, InsumoID: insumoID, Activo: true}
	}
	v.Costo = costo
	v.UpdatedAt = time.Now().UTC()
	r.s.st.provInsumos[k] = v
	return nil
}

func (r proveedorRepo) SetInsumoActivo(_ context.Context, proveedorID, insumoID string, activo bool) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := provKey{proveedorID, insumoID}
	v, ok := r.s.st.provInsumos[k]
	if !ok {
		return false, nil
	}
	v.Activo = activo
	r.s.st.provInsumos[k] = v
	return true, nil
}

func (r proveedorRepo) listRel(match func(provKey) bool) []*entity.ProveedorInsumo {
	var out []*entity.ProveedorInsumo
	for k, v := range r.s.st.provInsumos {
		if !v.Activo || !match(k) {
			continue
		}
		v := v
		v.ProveedorNombre = r.s.st.proveedores[k.proveedorID].Nombre
		ins := r.s.st.insumos[k.insumoID]
		v.InsumoNombre, v.InsumoUnidad = ins.Nombre, ins.Unidad
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Costo.LessThan(out[j].Costo) })
	return out
}

func (r proveedorRepo) ListInsumos(_ context.Context, proveedorID string) ([]*entity.ProveedorInsumo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.listRel(func(k provKey) bool { return k.proveedorID == proveedorID }), nil
}

func (r proveedorRepo) ListProveedoresDeInsumo(_ context.Context, insumoID string) ([]*entity.ProveedorInsumo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.listRel(func(k provKey) bool { return k.insumoID == insumoID }), nil
}

// ── Cuentas por pagar ──────────────────────────────────────────────────────

type cuentaRepo struct{ s *Store }

// Cuentas repositorio de cuentas por pagar.
func (s *Store) Cuentas() repository.CuentaPorPagarRepository { return cuentaRepo{s} }

func (r cuentaRepo) Create(_ context.Context, c *entity.CuentaPorPagar) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = newID(c.ID)
	v := *c
	v.Pagos = nil
	r.s.st.cuentas[c.ID] = v
	return nil
}

func (r cuentaRepo) GetByID(_ context.Context, id string) (*entity.CuentaPorPagar, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.st.cuentas[id]
	if !ok {
		return nil, nil
	}
	v.ProveedorNombre = r.s.st.proveedores[v.ProveedorID].Nombre
	return &v, nil
}

func (r cuentaRepo) GetForUpdate(ctx context.Context, id string) (*entity.CuentaPorPagar, error) {
	return r.GetByID(ctx, id)
}

func (r cuentaRepo) Update(_ context.Context, c *entity.CuentaPorPagar) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := *c
	v.Pagos = nil
	r.s.st.cuentas[c.ID] = v
	return nil
}

func (r cuentaRepo) List(_ context.Context, restaurantID string, f repository.CuentaFilter) ([]*entity.CuentaPorPagar, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.CuentaPorPagar
	for _, v := range r.s.st.cuentas {
		v := v
		if v.RestaurantID != restaurantID {
			continue
		}
		if f.Estado != "" && v.Estado != f.Estado {
			continue
		}
		if f.ProveedorID != "" && v.ProveedorID != f.ProveedorID {
			continue
		}
		if f.VenceHasta != nil && !v.FechaVencimiento.Before(*f.VenceHasta) {
			continue
		}
		v.ProveedorNombre = r.s.st.proveedores[v.ProveedorID].Nombre
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaVencimiento.Before(out[j].FechaVencimiento) })
	return page(out, f.Limit, f.Offset), nil
}

func (r cuentaRepo) CreatePago(_ context.Context, p *entity.PagoCuenta) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = newID(p.ID)
	r.s.st.pagos = append(r.s.st.pagos, *p)
	return nil
}

func (r cuentaRepo) ListPagos(_ context.Context, cuentaID string) ([]entity.PagoCuenta, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.PagoCuenta
	for _, p := range r.s.st.pagos {
		if p.CuentaID == cuentaID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r cuentaRepo) CountPagos(ctx context.Context, cuentaID string) (int, error) {
	list, err := r.ListPagos(ctx, cuentaID)
	return len(list), err
}

func (r cuentaRepo) MarkOverdue(_ context.Context, restaurantID string, hoy time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for id, v := range r.s.st.cuentas {
		if v.RestaurantID != restaurantID {
			continue
		}
		if (v.Estado == entity.CuentaPendiente || v.Estado == entity.CuentaParcial) && v.FechaVencimiento.Before(hoy) {
			v.Estado = entity.CuentaVencida
			r.s.st.cuentas[id] = v
			n++
		}
	}
	return n, nil
}

func (r cuentaRepo) Resumen(_ context.Context, restaurantID string, hoy, proximas time.Time) (*repository.CuentasResumen, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res := &repository.CuentasResumen{TotalPendiente: decimal.Zero, TotalVencido: decimal.Zero, ProximasAVencer: decimal.Zero}
	for _, v := range r.s.st.cuentas {
		if v.RestaurantID != restaurantID || !v.Abierta() {
			continue
		}
		res.TotalPendiente = res.TotalPendiente.Add(v.Saldo)
		switch {
		case v.Estado == entity.CuentaVencida || v.FechaVencimiento.Before(hoy):
			res.TotalVencido = res.TotalVencido.Add(v.Saldo)
			res.CuentasVencidas++
		case v.FechaVencimiento.Before(proximas):
			res.ProximasAVencer = res.ProximasAVencer.Add(v.Saldo)
		}
	}
	return res, nil
}

// ── Productos ──────────────────────────────────────────────────────────────

type productoRepo struct{ s *Store }

// Productos repositorio de la carta.
func (s *Store) Productos() repository.ProductoRepository { return productoRepo{s} }

func (r productoRepo) Create(_ context.Context, p *entity.Producto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = newID(p.ID)
	v := *p
	v.Receta = nil
	r.s.st.productos[p.ID] = v
	return nil
}

func (r productoRepo) GetByID(_ context.Context, id string) (*entity.Producto, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.st.productos[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r productoRepo) GetByIDs(_ context.Context, restaurantID string, ids []string) ([]*entity.Producto, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Producto
	for _, id := range ids {
		if v, ok := r.s.st.productos[id]; ok && v.RestaurantID == restaurantID {
			v := v
			out = append(out, &v)
		}
	}
	return out, nil
}

func (r productoRepo) Update(_ context.Context, p *entity.Producto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := *p
	v.Receta = nil
	r.s.st.productos[p.ID] = v
	return nil
}

func (r productoRepo) List(_ context.Context, restaurantID, categoria string, soloActivos bool, limit, offset int) ([]*entity.Producto, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Producto
	for _, v := range r.s.st.productos {
		v := v
		if v.RestaurantID != restaurantID || (soloActivos && !v.Activo) || (categoria != "" && v.Categoria != categoria) {
			continue
		}
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return page(out, limit, offset), nil
}

func (r productoRepo) SetReceta(_ context.Context, productoID string, items []entity.RecetaItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.recetas[productoID] = append([]entity.RecetaItem(nil), items...)
	return nil
}

func (r productoRepo) GetReceta(_ context.Context, productoID string) ([]entity.RecetaItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := append([]entity.RecetaItem(nil), r.s.st.recetas[productoID]...)
	for i := range out {
		out[i].InsumoNombre = r.s.st.insumos[out[i].InsumoID].Nombre
	}
	return out, nil
}

// ── Clientes ───────────────────────────────────────────────────────────────

type clienteRepo struct{ s *Store }

// Clientes repositorio de clientes.
func (s *Store) Clientes() repository.ClienteRepository { return clienteRepo{s} }

func (r clienteRepo) Create(_ context.Context, c *entity.Cliente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.st.clientes {
		if c.Documento != "" && v.RestaurantID == c.RestaurantID && v.Documento == c.Documento {
			return domain.ErrDuplicate
		}
	}
	c.ID = newID(c.ID)
	r.s.st.clientes[c.ID] = *c
	return nil
}

func (r clienteRepo) GetByID(_ context.Context, id string) (*entity.Cliente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.st.clientes[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r clienteRepo) Update(_ context.Context, c *entity.Cliente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, v := range r.s.st.clientes {
		if id != c.ID && c.Documento != "" && v.RestaurantID == c.RestaurantID && v.Documento == c.Documento {
			return domain.ErrDuplicate
		}
	}
	r.s.st.clientes[c.ID] = *c
	return nil
}

func (r clienteRepo) List(_ context.Context, restaurantID, search string, limit, offset int) ([]*entity.Cliente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Cliente
	for _, v := range r.s.st.clientes {
		v := v
		if v.RestaurantID != restaurantID {
			continue
		}
		if search != "" && !containsFold(v.Nombre, search) && !strings.Contains(v.Documento, search) && !strings.Contains(v.Telefono, search) {
			continue
		}
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return page(out, limit, offset), nil
}

func (r clienteRepo) Stats(_ context.Context, clienteID string) (*entity.ClienteStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st := &entity.ClienteStats{ClienteID: clienteID, TotalGastado: decimal.Zero}
	for _, p := range r.s.st.pedidos {
		if p.ClienteID != clienteID || p.Estado != entity.PedidoEntregado {
			continue
		}
		st.Pedidos++
		st.TotalGastado = st.TotalGastado.Add(p.Total)
		if st.UltimoPedido == nil || p.CreatedAt.After(*st.UltimoPedido) {
			t := p.CreatedAt
			st.UltimoPedido = &t
		}
	}
	return st, nil
}

// ── Pedidos ────────────────────────────────────────────────────────────────

type pedidoRepo struct{ s *Store }

// Pedidos repositorio de pedidos.
func (s *Store) Pedidos() repository.PedidoRepository { return pedidoRepo{s} }

func (r pedidoRepo) Create(_ context.Context, p *entity.Pedido) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = newID(p.ID)
	v := *p
	v.Items = append([]entity.PedidoItem(nil), p.Items...)
	v.Historial = nil
	r.s.st.pedidos[p.ID] = v
	return nil
}

func (r pedidoRepo) NextNumero(_ context.Context, restaurantID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.numeros[restaurantID]++
	return r.s.st.numeros[restaurantID], nil
}

func (r pedidoRepo) GetByID(_ context.Context, id string) (*entity.Pedido, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.st.pedidos[id]
	if !ok {
		return nil, nil
	}
	v.ClienteNombre = r.s.st.clientes[v.ClienteID].Nombre
	for _, h := range r.s.st.historial {
		if h.PedidoID == id {
			v.Historial = append(v.Historial, h)
		}
	}
	return &v, nil
}

func (r pedidoRepo) GetForUpdate(ctx context.Context, id string) (*entity.Pedido, error) {
	return r.GetByID(ctx, id)
}

func (r pedidoRepo) UpdateEstado(_ context.Context, id, estado string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := r.s.st.pedidos[id]
	v.Estado, v.UpdatedAt = estado, at
	r.s.st.pedidos[id] = v
	return nil
}

func (r pedidoRepo) AddHistorial(_ context.Context, h *entity.PedidoEstadoCambio) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.historial = append(r.s.st.historial, *h)
	return nil
}

func (r pedidoRepo) List(_ context.Context, restaurantID string, f repository.PedidoFilter) ([]*entity.Pedido, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	estados := map[string]bool{}
	for _, e := range f.Estados {
		estados[e] = true
	}
	var out []*entity.Pedido
	for _, v := range r.s.st.pedidos {
		v := v
		if v.RestaurantID != restaurantID {
			continue
		}
		if len(estados) > 0 && !estados[v.Estado] {
			continue
		}
		if f.ClienteID != "" && v.ClienteID != f.ClienteID {
			continue
		}
		if f.From != nil && v.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !v.CreatedAt.Before(*f.To) {
			continue
		}
		v.ClienteNombre = r.s.st.clientes[v.ClienteID].Nombre
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Numero > out[j].Numero })
	return page(out, f.Limit, f.Offset), nil
}

func (r pedidoRepo) ListCola(_ context.Context, restaurantID string, estados []string) ([]*entity.Pedido, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := map[string]bool{}
	for _, e := range estados {
		want[e] = true
	}
	var out []*entity.Pedido
	for _, v := range r.s.st.pedidos {
		v := v
		if v.RestaurantID != restaurantID || !want[v.Estado] {
			continue
		}
		v.ClienteNombre = r.s.st.clientes[v.ClienteID].Nombre
		v.Items = append([]entity.PedidoItem(nil), v.Items...)
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Numero < out[j].Numero
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r pedidoRepo) CountAbiertos(_ context.Context, restaurantID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, v := range r.s.st.pedidos {
		if v.RestaurantID == restaurantID && pedido.Abierto(v.Estado) {
			n++
		}
	}
	return n, nil
}

func (r pedidoRepo) IsTransitionAllowed(_ context.Context, desde, hasta string) (bool, error) {
	return r.s.trans.Allowed(desde, hasta), nil
}

// ── Libro financiero / reportes ────────────────────────────────────────────

type ledgerRepo struct{ s *Store }

// Ledger repositorio del libro financiero.
func (s *Store) Ledger() repository.LedgerRepository { return ledgerRepo{s} }

func (r ledgerRepo) Create(_ context.Context, e *entity.LedgerEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = newID(e.ID)
	r.s.st.ledger = append(r.s.st.ledger, *e)
	return nil
}

func (r ledgerRepo) in(e entity.LedgerEntry, restaurantID string, from, to time.Time) bool {
	return e.RestaurantID == restaurantID && !e.Fecha.Before(from) && e.Fecha.Before(to)
}

func (r ledgerRepo) List(_ context.Context, restaurantID string, from, to time.Time, tipo string, limit, offset int) ([]*entity.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.LedgerEntry
	for _, e := range r.s.st.ledger {
		e := e
		if r.in(e, restaurantID, from, to) && (tipo == "" || e.Tipo == tipo) {
			out = append(out, &e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	return page(out, limit, offset), nil
}

func (r ledgerRepo) Totales(_ context.Context, restaurantID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ing, egr := decimal.Zero, decimal.Zero
	for _, e := range r.s.st.ledger {
		if !r.in(e, restaurantID, from, to) {
			continue
		}
		if e.Tipo == entity.LedgerIngreso {
			ing = ing.Add(e.Monto)
		} else {
			egr = egr.Add(e.Monto)
		}
	}
	return ing, egr, nil
}

type reportRepo struct{ s *Store }

// Reports repositorio de lectura para tableros.
func (s *Store) Reports() repository.ReportRepository { return reportRepo{s} }

func (r reportRepo) entregados(restaurantID string, from, to time.Time) []entity.Pedido {
	var out []entity.Pedido
	for _, p := range r.s.st.pedidos {
		if p.RestaurantID == restaurantID && p.Estado == entity.PedidoEntregado &&
			!p.CreatedAt.Before(from) && p.CreatedAt.Before(to) {
			out = append(out, p)
		}
	}
	return out
}

func (r reportRepo) Ventas(_ context.Context, restaurantID string, from, to time.Time) ([]reporting.Venta, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []reporting.Venta
	for _, p := range r.entregados(restaurantID, from, to) {
		out = append(out, reporting.Venta{
			PedidoID: p.ID, ClienteID: p.ClienteID, ClienteNombre: r.s.st.clientes[p.ClienteID].Nombre,
			Total: p.Total, Fecha: p.CreatedAt,
		})
	}
	return out, nil
}

func (r reportRepo) ItemsVendidos(_ context.Context, restaurantID string, from, to time.Time) ([]reporting.ItemVendido, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []reporting.ItemVendido
	for _, p := range r.entregados(restaurantID, from, to) {
		for _, it := range p.Items {
			out = append(out, reporting.ItemVendido{ProductoID: it.ProductoID, Nombre: it.Nombre, Cantidad: it.Cantidad, Total: it.Total})
		}
	}
	return out, nil
}
