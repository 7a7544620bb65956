package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/restaurante-api/internal/application/analytics"
	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/application/inventory"
	"github.com/jhoicas/restaurante-api/internal/application/orders"
	"github.com/jhoicas/restaurante-api/internal/application/payables"
	"github.com/jhoicas/restaurante-api/internal/application/usecase"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	RestaurantUC *usecase.RestaurantUseCase
	InsumoUC     *inventory.InsumoUseCase
	MovimientoUC *inventory.MovimientoUseCase
	ReposicionUC *inventory.ReposicionUseCase
	ProveedorUC  *usecase.ProveedorUseCase
	CuentaUC     *payables.UseCase
	ProductoUC   *usecase.ProductoUseCase
	ClienteUC    *usecase.ClienteUseCase
	PedidoUC     *orders.UseCase
	LedgerUC     *usecase.LedgerUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Restaurantes (público, alta del tenant)
	restaurantes := api.Group("/restaurantes")
	restaurantHandler := NewRestaurantHandler(deps.RestaurantUC)
	restaurantes.Get("/", restaurantHandler.List)
	restaurantes.Post("/", restaurantHandler.Create)
	restaurantes.Get("/:id", restaurantHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	compras := RequireRole(entity.RoleAdmin, entity.RoleCompras)
	caja := RequireRole(entity.RoleAdmin, entity.RoleCajero)
	soloAdmin := RequireRole(entity.RoleAdmin)

	// Insumos: lectura para cualquier rol, escritura compras/admin
	insumos := protected.Group("/insumos")
	insumoHandler := NewInsumoHandler(deps.InsumoUC, deps.MovimientoUC, deps.ReposicionUC, deps.ProveedorUC)
	insumos.Get("/bajo-stock", insumoHandler.BajoStock)
	insumos.Get("/", insumoHandler.List)
	insumos.Post("/", compras, insumoHandler.Create)
	insumos.Get("/:id", insumoHandler.GetByID)
	insumos.Put("/:id", compras, insumoHandler.Update)
	insumos.Delete("/:id", compras, insumoHandler.Deactivate)
	insumos.Get("/:id/movimientos", insumoHandler.ListMovimientos)
	insumos.Post("/:id/movimientos", compras, insumoHandler.RegistrarMovimiento)
	insumos.Get("/:id/proveedores", insumoHandler.ListProveedores)

	// Proveedores
	proveedores := protected.Group("/proveedores")
	proveedorHandler := NewProveedorHandler(deps.ProveedorUC)
	proveedores.Get("/", proveedorHandler.List)
	proveedores.Post("/", compras, proveedorHandler.Create)
	proveedores.Get("/:id", proveedorHandler.GetByID)
	proveedores.Put("/:id", compras, proveedorHandler.Update)
	proveedores.Delete("/:id", compras, proveedorHandler.Deactivate)
	proveedores.Get("/:id/insumos", proveedorHandler.ListInsumos)
	proveedores.Put("/:id/insumos/:insumoId", compras, proveedorHandler.VincularInsumo)
	proveedores.Delete("/:id/insumos/:insumoId", compras, proveedorHandler.DesvincularInsumo)

	// Cuentas por pagar
	cuentas := protected.Group("/cuentas-por-pagar")
	cuentaHandler := NewCuentaHandler(deps.CuentaUC)
	cuentas.Get("/resumen", cuentaHandler.Resumen)
	cuentas.Post("/marcar-vencidas", soloAdmin, cuentaHandler.MarcarVencidas)
	cuentas.Get("/", cuentaHandler.List)
	cuentas.Post("/", compras, cuentaHandler.Create)
	cuentas.Get("/:id", cuentaHandler.GetByID)
	cuentas.Post("/:id/pagos", compras, cuentaHandler.RegistrarPago)
	cuentas.Post("/:id/anular", compras, cuentaHandler.Anular)

	// Productos (carta)
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productos.Get("/", productoHandler.List)
	productos.Post("/", soloAdmin, productoHandler.Create)
	productos.Get("/:id", productoHandler.GetByID)
	productos.Put("/:id", soloAdmin, productoHandler.Update)
	productos.Put("/:id/receta", soloAdmin, productoHandler.SetReceta)

	// Clientes
	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC, deps.PedidoUC)
	clientes.Get("/", clienteHandler.List)
	clientes.Post("/", caja, clienteHandler.Create)
	clientes.Get("/:id", clienteHandler.GetByID)
	clientes.Put("/:id", caja, clienteHandler.Update)
	clientes.Get("/:id/pedidos", clienteHandler.Pedidos)
	clientes.Get("/:id/stats", clienteHandler.Stats)

	// Pedidos; los permisos por transición los valida el caso de uso con el rol
	pedidos := protected.Group("/pedidos")
	pedidoHandler := NewPedidoHandler(deps.PedidoUC)
	pedidos.Get("/cocina", pedidoHandler.Cocina)
	pedidos.Get("/", pedidoHandler.List)
	pedidos.Post("/", caja, pedidoHandler.Create)
	pedidos.Get("/:id", pedidoHandler.GetByID)
	pedidos.Patch("/:id/estado", RequireRole(entity.RoleAdmin, entity.RoleCajero, entity.RoleCocina), pedidoHandler.CambiarEstado)
	pedidos.Get("/:id/qr", pedidoHandler.QR)
	pedidos.Get("/:id/ticket", pedidoHandler.Ticket)

	// Finanzas
	finanzas := protected.Group("/finanzas")
	finanzasHandler := NewFinanzasHandler(deps.LedgerUC)
	finanzas.Get("/movimientos", RequireRole(entity.RoleAdmin, entity.RoleCajero, entity.RoleCompras), finanzasHandler.Movimientos)

	// Dashboard
	dashboard := protected.Group("/dashboard", RequireRole(entity.RoleAdmin, entity.RoleCajero))
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/resumen", dashboardHandler.Resumen)
	dashboard.Get("/ventas-diarias", dashboardHandler.VentasDiarias)
	dashboard.Get("/top-productos", dashboardHandler.TopProductos)
	dashboard.Get("/top-clientes", dashboardHandler.TopClientes)
	dashboard.Get("/reporte.pdf", dashboardHandler.ReportePDF)
}
