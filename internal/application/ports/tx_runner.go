// Package ports define los puertos de salida de la capa de aplicación:
// transacciones, eventos de pedidos y generación de documentos.
package ports

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Insumos     repository.InsumoRepository
	Movimientos repository.MovimientoInsumoRepository
	Proveedores repository.ProveedorRepository
	Cuentas     repository.CuentaPorPagarRepository
	Productos   repository.ProductoRepository
	Pedidos     repository.PedidoRepository
	Ledger      repository.LedgerRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn retorna nil, Rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
