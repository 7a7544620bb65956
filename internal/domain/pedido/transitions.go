// Package pedido define el flujo de estados de un pedido.
//
// La tabla autoritativa es pedido_transiciones en la base de datos; DefaultTransitions
// replica sus filas para la migración inicial y para validar sin DB.
package pedido

import "github.com/jhoicas/restaurante-api/internal/domain/entity"

// Transition par origen → destino permitido.
type Transition struct {
	Desde string
	Hasta string
}

// DefaultTransitions filas sembradas en pedido_transiciones.
var DefaultTransitions = []Transition{
	{entity.PedidoPendiente, entity.PedidoEnPreparacion},
	{entity.PedidoPendiente, entity.PedidoCancelado},
	{entity.PedidoEnPreparacion, entity.PedidoListo},
	{entity.PedidoEnPreparacion, entity.PedidoCancelado},
	{entity.PedidoListo, entity.PedidoEntregado},
	{entity.PedidoListo, entity.PedidoCancelado},
}

// ValidEstado indica si el estado pertenece al catálogo.
func ValidEstado(estado string) bool {
	switch estado {
	case entity.PedidoPendiente, entity.PedidoEnPreparacion, entity.PedidoListo,
		entity.PedidoEntregado, entity.PedidoCancelado:
		return true
	}
	return false
}

// Terminal estados que ya no admiten cambios.
func Terminal(estado string) bool {
	return estado == entity.PedidoEntregado || estado == entity.PedidoCancelado
}

// Abierto estados que aún ocupan a cocina o caja.
func Abierto(estado string) bool {
	return ValidEstado(estado) && !Terminal(estado)
}

// Table conjunto de transiciones consultable en memoria.
type Table map[Transition]struct{}

// NewTable construye la tabla a partir de filas.
func NewTable(rows []Transition) Table {
	t := make(Table, len(rows))
	for _, r := range rows {
		t[r] = struct{}{}
	}
	return t
}

// Allowed indica si la transición existe; mismo estado nunca es válido.
func (t Table) Allowed(desde, hasta string) bool {
	if desde == hasta {
		return false
	}
	_, ok := t[Transition{desde, hasta}]
	return ok
}

// ConsumeInsumos el paso a preparación descuenta los insumos de la receta.
func ConsumeInsumos(hasta string) bool {
	return hasta == entity.PedidoEnPreparacion
}

// GeneraIngreso la entrega registra el ingreso en el libro financiero.
func GeneraIngreso(hasta string) bool {
	return hasta == entity.PedidoEntregado
}

// CocinaPuede la cocina solo mueve pedidos dentro de su flujo.
func CocinaPuede(hasta string) bool {
	return hasta == entity.PedidoEnPreparacion || hasta == entity.PedidoListo
}
