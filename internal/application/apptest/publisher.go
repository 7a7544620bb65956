package apptest

import (
	"context"
	"sync"

	"github.com/jhoicas/restaurante-api/internal/application/ports"
)

// Publisher guarda los eventos publicados para inspeccionarlos en los tests.
type Publisher struct {
	mu     sync.Mutex
	events []ports.PedidoEvento
}

// Publish implementa ports.PedidoPublisher.
func (p *Publisher) Publish(_ context.Context, ev ports.PedidoEvento) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

// Events copia de los eventos recibidos.
func (p *Publisher) Events() []ports.PedidoEvento {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ports.PedidoEvento(nil), p.events...)
}
