package realtime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"github.com/rs/zerolog"
)

// Datos del anuncio mDNS para que las pantallas encuentren el servicio en la LAN.
const (
	mdnsInstance = "Restaurante KDS"
	mdnsService  = "_restaurante-kds._tcp"
	mdnsDomain   = "local."
)

// Server expone el hub en su propio puerto (/ws y /health).
type Server struct {
	hub  *Hub
	srv  *http.Server
	port int
	mdns bool
	log  zerolog.Logger

	mu     sync.Mutex
	zc     *zeroconf.Server
	closed bool
}

// NewServer construye el servidor HTTP del hub.
func NewServer(hub *Hub, port int, announce bool, log zerolog.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"status":"ok","clients":%d}`, hub.Clients())
	})
	return &Server{
		hub:  hub,
		port: port,
		mdns: announce,
		log:  log.With().Str("component", "realtime").Logger(),
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// ListenAndServe bloquea hasta Shutdown. Un fallo del anuncio mDNS no detiene el servidor.
func (s *Server) ListenAndServe() error {
	if s.mdns {
		zc, err := zeroconf.Register(mdnsInstance, mdnsService, mdnsDomain, s.port, []string{"path=/ws"}, nil)
		if err != nil {
			s.log.Warn().Err(err).Msg("mDNS: no se pudo anunciar el servicio")
		} else if s.keepAnnouncement(zc) {
			s.log.Info().Str("service", mdnsService).Int("port", s.port).Msg("mDNS: servicio anunciado")
		}
	}
	s.log.Info().Str("addr", s.srv.Addr).Msg("realtime escuchando")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("realtime: %w", err)
	}
	return nil
}

// keepAnnouncement guarda el anuncio; si Shutdown ya corrió lo retira y devuelve false.
func (s *Server) keepAnnouncement(zc *zeroconf.Server) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		zc.Shutdown()
		return false
	}
	s.zc = zc
	return true
}

// Shutdown retira el anuncio mDNS y cierra el servidor HTTP. Las conexiones
// WebSocket las cierra el hub al cancelar su contexto.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	zc := s.zc
	s.zc = nil
	s.mu.Unlock()
	if zc != nil {
		zc.Shutdown()
	}
	return s.srv.Shutdown(ctx)
}
