package realtime_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/infrastructure/realtime"
)

func TestServer_ShutdownConcurrenteConArranque(t *testing.T) {
	hub := realtime.NewHub(tokens, realtime.Options{}, zerolog.Nop())
	srv := realtime.NewServer(hub, 0, false, zerolog.Nop())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("ListenAndServe no terminó tras Shutdown")
	}
}

func TestServer_ShutdownAntesDeEscuchar(t *testing.T) {
	hub := realtime.NewHub(tokens, realtime.Options{}, zerolog.Nop())
	srv := realtime.NewServer(hub, 0, false, zerolog.Nop())

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.NoError(t, srv.ListenAndServe())
}
