package main

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_serve_ReturnsNilOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: http.NotFoundHandler(),
	}

	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, time.Second) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func Test_serve_WrapsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := &http.Server{
		Addr:    ln.Addr().String(),
		Handler: http.NotFoundHandler(),
	}

	err = serve(context.Background(), srv, time.Second)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}
