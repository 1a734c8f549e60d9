package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/imposter-project/jsonmock/internal/adapter"
	"github.com/imposter-project/jsonmock/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// HTTPAdapter runs the server as a standalone HTTP listener
type HTTPAdapter struct {
	dbFileArg string
}

// NewAdapter creates a new HTTP server adapter instance
func NewAdapter(dbFileArg string) adapter.Adapter {
	return &HTTPAdapter{dbFileArg: dbFileArg}
}

// Start initialises the server and serves until SIGINT or SIGTERM
func (a *HTTPAdapter) Start() error {
	srv, err := adapter.InitialiseServer(a.dbFileArg)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", ":"+srv.Config.ServerPort)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", srv.Config.ServerPort, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Serve(ctx, ln, srv.Handler)
}

// Serve handles requests on ln until ctx is done, then shuts down
// gracefully, letting in-flight requests complete.
func Serve(ctx context.Context, ln net.Listener, h http.Handler) error {
	server := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Infof("JSON Server is running on http://localhost:%d", listenPort(ln))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Infoln("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func listenPort(ln net.Listener) int {
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}
