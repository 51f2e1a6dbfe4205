package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/soulful-academy/chakra-report/internal/logging"
)

const shutdownTimeout = 30 * time.Second

// NewServer builds the HTTP server for deps.
func NewServer(addr string, deps *Deps) *http.Server {
	mux := http.NewServeMux()
	RegisterRoutes(mux, deps)

	return &http.Server{
		Addr:              addr,
		Handler:           RequestIDMiddleware(logging.New("api"), mux),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// Run serves on srv until ctx is cancelled or SIGINT/SIGTERM arrives, then
// shuts down gracefully.
func Run(ctx context.Context, srv *http.Server) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}

	logger := logging.New("api")
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", ln.Addr().String()).Msg("Report service listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("Shutting down report service...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info().Msg("Report service stopped")
	return nil
}
