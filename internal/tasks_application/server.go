package tasks_application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	db "github.com/ERRORIK404/task_calculator/database"
	conf "github.com/ERRORIK404/task_calculator/pkg/config"
)

// RunServer opens the store, serves the task API on cfg.HTTPAddr and shuts
// down gracefully once ctx is cancelled.
func RunServer(ctx context.Context, cfg *conf.Config, log *slog.Logger) error {
	store, err := db.InitDB(cfg.DatabaseDSN, log)
	if err != nil {
		return err
	}
	defer store.Close()

	lis, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.HTTPAddr, err)
	}
	return Serve(ctx, lis, NewServer(store, log), cfg.ShutdownTimeout, log)
}

// Serve runs the HTTP server on lis until ctx is done.
func Serve(ctx context.Context, lis net.Listener, s *Server, shutdownTimeout time.Duration, log *slog.Logger) error {
	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("task server listening", "addr", lis.Addr().String())
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("task server stopped")
	return nil
}
