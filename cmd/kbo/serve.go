package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbo-registry/kbo-crud/app"
	"github.com/kbo-registry/kbo-crud/service"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(rt *cli) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Migrate the schema and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				rt.cfg.Server.Port = port
			}
			return rt.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides KBO_SERVER_PORT)")
	return cmd
}

func (rt *cli) serve(ctx context.Context) error {
	store, err := rt.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	handler := app.NewRouter(app.Services{
		Companies:      service.NewCompanyService(store, rt.log),
		Establishments: service.NewEstablishmentService(store, rt.log),
		Activities:     service.NewActivityService(store),
	}, rt.log)

	sc := rt.cfg.Server
	srv := &http.Server{
		Addr:         ":" + sc.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(sc.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(sc.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(sc.IdleTimeout) * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		rt.log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serveErr:
		if err != nil {
			rt.log.Error().Err(err).Msg("server error")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	rt.log.Info().Msg("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		rt.log.Error().Err(err).Msg("shutdown failed")
		return err
	}
	rt.log.Info().Msg("server stopped")
	return nil
}
