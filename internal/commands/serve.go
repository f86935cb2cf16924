package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"rental-marketplace/internal/api"
)

const shutdownGrace = 10 * time.Second

func ServeCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rt.Config()
			if err != nil {
				return err
			}
			handler, err := NewHandler(rt)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              cfg.Addr(),
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				rt.Log.Infof("Starting %s on port: %d", cfg.AppName, cfg.Port)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("%s failed to start: %w", cfg.AppName, err)
			case <-ctx.Done():
			}

			rt.Log.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

// NewHandler wires the HTTP API over the runtime's database.
func NewHandler(rt *Runtime) (http.Handler, error) {
	cfg, err := rt.Config()
	if err != nil {
		return nil, err
	}
	_, writer, lister, err := rt.Services()
	if err != nil {
		return nil, err
	}
	db, err := rt.DB()
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	return api.NewRouter(api.RouterConfig{
		Applications:   api.NewApplicationController(writer, lister, rt.Log),
		Leases:         api.NewLeaseController(lister, rt.Log),
		Health:         api.NewHealthController(sqlDB.PingContext, rt.Log),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	}), nil
}
