package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aretw0/conduit"
	httpadapter "github.com/aretw0/conduit/pkg/adapters/http"
	"github.com/aretw0/conduit/pkg/adapters/memory"
	"github.com/aretw0/conduit/pkg/adapters/redis"
	"github.com/aretw0/conduit/pkg/adapters/sqlite"
	"github.com/aretw0/conduit/internal/config"
	"github.com/aretw0/conduit/internal/logging"
	"github.com/aretw0/conduit/pkg/observability"
	"github.com/aretw0/conduit/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the demo HTTP server",
	Long:  `Starts a Conduit server exposing the bundled demo pipelines over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath, _ := cmd.Flags().GetString("config")

		cfg, err := config.Load(cfgPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		logger := logging.New(logging.ParseLevel(cfg.Log.Level))

		store, closeStore, err := buildStore(cfg.Store)
		if err != nil {
			fmt.Printf("Error initializing session store: %v\n", err)
			os.Exit(1)
		}
		if closeStore != nil {
			defer closeStore()
		}

		metrics := observability.NewMetrics(prometheus.NewRegistry())
		engine := conduit.New(
			conduit.WithLogger(logger),
			conduit.WithLifecycleHooks(metrics.Hooks()),
		)

		opts := []httpadapter.Option{
			httpadapter.WithLogger(logger),
			httpadapter.WithDispatcher(demoEffects()),
			httpadapter.WithMetricsHandler(metrics.Handler()),
			httpadapter.WithStage(cfg.Server.Stage),
		}
		if store != nil {
			opts = append(opts, httpadapter.WithSessionStore(store))
		}

		srv := httpadapter.NewServer(engine, opts...)
		registerDemoRoutes(srv)

		server := &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: srv.Handler(),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting conduit server", "addr", server.Addr, "stage", cfg.Server.Stage)
			serverErrors <- server.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := server.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("conduit server stopped")
		}
	},
}

// buildStore picks the session backend from config. The second return
// value closes backends that hold resources.
func buildStore(cfg config.StoreConfig) (ports.SessionStore, func() error, error) {
	switch cfg.Backend {
	case "none", "":
		return nil, nil, nil
	case "memory":
		return memory.NewStore(), nil, nil
	case "redis":
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		return store, store.Close, nil
	case "sqlite":
		store, err := sqlite.New(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend: %s", cfg.Backend)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
