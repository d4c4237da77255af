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

	"github.com/felixlaga/atmodeller/pkg/adapters/httpapi"
	"github.com/felixlaga/atmodeller/pkg/adapters/memory"
	"github.com/felixlaga/atmodeller/pkg/adapters/redis"
	"github.com/felixlaga/atmodeller/pkg/observability"
	"github.com/felixlaga/atmodeller/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP solve server",
	Long:  `Starts the solver as an HTTP service, exposing a JSON API plus health and metrics endpoints.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger(cmd)
		port, _ := cmd.Flags().GetString("port")

		var store ports.SolutionStore
		if addr, _ := cmd.Flags().GetString("redis"); addr != "" {
			store = redis.New(addr)
			logger.Info("using redis solution cache", "addr", addr)
		} else {
			store = memory.NewStore()
		}

		registry := prometheus.NewRegistry()
		observability.NewMetrics(registry)

		handler := httpapi.NewHandler(httpapi.Config{
			Logger:   logger,
			Store:    store,
			Registry: registry,
		})

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting atmodeller server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("atmodeller server stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for the solution cache (empty uses in-memory)")
}
