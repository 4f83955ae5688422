package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kushtunes/royalty/internal/auth"
	"github.com/kushtunes/royalty/internal/config"
	"github.com/kushtunes/royalty/internal/currency"
	"github.com/kushtunes/royalty/internal/server"
	"github.com/kushtunes/royalty/internal/storage/sqlite"
	"github.com/kushtunes/royalty/pkg/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logging.Setup()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	conv := currency.NewConverter(cfg.CurrencyRates)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, 24*time.Hour)
	srv := server.New(store, conv, jwtManager)

	// Serve h2c so HTTP/2 works without TLS behind the ingress proxy.
	handler := h2c.NewHandler(srv.Handler(), &http2.Server{})

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
