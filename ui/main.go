package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/apiclient"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/cli"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/config"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/discovery"
	api "github.com/rogerio-castellano/candy-inventory-ui/internal/http"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/http/ban"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/http/handlers"
	rl "github.com/rogerio-castellano/candy-inventory-ui/internal/http/rate_limiter"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/redissvc"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/stream"
	"github.com/rogerio-castellano/candy-inventory-ui/internal/view"
)

// @title Candy Inventory UI
// @version 1.0
// @description Web front end for the candy shop inventory API.
// @host localhost:8080
// @BasePath /
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("could not read .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Could not load config: %v", err)
	}

	baseURL := cfg.API.BaseURL
	if cfg.Consul.Addr != "" {
		baseURL, err = resolveBaseURL(cfg.Consul)
		if err != nil {
			log.Fatalf("❌ Could not discover %s: %v", cfg.Consul.Service, err)
		}
		log.Printf("🔎 %s discovered at %s", cfg.Consul.Service, baseURL)
	}

	client := apiclient.New(baseURL, cfg.API.Prefix, &http.Client{})
	subscriber := stream.NewSubscriber(client.StreamURL(), &http.Client{}, cfg.Stream.Retry)
	ctrl := view.NewController(client, subscriber)
	exportURL := client.ExportURL("inventory")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	args := os.Args[1:]
	if len(args) > 0 && args[0] != "serve" {
		if !cli.IsCommand(args[0]) {
			log.Fatalf("Unknown command: %s\nAvailable: serve, %s", args[0], strings.Join(cli.Commands, ", "))
		}
		if err := cli.Run(ctx, ctrl, exportURL, args, os.Stdout); err != nil {
			if errors.Is(err, cli.ErrUsage) {
				log.Fatal(err)
			}
			os.Exit(1)
		}
		return
	}

	if err := serve(ctx, cfg, ctrl, exportURL); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

func resolveBaseURL(cfg config.ConsulConfig) (string, error) {
	consul, err := discovery.NewConsulClient(cfg.Addr)
	if err != nil {
		return "", err
	}
	return consul.ResolveBaseURL(cfg.Service)
}

func serve(ctx context.Context, cfg config.Config, ctrl *view.Controller, exportURL string) error {
	var store ban.Store
	if cfg.Redis.Addr != "" {
		rs, err := redissvc.Connect(ctx, cfg.Redis.Addr)
		if err != nil {
			return err
		}
		defer rs.Close()
		store = ban.NewRedisStore(rs)
		log.Printf("✅ Ban store on redis %s", cfg.Redis.Addr)
	} else {
		store = ban.NewMemoryStore()
	}

	limiter := rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	bans := ban.NewService(store, cfg.RateLimit.MaxStrikes, cfg.RateLimit.BanDuration)
	go limiter.StartVisitorCleanupLoop(ctx)
	go bans.StartDailyBanSummary(ctx)

	handlers.SetController(ctrl)
	handlers.SetExportURL(exportURL)
	api.SetRateLimiter(limiter)
	api.SetBanService(bans)
	api.SetAllowedOrigins(cfg.Server.AllowedOrigins)
	api.SetTrustProxy(cfg.Server.TrustProxy)

	unmount := ctrl.Mount(ctx)
	defer unmount()

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("✅ Server running on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited gracefully")
	return nil
}
