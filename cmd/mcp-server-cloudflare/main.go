package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cf-ypark/mcp-server-cloudflare/internal/cloudflare"
	"github.com/cf-ypark/mcp-server-cloudflare/internal/common/cnst"
	"github.com/cf-ypark/mcp-server-cloudflare/internal/common/config"
	"github.com/cf-ypark/mcp-server-cloudflare/internal/core"
	"github.com/cf-ypark/mcp-server-cloudflare/internal/mcp/session"
	"github.com/cf-ypark/mcp-server-cloudflare/internal/tools"
	"github.com/cf-ypark/mcp-server-cloudflare/pkg/logger"

	"go.uber.org/zap"
)

var configPath = flag.String("conf", cnst.ServerYaml, "path to configuration file")

func main() {
	flag.Parse()

	cfg, cfgPath, err := config.LoadConfig(*configPath)
	if err != nil {
		// No logger yet
		panic(err)
	}

	log, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("loaded configuration",
		zap.String("path", cfgPath),
		zap.String("endpoint", cfg.Cloudflare.Endpoint))

	if cfg.Cloudflare.APIToken == "" {
		log.Warn("no Cloudflare API token configured; upstream calls will be rejected")
	}
	if cfg.Cloudflare.AccountID == "" {
		log.Warn("no active Cloudflare account configured; tools will return advisories")
	}

	client := cloudflare.NewClient(cfg.Cloudflare.Endpoint, cfg.Cloudflare.APIToken, log)
	registry := tools.NewRegistry(log, client)
	sessions := session.NewMemoryStore(log)

	srv := core.NewServer(log, cfg, registry, sessions)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", zap.Error(err))
	}
}
