package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ogury-mcp-server/infrastructure/integrator/ogury/oguryclient"
	"github.com/vfg2006/ogury-mcp-server/internal/api"
	"github.com/vfg2006/ogury-mcp-server/internal/config"
	"github.com/vfg2006/ogury-mcp-server/internal/mcp"
	"github.com/vfg2006/ogury-mcp-server/internal/scheduler"
	"github.com/vfg2006/ogury-mcp-server/internal/usecases/reporting"
	"github.com/vfg2006/ogury-mcp-server/pkg/log"
)

func main() {
	// stdout is reserved for the MCP stream until logging is configured.
	logrus.SetOutput(os.Stderr)

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(log.Options{
		Level: cfg.App.LogLevel,
		File:  cfg.App.LogFile,
	})
	logrus.Infof("log level set to %s", logrus.GetLevel())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	httpClient := &http.Client{Timeout: cfg.Ogury.HTTPTimeout}

	tokenManager := oguryclient.NewTokenManager(cfg, httpClient)
	oguryClient := oguryclient.NewClient(cfg, tokenManager, httpClient)
	dispatcher := reporting.NewService(oguryClient)

	prefetch := scheduler.NewTokenPrefetchService(tokenManager, cfg)
	if err := prefetch.Start(ctx); err != nil {
		logrus.WithError(err).Error("failed to start token prefetch")
	}

	logrus.WithField("transport", cfg.Transport()).Info("starting ogury-mcp-server")

	switch cfg.Transport() {
	case config.TransportHTTP:
		server, err := api.New(cfg, dispatcher)
		if err != nil {
			logrus.Fatal(err)
		}

		if err := server.Run(ctx); err != nil {
			logrus.Error(err)
			os.Exit(1)
		}
	default:
		if err := mcp.Run(ctx, dispatcher); err != nil {
			logrus.Error(err)
			os.Exit(1)
		}
	}
}
