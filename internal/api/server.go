package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ogury-mcp-server/internal/api/handler"
	"github.com/vfg2006/ogury-mcp-server/internal/api/handler/router"
	"github.com/vfg2006/ogury-mcp-server/internal/config"
	"github.com/vfg2006/ogury-mcp-server/internal/usecases/reporting"
	"github.com/vfg2006/ogury-mcp-server/pkg/middleware"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 15 * time.Second

// Idle per-client limiters are dropped after this long.
const rateLimiterTTL = 10 * time.Minute

type Server struct {
	httpServer *http.Server
}

func New(config *config.Config, dispatcher reporting.Dispatcher) (*Server, error) {
	return &Server{
		httpServer: &http.Server{
			Addr:              net.JoinHostPort(config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, dispatcher),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}, nil
}

// NewHandler builds the routed handler with the full middleware chain.
func NewHandler(config *config.Config, dispatcher reporting.Dispatcher) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Metrics()...),
		router.WithRoutes(handler.MCP(dispatcher, config.Auth.JWTSecret)...),
	)

	routes := rt.Routes()
	paths := make([]string, 0, len(routes))
	for _, route := range routes {
		paths = append(paths, route.Method+" "+route.Path)
	}
	logrus.WithFields(logrus.Fields{
		"routes": paths,
		"auth":   config.Auth.JWTSecret != "",
	}).Info("HTTP routes registered")

	var limiter *middleware.RateLimiterStore
	if config.RateLimit.RequestsPerSecond > 0 {
		burst := config.RateLimit.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = middleware.NewRateLimiterStore(rate.Limit(config.RateLimit.RequestsPerSecond), burst, rateLimiterTTL)
	}

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.RateLimit(limiter),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("HTTP server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case err := <-errCh:
		logrus.WithError(err).Error("HTTP server stopped unexpectedly")
		return err
	case <-done:
		logrus.Info("interrupt signal received")
	case <-ctx.Done():
		logrus.Info("application context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("starting graceful shutdown")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("error during server shutdown")
		return err
	}

	logrus.Info("server stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("HTTP server shut down")
	return nil
}
