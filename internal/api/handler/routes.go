package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/ogury-mcp-server/internal/api/handler/router"
	"github.com/vfg2006/ogury-mcp-server/internal/usecases/reporting"
	"github.com/vfg2006/ogury-mcp-server/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/health",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

// MCP exposes the JSON-RPC endpoint. jwtSecret, when set, protects POST /mcp.
func MCP(service reporting.Dispatcher, jwtSecret string) []router.Route {
	return []router.Route{
		{
			Path:    "/mcp",
			Method:  http.MethodGet,
			Handler: MCPStatus(),
		},
		{
			Path:    "/mcp",
			Method:  http.MethodPost,
			Handler: MCPEndpoint(service),
			Middlewares: []func(http.Handler) http.Handler{
				middleware.BearerAuth(jwtSecret),
				middleware.LimitBodySize(middleware.MaxBodyBytes),
			},
		},
	}
}
