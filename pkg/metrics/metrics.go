package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Tool invocations partitioned by tool name and outcome (ok, error)
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ogury_mcp_tool_calls_total",
			Help: "Total number of MCP tool invocations",
		},
		[]string{"tool", "outcome"},
	)

	ToolCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ogury_mcp_tool_call_duration_seconds",
			Help:    "MCP tool invocation latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tool"},
	)

	// Client-credentials exchanges against the Ogury identity endpoint
	TokenExchangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ogury_mcp_token_exchanges_total",
			Help: "Total number of OAuth2 client-credentials exchanges",
		},
		[]string{"outcome"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Outcome maps an error to the outcome label.
func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
