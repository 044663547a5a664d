package reporting

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/vfg2006/ogury-mcp-server/infrastructure/integrator/ogury/oguryclient"
	"github.com/vfg2006/ogury-mcp-server/internal/domain"
	"github.com/vfg2006/ogury-mcp-server/pkg/log"
	"github.com/vfg2006/ogury-mcp-server/pkg/metrics"
)

// Dispatcher routes tool calls to the reporting client and renders the outcome.
type Dispatcher interface {
	// Invoke never fails for expected errors: they come back as an error ToolResult.
	// The error return carries only recovered panics.
	Invoke(ctx context.Context, name string, args map[string]any) (domain.ToolResult, error)
	Tools() []ToolDefinition
}

type toolHandler func(ctx context.Context, args map[string]any) (string, error)

type Service struct {
	client   oguryclient.Client
	tools    []ToolDefinition
	handlers map[string]toolHandler
	validate *validator.Validate
}

func NewService(client oguryclient.Client) Dispatcher {
	s := &Service{
		client:   client,
		tools:    Definitions(),
		validate: newValidator(),
	}

	s.handlers = map[string]toolHandler{
		ToolGetCampaignDetails: s.getCampaignDetails,
		ToolGetCampaignsReport: s.getCampaignsReport,
	}

	return s
}

func (s *Service) Tools() []ToolDefinition {
	tools := make([]ToolDefinition, len(s.tools))
	copy(tools, s.tools)
	return tools
}

func (s *Service) Invoke(ctx context.Context, name string, args map[string]any) (result domain.ToolResult, err error) {
	if log.GetCorrelationID(ctx) == "" {
		ctx, _ = log.WithCorrelationID(ctx)
	}
	logger := log.ForContext(ctx).WithField("tool", name)

	metricLabel := name
	handler, ok := s.handlers[name]
	if !ok {
		metricLabel = "unknown"
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("tool %s panicked: %v", name, r)
			logger.WithField("stack", string(debug.Stack())).Error("reporting: tool handler panicked")
		}

		outcome := metrics.OutcomeOK
		if err != nil || result.IsError {
			outcome = metrics.OutcomeError
		}
		duration := time.Since(start)
		metrics.ToolCallsTotal.WithLabelValues(metricLabel, outcome).Inc()
		metrics.ToolCallDuration.WithLabelValues(metricLabel).Observe(duration.Seconds())

		logger.WithFields(log.Fields{
			"outcome":  outcome,
			"duration": duration.String(),
		}).Info("reporting: tool call finished")
	}()

	if !ok {
		toolErr := &ToolError{Name: name}
		logger.Warn("reporting: unknown tool requested")
		return domain.NewErrorResult(toolErr), nil
	}

	if args == nil {
		args = map[string]any{}
	}

	text, handlerErr := handler(ctx, args)
	if handlerErr != nil {
		logger.WithError(handlerErr).Warn("reporting: tool call failed")
		return domain.NewErrorResult(handlerErr), nil
	}

	return domain.NewTextResult(text), nil
}

func (s *Service) getCampaignDetails(ctx context.Context, args map[string]any) (string, error) {
	query, err := s.parseCampaignQuery(args)
	if err != nil {
		return "", err
	}

	record, err := s.client.GetCampaignDetails(ctx, query)
	if err != nil {
		return "", err
	}

	return RenderDetails(record, query), nil
}

func (s *Service) getCampaignsReport(ctx context.Context, args map[string]any) (string, error) {
	query, err := s.parseReportQuery(args)
	if err != nil {
		return "", err
	}

	records, err := s.client.GetCampaignsReport(ctx, query)
	if err != nil {
		return "", err
	}

	return RenderReport(records, query), nil
}
