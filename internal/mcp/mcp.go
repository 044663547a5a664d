// Package mcp serves the reporting tools over the MCP stdio transport.
package mcp

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"
	"github.com/vfg2006/ogury-mcp-server/internal/config"
	"github.com/vfg2006/ogury-mcp-server/internal/domain"
	"github.com/vfg2006/ogury-mcp-server/internal/usecases/reporting"
	"github.com/vfg2006/ogury-mcp-server/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MCPHandler adapts the reporting dispatcher to the MCP SDK.
type MCPHandler struct {
	dispatcher reporting.Dispatcher
}

func NewMCPHandler(dispatcher reporting.Dispatcher) *MCPHandler {
	return &MCPHandler{dispatcher: dispatcher}
}

// NewServer returns an SDK server with every reporting tool registered.
func (h *MCPHandler) NewServer() *sdk.Server {
	server := sdk.NewServer(&sdk.Implementation{
		Name:    config.ServerName,
		Version: config.ServerVersion,
	}, nil)

	h.RegisterTools(server)

	return server
}

// RegisterTools adds one tool per reporting definition.
func (h *MCPHandler) RegisterTools(server *sdk.Server) {
	for _, def := range h.dispatcher.Tools() {
		server.AddTool(&sdk.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}, h.HandleCallTool)
	}
}

// HandleCallTool decodes the raw arguments and forwards the call to the dispatcher.
func (h *MCPHandler) HandleCallTool(ctx context.Context, req *sdk.CallToolRequest) (*sdk.CallToolResult, error) {
	ctx, _ = log.WithCorrelationID(ctx)

	name := req.Params.Name

	args := map[string]any{}
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
			return toCallToolResult(domain.NewErrorResult(errors.Wrap(err, "invalid tool arguments"))), nil
		}
	}

	result, err := h.dispatcher.Invoke(ctx, name, args)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("tool", name).Error("mcp: tool dispatch failed")
		return toCallToolResult(domain.NewErrorResult(err)), nil
	}

	return toCallToolResult(result), nil
}

func toCallToolResult(result domain.ToolResult) *sdk.CallToolResult {
	content := make([]sdk.Content, 0, len(result.Content))
	for _, c := range result.Content {
		content = append(content, &sdk.TextContent{Text: c.Text})
	}

	return &sdk.CallToolResult{
		Content: content,
		IsError: result.IsError,
	}
}

// Run serves the tools on stdin/stdout until ctx is cancelled or the client disconnects.
func Run(ctx context.Context, dispatcher reporting.Dispatcher) error {
	server := NewMCPHandler(dispatcher).NewServer()

	log.L.WithField("transport", config.TransportStdio).Info("MCP server running on stdio")

	if err := server.Run(ctx, &sdk.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "stdio transport")
	}

	return nil
}
