package handler

import (
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/ogury-mcp-server/internal/config"
	"github.com/vfg2006/ogury-mcp-server/internal/usecases/reporting"
	"github.com/vfg2006/ogury-mcp-server/pkg/apiErrors"
	"github.com/vfg2006/ogury-mcp-server/pkg/log"
	"github.com/vfg2006/ogury-mcp-server/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	MethodInitialize  = "initialize"
	MethodInitialized = "notifications/initialized"
	MethodPing        = "ping"
	MethodToolsList   = "tools/list"
	MethodToolsCall   = "tools/call"
)

const defaultProtocolVersion = "2025-06-18"

// Requests without an id are answered with id 1.
var defaultID = jsoniter.RawMessage("1")

type rpcRequest struct {
	JSONRPC string              `json:"jsonrpc"`
	ID      jsoniter.RawMessage `json:"id,omitempty"`
	Method  string              `json:"method"`
	Params  jsoniter.RawMessage `json:"params,omitempty"`
}

type toolCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type initializeParams struct {
	ProtocolVersion string `json:"protocolVersion"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type initializeResult struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities"`
	ServerInfo      serverInfo     `json:"serverInfo"`
}

type toolsListResult struct {
	Tools []reporting.ToolDefinition `json:"tools"`
}

type StatusResponse struct {
	Status           string   `json:"status"`
	Message          string   `json:"message"`
	Endpoint         string   `json:"endpoint"`
	AvailableMethods []string `json:"availableMethods"`
}

// MCPStatus answers GET /mcp with a static probe body.
func MCPStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteJSON(w, http.StatusOK, StatusResponse{
			Status:           "ok",
			Message:          "Ogury MCP Server is running",
			Endpoint:         "Use POST /mcp for MCP requests",
			AvailableMethods: []string{MethodToolsList, MethodToolsCall},
		})
	}
}

// MCPEndpoint serves JSON-RPC 2.0 requests on POST /mcp.
func MCPEndpoint(service reporting.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		body, err := io.ReadAll(r.Body)
		if err != nil {
			logger.WithError(err).Warn("mcp: failed to read request body")
			apiErrors.WriteError(w, http.StatusInternalServerError, defaultID, apiErrors.CodeInternalError, err.Error(), nil)
			return
		}

		var req rpcRequest
		if err := json.Unmarshal(body, &req); err != nil {
			logger.WithError(err).Warn("mcp: malformed JSON-RPC request")
			apiErrors.WriteError(w, http.StatusInternalServerError, defaultID, apiErrors.CodeInternalError, errors.Wrap(err, "invalid request body").Error(), nil)
			return
		}

		id := req.ID
		if len(id) == 0 || string(id) == "null" {
			id = defaultID
		}

		logger = logger.WithField("rpc_method", req.Method)
		if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
			logger = logger.WithField("subject", claims.Subject)
		}

		switch req.Method {
		case MethodInitialize:
			var params initializeParams
			if len(req.Params) > 0 {
				if err := json.Unmarshal(req.Params, &params); err != nil {
					apiErrors.WriteError(w, http.StatusInternalServerError, id, apiErrors.CodeInternalError, errors.Wrap(err, "invalid initialize params").Error(), nil)
					return
				}
			}

			protocolVersion := params.ProtocolVersion
			if protocolVersion == "" {
				protocolVersion = defaultProtocolVersion
			}

			apiErrors.WriteResult(w, id, initializeResult{
				ProtocolVersion: protocolVersion,
				Capabilities:    map[string]any{"tools": map[string]any{}},
				ServerInfo:      serverInfo{Name: config.ServerName, Version: config.ServerVersion},
			})

		case MethodInitialized:
			w.WriteHeader(http.StatusAccepted)

		case MethodPing:
			apiErrors.WriteResult(w, id, map[string]any{})

		case MethodToolsList:
			apiErrors.WriteResult(w, id, toolsListResult{Tools: service.Tools()})

		case MethodToolsCall:
			var params toolCallParams
			if len(req.Params) > 0 {
				if err := json.Unmarshal(req.Params, &params); err != nil {
					logger.WithError(err).Warn("mcp: malformed tools/call params")
					apiErrors.WriteError(w, http.StatusInternalServerError, id, apiErrors.CodeInternalError, errors.Wrap(err, "invalid tools/call params").Error(), nil)
					return
				}
			}

			result, err := service.Invoke(r.Context(), params.Name, params.Arguments)
			if err != nil {
				logger.WithError(err).Error("mcp: tool dispatch failed")
				rpcErr := apiErrors.FromError(err)
				apiErrors.WriteError(w, http.StatusOK, id, rpcErr.Code, rpcErr.Message, nil)
				return
			}

			apiErrors.WriteResult(w, id, result)

		default:
			logger.Warn("mcp: unsupported method")
			apiErrors.WriteError(w, http.StatusBadRequest, id, apiErrors.CodeMethodNotFound, "Unsupported method: "+req.Method, nil)
		}
	}
}
