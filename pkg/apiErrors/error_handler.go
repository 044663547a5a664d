package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const JSONRPCVersion = "2.0"

// JSON-RPC 2.0 error codes. Malformed bodies and params answer CodeInternalError.
const (
	CodeMethodNotFound = -32601
	CodeInternalError  = -32603

	// Server-defined range (-32000 to -32099)
	CodeUnauthorized = -32001
	CodeRateLimited  = -32029
)

// RPCError is the error member of a JSON-RPC response.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return e.Message
}

// Response is a JSON-RPC 2.0 response envelope. Exactly one of Result and Error is set.
type Response struct {
	JSONRPC string              `json:"jsonrpc"`
	ID      jsoniter.RawMessage `json:"id"`
	Result  any                 `json:"result,omitempty"`
	Error   *RPCError           `json:"error,omitempty"`
}

var nullID = jsoniter.RawMessage("null")

// WriteJSON writes body with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Warn("apiErrors: failed to encode response")
	}
}

// WriteResult writes a JSON-RPC success envelope with HTTP 200.
func WriteResult(w http.ResponseWriter, id jsoniter.RawMessage, result any) {
	if len(id) == 0 {
		id = nullID
	}

	WriteJSON(w, http.StatusOK, Response{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Result:  result,
	})
}

// WriteError writes a JSON-RPC error envelope with the given HTTP status.
func WriteError(w http.ResponseWriter, status int, id jsoniter.RawMessage, code int, message string, data any) {
	if len(id) == 0 {
		id = nullID
	}

	WriteJSON(w, status, Response{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Error: &RPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	})
}

// FromError wraps err as an internal JSON-RPC error.
func FromError(err error) *RPCError {
	if err == nil {
		return &RPCError{Code: CodeInternalError, Message: "unknown error"}
	}

	return &RPCError{
		Code:    CodeInternalError,
		Message: err.Error(),
	}
}
