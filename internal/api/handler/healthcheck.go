package handler

import (
	"net/http"

	"github.com/vfg2006/ogury-mcp-server/internal/config"
	"github.com/vfg2006/ogury-mcp-server/pkg/apiErrors"
)

type HealthcheckResponse struct {
	Status string `json:"status"`
	Server string `json:"server"`
}

func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteJSON(w, http.StatusOK, HealthcheckResponse{
			Status: "ok",
			Server: config.ServerName,
		})
	})
}
