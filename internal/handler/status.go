package handler

import (
	"encoding/json"
	"net/http"

	"github.com/imposter-project/jsonmock/internal/version"
	"github.com/imposter-project/jsonmock/pkg/logger"
)

// ServerInfo describes the running server. It is reported by /system/status
// alongside the build version.
type ServerInfo struct {
	StoreDriver string   `json:"storeDriver"`
	Collections []string `json:"collections"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	ServerInfo
}

// newStatusBody renders the /system/status payload once, when the handler is built
func newStatusBody(info ServerInfo) []byte {
	if info.Collections == nil {
		info.Collections = []string{}
	}
	body, err := json.Marshal(statusResponse{
		Status:     "ok",
		Version:    version.Version,
		ServerInfo: info,
	})
	if err != nil {
		logger.Errorf("failed to encode status response: %v", err)
		return []byte(`{"status":"ok"}`)
	}
	return body
}

func (h *Handler) handleStatusRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(h.statusBody)
}
