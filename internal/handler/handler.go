package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/imposter-project/jsonmock/internal/store"
	"github.com/imposter-project/jsonmock/pkg/logger"
)

// Handler is the top-level HTTP handler. It applies the server defaults,
// serves the system endpoints, and passes every other request to the chain.
type Handler struct {
	chain      http.Handler
	provider   store.Provider
	statusBody []byte
}

// NewHandler creates the top-level handler around the interceptor chain
func NewHandler(chain http.Handler, provider store.Provider, info ServerInfo) *Handler {
	return &Handler{
		chain:      chain,
		provider:   provider,
		statusBody: newStatusBody(info),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	defer func() {
		if p := recover(); p != nil {
			logger.Errorf("panic serving %s %s: %v", r.Method, r.URL.Path, p)
			if !rec.wroteHeader {
				rec.Header().Set("Content-Type", "application/json; charset=utf-8")
				rec.WriteHeader(http.StatusInternalServerError)
				rec.Write([]byte(`{"error":"Internal Server Error"}`))
			}
			rec.status = http.StatusInternalServerError
		}
		logger.Infof("%s %s %d %v", r.Method, r.URL.RequestURI(), rec.status, time.Since(start).Round(time.Millisecond))
	}()

	if handleCORS(rec, r) {
		return
	}
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		noCache(rec)
	}
	if h.handleSystemEndpoint(rec, r) {
		return
	}
	h.chain.ServeHTTP(rec, r)
}

// handleSystemEndpoint handles system-level endpoints like /system/status
func (h *Handler) handleSystemEndpoint(w http.ResponseWriter, r *http.Request) bool {
	switch {
	case r.URL.Path == "/system/status":
		h.handleStatusRequest(w, r)
		return true
	case strings.HasPrefix(r.URL.Path, "/system/store"):
		handleStoreRequest(w, r, h.provider)
		return true
	}
	return false
}

func noCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "-1")
}

// statusRecorder captures the status code for the access log
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.wroteHeader = true
	}
	return r.ResponseWriter.Write(b)
}
