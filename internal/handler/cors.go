package handler

import (
	"net/http"
	"strconv"
)

const (
	defaultMaxAge = 86400 // 24 hours
	allowMethods  = "GET, HEAD, PUT, PATCH, POST, DELETE"
)

// handleCORS adds CORS headers for requests carrying an Origin, and answers
// preflight requests. It returns true if the response has been written.
func handleCORS(w http.ResponseWriter, r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return false
	}

	// Echo the origin
	w.Header().Set("Access-Control-Allow-Origin", origin)
	w.Header().Add("Vary", "Origin")
	w.Header().Set("Access-Control-Allow-Credentials", "true")

	if r.Method == http.MethodOptions {
		handlePreflightRequest(w, r)
		return true
	}
	return false
}

func handlePreflightRequest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Methods", allowMethods)

	// Echo requested headers
	if requestedHeaders := r.Header.Get("Access-Control-Request-Headers"); requestedHeaders != "" {
		w.Header().Set("Access-Control-Allow-Headers", requestedHeaders)
		w.Header().Add("Vary", "Access-Control-Request-Headers")
	}
	w.Header().Set("Access-Control-Max-Age", strconv.Itoa(defaultMaxAge))
	w.Header().Set("Content-Length", "0")

	w.WriteHeader(http.StatusNoContent)
}
