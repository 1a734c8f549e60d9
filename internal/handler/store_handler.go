package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/imposter-project/jsonmock/internal/store"
	"github.com/imposter-project/jsonmock/pkg/logger"
)

// handleStoreRequest handles requests to the /system/store API, which
// exposes the stores backing each collection.
func handleStoreRequest(w http.ResponseWriter, r *http.Request, provider store.Provider) {
	pathSegments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(pathSegments) < 3 || pathSegments[2] == "" {
		http.Error(w, "Invalid store path", http.StatusBadRequest)
		return
	}

	s := store.Open(provider, pathSegments[2])
	key := ""
	if len(pathSegments) > 3 {
		key = strings.Join(pathSegments[3:], "/")
	}

	switch r.Method {
	case http.MethodGet:
		handleGetStore(w, r, s, key)
	case http.MethodDelete:
		handleDeleteStore(w, s, key)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func handleGetStore(w http.ResponseWriter, r *http.Request, s *store.Store, key string) {
	var value interface{}
	if key == "" {
		items := s.GetAllValues(r.URL.Query().Get("keyPrefix"))
		if items == nil {
			items = make(map[string]interface{})
		}
		value = items
		logger.Debugf("listing all items in store: %s", s.Name())
	} else {
		var found bool
		if value, found = s.GetValue(key); !found {
			logger.Debugf("item not found: %s in store: %s", key, s.Name())
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(value); err != nil {
		logger.Errorf("failed to encode store items: %v", err)
		http.Error(w, "Failed to encode items", http.StatusInternalServerError)
	}
}

func handleDeleteStore(w http.ResponseWriter, s *store.Store, key string) {
	if key == "" {
		s.Clear()
		logger.Infof("deleted store: %s", s.Name())
	} else {
		s.DeleteValue(key)
		logger.Infof("deleted item: %s from store: %s", key, s.Name())
	}
	w.WriteHeader(http.StatusNoContent)
}
