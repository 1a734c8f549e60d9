package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/imposter-project/jsonmock/internal/exchange"
	"github.com/imposter-project/jsonmock/internal/store"
	"github.com/imposter-project/jsonmock/pkg/logger"
)

const contentTypeJSON = "application/json; charset=utf-8"

// Router serves create, read, update and delete endpoints for each
// collection in the database it was seeded from
type Router struct {
	collections map[string]*collection
}

// NewRouter creates a router over the top-level arrays of db, preloading
// their items into the store provider
func NewRouter(provider store.Provider, db map[string]interface{}) *Router {
	rt := &Router{collections: make(map[string]*collection)}

	for name, value := range db {
		items, ok := value.([]interface{})
		if !ok {
			logger.Warnf("skipping '%s': only arrays are served as collections", name)
			continue
		}
		coll := newCollection(provider, name)
		coll.store.Clear()
		store.Preload(provider, name, keyItems(name, items))
		rt.collections[name] = coll
	}
	return rt
}

// keyItems keys each seed item by its id, assigning ids where missing
func keyItems(name string, items []interface{}) map[string]interface{} {
	keyed := make(map[string]interface{}, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			logger.Warnf("skipping non-object item in '%s'", name)
			continue
		}
		key, ok := idKey(obj[idField])
		if !ok {
			id := nextID(keyed)
			obj[idField] = id
			key, _ = idKey(id)
		}
		keyed[key] = obj
	}
	return keyed
}

// Collections returns the names of the served collections, sorted
func (rt *Router) Collections() []string {
	names := make([]string, 0, len(rt.collections))
	for name := range rt.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ServeHTTP routes /db, /{collection} and /{collection}/{id}
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	coll, ok := rt.collections[segments[0]]
	if !ok {
		if len(segments) == 1 && segments[0] == "db" && isRead(r.Method) {
			rt.handleDB(w)
			return
		}
		writeNotFound(w, r)
		return
	}

	switch len(segments) {
	case 1:
		switch {
		case isRead(r.Method):
			rt.handleList(w, r, coll)
		case r.Method == http.MethodPost:
			rt.handleCreate(w, r, coll)
		default:
			writeNotFound(w, r)
		}
	case 2:
		id := segments[1]
		switch {
		case isRead(r.Method):
			rt.handleGet(w, r, coll, id)
		case r.Method == http.MethodPut:
			rt.handleUpdate(w, r, coll, id, coll.replace)
		case r.Method == http.MethodPatch:
			rt.handleUpdate(w, r, coll, id, coll.patch)
		case r.Method == http.MethodDelete:
			rt.handleDelete(w, r, coll, id)
		default:
			writeNotFound(w, r)
		}
	default:
		writeNotFound(w, r)
	}
}

// isRead reports whether the method is served like GET; net/http drops the
// body of HEAD responses
func isRead(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

func (rt *Router) handleDB(w http.ResponseWriter) {
	db := make(map[string]interface{}, len(rt.collections))
	for name, coll := range rt.collections {
		db[name] = coll.list()
	}
	writeJSON(w, http.StatusOK, db)
}

func (rt *Router) handleList(w http.ResponseWriter, r *http.Request, coll *collection) {
	q := parseListQuery(r.URL.Query())
	items, total := q.apply(coll.list())
	if q.paginated() {
		w.Header().Set("X-Total-Count", strconv.Itoa(total))
		w.Header().Add("Access-Control-Expose-Headers", "X-Total-Count")
	}
	logger.Debugf("listing %d of %d items in '%s'", len(items), total, coll.name)
	writeJSON(w, http.StatusOK, items)
}

func (rt *Router) handleGet(w http.ResponseWriter, r *http.Request, coll *collection, id string) {
	item, found := coll.get(id)
	if !found {
		writeNotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (rt *Router) handleCreate(w http.ResponseWriter, r *http.Request, coll *collection) {
	body, err := readObject(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	item, err := coll.create(body)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errDuplicateID) {
			status = http.StatusInternalServerError
		}
		writeError(w, status, err)
		return
	}
	logger.Infof("created item %v in '%s'", item[idField], coll.name)
	writeJSON(w, http.StatusCreated, item)
}

type updateFunc func(id string, body []byte) (map[string]interface{}, bool, error)

func (rt *Router) handleUpdate(w http.ResponseWriter, r *http.Request, coll *collection, id string, update updateFunc) {
	body, err := readObject(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	item, found, err := update(id, body)
	if !found {
		writeNotFound(w, r)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	logger.Infof("updated item %s in '%s'", id, coll.name)
	writeJSON(w, http.StatusOK, item)
}

func (rt *Router) handleDelete(w http.ResponseWriter, r *http.Request, coll *collection, id string) {
	if !coll.delete(id) {
		writeNotFound(w, r)
		return
	}
	logger.Infof("deleted item %s from '%s'", id, coll.name)
	writeJSON(w, http.StatusOK, map[string]interface{}{})
}

// readObject returns the request body as a JSON object. Form bodies are
// taken from the exchange, where they were parsed upstream.
func readObject(r *http.Request) ([]byte, error) {
	var body []byte
	if r.Body != nil {
		var err error
		if body, err = io.ReadAll(r.Body); err != nil {
			return nil, err
		}
	}
	body = bytes.TrimSpace(body)

	if !gjson.ValidBytes(body) {
		if exch, ok := exchange.FromContext(r.Context()); ok && len(exch.ParsedBody) > 0 {
			return json.Marshal(exch.ParsedBody)
		}
	}
	if len(body) == 0 {
		return []byte("{}"), nil
	}
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		return nil, errNotObject
	}
	return body, nil
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Errorf("failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	w.Write(body)
}

func writeError(w http.ResponseWriter, statusCode int, err error) {
	writeJSON(w, statusCode, map[string]string{"error": err.Error()})
}

func writeNotFound(w http.ResponseWriter, r *http.Request) {
	logger.Debugf("no resource found - method:%s, path:%s", r.Method, r.URL.Path)
	writeJSON(w, http.StatusNotFound, map[string]interface{}{})
}
