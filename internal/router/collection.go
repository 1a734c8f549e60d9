package router

import (
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"github.com/tidwall/sjson"

	"github.com/imposter-project/jsonmock/internal/store"
)

var (
	errDuplicateID = errors.New("Insert failed, duplicate id")
	errNotObject   = errors.New("request body must be a JSON object")
)

// collection is a named list of resources, each keyed by its id
type collection struct {
	name  string
	store *store.Store

	// serialises read-modify-write operations
	mu sync.Mutex
}

func newCollection(provider store.Provider, name string) *collection {
	return &collection{
		name:  name,
		store: store.Open(provider, name),
	}
}

func (c *collection) list() []map[string]interface{} {
	items := c.store.GetAllValues("")
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return lessID(keys[i], keys[j]) })

	result := make([]map[string]interface{}, 0, len(keys))
	for _, k := range keys {
		if obj, ok := items[k].(map[string]interface{}); ok {
			result = append(result, obj)
		}
	}
	return result
}

func (c *collection) get(id string) (map[string]interface{}, bool) {
	val, found := c.store.GetValue(id)
	if !found {
		return nil, false
	}
	obj, ok := val.(map[string]interface{})
	return obj, ok
}

// create stores a new resource, assigning an id if the body has none
func (c *collection) create(body []byte) (map[string]interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key, hasID := idKeyFromJSON(body)
	if hasID {
		if _, exists := c.store.GetValue(key); exists {
			return nil, errDuplicateID
		}
	} else {
		id := nextID(c.store.GetAllValues(""))
		var err error
		if body, err = sjson.SetBytes(body, idField, id); err != nil {
			return nil, err
		}
		key, _ = idKey(id)
	}

	obj, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	c.store.StoreValue(key, obj)
	return obj, nil
}

// replace swaps the whole resource for the body, keeping its id
func (c *collection) replace(id string, body []byte) (map[string]interface{}, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, found := c.get(id)
	if !found {
		return nil, false, nil
	}
	body, err := sjson.SetBytes(body, idField, existing[idField])
	if err != nil {
		return nil, true, err
	}
	obj, err := decodeObject(body)
	if err != nil {
		return nil, true, err
	}
	c.store.StoreValue(id, obj)
	return obj, true, nil
}

// patch merges the body's top-level fields into the resource, keeping its id
func (c *collection) patch(id string, body []byte) (map[string]interface{}, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, found := c.get(id)
	if !found {
		return nil, false, nil
	}
	changes, err := decodeObject(body)
	if err != nil {
		return nil, true, err
	}

	merged := make(map[string]interface{}, len(existing)+len(changes))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range changes {
		merged[k] = v
	}
	merged[idField] = existing[idField]

	c.store.StoreValue(id, merged)
	return merged, true, nil
}

func (c *collection) delete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, found := c.store.GetValue(id); !found {
		return false
	}
	c.store.DeleteValue(id)
	return true
}

func decodeObject(body []byte) (map[string]interface{}, error) {
	var obj map[string]interface{}
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return nil, errNotObject
	}
	return obj, nil
}
