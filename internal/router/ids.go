package router

import (
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

const idField = "id"

// idKey returns the store key for an id value
func idKey(id interface{}) (string, bool) {
	switch v := id.(type) {
	case string:
		return v, v != ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case json.Number:
		return v.String(), true
	default:
		return "", false
	}
}

// idKeyFromJSON returns the store key for the id field of a raw JSON object
func idKeyFromJSON(body []byte) (string, bool) {
	res := gjson.GetBytes(body, idField)
	switch res.Type {
	case gjson.String:
		return res.Str, res.Str != ""
	case gjson.Number:
		return strconv.FormatFloat(res.Num, 'f', -1, 64), true
	default:
		return "", false
	}
}

func numericID(id interface{}) (float64, bool) {
	switch v := id.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// nextID returns 1 for an empty collection, the highest id plus one if every
// existing id is numeric, and a random UUID otherwise
func nextID(items map[string]interface{}) interface{} {
	if len(items) == 0 {
		return float64(1)
	}
	var max float64
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		n, ok := numericID(obj[idField])
		if !ok || n != float64(int64(n)) {
			return uuid.NewString()
		}
		if n > max {
			max = n
		}
	}
	return max + 1
}

// lessID orders numeric ids numerically, before any string ids
func lessID(a, b string) bool {
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
