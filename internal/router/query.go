package router

import (
	"encoding/json"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

const defaultPageLimit = 10

// listQuery holds the filtering, sorting and pagination parameters of a list request
type listQuery struct {
	filters map[string][]string
	search  string
	sort    string
	desc    bool
	page    int
	limit   int
	start   int
	end     int
}

func parseListQuery(values url.Values) listQuery {
	q := listQuery{
		filters: make(map[string][]string),
		start:   -1,
		end:     -1,
	}
	for key, vals := range values {
		switch key {
		case "q":
			q.search = strings.ToLower(values.Get(key))
		case "_sort":
			q.sort = values.Get(key)
		case "_order":
			q.desc = strings.EqualFold(values.Get(key), "desc")
		case "_page":
			q.page = atoiOr(values.Get(key), 0)
		case "_limit":
			q.limit = atoiOr(values.Get(key), 0)
		case "_start":
			q.start = atoiOr(values.Get(key), -1)
		case "_end":
			q.end = atoiOr(values.Get(key), -1)
		default:
			if !strings.HasPrefix(key, "_") || isOperatorFilter(key) {
				q.filters[key] = vals
			}
		}
	}
	if q.page > 0 && q.limit <= 0 {
		q.limit = defaultPageLimit
	}
	return q
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func isOperatorFilter(key string) bool {
	for _, suffix := range []string{"_gte", "_lte", "_ne", "_like"} {
		if strings.HasSuffix(key, suffix) && len(key) > len(suffix) {
			return true
		}
	}
	return false
}

// paginated reports whether a total count should accompany the result
func (q listQuery) paginated() bool {
	return q.page > 0 || q.start >= 0 || q.end >= 0 || q.limit > 0
}

// apply returns the matching page of items and the total number of matches
func (q listQuery) apply(items []map[string]interface{}) ([]map[string]interface{}, int) {
	encoded := make([][]byte, len(items))
	for i, item := range items {
		encoded[i], _ = json.Marshal(item)
	}

	var matched []int
	for i := range items {
		if q.matches(encoded[i]) {
			matched = append(matched, i)
		}
	}

	if q.sort != "" {
		sort.SliceStable(matched, func(a, b int) bool {
			va := gjson.GetBytes(encoded[matched[a]], q.sort)
			vb := gjson.GetBytes(encoded[matched[b]], q.sort)
			if q.desc {
				return vb.Less(va, false)
			}
			return va.Less(vb, false)
		})
	}

	total := len(matched)
	from, to := q.bounds(total)

	result := make([]map[string]interface{}, 0, to-from)
	for _, idx := range matched[from:to] {
		result = append(result, items[idx])
	}
	return result, total
}

// bounds returns the slice of the matched items to serve, clamped to
// [0, total]. Offsets are checked against total before any arithmetic,
// which keeps huge page and limit values from overflowing.
func (q listQuery) bounds(total int) (int, int) {
	from, to := 0, total
	switch {
	case q.page > 0:
		if q.page-1 > total/q.limit {
			return total, total
		}
		from = (q.page - 1) * q.limit
		to = advance(from, q.limit, total)
	case q.start >= 0 || q.end >= 0:
		if q.start >= 0 {
			from = min(q.start, total)
		}
		if q.end >= 0 {
			to = min(q.end, total)
		} else if q.limit > 0 {
			to = advance(from, q.limit, total)
		}
	case q.limit > 0:
		to = min(q.limit, total)
	}
	from = min(max(from, 0), total)
	to = min(max(to, from), total)
	return from, to
}

// advance returns from+n, capped at total
func advance(from, n, total int) int {
	if n > total-from {
		return total
	}
	return from + n
}

// matches applies the search term and every field filter; values given for
// the same field are alternatives
func (q listQuery) matches(item []byte) bool {
	if q.search != "" && !strings.Contains(strings.ToLower(string(item)), q.search) {
		return false
	}
	for key, vals := range q.filters {
		field, op := splitOperator(key)
		actual := gjson.GetBytes(item, field)
		ok := false
		for _, want := range vals {
			if compare(actual, op, want) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func splitOperator(key string) (string, string) {
	for _, op := range []string{"_gte", "_lte", "_ne", "_like"} {
		if strings.HasSuffix(key, op) && len(key) > len(op) {
			return strings.TrimSuffix(key, op), op
		}
	}
	return key, ""
}

func compare(actual gjson.Result, op string, want string) bool {
	switch op {
	case "_ne":
		return !actual.Exists() || actual.String() != want
	case "_like":
		re, err := regexp.Compile("(?i)" + want)
		return err == nil && actual.Exists() && re.MatchString(actual.String())
	case "_gte", "_lte":
		if !actual.Exists() {
			return false
		}
		n, err := strconv.ParseFloat(want, 64)
		if err != nil {
			return false
		}
		if op == "_gte" {
			return actual.Float() >= n
		}
		return actual.Float() <= n
	default:
		if !actual.Exists() {
			return false
		}
		if actual.IsArray() {
			for _, el := range actual.Array() {
				if el.String() == want {
					return true
				}
			}
			return false
		}
		return actual.String() == want
	}
}
