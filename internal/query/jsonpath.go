package query

import (
	"github.com/PaesslerAG/jsonpath"
	"github.com/imposter-project/jsonmock/pkg/logger"
)

// JsonPathQuery extracts a value from a parsed JSON document using a JSONPath expression.
// A missing path is not an error; it yields success=false.
func JsonPathQuery(doc interface{}, jsonPathExpr string) (result interface{}, success bool) {
	result, err := jsonpath.Get(jsonPathExpr, doc)
	if err != nil {
		logger.Tracef("no value at JSON path %s: %v", jsonPathExpr, err)
		return nil, false
	}
	return result, true
}

// StringAt returns the value at jsonPathExpr only if it is a string
func StringAt(doc interface{}, jsonPathExpr string) (string, bool) {
	result, ok := JsonPathQuery(doc, jsonPathExpr)
	if !ok {
		return "", false
	}
	str, ok := result.(string)
	return str, ok
}
