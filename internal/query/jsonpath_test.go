package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJsonPathQuery(t *testing.T) {
	tests := []struct {
		name          string
		doc           interface{}
		jsonPathExpr  string
		expectedValue interface{}
		expectSuccess bool
	}{
		{
			name:          "simple string value",
			doc:           map[string]interface{}{"name": "test"},
			jsonPathExpr:  "$.name",
			expectedValue: "test",
			expectSuccess: true,
		},
		{
			name: "nested object value",
			doc: map[string]interface{}{
				"person": map[string]interface{}{"name": "John", "age": float64(30)},
			},
			jsonPathExpr:  "$.person.age",
			expectedValue: float64(30),
			expectSuccess: true,
		},
		{
			name:          "array element",
			doc:           map[string]interface{}{"items": []interface{}{"one", "two", "three"}},
			jsonPathExpr:  "$.items[1]",
			expectedValue: "two",
			expectSuccess: true,
		},
		{
			name:          "missing key",
			doc:           map[string]interface{}{"name": "test"},
			jsonPathExpr:  "$.technology",
			expectSuccess: false,
		},
		{
			name:          "empty document",
			doc:           map[string]interface{}{},
			jsonPathExpr:  "$.technology",
			expectSuccess: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, success := JsonPathQuery(tt.doc, tt.jsonPathExpr)
			assert.Equal(t, tt.expectSuccess, success)
			if tt.expectSuccess {
				assert.Equal(t, tt.expectedValue, result)
			}
		})
	}
}

func TestStringAt(t *testing.T) {
	doc := map[string]interface{}{
		"technology": "WebRTC",
		"count":      float64(3),
		"flag":       true,
	}

	s, ok := StringAt(doc, "$.technology")
	assert.True(t, ok)
	assert.Equal(t, "WebRTC", s)

	_, ok = StringAt(doc, "$.count")
	assert.False(t, ok)

	_, ok = StringAt(doc, "$.flag")
	assert.False(t, ok)

	_, ok = StringAt(doc, "$.missing")
	assert.False(t, ok)
}
