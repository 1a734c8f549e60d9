package interceptor

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/imposter-project/jsonmock/internal/config"
	"github.com/imposter-project/jsonmock/internal/exchange"
	"github.com/imposter-project/jsonmock/pkg/logger"
)

const contentTypeJSON = "application/json; charset=utf-8"

// BodyParserStage parses JSON and URL-encoded form bodies into the exchange's
// parsed body. The raw body is left intact for downstream handlers. Bodies
// larger than maxBodySize are refused with 413.
type BodyParserStage struct {
	maxBodySize int64
}

// NewBodyParserStage creates a body parser; a non-positive limit selects
// config.DefaultMaxBodySize
func NewBodyParserStage(maxBodySize int64) *BodyParserStage {
	if maxBodySize <= 0 {
		maxBodySize = config.DefaultMaxBodySize
	}
	return &BodyParserStage{maxBodySize: maxBodySize}
}

func (s *BodyParserStage) Name() string {
	return "body-parser"
}

func (s *BodyParserStage) Handle(exch *exchange.Exchange) Outcome {
	r := exch.Request
	if r.Body != nil && r.Body != http.NoBody {
		r.Body = http.MaxBytesReader(nil, r.Body, s.maxBodySize)
	}
	if err := exch.ReadBody(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Warnf("request body exceeds %d bytes - method:%s, path:%s", tooLarge.Limit, r.Method, r.URL.Path)
			respondError(exch.ResponseState, http.StatusRequestEntityTooLarge, "request entity too large")
			return Respond
		}
		logger.Warnf("failed to read request body - method:%s, path:%s: %v", r.Method, r.URL.Path, err)
		respondError(exch.ResponseState, http.StatusBadRequest, "Failed to read request body")
		return Respond
	}
	if len(exch.Body) == 0 {
		return Continue
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case isJSONMediaType(mediaType):
		var parsed interface{}
		if err := json.Unmarshal(exch.Body, &parsed); err != nil {
			logger.Warnf("malformed JSON body - method:%s, path:%s: %v", r.Method, r.URL.Path, err)
			respondError(exch.ResponseState, http.StatusBadRequest, err.Error())
			return Respond
		}
		// arrays and scalars are valid JSON but carry no fields
		if obj, ok := parsed.(map[string]interface{}); ok {
			exch.ParsedBody = obj
		}

	case mediaType == "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(exch.Body))
		if err != nil {
			logger.Warnf("malformed form body - method:%s, path:%s: %v", r.Method, r.URL.Path, err)
			respondError(exch.ResponseState, http.StatusBadRequest, err.Error())
			return Respond
		}
		exch.ParsedBody = formToMap(values)

	default:
		logger.Tracef("not parsing body with content type %q", mediaType)
	}
	return Continue
}

func isJSONMediaType(mediaType string) bool {
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// formToMap keeps single values as strings and repeated keys as lists
func formToMap(values url.Values) map[string]interface{} {
	result := make(map[string]interface{}, len(values))
	for key, vals := range values {
		if len(vals) == 1 {
			result[key] = vals[0]
			continue
		}
		list := make([]interface{}, len(vals))
		for i, v := range vals {
			list[i] = v
		}
		result[key] = list
	}
	return result
}

func respondError(rs *exchange.ResponseState, statusCode int, message string) {
	body, _ := json.Marshal(map[string]string{"error": message})
	rs.Respond(statusCode, contentTypeJSON, body)
}
