package exchange

import (
	"net/http"
)

// ResponseState tracks the state of the HTTP response
type ResponseState struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Handled    bool // indicates if a stage has produced the response
}

// NewResponseState creates a new ResponseState with default values
func NewResponseState() *ResponseState {
	return &ResponseState{
		StatusCode: http.StatusOK,
		Headers:    make(map[string]string),
	}
}

// Respond sets the status, content type and body, and marks the response as handled
func (rs *ResponseState) Respond(statusCode int, contentType string, body []byte) {
	rs.StatusCode = statusCode
	if contentType != "" {
		rs.Headers["Content-Type"] = contentType
	}
	rs.Body = body
	rs.Handled = true
}

// WriteToResponseWriter writes the final state to the http.ResponseWriter
func (rs *ResponseState) WriteToResponseWriter(w http.ResponseWriter) {
	for key, value := range rs.Headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(rs.StatusCode)
	if rs.Body != nil {
		w.Write(rs.Body)
	}
}
