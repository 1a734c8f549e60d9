package exchange

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

type contextKey struct{}

// Exchange holds the data for a request/response exchange as it passes
// through the interceptor chain
type Exchange struct {
	Request       *http.Request
	Body          []byte
	ParsedBody    map[string]interface{}
	ResponseState *ResponseState
}

// NewExchange creates a new Exchange for an HTTP request, with an empty parsed body
// and a default response state
func NewExchange(req *http.Request) *Exchange {
	return &Exchange{
		Request:       req,
		ParsedBody:    make(map[string]interface{}),
		ResponseState: NewResponseState(),
	}
}

// ReadBody consumes the request body into the exchange and replaces it with
// an identical reader, so later consumers see the original bytes.
func (e *Exchange) ReadBody() error {
	if e.Request.Body == nil || e.Request.Body == http.NoBody {
		return nil
	}
	body, err := io.ReadAll(e.Request.Body)
	e.Request.Body.Close()
	if err != nil {
		return err
	}
	e.Body = body
	e.Request.Body = io.NopCloser(bytes.NewReader(body))
	return nil
}

// ForwardRequest returns the request to pass to the next handler, with a fresh
// reader over the original body and the exchange attached to its context.
func (e *Exchange) ForwardRequest() *http.Request {
	req := e.Request.WithContext(context.WithValue(e.Request.Context(), contextKey{}, e))
	if e.Body != nil {
		req.Body = io.NopCloser(bytes.NewReader(e.Body))
		req.ContentLength = int64(len(e.Body))
	}
	return req
}

// FromContext returns the exchange attached by ForwardRequest, if any
func FromContext(ctx context.Context) (*Exchange, bool) {
	exch, ok := ctx.Value(contextKey{}).(*Exchange)
	return exch, ok
}
