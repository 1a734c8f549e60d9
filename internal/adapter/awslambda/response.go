package awslambda

import (
	"bytes"
	"encoding/base64"
	"net/http"
)

// responseRecorder captures a handler's response for conversion to a Lambda response
type responseRecorder struct {
	Headers       http.Header
	Body          bytes.Buffer
	StatusCode    int
	writtenStatus bool
}

func (r *responseRecorder) Header() http.Header {
	return r.Headers
}

func (r *responseRecorder) Write(data []byte) (int, error) {
	if !r.writtenStatus {
		r.WriteHeader(http.StatusOK)
	}
	return r.Body.Write(data)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	if r.writtenStatus {
		return
	}
	r.StatusCode = statusCode
	r.writtenStatus = true
}

func decodeBody(body string, base64Encoded bool) (string, error) {
	if !base64Encoded {
		return body, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
