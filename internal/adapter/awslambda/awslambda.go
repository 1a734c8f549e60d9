package awslambda

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/imposter-project/jsonmock/internal/adapter"
	"github.com/imposter-project/jsonmock/pkg/logger"
)

const defaultLambdaDBFile = "/var/task/db.json"

// LambdaAdapter represents the AWS Lambda runtime adapter
type LambdaAdapter struct {
	handler http.Handler
}

// NewAdapter creates a new Lambda adapter instance
func NewAdapter() adapter.Adapter {
	return &LambdaAdapter{}
}

// Start initialises the server once, during cold start, then hands control
// to the Lambda runtime
func (a *LambdaAdapter) Start() error {
	if os.Getenv("JSONMOCK_DB_FILE") == "" {
		logger.Infof("JSONMOCK_DB_FILE not set, defaulting to %s", defaultLambdaDBFile)
		os.Setenv("JSONMOCK_DB_FILE", defaultLambdaDBFile)
	}

	srv, err := adapter.InitialiseServer("")
	if err != nil {
		return err
	}
	a.handler = srv.Handler

	lambda.Start(a.HandleLambdaRequest)
	return nil
}

// HandleLambdaRequest handles API Gateway proxy and Lambda Function URL events
func (a *LambdaAdapter) HandleLambdaRequest(ctx context.Context, req json.RawMessage) (interface{}, error) {
	var apiGatewayReq events.APIGatewayProxyRequest
	var lambdaFunctionURLReq events.LambdaFunctionURLRequest

	if err := json.Unmarshal(req, &apiGatewayReq); err == nil && apiGatewayReq.HTTPMethod != "" {
		return a.handleAPIGatewayProxyRequest(ctx, apiGatewayReq), nil
	} else if err := json.Unmarshal(req, &lambdaFunctionURLReq); err == nil && lambdaFunctionURLReq.RequestContext.HTTP.Method != "" {
		return a.handleLambdaFunctionURLRequest(ctx, lambdaFunctionURLReq), nil
	}
	return events.LambdaFunctionURLResponse{StatusCode: http.StatusBadRequest, Body: "Unsupported request type"}, nil
}

func (a *LambdaAdapter) handleAPIGatewayProxyRequest(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	query := url.Values{}
	for key, values := range req.MultiValueQueryStringParameters {
		query[key] = values
	}
	for key, value := range req.QueryStringParameters {
		if _, ok := query[key]; !ok {
			query.Set(key, value)
		}
	}

	httpReq, err := convertLambdaRequestToHTTPRequest(ctx, req.HTTPMethod, req.Path, query.Encode(), req.Headers, req.Body, req.IsBase64Encoded)
	if err != nil {
		logger.Errorf("failed to convert request: %v", err)
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError, Body: "Failed to convert request"}
	}

	recorder := a.serve(httpReq)
	return events.APIGatewayProxyResponse{
		StatusCode: recorder.StatusCode,
		Headers:    convertHTTPHeaderToMap(recorder.Headers),
		Body:       recorder.Body.String(),
	}
}

func (a *LambdaAdapter) handleLambdaFunctionURLRequest(ctx context.Context, req events.LambdaFunctionURLRequest) events.LambdaFunctionURLResponse {
	httpReq, err := convertLambdaRequestToHTTPRequest(ctx, req.RequestContext.HTTP.Method, req.RawPath, req.RawQueryString, req.Headers, req.Body, req.IsBase64Encoded)
	if err != nil {
		logger.Errorf("failed to convert request: %v", err)
		return events.LambdaFunctionURLResponse{StatusCode: http.StatusInternalServerError, Body: "Failed to convert request"}
	}

	recorder := a.serve(httpReq)
	return events.LambdaFunctionURLResponse{
		StatusCode: recorder.StatusCode,
		Headers:    convertHTTPHeaderToMap(recorder.Headers),
		Body:       recorder.Body.String(),
	}
}

func (a *LambdaAdapter) serve(httpReq *http.Request) *responseRecorder {
	logger.Tracef("request: %s %s", httpReq.Method, httpReq.URL.String())
	recorder := &responseRecorder{Headers: make(http.Header)}
	a.handler.ServeHTTP(recorder, httpReq)
	if !recorder.writtenStatus {
		recorder.WriteHeader(http.StatusOK)
	}
	logger.Tracef("response: %d %s", recorder.StatusCode, &recorder.Body)
	return recorder
}

// convertLambdaRequestToHTTPRequest converts a Lambda request to an http.Request
func convertLambdaRequestToHTTPRequest(ctx context.Context, method, path, rawQuery string, headers map[string]string, body string, base64Encoded bool) (*http.Request, error) {
	payload, err := decodeBody(body, base64Encoded)
	if err != nil {
		return nil, err
	}

	target := path
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, strings.NewReader(payload))
	if err != nil {
		return nil, err
	}

	for key, value := range headers {
		httpReq.Header.Set(key, value)
	}
	return httpReq, nil
}

// convertHTTPHeaderToMap converts http.Header to a map[string]string
func convertHTTPHeaderToMap(header http.Header) map[string]string {
	result := make(map[string]string)
	for key, values := range header {
		result[key] = strings.Join(values, ",")
	}
	return result
}
