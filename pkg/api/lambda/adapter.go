// Package lambda runs the HTTP API inside AWS Lambda behind API Gateway.
//
// Both REST API (payload 1.0) and HTTP API (payload 2.0) proxy events are
// accepted; the payload version is read from the raw event.
package lambda

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const payloadVersionV2 = "2.0"

// Adapter translates API Gateway proxy events to requests on a gin engine
type Adapter struct {
	proxy   *ginadapter.GinLambda
	proxyV2 *ginadapter.GinLambdaV2
	logger  *zap.Logger
}

// NewAdapter wraps router, which keeps its full middleware chain
func NewAdapter(router *gin.Engine, logger *zap.Logger) *Adapter {
	return &Adapter{
		proxy:   ginadapter.New(router),
		proxyV2: ginadapter.NewV2(router),
		logger:  logger,
	}
}

// Handler serves one REST API proxy event
func (a *Adapter) Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp, err := a.proxy.ProxyWithContext(ctx, req)
	if err != nil {
		a.logger.Error("lambda proxy failed",
			zap.String("method", req.HTTPMethod),
			zap.String("path", req.Path),
			zap.Error(err))
	}
	return resp, err
}

// HandlerV2 serves one HTTP API proxy event
func (a *Adapter) HandlerV2(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	resp, err := a.proxyV2.ProxyWithContext(ctx, req)
	if err != nil {
		a.logger.Error("lambda proxy failed",
			zap.String("method", req.RequestContext.HTTP.Method),
			zap.String("path", req.RawPath),
			zap.Error(err))
	}
	return resp, err
}

// Invoke dispatches a raw event to Handler or HandlerV2 by payload version
func (a *Adapter) Invoke(ctx context.Context, payload json.RawMessage) (any, error) {
	if gjson.GetBytes(payload, "version").String() == payloadVersionV2 {
		var req events.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, fmt.Errorf("failed to decode HTTP API event: %w", err)
		}
		return a.HandlerV2(ctx, req)
	}

	var req events.APIGatewayProxyRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("failed to decode REST API event: %w", err)
	}
	return a.Handler(ctx, req)
}

// Start hands control to the Lambda runtime. It does not return.
func (a *Adapter) Start() {
	a.logger.Info("starting lambda handler")
	lambda.Start(a.Invoke)
}
