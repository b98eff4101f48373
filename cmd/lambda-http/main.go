package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-http

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"

	"fiche-backend/internal/bootstrap"
	"fiche-backend/internal/shared/config"
	"fiche-backend/internal/shared/server/respond"
	"fiche-backend/internal/shared/telemetry"
)

// lambdaWritableDir is the only writable path inside the Lambda sandbox.
const lambdaWritableDir = "/tmp"

var (
	initOnce  sync.Once
	initErr   error
	ginLambda *ginadapter.GinLambdaV2

	buildApp = bootstrap.Build
)

func initApp() {
	cfg := lambdaConfig(config.Load())
	if err := cfg.Validate(); err != nil {
		initErr = err
		return
	}
	app, err := buildApp(cfg)
	if err != nil {
		initErr = err
		return
	}
	telemetry.Info("lambda.init", map[string]any{
		"store":    cfg.ObjectStoreType,
		"fiches":   cfg.FichesDir,
		"provider": cfg.LLMProvider,
		"model":    cfg.LLMModel,
	})
	ginLambda = ginadapter.NewV2(app.Router)
}

// lambdaConfig moves a local fiches directory under /tmp; generated fiches
// there only live as long as the execution environment.
func lambdaConfig(cfg config.Config) config.Config {
	if cfg.ObjectStoreType != "local" {
		return cfg
	}
	dir := filepath.Clean(cfg.FichesDir)
	if dir == lambdaWritableDir || strings.HasPrefix(dir, lambdaWritableDir+"/") {
		return cfg
	}
	cfg.FichesDir = filepath.Join(lambdaWritableDir, "fiches")
	return cfg
}

func handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	initOnce.Do(initApp)
	if initErr != nil {
		telemetry.Error("lambda.bootstrap_failed", map[string]any{"error": initErr})
		return errorResponse("bootstrap_failed", "Service indisponible"), initErr
	}
	if ginLambda == nil {
		return errorResponse("router_not_initialized", "Service indisponible"), nil
	}
	return ginLambda.ProxyWithContext(ctx, req)
}

func errorResponse(code, message string) events.APIGatewayV2HTTPResponse {
	body, _ := json.Marshal(respond.ErrorResponse{Error: respond.ErrorBody{Code: code, Message: message}})
	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       string(body),
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

func main() {
	lambda.Start(handler)
}
