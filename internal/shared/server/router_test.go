package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"fiche-backend/fiche/render"
	"fiche-backend/internal/fiches"
	"fiche-backend/internal/llm"
	"fiche-backend/internal/services/health"
	"fiche-backend/internal/shared/config"
	"fiche-backend/internal/shared/server/middleware"
	"fiche-backend/internal/shared/storage/object/memory"
)

func testRouter(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	client := llm.ClientFunc(func(ctx context.Context, req llm.CompletionRequest) (string, error) {
		return "Le poste", nil
	})
	svc := fiches.NewService(client, render.New(""), fiches.NewStore(memory.New(nil), nil), fiches.ServiceOptions{})
	now := time.Date(2026, time.October, 18, 9, 41, 7, 0, time.UTC)
	return NewRouter(RouterDeps{
		Config:       cfg,
		FicheHandler: fiches.NewHandler(svc),
		Health:       health.NewService(func() time.Time { return now }),
		Limiter:      middleware.NewRateLimiter(func() time.Time { return now }),
	})
}

func get(r http.Handler, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRootBanner(t *testing.T) {
	r := testRouter(t, config.Config{Env: "dev"})
	resp := get(r, "/", nil)
	if resp.Code != http.StatusOK || resp.Body.String() != "Backend Job Generator OK" {
		t.Fatalf("unexpected root response %d %q", resp.Code, resp.Body.String())
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestHealth(t *testing.T) {
	r := testRouter(t, config.Config{Env: "dev"})
	resp := get(r, "/api/health", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["timestamp"] != "2026-10-18T09:41:07Z" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestMetricsRoute(t *testing.T) {
	r := testRouter(t, config.Config{Env: "dev"})
	resp := get(r, "/metrics", nil)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "fiche_generation_started_total") {
		t.Fatalf("unexpected metrics response %d", resp.Code)
	}
}

func TestCORSAllowList(t *testing.T) {
	r := testRouter(t, config.Config{Env: "dev", CORSAllowOrigin: []string{"http://localhost:3000"}})

	resp := get(r, "/api/list-fiches", map[string]string{"Origin": "http://localhost:3000"})
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected allowed origin, got %q", got)
	}
	resp = get(r, "/api/list-fiches", map[string]string{"Origin": "https://evil.example"})
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}

func TestGenerateIsRateLimited(t *testing.T) {
	r := testRouter(t, config.Config{Env: "dev", GenerateRatePerMinute: 1, GenerateBurst: 1})
	body := `{"titre":"Dev","entreprise":"Acme","secteur":"Tech","missions":"Coder"}`

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/generate-fiche", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		return resp.Code
	}
	if code := post(); code != http.StatusOK {
		t.Fatalf("first generate expected 200, got %d", code)
	}
	if code := post(); code != http.StatusTooManyRequests {
		t.Fatalf("second generate expected 429, got %d", code)
	}
	if resp := get(r, "/api/list-fiches", nil); resp.Code != http.StatusOK {
		t.Fatalf("list should not be limited, got %d", resp.Code)
	}
}

func TestAddr(t *testing.T) {
	tests := map[string]string{"": ":3000", "8080": ":8080", ":9000": ":9000"}
	for in, want := range tests {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
