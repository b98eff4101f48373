package llm

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "openai invalid key code", err: &APIError{Provider: "openai", StatusCode: 401, Code: "invalid_api_key"}, want: ErrInvalidCredentials},
		{name: "quota code beats 429 status", err: &APIError{Provider: "openai", StatusCode: 429, Code: "insufficient_quota"}, want: ErrQuotaExceeded},
		{name: "rate limit code", err: &APIError{Provider: "openai", StatusCode: 429, Code: "rate_limit_exceeded"}, want: ErrRateLimited},
		{name: "gemini resource exhausted", err: &APIError{Provider: "gemini", StatusCode: 429, Status: "RESOURCE_EXHAUSTED"}, want: ErrRateLimited},
		{name: "gemini exhausted quota", err: &APIError{Provider: "gemini", StatusCode: 429, Status: "RESOURCE_EXHAUSTED", Message: "You exceeded your current quota, please check your plan and billing details."}, want: ErrQuotaExceeded},
		{name: "openai rate limit code ignores quota wording", err: &APIError{Provider: "openai", StatusCode: 429, Code: "rate_limit_exceeded", Message: "per-minute quota reached"}, want: ErrRateLimited},
		{name: "gemini unauthenticated", err: &APIError{Provider: "gemini", Status: "UNAUTHENTICATED"}, want: ErrInvalidCredentials},
		{name: "gemini permission denied", err: &APIError{Provider: "gemini", StatusCode: 403, Status: "PERMISSION_DENIED"}, want: ErrInvalidCredentials},
		{name: "status 401 without code", err: &APIError{Provider: "openai", StatusCode: 401}, want: ErrInvalidCredentials},
		{name: "status 402", err: &APIError{Provider: "openai", StatusCode: 402}, want: ErrQuotaExceeded},
		{name: "status 429", err: &APIError{Provider: "openai", StatusCode: 429}, want: ErrRateLimited},
		{name: "message api key", err: &APIError{Provider: "gemini", StatusCode: 400, Message: "API key not valid. Please pass a valid API key."}, want: ErrInvalidCredentials},
		{name: "server error", err: &APIError{Provider: "openai", StatusCode: 500, Message: "boom"}, want: nil},
		{name: "wrapped api error", err: fmt.Errorf("generate: %w", &APIError{Provider: "openai", Code: "rate_limit_exceeded"}), want: ErrRateLimited},
		{name: "plain message 401", err: errors.New("request failed with status 401"), want: ErrInvalidCredentials},
		{name: "plain message quota", err: errors.New("You exceeded your current Quota"), want: ErrQuotaExceeded},
		{name: "plain network error", err: errors.New("connection refused"), want: nil},
		{name: "already classified", err: fmt.Errorf("%w: details", ErrQuotaExceeded), want: ErrQuotaExceeded},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Fatalf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestAPIErrorIs(t *testing.T) {
	err := fmt.Errorf("complete: %w", &APIError{Provider: "openai", StatusCode: 429, Code: "insufficient_quota"})
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected quota kind")
	}
	if errors.Is(err, ErrRateLimited) {
		t.Fatalf("did not expect rate limit kind")
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{Provider: "openai", StatusCode: 401, Code: "invalid_api_key", Message: "Incorrect API key provided"}
	msg := err.Error()
	for _, want := range []string{"openai", "status=401", "code=invalid_api_key", "Incorrect API key provided"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
}

func TestFicheSystemPrompt(t *testing.T) {
	prompt := FicheSystemPrompt()
	for _, want := range []string{"Ressources Humaines", "Missions principales", "Profil recherché"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("system prompt missing %q", want)
		}
	}
	if prompt != strings.TrimSpace(prompt) {
		t.Fatalf("system prompt should be trimmed")
	}
}

func TestNewCompletionRequestDefaults(t *testing.T) {
	req := NewCompletionRequest("sys", "user")
	if req.Temperature != 0.7 || req.MaxTokens != 2500 {
		t.Fatalf("unexpected defaults: %+v", req)
	}
}
