package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrInvalidCredentials means the provider rejected the API key.
	ErrInvalidCredentials = errors.New("invalid completion credentials")
	// ErrQuotaExceeded means the provider account has no quota left.
	ErrQuotaExceeded = errors.New("completion quota exceeded")
	// ErrRateLimited means the provider throttled the request.
	ErrRateLimited = errors.New("completion rate limited")
)

// APIError is a provider failure with whatever structure the provider reported.
type APIError struct {
	Provider   string
	StatusCode int
	Code       string
	Type       string
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Provider)
	b.WriteString(" error")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " status=%d", e.StatusCode)
	}
	if e.Code != "" {
		b.WriteString(" code=")
		b.WriteString(e.Code)
	}
	if e.Status != "" {
		b.WriteString(" status_text=")
		b.WriteString(e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is lets errors.Is match an APIError against the kind sentinels.
func (e *APIError) Is(target error) bool {
	kind := e.kind()
	return kind != nil && kind == target
}

func (e *APIError) kind() error {
	for _, code := range []string{e.Code, e.Status, e.Type} {
		kind := kindFromCode(code)
		if kind == nil {
			continue
		}
		// Gemini reports both throttling and exhausted quota as RESOURCE_EXHAUSTED.
		if code == "RESOURCE_EXHAUSTED" && mentionsQuota(e.Message) {
			return ErrQuotaExceeded
		}
		return kind
	}
	if kind := kindFromStatus(e.StatusCode); kind != nil {
		return kind
	}
	return kindFromMessage(e.Message)
}

// Classify maps err to one of ErrInvalidCredentials, ErrQuotaExceeded or
// ErrRateLimited, or nil when the error is of no known kind. Structured codes
// win over HTTP status, and message matching is only a last resort.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{ErrInvalidCredentials, ErrQuotaExceeded, ErrRateLimited} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return nil
	}
	return kindFromMessage(err.Error())
}

func kindFromCode(code string) error {
	switch strings.TrimSpace(code) {
	case "invalid_api_key", "API_KEY_INVALID", "UNAUTHENTICATED", "PERMISSION_DENIED", "authentication_error":
		return ErrInvalidCredentials
	case "insufficient_quota":
		return ErrQuotaExceeded
	case "rate_limit_exceeded", "RESOURCE_EXHAUSTED":
		return ErrRateLimited
	}
	return nil
}

func kindFromStatus(status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrInvalidCredentials
	case http.StatusPaymentRequired:
		return ErrQuotaExceeded
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	return nil
}

func kindFromMessage(message string) error {
	switch {
	case strings.Contains(message, "401"), strings.Contains(message, "API key not valid"):
		return ErrInvalidCredentials
	case mentionsQuota(message):
		return ErrQuotaExceeded
	}
	return nil
}

func mentionsQuota(message string) bool {
	return strings.Contains(strings.ToLower(message), "quota")
}
