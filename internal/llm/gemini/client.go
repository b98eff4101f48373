package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"fiche-backend/internal/llm"
	"fiche-backend/internal/shared/telemetry"
)

const providerName = "gemini"

// baseURL overrides the Gemini API endpoint when non-empty.
var baseURL = ""

// Client implements llm.Client using the Gemini API.
type Client struct {
	model  string
	client *genai.Client
}

// NewClient constructs a Gemini client. A non-positive timeout defaults to 120s.
func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for Gemini")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY is required")
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{model: model, client: client}, nil
}

// Complete sends the prompt with the system instruction and returns the first candidate's text.
func (c *Client) Complete(ctx context.Context, input llm.CompletionRequest) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(input.Temperature)),
		MaxOutputTokens: int32(input.MaxTokens),
	}
	if strings.TrimSpace(input.System) != "" {
		config.SystemInstruction = genai.NewContentFromText(input.System, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(input.Prompt), config)
	if err != nil {
		if apiErr := toAPIError(err); apiErr != nil {
			return "", apiErr
		}
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	fields := map[string]any{
		"provider":   providerName,
		"model":      c.model,
		"candidates": len(resp.Candidates),
	}
	if resp.UsageMetadata != nil {
		fields["prompt_tokens"] = resp.UsageMetadata.PromptTokenCount
		fields["completion_tokens"] = resp.UsageMetadata.CandidatesTokenCount
		fields["total_tokens"] = resp.UsageMetadata.TotalTokenCount
	}
	telemetry.Info("llm.response", fields)

	return resp.Text(), nil
}

// toAPIError converts a genai error into *llm.APIError. genai returns APIError by value.
func toAPIError(err error) *llm.APIError {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		var ptr *genai.APIError
		if !errors.As(err, &ptr) || ptr == nil {
			return nil
		}
		apiErr = *ptr
	}
	return &llm.APIError{
		Provider:   providerName,
		StatusCode: apiErr.Code,
		Code:       detailReason(apiErr.Details),
		Status:     apiErr.Status,
		Message:    apiErr.Message,
	}
}

// detailReason extracts the google.rpc.ErrorInfo reason, e.g. API_KEY_INVALID.
func detailReason(details []map[string]any) string {
	for _, d := range details {
		if reason, ok := d["reason"].(string); ok && reason != "" {
			return reason
		}
	}
	return ""
}

var _ llm.Client = (*Client)(nil)
