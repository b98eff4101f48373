package main

import (
	"testing"

	"fiche-backend/internal/shared/config"
)

func TestWithProvider(t *testing.T) {
	base := config.Config{LLMProvider: config.ProviderOpenAI, LLMModel: "gpt-4o"}

	tests := []struct {
		name      string
		provider  string
		model     string
		modelSet  bool
		wantProv  string
		wantModel string
	}{
		{name: "mixed case gemini", provider: "Gemini", model: "gpt-4o", wantProv: config.ProviderGemini, wantModel: "gemini-2.5-pro"},
		{name: "explicit model kept", provider: "GEMINI", model: "gemini-2.5-flash", modelSet: true, wantProv: config.ProviderGemini, wantModel: "gemini-2.5-flash"},
		{name: "same provider keeps env model", provider: "OpenAI", model: "gpt-4o", wantProv: config.ProviderOpenAI, wantModel: "gpt-4o"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := withProvider(base, tt.provider, tt.model, tt.modelSet)
			if got.LLMProvider != tt.wantProv || got.LLMModel != tt.wantModel {
				t.Fatalf("got %s/%s, want %s/%s", got.LLMProvider, got.LLMModel, tt.wantProv, tt.wantModel)
			}
		})
	}
}

func TestSampleRequestIsValid(t *testing.T) {
	if err := sampleRequest().Validate(); err != nil {
		t.Fatalf("sample request invalid: %v", err)
	}
}
