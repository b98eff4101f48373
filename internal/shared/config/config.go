package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var defaultCORSOrigins = "https://generateur-de-fiche-de-poste.vercel.app,http://localhost:1303,http://localhost:3000"

// placeholderKeys are values shipped in sample .env files that must never reach a provider.
var placeholderKeys = []string{
	"ta_clé_api_ici",
	"sk-votre_clé_api_réelle",
	"your_api_key",
	"changeme",
}

// Config holds application configuration.
type Config struct {
	Port                  string
	Env                   string
	CORSAllowOrigin       []string
	ObjectStoreType       string
	FichesDir             string
	TemplatePath          string
	AWSRegion             string
	S3Bucket              string
	S3Prefix              string
	S3Endpoint            string
	S3AccessKey           string
	S3SecretKey           string
	LLMProvider           string
	LLMModel              string
	OpenAIAPIKey          string
	GoogleAPIKey          string
	LLMTimeout            time.Duration
	GenerateRatePerMinute float64
	GenerateBurst         int
	DownloadBasePath      string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	provider := NormalizeProvider(getEnv("LLM_PROVIDER", ProviderOpenAI))

	return Config{
		Port:                  getEnv("PORT", "3000"),
		Env:                   normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin:       splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", defaultCORSOrigins)),
		ObjectStoreType:       normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		FichesDir:             getEnv("FICHES_DIR", "./fiches"),
		TemplatePath:          getEnv("TEMPLATE_PATH", "./template.docx"),
		AWSRegion:             getEnv("AWS_REGION", ""),
		S3Bucket:              getEnv("S3_BUCKET", ""),
		S3Prefix:              getEnv("S3_PREFIX", "fiches/"),
		S3Endpoint:            getEnv("S3_ENDPOINT", ""),
		S3AccessKey:           getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:           getEnv("S3_SECRET_KEY", ""),
		LLMProvider:           provider,
		LLMModel:              getEnv("LLM_MODEL", DefaultModel(provider)),
		OpenAIAPIKey:          strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		GoogleAPIKey:          strings.TrimSpace(os.Getenv("GOOGLE_API_KEY")),
		LLMTimeout:            time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 120)) * time.Second,
		GenerateRatePerMinute: float64(getEnvInt("GENERATE_RATE_PER_MINUTE", 10)),
		GenerateBurst:         getEnvInt("GENERATE_BURST", 5),
		DownloadBasePath:      getEnv("DOWNLOAD_BASE_PATH", "/api/download-fiche/"),
	}
}

// APIKey returns the credential of the configured provider.
func (c Config) APIKey() string {
	if c.LLMProvider == ProviderGemini {
		return c.GoogleAPIKey
	}
	return c.OpenAIAPIKey
}

// Validate reports configuration the server must refuse to start with.
func (c Config) Validate() error {
	keyName := "OPENAI_API_KEY"
	if c.LLMProvider == ProviderGemini {
		keyName = "GOOGLE_API_KEY"
	}
	key := c.APIKey()
	if key == "" {
		return fmt.Errorf("%s is not configured", keyName)
	}
	if IsPlaceholderKey(key) {
		return fmt.Errorf("%s still holds a placeholder value", keyName)
	}
	if c.ObjectStoreType == "s3" && strings.TrimSpace(c.S3Bucket) == "" {
		return fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
	}
	return nil
}

// IsPlaceholderKey reports whether key is one of the sample placeholder credentials.
func IsPlaceholderKey(key string) bool {
	lower := strings.ToLower(strings.TrimSpace(key))
	for _, p := range placeholderKeys {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	case "memory":
		return "memory"
	default:
		return "local"
	}
}

// NormalizeProvider maps a provider name, case-insensitively, to ProviderOpenAI
// or ProviderGemini. Unknown names fall back to OpenAI.
func NormalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gemini", "google":
		return ProviderGemini
	default:
		return ProviderOpenAI
	}
}

// DefaultModel returns the model used when LLM_MODEL is unset.
func DefaultModel(provider string) string {
	if provider == ProviderGemini {
		return "gemini-2.5-pro"
	}
	return "gpt-4o"
}
