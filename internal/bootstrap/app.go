package bootstrap

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"fiche-backend/fiche/render"
	"fiche-backend/internal/fiches"
	"fiche-backend/internal/llm"
	"fiche-backend/internal/llm/gemini"
	"fiche-backend/internal/llm/openai"
	"fiche-backend/internal/services/health"
	"fiche-backend/internal/shared/config"
	"fiche-backend/internal/shared/server"
	"fiche-backend/internal/shared/server/middleware"
	"fiche-backend/internal/shared/storage/object"
	localstore "fiche-backend/internal/shared/storage/object/local"
	memorystore "fiche-backend/internal/shared/storage/object/memory"
	s3store "fiche-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config       config.Config
	Router       *gin.Engine
	Store        object.ObjectStore
	LLM          llm.Client
	Renderer     *render.Renderer
	FicheStore   *fiches.Store
	FicheService *fiches.Service
	FicheHandler *fiches.Handler
}

// Options overrides dependencies, mainly for tests.
type Options struct {
	LLM   llm.Client
	Store object.ObjectStore
}

// Build prepares dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	return BuildWith(context.Background(), cfg, Options{})
}

// BuildWith is Build with explicit overrides.
func BuildWith(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	store := opts.Store
	if store == nil {
		built, err := buildStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store = built
	}

	client := opts.LLM
	if client == nil {
		built, err := BuildLLM(ctx, cfg)
		if err != nil {
			return nil, err
		}
		client = built
	}

	renderer := render.New(cfg.TemplatePath)
	ficheStore := fiches.NewStore(store, nil)
	svc := fiches.NewService(client, renderer, ficheStore, fiches.ServiceOptions{
		CompletionTimeout: cfg.LLMTimeout,
		DownloadBasePath:  cfg.DownloadBasePath,
	})
	handler := fiches.NewHandler(svc)

	app := &App{
		Config:       cfg,
		Store:        store,
		LLM:          client,
		Renderer:     renderer,
		FicheStore:   ficheStore,
		FicheService: svc,
		FicheHandler: handler,
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:       cfg,
		FicheHandler: handler,
		Health:       health.NewService(nil),
		Limiter:      middleware.NewRateLimiter(nil),
	})

	log.Printf("bootstrap: store=%s provider=%s model=%s template=%s",
		cfg.ObjectStoreType, cfg.LLMProvider, cfg.LLMModel, cfg.TemplatePath)
	return app, nil
}

// BuildLLM returns the completion client of the configured provider.
func BuildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		client, err := gemini.NewClient(ctx, cfg.GoogleAPIKey, cfg.LLMModel, cfg.LLMTimeout)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderOpenAI, "":
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.LLMProvider)
	}
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, s3store.Options{
			Region:    cfg.AWSRegion,
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	case "memory":
		log.Printf("bootstrap: OBJECT_STORE=memory; fiches are lost on restart")
		return memorystore.New(nil), nil
	default:
		return localstore.New(cfg.FichesDir), nil
	}
}
