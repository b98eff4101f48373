package fiches

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fiche-backend/fiche/render"
	"fiche-backend/internal/llm"
	"fiche-backend/internal/shared/metrics"
	"fiche-backend/internal/shared/telemetry"
)

const (
	defaultCompletionTimeout = 120 * time.Second
	defaultDownloadBasePath  = "/api/download-fiche/"
)

// Renderer turns sanitized text into a document.
type Renderer interface {
	Render(content string, meta render.Meta) render.Result
}

// ServiceOptions tunes a Service; zero values take the defaults.
type ServiceOptions struct {
	SystemPrompt      string
	CompletionTimeout time.Duration
	DownloadBasePath  string
	Now               func() time.Time
}

// Service runs the generation pipeline: prompt, completion, sanitation,
// rendering and persistence.
type Service struct {
	llm              llm.Client
	renderer         Renderer
	store            *Store
	systemPrompt     string
	timeout          time.Duration
	downloadBasePath string
	now              func() time.Time
}

func NewService(client llm.Client, renderer Renderer, store *Store, opts ServiceOptions) *Service {
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = llm.FicheSystemPrompt()
	}
	if opts.CompletionTimeout <= 0 {
		opts.CompletionTimeout = defaultCompletionTimeout
	}
	if opts.DownloadBasePath == "" {
		opts.DownloadBasePath = defaultDownloadBasePath
	}
	if !strings.HasSuffix(opts.DownloadBasePath, "/") {
		opts.DownloadBasePath += "/"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		llm:              client,
		renderer:         renderer,
		store:            store,
		systemPrompt:     opts.SystemPrompt,
		timeout:          opts.CompletionTimeout,
		downloadBasePath: opts.DownloadBasePath,
		now:              opts.Now,
	}
}

// Generate validates req, asks the completion service for the fiche text and
// persists the rendered document. Completion failures keep their kind
// (llm.ErrInvalidCredentials, llm.ErrQuotaExceeded, llm.ErrRateLimited).
func (s *Service) Generate(ctx context.Context, req JobPostingRequest) (GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return GenerateResult{}, err
	}
	if s.llm == nil {
		return GenerateResult{}, errors.New("completion client not configured")
	}

	requestID := requestIDFromContext(ctx)
	metrics.IncGenerationStarted()
	telemetry.Info("fiche.generate.start", map[string]any{
		"request_id": requestID,
		"title":      req.Title,
		"company":    req.Company,
	})

	content, err := s.complete(ctx, BuildUserPrompt(req))
	if err != nil {
		s.fail(requestID, "completion", err)
		return GenerateResult{}, err
	}
	content = CleanContent(content)

	doc := s.render(requestID, content, req)

	saved, err := s.store.Save(ctx, doc.Data, doc.SourceTitle, string(doc.Kind))
	if err != nil {
		s.fail(requestID, "store", err)
		return GenerateResult{}, err
	}

	metrics.IncGenerationCompleted()
	telemetry.Info("fiche.generate.complete", map[string]any{
		"request_id":  requestID,
		"filename":    saved.Filename,
		"size":        saved.Size,
		"render_path": string(doc.RenderPath),
	})

	return GenerateResult{
		Filename:    saved.Filename,
		DownloadURL: s.downloadBasePath + saved.Filename,
		Preview:     content,
		RenderPath:  doc.RenderPath,
		Size:        saved.Size,
	}, nil
}

func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	text, err := s.llm.Complete(ctx, llm.NewCompletionRequest(s.systemPrompt, prompt))
	metrics.ObserveCompletionDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		if kind := llm.Classify(err); kind != nil && !errors.Is(err, kind) {
			return "", fmt.Errorf("completion: %w: %w", kind, err)
		}
		return "", fmt.Errorf("completion: %w", err)
	}
	return text, nil
}

func (s *Service) render(requestID, content string, req JobPostingRequest) GeneratedDocument {
	createdAt := s.now()
	result := s.renderer.Render(content, render.Meta{
		Title:   strings.TrimSpace(req.Title),
		Company: strings.TrimSpace(req.Company),
		Sector:  strings.TrimSpace(req.Sector),
		Date:    createdAt,
	})
	if result.TemplateErr != nil {
		telemetry.Warn("render.template_failed", map[string]any{
			"request_id": requestID,
			"error":      result.TemplateErr,
		})
	}
	if result.Source == render.SourceFallback {
		metrics.IncRenderFallback()
	}
	return GeneratedDocument{
		Data:        result.Data,
		Kind:        KindDOCX,
		SourceTitle: req.Title,
		CreatedAt:   createdAt,
		RenderPath:  result.Source,
	}
}

func (s *Service) fail(requestID, stage string, err error) {
	metrics.IncGenerationFailed()
	fields := map[string]any{
		"request_id": requestID,
		"stage":      stage,
		"error":      err,
	}
	if kind := llm.Classify(err); kind != nil {
		fields["kind"] = kind.Error()
	}
	telemetry.Error("fiche.generate.failed", fields)
}

// Retrieve returns a stored fiche for download.
func (s *Service) Retrieve(ctx context.Context, filename string) (RetrievedFile, error) {
	file, err := s.store.Retrieve(ctx, filename)
	if err != nil {
		return RetrievedFile{}, err
	}
	metrics.IncDownloads()
	return file, nil
}

// List returns every stored fiche.
func (s *Service) List(ctx context.Context) ([]StoredFileRecord, error) {
	return s.store.List(ctx)
}

// Text returns the plain text of a stored fiche.
func (s *Service) Text(ctx context.Context, filename string) (string, error) {
	return s.store.Text(ctx, filename)
}
