package fiches

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fiche-backend/internal/extract"
	"fiche-backend/internal/llm"
	"fiche-backend/internal/shared/server/middleware"
	"fiche-backend/internal/shared/server/respond"
)

// maxRequestBytes bounds the generate request body.
const maxRequestBytes = 1 << 20

// Handler wires HTTP handlers to the fiche service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches fiche routes to the router group. Extra handlers
// (rate limiting) run before generation only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, generateMiddleware ...gin.HandlerFunc) {
	generate := append(append([]gin.HandlerFunc{}, generateMiddleware...), h.generate)
	rg.POST("/generate-fiche", generate...)
	rg.GET("/download-fiche/:filename", h.download)
	rg.GET("/list-fiches", h.list)
	rg.GET("/fiche-text/:filename", h.text)
}

type generateResponse struct {
	Success     bool   `json:"success"`
	Filename    string `json:"filename"`
	DownloadURL string `json:"downloadUrl"`
	Preview     string `json:"preview"`
}

type listResponse struct {
	Fiches []StoredFileRecord `json:"fiches"`
}

type textResponse struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

func (h *Handler) generate(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)

	var req JobPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Corps de requête JSON invalide", gin.H{"reason": err.Error()})
		return
	}

	result, err := h.Svc.Generate(requestContext(c), req)
	if err != nil {
		writeGenerateError(c, err)
		return
	}

	c.Set(middleware.FilenameKey, result.Filename)
	c.Set(middleware.RenderPathKey, string(result.RenderPath))
	respond.OK(c, generateResponse{
		Success:     true,
		Filename:    result.Filename,
		DownloadURL: result.DownloadURL,
		Preview:     result.Preview,
	})
}

func writeGenerateError(c *gin.Context, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		respond.Error(c, http.StatusBadRequest, "validation_error",
			"Les champs titre, entreprise, secteur et missions sont obligatoires",
			gin.H{"missing": validationErr.Fields})
	case errors.Is(err, llm.ErrInvalidCredentials):
		respond.Error(c, http.StatusUnauthorized, "invalid_api_key", "Clé API invalide", err.Error())
	case errors.Is(err, llm.ErrQuotaExceeded):
		respond.Error(c, http.StatusPaymentRequired, "insufficient_quota", "Quota API insuffisant", err.Error())
	case errors.Is(err, llm.ErrRateLimited):
		respond.Error(c, http.StatusTooManyRequests, "rate_limit_exceeded", "Limite de requêtes dépassée", err.Error())
	default:
		respond.Error(c, http.StatusInternalServerError, "generation_failed", "Erreur lors de la génération", err.Error())
	}
}

func (h *Handler) download(c *gin.Context) {
	file, err := h.Svc.Retrieve(requestContext(c), c.Param("filename"))
	if err != nil {
		writeFileError(c, err, "Erreur lors du téléchargement")
		return
	}

	c.Set(middleware.FilenameKey, file.Filename)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Header("Content-Length", strconv.Itoa(len(file.Data)))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func (h *Handler) list(c *gin.Context) {
	records, err := h.Svc.List(requestContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Erreur lors de la liste des fiches", err.Error())
		return
	}
	respond.OK(c, listResponse{Fiches: records})
}

func (h *Handler) text(c *gin.Context) {
	filename := c.Param("filename")
	text, err := h.Svc.Text(requestContext(c), filename)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupported) {
			respond.Error(c, http.StatusUnprocessableEntity, "unsupported_document", "Format de fiche non pris en charge", err.Error())
			return
		}
		writeFileError(c, err, "Erreur lors de la lecture de la fiche")
		return
	}
	c.Set(middleware.FilenameKey, filename)
	respond.OK(c, textResponse{Filename: filename, Text: text})
}

func writeFileError(c *gin.Context, err error, internalMessage string) {
	switch {
	case errors.Is(err, ErrInvalidFilename):
		respond.Error(c, http.StatusBadRequest, "invalid_filename", "Nom de fichier invalide", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Fichier non trouvé", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", internalMessage, err.Error())
	}
}

func requestContext(c *gin.Context) context.Context {
	return WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
}
