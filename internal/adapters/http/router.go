package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/kirillkom/doctype-classifier/internal/config"
	"github.com/kirillkom/doctype-classifier/internal/core/domain"
	"github.com/kirillkom/doctype-classifier/internal/core/ports"
	"github.com/kirillkom/doctype-classifier/internal/observability/metrics"
)

const (
	serviceName              = "api"
	maxClassifyBodyBytes     = 1 << 20
	backpressureQueueTimeout = 250 * time.Millisecond
)

var loadValidator = sync.OnceValues(newRequestValidator)

type Router struct {
	cfg        config.Config
	classifier ports.DocumentClassifier
	ingestor   ports.DocumentIngestor
	docs       ports.DocumentReader
	validator  *requestValidator
	metrics    *metrics.HTTPServerMetrics
	logger     *slog.Logger
}

// NewRouter panics if the embedded OpenAPI document is invalid.
func NewRouter(
	cfg config.Config,
	classifier ports.DocumentClassifier,
	ingestor ports.DocumentIngestor,
	docs ports.DocumentReader,
) *Router {
	validator, err := loadValidator()
	if err != nil {
		panic(err)
	}
	return &Router{
		cfg:        cfg,
		classifier: classifier,
		ingestor:   ingestor,
		docs:       docs,
		validator:  validator,
		logger:     slog.Default(),
	}
}

func (rt *Router) WithMetrics(m *metrics.HTTPServerMetrics) *Router {
	rt.metrics = m
	return rt
}

func (rt *Router) WithLogger(logger *slog.Logger) *Router {
	if logger != nil {
		rt.logger = logger
	}
	return rt
}

func (rt *Router) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /v1/categories", rt.listCategories)
	api.HandleFunc("POST /v1/classify", limitBody(maxClassifyBodyBytes, rt.validator.wrap(rt.classify)))
	api.HandleFunc("POST /v1/documents", rt.uploadDocument)
	api.HandleFunc("GET /v1/documents/{id}", rt.getDocumentByID)

	var guarded http.Handler = api
	guarded = backpressureMiddleware(guarded, rt.cfg.MaxInFlight, backpressureQueueTimeout, rt.recordRejected)
	guarded = rateLimitMiddleware(guarded, rt.cfg.RateLimitRPS, rt.cfg.RateLimitBurst, rt.recordRejected)
	guarded = bearerAuthMiddleware(guarded, rt.cfg.APIKey, rt.recordRejected)

	root := http.NewServeMux()
	root.HandleFunc("GET /healthz", rt.healthz)
	if rt.metrics != nil {
		root.Handle("GET /metrics", rt.metrics.Handler())
	}
	root.Handle("/v1/", guarded)

	var handler http.Handler = root
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(rt.logger, handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) recordRejected(reason string) {
	if rt.metrics != nil {
		rt.metrics.RecordRejected(serviceName, reason)
	}
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) listCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]domain.Category{"categories": domain.Categories()})
}

type classifyRequest struct {
	FileName string `json:"file_name"`
	Content  string `json:"content"`
}

type classifyResponse struct {
	Category domain.Category `json:"category"`
}

func (rt *Router) classify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx := r.Context()
	if rt.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rt.cfg.RequestTimeout)
		defer cancel()
	}

	category, err := rt.classifier.Classify(ctx, req.FileName, req.Content)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, classifyResponse{Category: category})
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if rt.ingestor == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "document ingestion is not configured"})
		return
	}
	if rt.cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes)
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	doc, err := rt.ingestor.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) getDocumentByID(w http.ResponseWriter, r *http.Request) {
	if rt.docs == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "document storage is not configured"})
		return
	}

	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", r.PathValue("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid document id"})
		return
	}
	if _, err := uuid.Parse(id); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id must be a uuid"})
		return
	}

	doc, err := rt.docs.GetByID(r.Context(), id)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := mapError(err)
	if status >= http.StatusInternalServerError {
		rt.logger.Error("request_failed",
			"request_id", requestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
	}
	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "1")
	}
	writeJSON(w, status, map[string]string{"error": err.Error(), "code": code})
}

func limitBody(limit int64, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
