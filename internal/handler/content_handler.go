package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sitevault/internal/domain"
	"sitevault/internal/metrics"
	"sitevault/internal/service"
)

type ContentHandler struct {
	contentService *service.ContentService
	metrics        *metrics.Metrics
}

func NewContentHandler(contentService *service.ContentService, m *metrics.Metrics) *ContentHandler {
	return &ContentHandler{contentService: contentService, metrics: m}
}

// GetContent отдает текущий документ контента, публичный эндпоинт
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	doc, err := h.contentService.LoadLatest(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

// UpdateContent заменяет документ целиком, создавая новую версию
func (h *ContentHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, domain.WrapError(domain.KindValidation, err, "failed to read request body"))
		return
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		writeError(w, r, domain.WrapError(domain.KindValidation, err, "content must be a JSON object"))
		return
	}

	createdBy := "admin"
	version, err := h.contentService.Save(r.Context(), body, &createdBy)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ContentSavesTotal.Inc()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"detail":  fmt.Sprintf("Content updated. New version %d", version),
		"version": version,
	})
}

// ListVersions отдает метаданные версий, новые первыми
func (h *ContentHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := h.contentService.ListVersions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if versions == nil {
		versions = []domain.VersionInfo{}
	}
	writeJSON(w, http.StatusOK, versions)
}

// Rollback восстанавливает контент указанной версии как новую версию
func (h *ContentHandler) Rollback(w http.ResponseWriter, r *http.Request) {
	target, err := strconv.Atoi(chi.URLParam(r, "version"))
	if err != nil {
		writeError(w, r, domain.NewError(domain.KindValidation, "version must be an integer"))
		return
	}

	createdBy := "admin"
	newVersion, err := h.contentService.Rollback(r.Context(), target, &createdBy)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ContentRollbacksTotal.Inc()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"detail":  fmt.Sprintf("Rolled back to version %d. New version %d created", target, newVersion),
		"version": newVersion,
	})
}

type homeLayoutResponse struct {
	LayoutVariant string `json:"layoutVariant"`
}

type homeLayoutRequest struct {
	LayoutVariant string `json:"layoutVariant"`
}

// GetHomeLayout отдает активный вариант макета главной страницы
func (h *ContentHandler) GetHomeLayout(w http.ResponseWriter, r *http.Request) {
	variant, err := h.contentService.HomeLayout(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, homeLayoutResponse{LayoutVariant: variant})
}

// UpdateHomeLayout меняет вариант макета. Реализовано как
// read-modify-write над полным документом контента.
func (h *ContentHandler) UpdateHomeLayout(w http.ResponseWriter, r *http.Request) {
	var req homeLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.WrapError(domain.KindValidation, err, "invalid request body"))
		return
	}

	createdBy := "admin"
	if _, err := h.contentService.SetHomeLayout(r.Context(), req.LayoutVariant, &createdBy); err != nil {
		writeError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ContentSavesTotal.Inc()
	}
	writeJSON(w, http.StatusOK, homeLayoutResponse{LayoutVariant: req.LayoutVariant})
}
