package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"sitevault/internal/auth"
	"sitevault/internal/domain"
	"sitevault/internal/metrics"
	"sitevault/internal/service"
)

const maxUploadMemory = 100 << 20 // 100 MiB

type MediaHandler struct {
	mediaService *service.MediaService
	gate         *auth.Gate
	metrics      *metrics.Metrics
}

func NewMediaHandler(mediaService *service.MediaService, gate *auth.Gate, m *metrics.Metrics) *MediaHandler {
	return &MediaHandler{mediaService: mediaService, gate: gate, metrics: m}
}

// UploadPublic принимает multipart-загрузку публичного файла
func (h *MediaHandler) UploadPublic(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, r, domain.WrapError(domain.KindValidation, err, "failed to parse form"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, domain.NewError(domain.KindValidation, "file is required"))
		return
	}
	defer file.Close()

	kind := r.FormValue("kind")
	if kind == "" {
		kind = "hero_image"
	}

	asset, publicURL, err := h.mediaService.UploadPublic(
		r.Context(),
		file,
		header.Filename,
		header.Header.Get("Content-Type"),
		kind,
		"admin",
	)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.BlobWritesTotal.Inc()
		h.metrics.BlobBytesWrittenTotal.Add(float64(asset.SizeBytes))
	}

	writeJSON(w, http.StatusOK, domain.MediaUploadResponse{
		UUID:        asset.UUID,
		Kind:        asset.Kind,
		URL:         publicURL,
		StoragePath: asset.StoragePath,
	})
}

// DownloadPrivateFile отдает приватный файл после проверки целостности
func (h *MediaHandler) DownloadPrivateFile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, domain.NewError(domain.KindValidation, "invalid file id"))
		return
	}

	requestedBy := h.gate.Identity(r.Header.Get(auth.HeaderAPIKey))
	pf, err := h.mediaService.FetchPrivateVerified(r.Context(), id, requestedBy)
	if err != nil {
		if h.metrics != nil && domain.KindOf(err) == domain.KindIntegrity {
			h.metrics.IntegrityFailuresTotal.Inc()
		}
		writeError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.PrivateDownloadsTotal.Inc()
	}

	w.Header().Set("Content-Type", pf.MIMEType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+pf.Filename+`"`)
	http.ServeFile(w, r, pf.AbsolutePath)
}
