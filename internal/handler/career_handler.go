package handler

import (
	"net/http"

	"sitevault/internal/domain"
	"sitevault/internal/metrics"
	"sitevault/internal/service"
)

type CareerHandler struct {
	careerService *service.CareerService
	metrics       *metrics.Metrics
}

func NewCareerHandler(careerService *service.CareerService, m *metrics.Metrics) *CareerHandler {
	return &CareerHandler{careerService: careerService, metrics: m}
}

// Apply принимает отклик на вакансию с резюме, публичный эндпоинт
func (h *CareerHandler) Apply(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, r, domain.WrapError(domain.KindValidation, err, "failed to parse form"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	resume, header, err := r.FormFile("resume")
	if err != nil {
		writeError(w, r, domain.NewError(domain.KindValidation, "resume file is required"))
		return
	}
	defer resume.Close()

	form := &domain.CareerApplicationForm{
		FullName: r.FormValue("full_name"),
		Email:    r.FormValue("email"),
		Phone:    r.FormValue("phone"),
		Position: r.FormValue("position"),
		Message:  r.FormValue("message"),
	}

	if _, err := h.careerService.Apply(
		r.Context(),
		form,
		resume,
		header.Filename,
		header.Header.Get("Content-Type"),
	); err != nil {
		writeError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.BlobWritesTotal.Inc()
	}
	writeJSON(w, http.StatusOK, detailResponse{Detail: "Application received successfully."})
}

// ListApplications отдает отклики администратору, опционально фильтруя
// по подстроке роли в position
func (h *CareerHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.careerService.List(r.Context(), r.URL.Query().Get("role"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if apps == nil {
		apps = []domain.CareerApplication{}
	}
	writeJSON(w, http.StatusOK, apps)
}
