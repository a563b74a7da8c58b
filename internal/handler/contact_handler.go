package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"sitevault/internal/domain"
)

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=256"`
	Email   string `json:"email" validate:"required,email,max=256"`
	Subject string `json:"subject" validate:"required,max=512"`
	Message string `json:"message" validate:"required,max=4000"`
}

type ContactHandler struct {
	validate *validator.Validate
}

func NewContactHandler() *ContactHandler {
	return &ContactHandler{validate: validator.New()}
}

// Submit принимает сообщение контактной формы. Хранилища для них нет:
// подключение почты или CRM остается за внешней интеграцией.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.WrapError(domain.KindValidation, err, "invalid request body"))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, r, domain.WrapError(domain.KindValidation, err, "invalid contact form"))
		return
	}

	log.Info().
		Str("name", req.Name).
		Str("email", req.Email).
		Str("subject", req.Subject).
		Msg("New contact submission")

	writeJSON(w, http.StatusOK, detailResponse{Detail: "Contact form submitted successfully."})
}
