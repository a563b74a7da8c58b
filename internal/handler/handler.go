package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"sitevault/internal/domain"
)

type errorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// statusForKind отображает тип ошибки в HTTP-статус. AccessDenied — это 400,
// а не 403: публичный файл запрошен не тем путем, запрет не связан с правами.
func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation, domain.KindAccessDenied:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError отдает ошибку со стабильным машиночитаемым типом.
// Необработанные ошибки наружу не протекают, только в лог.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	status := statusForKind(kind)

	message := "internal server error"
	var de *domain.Error
	if errors.As(err, &de) {
		message = de.Message
	}

	evt := log.Warn()
	if status >= http.StatusInternalServerError {
		evt = log.Error()
	}
	evt.Err(err).
		Str("kind", string(kind)).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("Request failed")

	writeJSON(w, status, errorResponse{Kind: string(kind), Error: message})
}
