// Package auth реализует проверку административного ключа для мутирующих
// эндпоинтов. Ключ передается в заголовке X-API-Key.
package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"sitevault/internal/domain"
)

const HeaderAPIKey = "X-API-Key"

type Gate struct {
	apiKey string
}

func NewGate(apiKey string) *Gate {
	return &Gate{apiKey: apiKey}
}

// Authorize сравнивает предъявленный ключ с настроенным
func (g *Gate) Authorize(supplied string) bool {
	if supplied == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(g.apiKey)) == 1
}

// Identity возвращает усеченную метку ключа для записи в аудит
func (g *Gate) Identity(supplied string) string {
	if supplied == "" {
		return "unknown"
	}
	if len(supplied) > 4 {
		supplied = supplied[:4]
	}
	return "admin_api:" + supplied + "..."
}

// Middleware пропускает запрос дальше только с верным ключом
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.Authorize(r.Header.Get(HeaderAPIKey)) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{
				"kind":  string(domain.KindUnauthorized),
				"error": "Invalid or missing API key",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
