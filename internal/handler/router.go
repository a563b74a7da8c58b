package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sitevault/internal/auth"
	"sitevault/internal/config"
	"sitevault/internal/metrics"
)

// NewRouter собирает HTTP-маршруты. Мутирующие эндпоинты и чтение приватных
// данных закрыты админским ключом, остальное публично.
func NewRouter(
	cfg *config.Config,
	gate *auth.Gate,
	m *metrics.Metrics,
	contentHandler *ContentHandler,
	mediaHandler *MediaHandler,
	careerHandler *CareerHandler,
	contactHandler *ContactHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Minute))
	r.Use(RequestLogger(m))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.FrontendOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", auth.HeaderAPIKey},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	// Публичные файлы (hero-изображения и прочее) отдаются статикой
	r.Handle(cfg.Media.PublicBaseURL+"/*",
		http.StripPrefix(cfg.Media.PublicBaseURL+"/",
			http.FileServer(http.Dir(cfg.Media.PublicRoot))))

	r.Route("/api", func(r chi.Router) {
		r.Get("/content", contentHandler.GetContent)
		r.Get("/content/versions", contentHandler.ListVersions)
		r.Post("/contact", contactHandler.Submit)
		r.Post("/careers/apply", careerHandler.Apply)

		r.Group(func(r chi.Router) {
			r.Use(gate.Middleware)

			r.Put("/content", contentHandler.UpdateContent)
			r.Post("/content/rollback/{version}", contentHandler.Rollback)
			r.Get("/admin/home-layout", contentHandler.GetHomeLayout)
			r.Put("/admin/home-layout", contentHandler.UpdateHomeLayout)
			r.Get("/admin/applications", careerHandler.ListApplications)
			r.Post("/media/upload-public", mediaHandler.UploadPublic)
			r.Get("/admin/files/{id}", mediaHandler.DownloadPrivateFile)
		})
	})

	return r
}
