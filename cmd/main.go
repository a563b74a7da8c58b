package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"sitevault/internal/auth"
	"sitevault/internal/config"
	"sitevault/internal/handler"
	"sitevault/internal/logger"
	"sitevault/internal/metrics"
	"sitevault/internal/repository"
	"sitevault/internal/service"
	"sitevault/internal/storage"
)

func connectWithRetry(cfg *config.DatabaseConfig, maxAttempts int, delay time.Duration) (*sqlx.DB, error) {
	// Сначала подключаемся к системной базе postgres, которая всегда существует
	sysCfg := *cfg
	sysCfg.Name = "postgres"
	pgDB, err := sqlx.Connect("postgres", sysCfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres database: %w", err)
	}
	defer pgDB.Close()

	// Проверяем, существует ли база данных приложения
	var exists bool
	err = pgDB.Get(&exists, "SELECT EXISTS(SELECT datname FROM pg_catalog.pg_database WHERE datname = $1)", cfg.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check database existence: %w", err)
	}

	// Если базы нет, создаем её
	if !exists {
		log.Info().Str("database", cfg.Name).Msg("Database does not exist, creating")
		_, err = pgDB.Exec("CREATE DATABASE " + pq.QuoteIdentifier(cfg.Name))
		if err != nil {
			return nil, fmt.Errorf("failed to create database: %w", err)
		}
	}

	var db *sqlx.DB
	for i := 0; i < maxAttempts; i++ {
		db, err = sqlx.Connect("postgres", cfg.GetDSN())
		if err == nil {
			return db, nil
		}

		log.Warn().Err(err).Int("attempt", i+1).Int("max", maxAttempts).Msg("Failed to connect to database")
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", maxAttempts, err)
}

func runMigrations(cfg *config.Config) error {
	databaseURL := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if dirty {
		log.Warn().Uint("version", uint(version)).Msg("Found dirty database state, forcing version")
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force version: %w", err)
		}
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func main() {
	logger.Init(logger.Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: os.Getenv("LOG_PRETTY") == "true",
	})

	appConfig, err := config.NewConfig(".app.env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	db, err := connectWithRetry(&appConfig.Database, 5, time.Second*5)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database after retries")
	}
	defer db.Close()

	if err := runMigrations(appConfig); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}

	// Каталоги медиа должны существовать до первого запроса
	for _, dir := range []string{appConfig.Media.PublicRoot, appConfig.Media.PrivateRoot} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal().Err(err).Str("dir", dir).Msg("Failed to create media root")
		}
	}

	m := metrics.NewMetrics()

	// Инициализация репозиториев
	contentRepo := repository.NewContentRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// Инициализация сервисов
	blobStore := storage.NewLocalStore(
		appConfig.Media.PublicRoot,
		appConfig.Media.PrivateRoot,
		appConfig.Media.PublicBaseURL,
	)
	contentService := service.NewContentService(contentRepo)
	mediaService := service.NewMediaService(mediaRepo, auditRepo, blobStore)
	careerService := service.NewCareerService(applicationRepo, mediaService, blobStore)

	gate := auth.NewGate(appConfig.Admin.APIKey)

	// Инициализация хендлеров
	contentHandler := handler.NewContentHandler(contentService, m)
	mediaHandler := handler.NewMediaHandler(mediaService, gate, m)
	careerHandler := handler.NewCareerHandler(careerService, m)
	contactHandler := handler.NewContactHandler()

	router := handler.NewRouter(appConfig, gate, m, contentHandler, mediaHandler, careerHandler, contactHandler)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", appConfig.Server.Port),
		Handler: router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", appConfig.Server.Port).Msg("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	<-quit
	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server forced to shutdown")
	}

	if err := db.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing database connection")
	}

	log.Info().Msg("Server exited properly")
}
