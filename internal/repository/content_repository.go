package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"sitevault/internal/domain"
)

type ContentRepository struct {
	db *sqlx.DB
}

func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// GetLatest возвращает строку с максимальным номером версии, nil если версий нет
func (r *ContentRepository) GetLatest(ctx context.Context) (*domain.ContentVersion, error) {
	var cv domain.ContentVersion
	query := `
        SELECT id, version, content_json, created_at, created_by
        FROM content_versions
        ORDER BY version DESC
        LIMIT 1
    `
	err := r.db.GetContext(ctx, &cv, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest content version: %w", err)
	}
	return &cv, nil
}

// GetByVersion возвращает конкретную версию
func (r *ContentRepository) GetByVersion(ctx context.Context, version int) (*domain.ContentVersion, error) {
	var cv domain.ContentVersion
	query := `
        SELECT id, version, content_json, created_at, created_by
        FROM content_versions
        WHERE version = $1
    `
	err := r.db.GetContext(ctx, &cv, query, version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewError(domain.KindNotFound, "version %d not found", version)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content version %d: %w", version, err)
	}
	return &cv, nil
}

// Insert добавляет новую версию. Колонка version уникальна: при гонке двух
// писателей проигравший получает ошибку с типом conflict и может повторить
// попытку, перечитав максимальную версию.
func (r *ContentRepository) Insert(ctx context.Context, cv *domain.ContentVersion) error {
	query := `
        INSERT INTO content_versions (version, content_json, created_by)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	err := r.db.QueryRowContext(ctx, query, cv.Version, []byte(cv.Content), cv.CreatedBy).
		Scan(&cv.ID, &cv.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.WrapError(domain.KindConflict, err, "version %d already exists", cv.Version)
		}
		return fmt.Errorf("failed to insert content version: %w", err)
	}
	return nil
}

// ListVersions возвращает метаданные всех версий по убыванию номера
func (r *ContentRepository) ListVersions(ctx context.Context) ([]domain.VersionInfo, error) {
	var versions []domain.VersionInfo
	query := `
        SELECT id, version, created_at
        FROM content_versions
        ORDER BY version DESC
    `
	err := r.db.SelectContext(ctx, &versions, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list content versions: %w", err)
	}
	return versions, nil
}
