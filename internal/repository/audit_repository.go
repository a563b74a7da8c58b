package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"sitevault/internal/domain"
)

type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create добавляет запись аудита скачивания, записи никогда не изменяются
func (r *AuditRepository) Create(ctx context.Context, audit *domain.DownloadAudit) error {
	query := `
        INSERT INTO download_audits (asset_uuid, downloaded_by)
        VALUES ($1, $2)
        RETURNING id, downloaded_at
    `
	err := r.db.QueryRowContext(ctx, query, audit.AssetUUID, audit.DownloadedBy).
		Scan(&audit.ID, &audit.DownloadedAt)
	if err != nil {
		return fmt.Errorf("failed to create download audit: %w", err)
	}
	return nil
}
