package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sitevault/internal/domain"
)

type MediaRepository struct {
	db *sqlx.DB
}

func NewMediaRepository(db *sqlx.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) Create(ctx context.Context, asset *domain.MediaAsset) error {
	query := `
        INSERT INTO media_assets (uuid, kind, storage_path, mime_type, size_bytes, sha256_hash, is_public, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at
    `
	err := r.db.QueryRowContext(
		ctx,
		query,
		asset.UUID,
		asset.Kind,
		asset.StoragePath,
		asset.MIMEType,
		asset.SizeBytes,
		asset.SHA256Hash,
		asset.IsPublic,
		asset.CreatedBy,
	).Scan(&asset.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create media asset: %w", err)
	}
	return nil
}

func (r *MediaRepository) GetByUUID(ctx context.Context, id uuid.UUID) (*domain.MediaAsset, error) {
	var asset domain.MediaAsset
	query := `SELECT * FROM media_assets WHERE uuid = $1`

	err := r.db.GetContext(ctx, &asset, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewError(domain.KindNotFound, "file not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get media asset: %w", err)
	}
	return &asset, nil
}
