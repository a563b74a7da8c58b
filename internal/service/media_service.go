package service

import (
	"context"
	"io"
	"path/filepath"

	"github.com/google/uuid"

	"sitevault/internal/domain"
	"sitevault/internal/storage"
)

// MIME-типы, разрешенные для публичной загрузки
var allowedPublicMediaTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/gif":       true,
	"application/pdf": true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// AssetStore — реестр записей о сохраненных файлах
type AssetStore interface {
	Create(ctx context.Context, asset *domain.MediaAsset) error
	GetByUUID(ctx context.Context, id uuid.UUID) (*domain.MediaAsset, error)
}

// AuditStore — журнал скачиваний приватных файлов
type AuditStore interface {
	Create(ctx context.Context, audit *domain.DownloadAudit) error
}

// PrivateFile — все, что нужно транспортному слою для отдачи файла клиенту
type PrivateFile struct {
	AbsolutePath string
	MIMEType     string
	Filename     string
}

type MediaService struct {
	assets AssetStore
	audits AuditStore
	blobs  *storage.LocalStore
}

func NewMediaService(assets AssetStore, audits AuditStore, blobs *storage.LocalStore) *MediaService {
	return &MediaService{
		assets: assets,
		audits: audits,
		blobs:  blobs,
	}
}

// Register создает запись о сохраненном файле. Сам файл к этому моменту
// уже должен быть записан на диск.
func (s *MediaService) Register(ctx context.Context, asset *domain.MediaAsset) error {
	if asset.StoragePath == "" {
		return domain.NewError(domain.KindValidation, "storage path must not be empty")
	}
	return s.assets.Create(ctx, asset)
}

// Resolve возвращает запись о файле по идентификатору
func (s *MediaService) Resolve(ctx context.Context, id uuid.UUID) (*domain.MediaAsset, error) {
	return s.assets.GetByUUID(ctx, id)
}

// UploadPublic сохраняет публичный файл и регистрирует его в реестре
func (s *MediaService) UploadPublic(ctx context.Context, r io.Reader, originalName, mimeType, kind, createdBy string) (*domain.MediaAsset, string, error) {
	if !allowedPublicMediaTypes[mimeType] {
		return nil, "", domain.NewError(domain.KindValidation, "unsupported file type for public media")
	}

	blob, err := s.blobs.Store(r, domain.VisibilityPublic, kind, originalName)
	if err != nil {
		return nil, "", err
	}

	asset := &domain.MediaAsset{
		UUID:        uuid.New(),
		Kind:        kind,
		StoragePath: blob.StoragePath,
		MIMEType:    mimeType,
		SizeBytes:   blob.SizeBytes,
		SHA256Hash:  blob.SHA256Hex,
		IsPublic:    true,
		CreatedBy:   &createdBy,
	}
	if err := s.Register(ctx, asset); err != nil {
		return nil, "", err
	}
	return asset, blob.PublicURL, nil
}

// FetchPrivateVerified находит приватный файл, пересчитывает его SHA-256 и
// сверяет с сохраненным до выдачи данных. Успешное скачивание фиксируется
// в журнале аудита с меткой вызывающего.
func (s *MediaService) FetchPrivateVerified(ctx context.Context, id uuid.UUID, requestedBy string) (*PrivateFile, error) {
	asset, err := s.assets.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}

	if asset.IsPublic {
		return nil, domain.NewError(domain.KindAccessDenied,
			"this is a public asset; access it via its public URL")
	}

	absPath := s.blobs.AbsolutePath(domain.VisibilityPrivate, asset.StoragePath)
	if err := s.blobs.VerifyDigest(absPath, asset.SHA256Hash); err != nil {
		return nil, err
	}

	audit := &domain.DownloadAudit{
		AssetUUID:    asset.UUID,
		DownloadedBy: &requestedBy,
	}
	if err := s.audits.Create(ctx, audit); err != nil {
		return nil, err
	}

	mimeType := asset.MIMEType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return &PrivateFile{
		AbsolutePath: absPath,
		MIMEType:     mimeType,
		Filename:     asset.Kind + "-" + asset.UUID.String() + filepath.Ext(asset.StoragePath),
	}, nil
}
