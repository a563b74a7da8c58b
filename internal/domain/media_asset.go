package domain

import (
	"time"

	"github.com/google/uuid"
)

// Visibility определяет область видимости файла: публичные файлы отдаются
// по прямому URL, приватные — только через защищённый путь скачивания
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

type MediaAsset struct {
	UUID        uuid.UUID `json:"uuid" db:"uuid"`
	Kind        string    `json:"kind" db:"kind"`
	StoragePath string    `json:"storage_path" db:"storage_path"`
	MIMEType    string    `json:"mime_type" db:"mime_type"`
	SizeBytes   int64     `json:"size_bytes" db:"size_bytes"`
	SHA256Hash  string    `json:"sha256_hash" db:"sha256_hash"`
	IsPublic    bool      `json:"is_public" db:"is_public"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	CreatedBy   *string   `json:"created_by,omitempty" db:"created_by"`
}

// MediaUploadResponse представляет ответ на загрузку публичного файла
type MediaUploadResponse struct {
	UUID        uuid.UUID `json:"uuid"`
	Kind        string    `json:"kind"`
	URL         string    `json:"url,omitempty"`
	StoragePath string    `json:"storage_path"`
}
