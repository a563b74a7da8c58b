package domain

import (
	"time"

	"github.com/google/uuid"
)

// DownloadAudit — запись о скачивании приватного файла, только добавление
type DownloadAudit struct {
	ID           int64     `json:"id" db:"id"`
	AssetUUID    uuid.UUID `json:"asset_uuid" db:"asset_uuid"`
	DownloadedAt time.Time `json:"downloaded_at" db:"downloaded_at"`
	DownloadedBy *string   `json:"downloaded_by,omitempty" db:"downloaded_by"`
}
