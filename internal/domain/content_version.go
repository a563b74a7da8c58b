package domain

import (
	"encoding/json"
	"time"
)

type ContentVersion struct {
	ID        int64           `json:"id" db:"id"`
	Version   int             `json:"version" db:"version"`
	Content   json.RawMessage `json:"content" db:"content_json"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	CreatedBy *string         `json:"created_by,omitempty" db:"created_by"`
}

// VersionInfo — проекция версии без тела документа, для списка версий
type VersionInfo struct {
	ID        int64     `json:"id" db:"id"`
	Version   int       `json:"version" db:"version"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
