package handler

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"sitevault/internal/domain"
)

// In-memory хранилища с той же семантикой, что и Postgres-репозитории

type memContentStore struct {
	rows   []domain.ContentVersion
	nextID int64
}

func (m *memContentStore) GetLatest(_ context.Context) (*domain.ContentVersion, error) {
	if len(m.rows) == 0 {
		return nil, nil
	}
	best := m.rows[0]
	for _, row := range m.rows[1:] {
		if row.Version > best.Version {
			best = row
		}
	}
	return &best, nil
}

func (m *memContentStore) GetByVersion(_ context.Context, version int) (*domain.ContentVersion, error) {
	for _, row := range m.rows {
		if row.Version == version {
			cv := row
			return &cv, nil
		}
	}
	return nil, domain.NewError(domain.KindNotFound, "version %d not found", version)
}

func (m *memContentStore) Insert(_ context.Context, cv *domain.ContentVersion) error {
	for _, row := range m.rows {
		if row.Version == cv.Version {
			return domain.NewError(domain.KindConflict, "version %d already exists", cv.Version)
		}
	}
	m.nextID++
	cv.ID = m.nextID
	cv.CreatedAt = time.Now()
	m.rows = append(m.rows, *cv)
	return nil
}

func (m *memContentStore) ListVersions(_ context.Context) ([]domain.VersionInfo, error) {
	infos := make([]domain.VersionInfo, 0, len(m.rows))
	for _, row := range m.rows {
		infos = append(infos, domain.VersionInfo{ID: row.ID, Version: row.Version, CreatedAt: row.CreatedAt})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Version > infos[j].Version })
	return infos, nil
}

type memAssetStore struct {
	assets map[uuid.UUID]domain.MediaAsset
}

func newMemAssetStore() *memAssetStore {
	return &memAssetStore{assets: make(map[uuid.UUID]domain.MediaAsset)}
}

func (m *memAssetStore) Create(_ context.Context, asset *domain.MediaAsset) error {
	asset.CreatedAt = time.Now()
	m.assets[asset.UUID] = *asset
	return nil
}

func (m *memAssetStore) GetByUUID(_ context.Context, id uuid.UUID) (*domain.MediaAsset, error) {
	asset, ok := m.assets[id]
	if !ok {
		return nil, domain.NewError(domain.KindNotFound, "file not found")
	}
	return &asset, nil
}

type memAuditStore struct {
	audits []domain.DownloadAudit
}

func (m *memAuditStore) Create(_ context.Context, audit *domain.DownloadAudit) error {
	audit.ID = int64(len(m.audits) + 1)
	audit.DownloadedAt = time.Now()
	m.audits = append(m.audits, *audit)
	return nil
}

type memApplicationStore struct {
	apps []domain.CareerApplication
}

func (m *memApplicationStore) Create(_ context.Context, app *domain.CareerApplication) error {
	app.ID = int64(len(m.apps) + 1)
	app.CreatedAt = time.Now()
	m.apps = append(m.apps, *app)
	return nil
}

func (m *memApplicationStore) List(_ context.Context, role string) ([]domain.CareerApplication, error) {
	var out []domain.CareerApplication
	for _, app := range m.apps {
		if role == "" || strings.Contains(strings.ToLower(app.Position), strings.ToLower(role)) {
			out = append(out, app)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
