package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"sitevault/internal/domain"
)

// fakeContentStore — журнал версий в памяти с той же семантикой
// уникальности номера версии, что и у таблицы content_versions
type fakeContentStore struct {
	rows            []domain.ContentVersion
	nextID          int64
	injectConflicts int
}

func (f *fakeContentStore) GetLatest(_ context.Context) (*domain.ContentVersion, error) {
	if len(f.rows) == 0 {
		return nil, nil
	}
	latest := f.rows[0]
	for _, row := range f.rows[1:] {
		if row.Version > latest.Version {
			latest = row
		}
	}
	return &latest, nil
}

func (f *fakeContentStore) GetByVersion(_ context.Context, version int) (*domain.ContentVersion, error) {
	for _, row := range f.rows {
		if row.Version == version {
			cp := row
			return &cp, nil
		}
	}
	return nil, domain.NewError(domain.KindNotFound, "version %d not found", version)
}

func (f *fakeContentStore) Insert(_ context.Context, cv *domain.ContentVersion) error {
	if f.injectConflicts > 0 {
		f.injectConflicts--
		return domain.NewError(domain.KindConflict, "version %d already exists", cv.Version)
	}
	for _, row := range f.rows {
		if row.Version == cv.Version {
			return domain.NewError(domain.KindConflict, "version %d already exists", cv.Version)
		}
	}
	f.nextID++
	cv.ID = f.nextID
	cv.CreatedAt = time.Now()
	f.rows = append(f.rows, *cv)
	return nil
}

func (f *fakeContentStore) ListVersions(_ context.Context) ([]domain.VersionInfo, error) {
	infos := make([]domain.VersionInfo, 0, len(f.rows))
	for _, row := range f.rows {
		infos = append(infos, domain.VersionInfo{ID: row.ID, Version: row.Version, CreatedAt: row.CreatedAt})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Version > infos[j].Version })
	return infos, nil
}

type fakeAssetStore struct {
	assets map[uuid.UUID]domain.MediaAsset
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{assets: make(map[uuid.UUID]domain.MediaAsset)}
}

func (f *fakeAssetStore) Create(_ context.Context, asset *domain.MediaAsset) error {
	asset.CreatedAt = time.Now()
	f.assets[asset.UUID] = *asset
	return nil
}

func (f *fakeAssetStore) GetByUUID(_ context.Context, id uuid.UUID) (*domain.MediaAsset, error) {
	asset, ok := f.assets[id]
	if !ok {
		return nil, domain.NewError(domain.KindNotFound, "file not found")
	}
	cp := asset
	return &cp, nil
}

type fakeAuditStore struct {
	audits []domain.DownloadAudit
}

func (f *fakeAuditStore) Create(_ context.Context, audit *domain.DownloadAudit) error {
	audit.ID = int64(len(f.audits) + 1)
	audit.DownloadedAt = time.Now()
	f.audits = append(f.audits, *audit)
	return nil
}

// fakeApplicationStore повторяет ILIKE-фильтрацию и сортировку настоящего
// репозитория
type fakeApplicationStore struct {
	apps []domain.CareerApplication
}

func (f *fakeApplicationStore) Create(_ context.Context, app *domain.CareerApplication) error {
	app.ID = int64(len(f.apps) + 1)
	app.CreatedAt = time.Now()
	f.apps = append(f.apps, *app)
	return nil
}

func (f *fakeApplicationStore) List(_ context.Context, role string) ([]domain.CareerApplication, error) {
	var out []domain.CareerApplication
	for _, app := range f.apps {
		if role == "" || strings.Contains(strings.ToLower(app.Position), strings.ToLower(role)) {
			out = append(out, app)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
