package service

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"

	"sitevault/internal/domain"
	"sitevault/internal/storage"
)

const helloSHA256 = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

func setupMediaService(t *testing.T) (*MediaService, *fakeAssetStore, *fakeAuditStore, *storage.LocalStore) {
	t.Helper()
	assets := newFakeAssetStore()
	audits := &fakeAuditStore{}
	blobs := storage.NewLocalStore(t.TempDir(), t.TempDir(), "/media")
	return NewMediaService(assets, audits, blobs), assets, audits, blobs
}

func storePrivateHello(t *testing.T, svc *MediaService, blobs *storage.LocalStore) *domain.MediaAsset {
	t.Helper()
	blob, err := blobs.Store(strings.NewReader("hello"), domain.VisibilityPrivate, "resumes", "r.pdf")
	if err != nil {
		t.Fatalf("Failed to store blob: %v", err)
	}

	asset := &domain.MediaAsset{
		UUID:        uuid.New(),
		Kind:        "resume",
		StoragePath: blob.StoragePath,
		MIMEType:    "application/pdf",
		SizeBytes:   blob.SizeBytes,
		SHA256Hash:  blob.SHA256Hex,
		IsPublic:    false,
	}
	if err := svc.Register(context.Background(), asset); err != nil {
		t.Fatalf("Failed to register asset: %v", err)
	}
	return asset
}

func TestFetchPrivateVerified(t *testing.T) {
	svc, _, audits, blobs := setupMediaService(t)
	asset := storePrivateHello(t, svc, blobs)

	if asset.SHA256Hash != helloSHA256 {
		t.Errorf("Expected digest %s, got %s", helloSHA256, asset.SHA256Hash)
	}
	if asset.SizeBytes != 5 {
		t.Errorf("Expected size 5, got %d", asset.SizeBytes)
	}

	pf, err := svc.FetchPrivateVerified(context.Background(), asset.UUID, "admin_api:test...")
	if err != nil {
		t.Fatalf("Failed to fetch private file: %v", err)
	}

	data, err := os.ReadFile(pf.AbsolutePath)
	if err != nil {
		t.Fatalf("Failed to read fetched file: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("Expected bytes %q, got %q", "hello", string(data))
	}
	if pf.MIMEType != "application/pdf" {
		t.Errorf("Expected mime application/pdf, got %s", pf.MIMEType)
	}
	if !strings.HasPrefix(pf.Filename, "resume-") || !strings.HasSuffix(pf.Filename, ".pdf") {
		t.Errorf("Unexpected suggested filename %s", pf.Filename)
	}

	if len(audits.audits) != 1 {
		t.Fatalf("Expected 1 audit row, got %d", len(audits.audits))
	}
	if audits.audits[0].AssetUUID != asset.UUID {
		t.Errorf("Audit references wrong asset: %s", audits.audits[0].AssetUUID)
	}
	if audits.audits[0].DownloadedBy == nil || *audits.audits[0].DownloadedBy != "admin_api:test..." {
		t.Error("Expected audit to record the caller identity")
	}
}

func TestFetchPrivateVerifiedTampered(t *testing.T) {
	svc, _, audits, blobs := setupMediaService(t)
	asset := storePrivateHello(t, svc, blobs)

	absPath := blobs.AbsolutePath(domain.VisibilityPrivate, asset.StoragePath)
	if err := os.WriteFile(absPath, []byte("evil"), 0o644); err != nil {
		t.Fatalf("Failed to tamper with file: %v", err)
	}

	_, err := svc.FetchPrivateVerified(context.Background(), asset.UUID, "admin_api:test...")
	if domain.KindOf(err) != domain.KindIntegrity {
		t.Errorf("Expected integrity error, got %v", err)
	}
	if len(audits.audits) != 0 {
		t.Errorf("Expected no audit row for failed fetch, got %d", len(audits.audits))
	}
}

func TestFetchPrivateVerifiedPublicAsset(t *testing.T) {
	svc, _, _, blobs := setupMediaService(t)

	blob, err := blobs.Store(strings.NewReader("hello"), domain.VisibilityPublic, "hero_image", "h.png")
	if err != nil {
		t.Fatalf("Failed to store blob: %v", err)
	}
	asset := &domain.MediaAsset{
		UUID:        uuid.New(),
		Kind:        "hero_image",
		StoragePath: blob.StoragePath,
		MIMEType:    "image/png",
		SizeBytes:   blob.SizeBytes,
		SHA256Hash:  blob.SHA256Hex,
		IsPublic:    true,
	}
	if err := svc.Register(context.Background(), asset); err != nil {
		t.Fatalf("Failed to register asset: %v", err)
	}

	// Публичный файл через приватный путь не отдается даже с верным хэшем
	_, err = svc.FetchPrivateVerified(context.Background(), asset.UUID, "admin_api:test...")
	if domain.KindOf(err) != domain.KindAccessDenied {
		t.Errorf("Expected access_denied error, got %v", err)
	}
}

func TestFetchPrivateVerifiedUnknownAsset(t *testing.T) {
	svc, _, _, _ := setupMediaService(t)

	_, err := svc.FetchPrivateVerified(context.Background(), uuid.New(), "admin_api:test...")
	if domain.KindOf(err) != domain.KindNotFound {
		t.Errorf("Expected not_found error, got %v", err)
	}
}

func TestFetchPrivateVerifiedMissingOnDisk(t *testing.T) {
	svc, _, _, blobs := setupMediaService(t)
	asset := storePrivateHello(t, svc, blobs)

	if err := os.Remove(blobs.AbsolutePath(domain.VisibilityPrivate, asset.StoragePath)); err != nil {
		t.Fatalf("Failed to remove file: %v", err)
	}

	_, err := svc.FetchPrivateVerified(context.Background(), asset.UUID, "admin_api:test...")
	if domain.KindOf(err) != domain.KindNotFound {
		t.Errorf("Expected not_found error for missing file, got %v", err)
	}
}

func TestRegisterEmptyStoragePath(t *testing.T) {
	svc, assets, _, _ := setupMediaService(t)

	err := svc.Register(context.Background(), &domain.MediaAsset{UUID: uuid.New(), Kind: "resume"})
	if domain.KindOf(err) != domain.KindValidation {
		t.Errorf("Expected validation error, got %v", err)
	}
	if len(assets.assets) != 0 {
		t.Errorf("Expected no assets registered, got %d", len(assets.assets))
	}
}

func TestUploadPublicRejectsBadMIME(t *testing.T) {
	svc, assets, _, _ := setupMediaService(t)

	_, _, err := svc.UploadPublic(context.Background(), strings.NewReader("x"), "x.txt", "text/plain", "hero_image", "admin")
	if domain.KindOf(err) != domain.KindValidation {
		t.Errorf("Expected validation error, got %v", err)
	}
	if len(assets.assets) != 0 {
		t.Errorf("Expected no assets registered, got %d", len(assets.assets))
	}
}

func TestUploadPublic(t *testing.T) {
	svc, _, _, _ := setupMediaService(t)

	asset, publicURL, err := svc.UploadPublic(context.Background(), strings.NewReader("imgdata"), "banner.png", "image/png", "hero_image", "admin")
	if err != nil {
		t.Fatalf("Failed to upload public media: %v", err)
	}
	if !asset.IsPublic {
		t.Error("Expected asset to be public")
	}
	if publicURL == "" {
		t.Error("Expected non-empty public URL")
	}
	if asset.CreatedBy == nil || *asset.CreatedBy != "admin" {
		t.Error("Expected created_by to record the uploader")
	}
}
