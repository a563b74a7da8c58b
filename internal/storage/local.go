// Package storage реализует локальное файловое хранилище с потоковым
// вычислением SHA-256 при записи и проверкой целостности при чтении
package storage

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"sitevault/internal/domain"
)

// Размер чанка для потоковой записи и проверки хэша
const chunkSize = 1 << 20 // 1 MiB

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// StoredBlob — результат сохранения файла
type StoredBlob struct {
	StoragePath string
	PublicURL   string
	SizeBytes   int64
	SHA256Hex   string
}

type LocalStore struct {
	publicRoot    string
	privateRoot   string
	publicBaseURL string
}

func NewLocalStore(publicRoot, privateRoot, publicBaseURL string) *LocalStore {
	return &LocalStore{
		publicRoot:    publicRoot,
		privateRoot:   privateRoot,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// safeExt приводит расширение к нижнему регистру, неизвестные заменяет на .bin
func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return ".bin"
	}
	return ext
}

// randomToken генерирует имя файла: 16 байт энтропии в hex
func randomToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate file token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func (s *LocalStore) root(visibility domain.Visibility) string {
	if visibility == domain.VisibilityPublic {
		return s.publicRoot
	}
	return s.privateRoot
}

// AbsolutePath восстанавливает абсолютный путь файла по его storage path
func (s *LocalStore) AbsolutePath(visibility domain.Visibility, storagePath string) string {
	return filepath.Join(s.root(visibility), filepath.FromSlash(storagePath))
}

// Store сохраняет поток в каталог видимости, считая размер и SHA-256 на лету.
// Файл целиком в память не загружается.
func (s *LocalStore) Store(r io.Reader, visibility domain.Visibility, kind, originalName string) (*StoredBlob, error) {
	token, err := randomToken()
	if err != nil {
		return nil, domain.WrapError(domain.KindIO, err, "failed to name blob")
	}
	filename := token + safeExt(originalName)

	baseDir := filepath.Join(s.root(visibility), kind)
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, domain.WrapError(domain.KindIO, err, "failed to create storage directory %s", baseDir)
	}

	dest := filepath.Join(baseDir, filename)
	out, err := os.Create(dest)
	if err != nil {
		return nil, domain.WrapError(domain.KindIO, err, "failed to create blob file")
	}

	hasher := sha256.New()
	buf := make([]byte, chunkSize)
	written, err := io.CopyBuffer(io.MultiWriter(out, hasher), r, buf)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		return nil, domain.WrapError(domain.KindIO, err, "failed to write blob")
	}

	storagePath := kind + "/" + filename

	publicURL := ""
	if visibility == domain.VisibilityPublic {
		publicURL = s.publicBaseURL + "/" + storagePath
	}

	return &StoredBlob{
		StoragePath: storagePath,
		PublicURL:   publicURL,
		SizeBytes:   written,
		SHA256Hex:   hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

// VerifyDigest пересчитывает SHA-256 файла на диске и сравнивает с ожидаемым.
// Несовпадение означает порчу или подмену данных, не временный сбой.
func (s *LocalStore) VerifyDigest(absPath, wantHex string) error {
	f, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewError(domain.KindNotFound, "file missing on disk")
		}
		return domain.WrapError(domain.KindIO, err, "failed to open blob for verification")
	}
	defer f.Close()

	hasher := sha256.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(hasher, f, buf); err != nil {
		return domain.WrapError(domain.KindIO, err, "failed to read blob for verification")
	}

	got := hex.EncodeToString(hasher.Sum(nil))
	if got != wantHex {
		return domain.NewError(domain.KindIntegrity, "file hash mismatch: stored file may be corrupted")
	}
	return nil
}
