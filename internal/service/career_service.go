package service

import (
	"context"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"sitevault/internal/domain"
	"sitevault/internal/storage"
)

// MIME-типы, разрешенные для резюме
var allowedResumeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

var validate = validator.New()

// ApplicationStore — хранилище откликов на вакансии
type ApplicationStore interface {
	Create(ctx context.Context, app *domain.CareerApplication) error
	List(ctx context.Context, role string) ([]domain.CareerApplication, error)
}

type CareerService struct {
	apps  ApplicationStore
	media *MediaService
	blobs *storage.LocalStore
}

func NewCareerService(apps ApplicationStore, media *MediaService, blobs *storage.LocalStore) *CareerService {
	return &CareerService{
		apps:  apps,
		media: media,
		blobs: blobs,
	}
}

// Apply принимает отклик: резюме сохраняется приватно, регистрируется как
// файл вида "resume" и привязывается к созданной записи отклика. Валидация
// выполняется до записи на диск: при отказе не остается ни файла, ни строк.
func (s *CareerService) Apply(ctx context.Context, form *domain.CareerApplicationForm, resume io.Reader, resumeName, resumeMIME string) (*domain.CareerApplication, error) {
	if err := validate.Struct(form); err != nil {
		return nil, domain.WrapError(domain.KindValidation, err, "invalid application form")
	}
	if !allowedResumeTypes[resumeMIME] {
		return nil, domain.NewError(domain.KindValidation,
			"unsupported file type. Allowed: PDF, DOC, DOCX")
	}

	blob, err := s.blobs.Store(resume, domain.VisibilityPrivate, "resumes", resumeName)
	if err != nil {
		return nil, err
	}

	createdBy := "careers_form:" + form.Email
	asset := &domain.MediaAsset{
		UUID:        uuid.New(),
		Kind:        "resume",
		StoragePath: blob.StoragePath,
		MIMEType:    resumeMIME,
		SizeBytes:   blob.SizeBytes,
		SHA256Hash:  blob.SHA256Hex,
		IsPublic:    false,
		CreatedBy:   &createdBy,
	}
	if err := s.media.Register(ctx, asset); err != nil {
		return nil, err
	}

	app := &domain.CareerApplication{
		FullName:   form.FullName,
		Email:      form.Email,
		Position:   form.Position,
		ResumeUUID: asset.UUID,
	}
	if form.Phone != "" {
		app.Phone = &form.Phone
	}
	if form.Message != "" {
		app.Message = &form.Message
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// List возвращает отклики, свежие первыми, с опциональным фильтром по роли
func (s *CareerService) List(ctx context.Context, role string) ([]domain.CareerApplication, error) {
	return s.apps.List(ctx, role)
}
