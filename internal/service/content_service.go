package service

import (
	"context"
	"encoding/json"
	"fmt"

	"sitevault/internal/domain"
)

// Число повторов при конфликте номера версии между конкурентными писателями
const saveAttempts = 3

// Варианты макета главной страницы
const (
	LayoutClassic = "classic"
	LayoutSleek   = "sleek"
)

// ContentStore — персистентный журнал версий контента
type ContentStore interface {
	GetLatest(ctx context.Context) (*domain.ContentVersion, error)
	GetByVersion(ctx context.Context, version int) (*domain.ContentVersion, error)
	Insert(ctx context.Context, cv *domain.ContentVersion) error
	ListVersions(ctx context.Context) ([]domain.VersionInfo, error)
}

// ContentService ведет append-only журнал полных снимков документа контента.
// Строки версий неизменяемы, текущий контент — строка с максимальной версией.
type ContentService struct {
	repo ContentStore
}

func NewContentService(repo ContentStore) *ContentService {
	return &ContentService{repo: repo}
}

// DefaultContent возвращает документ, которым засевается пустой журнал
func DefaultContent() json.RawMessage {
	return json.RawMessage(defaultContentJSON)
}

const defaultContentJSON = `{
  "hero": {
    "headline": "Helping clients build modern solutions.",
    "subheadline": "Short value prop about what the business actually does.",
    "primaryCtaLabel": "Get in touch",
    "primaryCtaHref": "/contact"
  },
  "about": {
    "title": "About Us",
    "body": [
      "Tell the story of the business, mission, vision, and what makes them different.",
      "Add timeline, credentials, certifications, or leadership bios here later."
    ]
  },
  "services": [
    {"title": "Service One", "description": "Short description of service one."},
    {"title": "Service Two", "description": "Short description of service two."},
    {"title": "Service Three", "description": "Short description of service three."}
  ],
  "careers": {
    "intro": "We hire smart, self-directed people who thrive in modern cloud, security, and consulting environments.",
    "positions": [
      {
        "title": "Software Engineer",
        "summary": "Build modern cloud-native applications using DevSecOps best practices.",
        "tags": ["Cloud", "DevSecOps", "Backend", "Full-Stack"]
      },
      {
        "title": "Technical Writer",
        "summary": "Create clear, accurate documentation for security processes, cloud architectures, and technical deliverables.",
        "tags": ["Writing", "Documentation", "Security"]
      },
      {
        "title": "Business Analyst",
        "summary": "Work with clients to gather requirements, translate needs into technical documentation, and support delivery teams.",
        "tags": ["Analysis", "Consulting", "Process"]
      },
      {
        "title": "IT Security Consultant",
        "summary": "Support compliance, vulnerability assessments, and cybersecurity readiness across client systems.",
        "tags": ["Cybersecurity", "Compliance", "Consulting"]
      },
      {
        "title": "General Application",
        "summary": "If your skillset does not fit a listed role, submit a general application.",
        "tags": ["General"]
      }
    ]
  },
  "contact": {
    "intro": "Have questions or want to discuss a project? Send us a message.",
    "email": "info@example.com",
    "phone": "+1 (555) 555-5555",
    "address": "123 Business Street, City, State"
  }
}`

// LoadLatest возвращает текущий документ. Пустой журнал лениво засевается
// документом по умолчанию как версией 1, чтобы ни один другой путь не
// обращался к пустому хранилищу.
func (s *ContentService) LoadLatest(ctx context.Context) (json.RawMessage, error) {
	latest, err := s.repo.GetLatest(ctx)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		return latest.Content, nil
	}

	seed := &domain.ContentVersion{
		Version: 1,
		Content: DefaultContent(),
	}
	if err := s.repo.Insert(ctx, seed); err != nil {
		// Конкурентный писатель успел засеять — перечитываем
		if domain.KindOf(err) == domain.KindConflict {
			latest, rerr := s.repo.GetLatest(ctx)
			if rerr != nil {
				return nil, rerr
			}
			if latest != nil {
				return latest.Content, nil
			}
		}
		return nil, err
	}
	return seed.Content, nil
}

// Save добавляет полный снимок документа новой версией и возвращает ее номер.
// Частичных слияний на этом уровне нет: документ всегда заменяется целиком.
// Повтор Save после таймаута с неизвестным исходом может создать дубль версии.
func (s *ContentService) Save(ctx context.Context, doc json.RawMessage, createdBy *string) (int, error) {
	if !json.Valid(doc) {
		return 0, domain.NewError(domain.KindValidation, "content must be a valid JSON document")
	}

	var lastErr error
	for attempt := 0; attempt < saveAttempts; attempt++ {
		latest, err := s.repo.GetLatest(ctx)
		if err != nil {
			return 0, err
		}

		next := 1
		if latest != nil {
			next = latest.Version + 1
		}

		cv := &domain.ContentVersion{
			Version:   next,
			Content:   doc,
			CreatedBy: createdBy,
		}
		err = s.repo.Insert(ctx, cv)
		if err == nil {
			return next, nil
		}
		if domain.KindOf(err) != domain.KindConflict {
			return 0, err
		}
		lastErr = err
	}
	return 0, domain.WrapError(domain.KindConflict, lastErr,
		"failed to save content after %d attempts", saveAttempts)
}

// ListVersions возвращает метаданные версий по убыванию номера
func (s *ContentService) ListVersions(ctx context.Context) ([]domain.VersionInfo, error) {
	return s.repo.ListVersions(ctx)
}

// Rollback копирует контент указанной версии в новую верхнюю версию.
// История не переписывается, только наращивается.
func (s *ContentService) Rollback(ctx context.Context, targetVersion int, createdBy *string) (int, error) {
	target, err := s.repo.GetByVersion(ctx, targetVersion)
	if err != nil {
		return 0, err
	}
	return s.Save(ctx, target.Content, createdBy)
}

// HomeLayout читает hero.layoutVariant из текущего документа
func (s *ContentService) HomeLayout(ctx context.Context) (string, error) {
	doc, err := s.LoadLatest(ctx)
	if err != nil {
		return "", err
	}

	var content map[string]any
	if err := json.Unmarshal(doc, &content); err != nil {
		return "", fmt.Errorf("failed to decode content document: %w", err)
	}

	if hero, ok := content["hero"].(map[string]any); ok {
		if variant, ok := hero["layoutVariant"].(string); ok && variant != "" {
			return variant, nil
		}
	}
	return LayoutClassic, nil
}

// SetHomeLayout меняет hero.layoutVariant и сохраняет документ целиком
// новой версией: хранилище не знает о частичных обновлениях.
func (s *ContentService) SetHomeLayout(ctx context.Context, variant string, createdBy *string) (int, error) {
	if variant != LayoutClassic && variant != LayoutSleek {
		return 0, domain.NewError(domain.KindValidation,
			"layoutVariant must be %q or %q", LayoutClassic, LayoutSleek)
	}

	doc, err := s.LoadLatest(ctx)
	if err != nil {
		return 0, err
	}

	var content map[string]any
	if err := json.Unmarshal(doc, &content); err != nil {
		return 0, fmt.Errorf("failed to decode content document: %w", err)
	}

	hero, ok := content["hero"].(map[string]any)
	if !ok {
		hero = map[string]any{}
		content["hero"] = hero
	}
	hero["layoutVariant"] = variant

	merged, err := json.Marshal(content)
	if err != nil {
		return 0, fmt.Errorf("failed to encode content document: %w", err)
	}

	return s.Save(ctx, merged, createdBy)
}
