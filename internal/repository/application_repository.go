package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"sitevault/internal/domain"
)

type ApplicationRepository struct {
	db *sqlx.DB
}

func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.CareerApplication) error {
	query := `
        INSERT INTO career_applications (full_name, email, phone, position, message, resume_uuid)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at
    `
	err := r.db.QueryRowContext(
		ctx,
		query,
		app.FullName,
		app.Email,
		app.Phone,
		app.Position,
		app.Message,
		app.ResumeUUID,
	).Scan(&app.ID, &app.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create career application: %w", err)
	}
	return nil
}

// List возвращает отклики, свежие первыми. Непустой role фильтрует по
// подстроке в position без учета регистра.
func (r *ApplicationRepository) List(ctx context.Context, role string) ([]domain.CareerApplication, error) {
	var apps []domain.CareerApplication

	if role != "" {
		query := `
            SELECT * FROM career_applications
            WHERE position ILIKE '%' || $1 || '%'
            ORDER BY created_at DESC
        `
		if err := r.db.SelectContext(ctx, &apps, query, role); err != nil {
			return nil, fmt.Errorf("failed to list career applications: %w", err)
		}
		return apps, nil
	}

	query := `SELECT * FROM career_applications ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &apps, query); err != nil {
		return nil, fmt.Errorf("failed to list career applications: %w", err)
	}
	return apps, nil
}
