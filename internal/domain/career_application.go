package domain

import (
	"time"

	"github.com/google/uuid"
)

type CareerApplication struct {
	ID         int64     `json:"id" db:"id"`
	FullName   string    `json:"full_name" db:"full_name"`
	Email      string    `json:"email" db:"email"`
	Phone      *string   `json:"phone,omitempty" db:"phone"`
	Position   string    `json:"position" db:"position"`
	Message    *string   `json:"message,omitempty" db:"message"`
	ResumeUUID uuid.UUID `json:"resume_uuid" db:"resume_uuid"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// CareerApplicationForm представляет данные формы отклика на вакансию
type CareerApplicationForm struct {
	FullName string `validate:"required,max=256"`
	Email    string `validate:"required,email,max=256"`
	Phone    string `validate:"omitempty,max=64"`
	Position string `validate:"required,max=256"`
	Message  string `validate:"omitempty,max=4000"`
}
