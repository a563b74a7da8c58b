package domain

import (
	"errors"
	"fmt"
)

// ErrorKind — машиночитаемый тип ошибки, по нему хендлеры выбирают HTTP-статус
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindUnauthorized ErrorKind = "unauthorized"
	KindNotFound     ErrorKind = "not_found"
	KindAccessDenied ErrorKind = "access_denied"
	KindConflict     ErrorKind = "conflict"
	KindIntegrity    ErrorKind = "integrity"
	KindIO           ErrorKind = "io"
	KindInternal     ErrorKind = "internal"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError создает ошибку с заданным типом
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError оборачивает существующую ошибку, сохраняя цепочку для errors.Is/As
func WrapError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf возвращает тип ошибки, KindInternal для неклассифицированных
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
