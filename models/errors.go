package models

import (
	"fmt"

	"github.com/pkg/errors"
)

// ValidationError ошибка бизнес-правила, текст отдается клиенту как есть
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// NotFoundError запрошенная сущность не найдена
type NotFoundError struct {
	Message string
}

func (e NotFoundError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) error {
	return ValidationError{Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...interface{}) error {
	return NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsNotFoundError(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}
