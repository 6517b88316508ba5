package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput — базовая ошибка формата входного документа.
// Любая из ошибок ниже удовлетворяет errors.Is(err, ErrInvalidInput).
var ErrInvalidInput = errors.New("invalid import input")

// MissingFieldError — отсутствует обязательный дочерний элемент.
type MissingFieldError struct {
	Element string
	Field   string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: в элементе <%s> отсутствует обязательный <%s>", ErrInvalidInput, e.Element, e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrInvalidInput }

// UnrecognizedTagError — неизвестное название тэга.
type UnrecognizedTagError struct {
	Tag string
}

func (e *UnrecognizedTagError) Error() string {
	return fmt.Sprintf("%s: некорректное название тэга: %s", ErrInvalidInput, e.Tag)
}

func (e *UnrecognizedTagError) Unwrap() error { return ErrInvalidInput }

// FormatError — значение поля не разбирается (дата, число).
type FormatError struct {
	Field string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: некорректное значение <%s>: %q", ErrInvalidInput, e.Field, e.Value)
}

// Unwrap отдаёт и sentinel, и исходную причину разбора.
func (e *FormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidInput}
	}
	return []error{ErrInvalidInput, e.Err}
}
