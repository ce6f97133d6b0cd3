package domain

import (
	"errors"
	"fmt"
	"strings"
)

// 业务错误哨兵，transport 层统一按 errors.Is 映射成 HTTP 状态
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrLimitExceeded      = errors.New("limit exceeded")
	ErrUnsupportedFormat  = errors.New("unsupported format")

	// ErrLastAdmin 删除/降级最后一个管理员
	ErrLastAdmin = fmt.Errorf("%w: at least one admin account must remain", ErrConflict)
)

// ValidationError lists the offending input fields by their wire names.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "invalid input"
	}
	if len(e.Fields) == 0 {
		return msg
	}
	return msg + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid 快捷构造
func Invalid(msg string, fields ...string) error {
	return &ValidationError{Message: msg, Fields: fields}
}

// ConflictError is returned when a delete is blocked by dependent rows.
type ConflictError struct {
	Entity     string
	Dependent  string
	Dependents int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s still has %d %s", e.Entity, e.Dependents, e.Dependent)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

type LimitExceededError struct {
	What  string
	Limit int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("maximum of %d %s reached", e.Limit, e.What)
}

func (e *LimitExceededError) Unwrap() error { return ErrLimitExceeded }

type UnsupportedFormatError struct {
	Format    string
	Supported []string
}

func (e *UnsupportedFormatError) Error() string {
	if len(e.Supported) == 0 {
		return fmt.Sprintf("unsupported format %q", e.Format)
	}
	return fmt.Sprintf("unsupported format %q, supported: %s", e.Format, strings.Join(e.Supported, ", "))
}

func (e *UnsupportedFormatError) Unwrap() error { return ErrUnsupportedFormat }

// NotFoundf wraps ErrNotFound with the entity name.
func NotFoundf(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}
