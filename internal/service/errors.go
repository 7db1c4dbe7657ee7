package service

import (
	"errors"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"
)

// ValidationError reports missing or malformed input. Maps to 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError reports an absent entity, including entities owned by
// somebody else. Maps to 404 so ownership probing leaks nothing.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

// ConflictError reports that a task already has a running session.
// Existing carries the running session so the caller can recover
// without a second round trip. Maps to 400.
type ConflictError struct {
	Msg      string
	Existing *models.TimerSession
}

func (e *ConflictError) Error() string { return e.Msg }

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
