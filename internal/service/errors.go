package service

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// FieldError names one offending input field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(field, msg string) error {
	return &ValidationError{
		Err:    fmt.Errorf("%s: %s", field, msg),
		Fields: []FieldError{{Field: field, Error: msg}},
	}
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return "validation failed"
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

const (
	ReasonPendingReview = "pending review"
	ReasonCooldown      = "cooldown"
)

// IneligibleError carries what the caller needs to render a wait message.
type IneligibleError struct {
	Reason            string
	NextAvailableDate *time.Time
	PendingAttemptID  string
}

func (e *IneligibleError) Error() string {
	switch {
	case e.Reason == ReasonCooldown && e.NextAvailableDate != nil:
		return fmt.Sprintf("attempt not available: cooldown until %s", e.NextAvailableDate.Format(time.RFC3339))
	case e.PendingAttemptID != "":
		return fmt.Sprintf("attempt not available: %s (attempt %s)", e.Reason, e.PendingAttemptID)
	default:
		return "attempt not available: " + e.Reason
	}
}

// ScoringError marks an AutoScorer failure. It is recovered by the fallback policy
// and only ever logged.
type ScoringError struct {
	Provider string
	Err      error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("%s scorer: %v", e.Provider, e.Err)
}

func (e *ScoringError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
