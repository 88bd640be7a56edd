package domain

import (
	"errors"
	"fmt"
	"time"
)

type ErrCode string

const (
	CodeValidation   ErrCode = "validation_error"
	CodeNotFound     ErrCode = "not_found"
	CodeForbidden    ErrCode = "forbidden"
	CodeInvalidState ErrCode = "invalid_state"
)

type AppError struct {
	Code    ErrCode
	Message string
	Meta    map[string]string
}

func (e *AppError) Error() string {
	if len(e.Meta) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Meta)
}

func ErrValidation(msg string) error { return &AppError{Code: CodeValidation, Message: msg} }
func ErrValidationMeta(msg string, meta map[string]string) error {
	return &AppError{Code: CodeValidation, Message: msg, Meta: meta}
}
func ErrNotFound(msg string) error     { return &AppError{Code: CodeNotFound, Message: msg} }
func ErrForbidden(msg string) error    { return &AppError{Code: CodeForbidden, Message: msg} }
func ErrInvalidState(msg string) error { return &AppError{Code: CodeInvalidState, Message: msg} }

// Enrollment rejections. These are expected business outcomes, not faults:
// callers branch on them with errors.Is and render a specific message.
// Anything else coming out of the enrollment path is an infrastructure
// failure and propagates unchanged.
var (
	ErrNotYetConfirmed   = errors.New("not yet confirmed")
	ErrAlreadyFinished   = errors.New("already finished")
	ErrNotEnrollable     = errors.New("not enrollable")
	ErrOrganizerConflict = errors.New("organizer cannot enroll in own event")
	ErrAlreadyEnrolled   = errors.New("already enrolled")
	ErrNoCapacity        = errors.New("no capacity available")
	ErrNotEnrolled       = errors.New("not enrolled")

	ErrCacheMiss = errors.New("cache miss")
)

// EndedError rejects enrollment for an event whose computed end date has
// passed even though its stored status was never advanced to finished.
type EndedError struct {
	EndDate time.Time
}

func (e *EndedError) Error() string {
	return fmt.Sprintf("ended on %s", e.EndDate.Format("2006-01-02"))
}
