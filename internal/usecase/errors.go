package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
	ErrForbidden    = errors.New("forbidden")

	ErrSubjectNotFound     = errors.New("subject not found")
	ErrApplicationNotFound = errors.New("application not found")

	// Conflict family. Each reason stays a distinct sentinel because callers
	// build user-facing messaging from the distinction between "already
	// applied", "slot filled", and "offer expired".
	ErrAlreadyApplied    = errors.New("already applied")
	ErrSlotsFilled       = errors.New("all slots are filled")
	ErrSubjectExpired    = errors.New("subject availability window has expired")
	ErrSubjectClosed     = errors.New("subject is closed")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrAlreadyResolved   = errors.New("application already resolved")
)
