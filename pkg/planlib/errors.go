package planlib

import "fmt"

// ErrorType tags a library error so callers can switch on it instead of
// string matching.
type ErrorType string

const (
	ErrInvalidTransition ErrorType = "INVALID_TRANSITION"
	ErrCapacityExceeded  ErrorType = "CAPACITY_EXCEEDED"
	ErrPlanNotFound      ErrorType = "PLAN_NOT_FOUND"
	ErrArchiveOverflow   ErrorType = "ARCHIVE_OVERFLOW"
	ErrValidation        ErrorType = "VALIDATION_ERROR"
)

// Error is the typed result of a failed library operation. Only the fields
// relevant to the Type are populated.
type Error struct {
	Type ErrorType `json:"type"`

	// Invalid transition.
	From Status `json:"from,omitempty"`
	To   Status `json:"to,omitempty"`

	// Capacity exceeded.
	Status  Status `json:"status,omitempty"`
	Limit   int    `json:"limit,omitempty"`
	Current int    `json:"current,omitempty"`

	// Archive overflow.
	OldestPlanID string `json:"oldest_plan_id,omitempty"`

	// Not found / validation context.
	PlanID  string `json:"plan_id,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e *Error) Error() string {
	switch e.Type {
	case ErrInvalidTransition:
		return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
	case ErrCapacityExceeded:
		return fmt.Sprintf("capacity exceeded for status %s: %d of %d", e.Status, e.Current, e.Limit)
	case ErrPlanNotFound:
		return fmt.Sprintf("plan %s not found", e.PlanID)
	case ErrArchiveOverflow:
		return fmt.Sprintf("archive at capacity; oldest archived plan is %s", e.OldestPlanID)
	case ErrValidation:
		return e.Message
	default:
		return string(e.Type)
	}
}

// AsError unwraps err into a *Error when it is one.
func AsError(err error) (*Error, bool) {
	e, ok := err.(*Error)
	return e, ok
}

func invalidTransition(from, to Status) *Error {
	return &Error{Type: ErrInvalidTransition, From: from, To: to}
}

func capacityExceeded(status Status, limit, current int) *Error {
	return &Error{Type: ErrCapacityExceeded, Status: status, Limit: limit, Current: current}
}

func planNotFound(id string) *Error {
	return &Error{Type: ErrPlanNotFound, PlanID: id}
}

func archiveOverflow(oldestID string) *Error {
	return &Error{Type: ErrArchiveOverflow, OldestPlanID: oldestID}
}

func validationError(msg string) *Error {
	return &Error{Type: ErrValidation, Message: msg}
}
