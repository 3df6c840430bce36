package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email is already registered")
	ErrValidation         = errors.New("invalid input")
	ErrUnauthorized       = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access denied")
	ErrAdminLocked        = errors.New("admin permissions are fixed and cannot be changed")
)

// PartialPropagationError reports a target fan-out that updated the
// initiating admin's record but failed for some of the other users. The
// operation is still a success for the caller; handlers surface the failed
// IDs as a warning.
type PartialPropagationError struct {
	MonthIndex    int
	FailedUserIDs []string
}

func (e *PartialPropagationError) Error() string {
	return fmt.Sprintf("target propagation for month %d failed for users: %s",
		e.MonthIndex, strings.Join(e.FailedUserIDs, ", "))
}
