package app

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput     = errors.New("app: invalid input")
	ErrBoatNotFound     = errors.New("app: boat not found")
	ErrStopNotFound     = errors.New("app: stop not found")
	ErrScheduleNotFound = errors.New("app: schedule not found")
	ErrLogNotFound      = errors.New("app: arrival log not found")
	ErrDeclined         = errors.New("app: action declined")
	ErrNoState          = errors.New("app: no state configured")
)

// ValidationError reports a form field the operator has to fix before the
// action can run. It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
