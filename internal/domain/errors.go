package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument  = errors.New("employee: invalid argument")
	ErrInvalidOperation = errors.New("employee: invalid operation")
)

// ArgumentError reports which parameter failed validation
type ArgumentError struct {
	Param  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s %s", e.Param, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidArgument) hold for every ArgumentError
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func invalidArgument(param, reason string) error {
	return &ArgumentError{Param: param, Reason: reason}
}
