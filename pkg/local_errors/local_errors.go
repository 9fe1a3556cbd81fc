package localerrors

import (
	"errors"
)

var (
	ErrDivisionByZero   = errors.New("division by zero")
	ErrDivision         = errors.New("division error")
	ErrUnknownOperation = errors.New("unknown operation")
	ErrMissingOperand   = errors.New("missing operand")

	ErrTaskNotFound  = errors.New("task not found")
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidID     = errors.New("invalid task id")
)
