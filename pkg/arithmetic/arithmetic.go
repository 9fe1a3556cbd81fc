// Package arithmetic is the external arithmetic module the calculator
// delegates to. Local evaluates in process; the agent application offers the
// same interface over gRPC.
package arithmetic

import (
	"context"
	"fmt"
	"strings"

	locerr "github.com/ERRORIK404/task_calculator/pkg/local_errors"
)

type Operation string

const (
	OpAdd      Operation = "+"
	OpSubtract Operation = "-"
	OpMultiply Operation = "*"
	OpDivide   Operation = "/"
)

// ParseOperation accepts the operator symbols and their word forms.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "+", "add":
		return OpAdd, nil
	case "-", "sub", "subtract":
		return OpSubtract, nil
	case "*", "x", "mul", "multiply":
		return OpMultiply, nil
	case "/", "div", "divide":
		return OpDivide, nil
	}
	return "", fmt.Errorf("%w: %q", locerr.ErrUnknownOperation, s)
}

type Arithmetic interface {
	Add(ctx context.Context, a, b float64) (float64, error)
	Subtract(ctx context.Context, a, b float64) (float64, error)
	Multiply(ctx context.Context, a, b float64) (float64, error)
	// Divide fails with ErrDivisionByZero when b is zero.
	Divide(ctx context.Context, a, b float64) (float64, error)
}

// Local is the in-process implementation.
type Local struct{}

func (Local) Add(_ context.Context, a, b float64) (float64, error)      { return a + b, nil }
func (Local) Subtract(_ context.Context, a, b float64) (float64, error) { return a - b, nil }
func (Local) Multiply(_ context.Context, a, b float64) (float64, error) { return a * b, nil }

func (Local) Divide(_ context.Context, a, b float64) (float64, error) {
	if b == 0 {
		return 0, locerr.ErrDivisionByZero
	}
	return a / b, nil
}

// Apply runs op(a, b) on ar.
func Apply(ctx context.Context, ar Arithmetic, op Operation, a, b float64) (float64, error) {
	switch op {
	case OpAdd:
		return ar.Add(ctx, a, b)
	case OpSubtract:
		return ar.Subtract(ctx, a, b)
	case OpMultiply:
		return ar.Multiply(ctx, a, b)
	case OpDivide:
		return ar.Divide(ctx, a, b)
	default:
		return 0, fmt.Errorf("%w: %q", locerr.ErrUnknownOperation, string(op))
	}
}
