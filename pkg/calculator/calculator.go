package calculator

import (
	"context"
	"errors"
	"fmt"

	"github.com/ERRORIK404/task_calculator/pkg/arithmetic"
	locerr "github.com/ERRORIK404/task_calculator/pkg/local_errors"
)

// DivisionError is returned by Divide when the arithmetic module rejects the
// divisor. Its message is always "division error"; the rejection is kept as
// the wrapped cause.
type DivisionError struct {
	Err error
}

func (e *DivisionError) Error() string { return locerr.ErrDivision.Error() }

func (e *DivisionError) Unwrap() error { return e.Err }

func (e *DivisionError) Is(target error) bool { return target == locerr.ErrDivision }

// Calculator keeps a running result and replaces it with op(result, x) on
// every operation. A failed operation leaves the result unchanged.
// A Calculator is not safe for concurrent use.
type Calculator struct {
	arith  arithmetic.Arithmetic
	result float64
}

// New returns a calculator at 0. A nil module means arithmetic.Local.
func New(arith arithmetic.Arithmetic) *Calculator {
	if arith == nil {
		arith = arithmetic.Local{}
	}
	return &Calculator{arith: arith}
}

func (c *Calculator) Add(ctx context.Context, x float64) error {
	return c.Apply(ctx, arithmetic.OpAdd, x)
}

func (c *Calculator) Subtract(ctx context.Context, x float64) error {
	return c.Apply(ctx, arithmetic.OpSubtract, x)
}

func (c *Calculator) Multiply(ctx context.Context, x float64) error {
	return c.Apply(ctx, arithmetic.OpMultiply, x)
}

func (c *Calculator) Divide(ctx context.Context, x float64) error {
	return c.Apply(ctx, arithmetic.OpDivide, x)
}

func (c *Calculator) Apply(ctx context.Context, op arithmetic.Operation, x float64) error {
	res, err := arithmetic.Apply(ctx, c.arith, op, c.result, x)
	if err != nil {
		if op == arithmetic.OpDivide && errors.Is(err, locerr.ErrDivisionByZero) {
			return &DivisionError{Err: err}
		}
		return fmt.Errorf("%s %v: %w", op, x, err)
	}
	c.result = res
	return nil
}

func (c *Calculator) Result() float64 {
	return c.result
}

func (c *Calculator) Reset() {
	c.result = 0
}
