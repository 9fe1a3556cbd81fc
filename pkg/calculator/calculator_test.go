package calculator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ERRORIK404/task_calculator/pkg/arithmetic"
	locerr "github.com/ERRORIK404/task_calculator/pkg/local_errors"
)

func newCalculator(t *testing.T) *Calculator {
	c := New(nil)
	t.Cleanup(c.Reset)
	return c
}

func TestCalculator_Add(t *testing.T) {
	tests := []struct{ initial, value, want float64 }{
		{0, 5, 5},
		{5, 3, 8},
		{-5, -3, -8},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%g add %g", tt.initial, tt.value), func(t *testing.T) {
			c := newCalculator(t)
			ctx := context.Background()
			require.NoError(t, c.Add(ctx, tt.initial))
			require.NoError(t, c.Add(ctx, tt.value))
			assert.Equal(t, tt.want, c.Result())
		})
	}
}

func TestCalculator_Subtract(t *testing.T) {
	tests := []struct{ initial, value, want float64 }{
		{10, 3, 7},
		{0, 5, -5},
		{-5, -5, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%g subtract %g", tt.initial, tt.value), func(t *testing.T) {
			c := newCalculator(t)
			ctx := context.Background()
			require.NoError(t, c.Add(ctx, tt.initial))
			require.NoError(t, c.Subtract(ctx, tt.value))
			assert.Equal(t, tt.want, c.Result())
		})
	}
}

func TestCalculator_Multiply(t *testing.T) {
	tests := []struct{ initial, value, want float64 }{
		{1, 3, 3},
		{0, 5, 0},
		{-2, 3, -6},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%g multiply %g", tt.initial, tt.value), func(t *testing.T) {
			c := newCalculator(t)
			ctx := context.Background()
			require.NoError(t, c.Add(ctx, tt.initial))
			require.NoError(t, c.Multiply(ctx, tt.value))
			assert.Equal(t, tt.want, c.Result())
		})
	}
}

func TestCalculator_Divide(t *testing.T) {
	tests := []struct{ initial, value, want float64 }{
		{10, 2, 5},
		{9, 3, 3},
		{-6, -3, 2},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%g divide %g", tt.initial, tt.value), func(t *testing.T) {
			c := newCalculator(t)
			ctx := context.Background()
			require.NoError(t, c.Add(ctx, tt.initial))
			require.NoError(t, c.Divide(ctx, tt.value))
			assert.Equal(t, tt.want, c.Result())
		})
	}
}

func TestCalculator_DivideByZero(t *testing.T) {
	c := newCalculator(t)
	ctx := context.Background()
	require.NoError(t, c.Add(ctx, 10))

	err := c.Divide(ctx, 0)
	require.EqualError(t, err, "division error")

	var divErr *DivisionError
	assert.ErrorAs(t, err, &divErr)
	assert.ErrorIs(t, err, locerr.ErrDivision)
	assert.ErrorIs(t, err, locerr.ErrDivisionByZero)
	assert.Equal(t, 10.0, c.Result(), "failed division must not touch the result")
}

func TestCalculator_Composite(t *testing.T) {
	c := newCalculator(t)
	ctx := context.Background()
	require.NoError(t, c.Add(ctx, 2))
	require.NoError(t, c.Multiply(ctx, 3))
	require.NoError(t, c.Subtract(ctx, 1))
	require.NoError(t, c.Divide(ctx, 2))
	assert.Equal(t, 2.5, c.Result())
}

func TestCalculator_Reset(t *testing.T) {
	c := New(arithmetic.Local{})
	require.NoError(t, c.Add(context.Background(), 42))
	c.Reset()
	assert.Zero(t, c.Result())
}

// brokenArithmetic fails every call the way an unreachable remote module would.
type brokenArithmetic struct{ arithmetic.Local }

var errUnavailable = errors.New("agent unavailable")

func (brokenArithmetic) Add(context.Context, float64, float64) (float64, error) {
	return 0, errUnavailable
}

func (brokenArithmetic) Divide(context.Context, float64, float64) (float64, error) {
	return 0, errUnavailable
}

func TestCalculator_ModuleFailure(t *testing.T) {
	c := New(brokenArithmetic{})
	ctx := context.Background()

	err := c.Add(ctx, 3)
	assert.ErrorIs(t, err, errUnavailable)
	assert.Zero(t, c.Result())

	err = c.Divide(ctx, 0)
	assert.ErrorIs(t, err, errUnavailable)
	assert.NotErrorIs(t, err, locerr.ErrDivision)

	require.NoError(t, c.Multiply(ctx, 4))
}
