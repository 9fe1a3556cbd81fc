package agentapplication

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/ERRORIK404/task_calculator/pkg/arithmetic"
	locerr "github.com/ERRORIK404/task_calculator/pkg/local_errors"
)

// Client is an arithmetic.Arithmetic backed by a remote agent.
type Client struct {
	conn grpc.ClientConnInterface
}

var _ arithmetic.Arithmetic = (*Client)(nil)

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Dial connects to the agent at addr without transport security. The caller
// closes the returned connection.
func Dial(addr string, opts ...grpc.DialOption) (*Client, *grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("did not connect: %w", err)
	}
	return NewClient(conn), conn, nil
}

func (c *Client) Add(ctx context.Context, a, b float64) (float64, error) {
	return c.apply(ctx, arithmetic.OpAdd, a, b)
}

func (c *Client) Subtract(ctx context.Context, a, b float64) (float64, error) {
	return c.apply(ctx, arithmetic.OpSubtract, a, b)
}

func (c *Client) Multiply(ctx context.Context, a, b float64) (float64, error) {
	return c.apply(ctx, arithmetic.OpMultiply, a, b)
}

func (c *Client) Divide(ctx context.Context, a, b float64) (float64, error) {
	return c.apply(ctx, arithmetic.OpDivide, a, b)
}

func (c *Client) apply(ctx context.Context, op arithmetic.Operation, a, b float64) (float64, error) {
	in, err := structpb.NewStruct(map[string]any{
		fieldOp:      string(op),
		fieldOperand: a,
		fieldArg:     b,
	})
	if err != nil {
		return 0, err
	}
	out := new(wrapperspb.DoubleValue)
	if err := c.conn.Invoke(ctx, applyMethod, in, out); err != nil {
		st := status.Convert(err)
		switch st.Code() {
		case codes.InvalidArgument:
			if st.Message() == locerr.ErrDivisionByZero.Error() {
				return 0, locerr.ErrDivisionByZero
			}
		case codes.Unimplemented:
			return 0, fmt.Errorf("%w: %s", locerr.ErrUnknownOperation, st.Message())
		}
		return 0, fmt.Errorf("agent %s: %w", op, err)
	}
	return out.GetValue(), nil
}
