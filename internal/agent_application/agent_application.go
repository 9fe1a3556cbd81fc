// Package agentapplication serves the arithmetic module over gRPC and
// provides a client that satisfies arithmetic.Arithmetic, so a calculator
// can delegate to a remote agent instead of computing in process.
package agentapplication

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/ERRORIK404/task_calculator/pkg/arithmetic"
	conf "github.com/ERRORIK404/task_calculator/pkg/config"
	locerr "github.com/ERRORIK404/task_calculator/pkg/local_errors"
)

const (
	serviceName  = "calculator.Arithmetic"
	applyMethod  = "/" + serviceName + "/Apply"
	fieldOp      = "op"
	fieldOperand = "a"
	fieldArg     = "b"
)

// ArithmeticServer is the server side of calculator.Arithmetic.
type ArithmeticServer interface {
	Apply(ctx context.Context, in *structpb.Struct) (*wrapperspb.DoubleValue, error)
}

// RegisterArithmeticServer attaches srv to s.
func RegisterArithmeticServer(s grpc.ServiceRegistrar, srv ArithmeticServer) {
	s.RegisterService(&arithmeticServiceDesc, srv)
}

var arithmeticServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ArithmeticServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Apply", Handler: applyHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "calculator/arithmetic.proto",
}

func applyHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ArithmeticServer).Apply(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: applyMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ArithmeticServer).Apply(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Server evaluates operations with arithmetic.Local, optionally holding each
// one for its configured duration first.
type Server struct {
	arith  arithmetic.Arithmetic
	delays map[arithmetic.Operation]time.Duration
	log    *slog.Logger
}

func NewServer(cfg *conf.Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{arith: arithmetic.Local{}, log: log, delays: map[arithmetic.Operation]time.Duration{}}
	if cfg != nil {
		s.delays[arithmetic.OpAdd] = time.Duration(cfg.TimeAdditionMS) * time.Millisecond
		s.delays[arithmetic.OpSubtract] = time.Duration(cfg.TimeSubtractionMS) * time.Millisecond
		s.delays[arithmetic.OpMultiply] = time.Duration(cfg.TimeMultiplicationMS) * time.Millisecond
		s.delays[arithmetic.OpDivide] = time.Duration(cfg.TimeDivisionMS) * time.Millisecond
	}
	return s
}

func (s *Server) Apply(ctx context.Context, in *structpb.Struct) (*wrapperspb.DoubleValue, error) {
	fields := in.GetFields()
	op, err := arithmetic.ParseOperation(fields[fieldOp].GetStringValue())
	if err != nil {
		return nil, status.Error(codes.Unimplemented, err.Error())
	}
	a, err := operand(fields, fieldOperand)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	b, err := operand(fields, fieldArg)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if d := s.delays[op]; d > 0 {
		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, status.FromContextError(ctx.Err()).Err()
		case <-timer.C:
		}
	}

	res, err := arithmetic.Apply(ctx, s.arith, op, a, b)
	if errors.Is(err, locerr.ErrDivisionByZero) {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err != nil {
		return nil, status.Errorf(codes.Internal, "operation failed: %v", err)
	}
	s.log.Debug("operation done", "op", string(op), "a", a, "b", b, "result", res)
	return wrapperspb.Double(res), nil
}

// operand reads a numeric field. Absent or non-numeric fields are an error,
// never a silent zero.
func operand(fields map[string]*structpb.Value, name string) (float64, error) {
	v, ok := fields[name].GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: %q", locerr.ErrMissingOperand, name)
	}
	return v.NumberValue, nil
}

// RunAgent serves the arithmetic service on cfg.AgentAddr until ctx is done.
func RunAgent(ctx context.Context, cfg *conf.Config, log *slog.Logger) error {
	lis, err := net.Listen("tcp", cfg.AgentAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.AgentAddr, err)
	}
	return Serve(ctx, lis, NewServer(cfg, log), log)
}

func Serve(ctx context.Context, lis net.Listener, srv *Server, log *slog.Logger) error {
	grpcServer := grpc.NewServer()
	RegisterArithmeticServer(grpcServer, srv)

	errCh := make(chan error, 1)
	go func() {
		log.Info("arithmetic agent listening", "addr", lis.Addr().String())
		errCh <- grpcServer.Serve(lis)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		grpcServer.GracefulStop()
		log.Info("arithmetic agent stopped")
		return nil
	}
}
