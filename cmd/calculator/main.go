// Command calculator applies a sequence of operations to a running result
// starting at 0 and prints it:
//
//	calculator add 2 multiply 3 subtract 1 divide 2
//
// With -remote the arithmetic runs on the agent at AGENT_ADDR (from the
// environment or .env) instead of in process; -agent overrides the address.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"google.golang.org/grpc"

	agent "github.com/ERRORIK404/task_calculator/internal/agent_application"
	"github.com/ERRORIK404/task_calculator/pkg/arithmetic"
	"github.com/ERRORIK404/task_calculator/pkg/calculator"
	conf "github.com/ERRORIK404/task_calculator/pkg/config"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, dialOpts ...grpc.DialOption) int {
	config, err := conf.LoadConfig()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	fs := flag.NewFlagSet("calculator", flag.ContinueOnError)
	fs.SetOutput(stderr)
	remote := fs.Bool("remote", false, "compute on an arithmetic agent instead of locally")
	agentAddr := fs.String("agent", config.AgentAddr, "agent address used with -remote")
	timeout := fs.Duration("timeout", 10*time.Second, "overall timeout")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	rest := fs.Args()
	if len(rest)%2 != 0 {
		fmt.Fprintln(stderr, "usage: calculator [-remote [-agent addr]] <op> <number> [<op> <number>...]")
		return 2
	}

	var arith arithmetic.Arithmetic = arithmetic.Local{}
	if *remote {
		client, conn, err := agent.Dial(*agentAddr, dialOpts...)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		defer conn.Close()
		arith = client
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	calc := calculator.New(arith)
	for i := 0; i < len(rest); i += 2 {
		op, err := arithmetic.ParseOperation(rest[i])
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		x, err := strconv.ParseFloat(rest[i+1], 64)
		if err != nil {
			fmt.Fprintf(stderr, "not a number: %s\n", rest[i+1])
			return 2
		}
		if err := calc.Apply(ctx, op, x); err != nil {
			fmt.Fprintln(stderr, err)
			var divErr *calculator.DivisionError
			if errors.As(err, &divErr) {
				return 3
			}
			return 1
		}
	}
	fmt.Fprintln(stdout, strconv.FormatFloat(calc.Result(), 'g', -1, 64))
	return 0
}
