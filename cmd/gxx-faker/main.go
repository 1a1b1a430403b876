// Package main is the entry point for gxx-faker, a compiler wrapper installed
// as "<compiler>-faker" next to a mingw-w64 g++.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/thoreinstein/ntc/internal/gccfaker"
)

// shutdownSignals cancel the wrapped compiler.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	code := run(ctx, os.Args)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	f, err := gccfaker.New(args[0], os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gxx-faker: %v\n", err)
		return 2
	}
	code, err := f.Run(ctx, args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "gxx-faker: %v\n", err)
	}
	return code
}
