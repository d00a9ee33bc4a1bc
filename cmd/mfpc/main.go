// mfpc solves maximum-flow problems in which some pairs of arcs may not both
// carry flow.
//
// Usage:
//
//	mfpc solve <instance> [--time-limit=60s] [--conflicts=linear|clause] [--markdown]
//	mfpc batch <dir> [--workers=4] [--pattern=*.txt] [--markdown]
//	mfpc inspect <instance>
//	mfpc relax <instance> [--algorithm=dinic|edmonds-karp|ford-fulkerson] [--arcs]
//
// Settings come from --config (YAML), ./.env and MFPC_* variables; flags win.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
