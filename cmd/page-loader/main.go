package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	cmd "github.com/rohmanhakim/page-loader/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Execute(ctx)
}
