package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"inclusive_jobs/internal/jobsapp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := jobsapp.Run(ctx, os.Args[1:], os.Stdout); err != nil {
		stop()
		os.Exit(1)
	}
}
