package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/fx"
)

type lifecycle interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Done() <-chan os.Signal
}

var _ lifecycle = (*fx.App)(nil)

func run(ctx context.Context, app lifecycle) {
	if code := serve(ctx, app, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

// serve blocks until ctx is cancelled or the app asks to shut down.
func serve(ctx context.Context, app lifecycle, stderr io.Writer) int {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "failed to start application: %v\n", err)
		return 1
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(stderr, "failed to stop application: %v\n", err)
		return 1
	}
	return 0
}
