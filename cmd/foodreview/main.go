package main

import (
	"context"
	"os"
	"os/signal"

	"hostel-food-backend/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &cli.App{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
	}
	code := app.Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
