// Package main is the entry point for the maze-repair server.
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.trai.ch/mazerepair/cmd/mazerepair/commands"
	"go.trai.ch/mazerepair/internal/adapters/logger"
	"go.trai.ch/mazerepair/internal/app"
	"go.trai.ch/mazerepair/internal/core/domain"
	_ "go.trai.ch/mazerepair/internal/wiring"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli := commands.New(app.NewLauncher())
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		// The check command has already printed its verdict.
		if errors.Is(err, domain.ErrCheckFailed) {
			return 1
		}
		logger.New(stderr, slog.LevelInfo, domain.LogFormatPretty).Error(err)
		return 1
	}
	return 0
}
