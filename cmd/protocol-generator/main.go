// Package main provides the CLI entrypoint for protocol-generator.
//
// protocol-generator reads a Minecraft protocol document:
//   - Parses <data-dir>/<version>/protocol.json into the schema model
//   - Resolves every packet field against the type mapping table
//   - Generates one Go package per protocol phase, plus optional YAML manifests
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"protocol-generator/internal/config"
)

const name = "protocol-generator"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(name, args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}

	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return 1
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := &generator{cfg: cfg, log: logger, dump: stdout}

	if err := g.generate(ctx); err != nil {
		logger.Error("generation failed", "error", err)

		if !cfg.Watch {
			return 1
		}
	}

	if cfg.Watch {
		if err := g.watch(ctx); err != nil {
			logger.Error("watch failed", "error", err)
			return 1
		}
	}

	return 0
}
