package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/puimuri/trainer/internal/drill"
	"github.com/puimuri/trainer/pkg/logger"
)

const defaultDrillTimeout = 10 * time.Minute

func main() {
	cfg, help, err := drill.ParseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}
	if help {
		drill.ShowHelp(os.Stdout)
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if cfg.Verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultDrillTimeout)
	defer cancel()

	if _, err := drill.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("drill failed: " + err.Error() + "\n")
		cancel()
		stop()
		os.Exit(1)
	}
}
