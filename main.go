package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"places-exporter/config"
	"places-exporter/di"
	"places-exporter/ui"
	"places-exporter/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	util.SetupLogging(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	// the key prompt and the command loop share one reader
	reader := bufio.NewReader(os.Stdin)
	apiKey, ok := ui.PromptAPIKey(reader, os.Stdout)
	if !ok {
		os.Exit(0)
	}

	container, err := di.NewContainer(cfg, apiKey)
	if err != nil {
		slog.Error("[MAIN] failed to initialize", "err", err)
		os.Exit(1)
	}

	if cfg.Server.Enabled {
		if err := container.PlacesHttpServer.Start(context.Background()); err != nil {
			slog.Error("[MAIN] server stopped", "err", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	terminal := ui.NewTerminal(container.SessionService, reader, os.Stdout)
	if err := terminal.Run(ctx); err != nil {
		slog.Error("[MAIN] terminal stopped", "err", err)
		os.Exit(1)
	}
}
