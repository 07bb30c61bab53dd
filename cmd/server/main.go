package main

import (
	"context"
	"embed"
	"log/slog"
	"os"
	"os/signal"

	"github.com/lmittmann/tint"

	"github.com/Darjusch/minesweeper-ai/internal/app"
	"github.com/Darjusch/minesweeper-ai/internal/config"
	"github.com/Darjusch/minesweeper-ai/internal/knowledge"
	"github.com/Darjusch/minesweeper-ai/internal/player"
)

//go:embed migrations
var migrations embed.FS

func main() {
	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, nil)
	if config.Development() {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level: slog.LevelDebug,
		})
	}
	logger := slog.New(handler)
	knowledge.Log = logger
	player.Log = logger

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := app.New(logger, migrations).Start(ctx); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
