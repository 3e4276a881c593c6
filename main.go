package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/protractor/internal/config"
	"github.com/iburimskiy/protractor/internal/game"
)

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, _ := cfg.Level()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, err := game.New(ctx, cfg, log)
	if err != nil {
		log.Error("setup failed", "err", err)
		os.Exit(1)
	}
	g.Configure()

	err = ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{ScreenTransparent: true})
	cancel()
	g.Close()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("protractor stopped", "err", err)
		os.Exit(1)
	}
}
