//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"wxfield/internal/app"
	wxlog "wxfield/internal/log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	if err := cfg.LoadEnv(); err != nil {
		log.Fatal(err)
	}
	cfg.Bind(flag.CommandLine)
	cfg.BindViewer(flag.CommandLine)
	flag.Parse()

	lg := wxlog.New(cfg.LogLevel, cfg.LogDir)
	ctx := context.Background()

	series, err := cfg.LoadSeries(ctx, lg)
	if err != nil {
		log.Fatal(err)
	}
	sc := cfg.SurfaceConfig()
	res, err := app.Simulate(ctx, sc, series, lg)
	if err != nil {
		log.Fatal(err)
	}

	title := "wxfield: " + cfg.Place
	game := app.New(res, sc, title, cfg.Scale, cfg.FPS)

	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(cfg.TPS)
	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
