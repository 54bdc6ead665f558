package main

import (
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/OpticalFlyer/vengine/config"
	"github.com/OpticalFlyer/vengine/engine"
	"github.com/OpticalFlyer/vengine/gfx"
	"github.com/OpticalFlyer/vengine/logx"
)

// configPath is created with default settings on first run.
const configPath = "vengine.toml"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	settings, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	level, err := logx.ParseLevel(settings.Log.Level)
	if err != nil {
		return err
	}
	logx.SetLogger(logx.New(os.Stderr, level))

	backend := gfx.NewBackend()
	backend.Filter = ebiten.FilterLinear
	ctx, err := engine.New(settings, backend)
	if err != nil {
		return err
	}
	defer func() {
		if err := ctx.Close(); err != nil {
			logx.Logger().Error("shutdown", "err", err)
		}
	}()

	title, err := gfx.DefaultTextFont()
	if err != nil {
		return err
	}
	w := newWorld()
	buildHUD(ctx, w, title)
	ctx.SetScreen(w)

	gfx.ConfigureWindow(settings.Window, settings.Display)
	return ebiten.RunGame(gfx.NewGame(ctx, backend))
}
