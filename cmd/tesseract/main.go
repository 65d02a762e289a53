package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hubastard/tesseract/engine/colors"
	"github.com/hubastard/tesseract/engine/config"
	"github.com/hubastard/tesseract/engine/core"
	"github.com/hubastard/tesseract/engine/tesseract"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "tesseract:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	path := "tesseract.json"
	if len(args) > 0 {
		path = args[0]
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return err
	}

	lvl, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	core.SetLogger(logger)
	tesseract.SetLogger(logger)

	opts, err := cfg.HypercubeOptions()
	if err != nil {
		return err
	}
	cube, err := tesseract.New(opts)
	if err != nil {
		return err
	}

	be, err := selectBackend(cfg)
	if err != nil {
		return err
	}
	engineCfg := core.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		VSync:      cfg.Window.VSync,
		ClearColor: colors.Color(cfg.ClearColor),
	}
	if be.offscreen {
		engineCfg.Width, engineCfg.Height = cfg.Output.Width, cfg.Output.Height
	}

	logger.Info("starting", "backend", cfg.Backend, "cube", cube.String())
	app := &App{
		cfg:       cfg,
		cube:      cube,
		fixedStep: be.offscreen,
	}
	return core.Run(app, engineCfg, be.newWindow, be.newRenderer)
}
