// Command twen plays a graph source file, rebuilding the graph whenever
// the file changes. The core compiler and runtime live in the root twen
// package; everything here is driver plumbing: audio out, file watching,
// the REPL and the scope window.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"twen"
)

var cli struct {
	Config  string `help:"Directory containing twen.toml." default:"." type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging."`

	Run  runCmd  `cmd:"" default:"withargs" help:"Play a graph source file, hot-reloading on change."`
	Repl replCmd `cmd:"" help:"Build a graph interactively, one statement at a time."`
}

type app struct {
	cfg    config
	logger *slog.Logger
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("twen"),
		kong.Description("A live-coding audio synthesis environment."),
		kong.UsageOnError(),
	)
	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	cfg, err := loadConfig(cli.Config)
	ctx.FatalIfErrorf(err)
	ctx.FatalIfErrorf(ctx.Run(&app{cfg: cfg, logger: logger}))
}

type runCmd struct {
	File       string `arg:"" optional:"" default:"synth.twg" help:"Graph source file."`
	SampleRate int    `help:"Override the configured sample rate."`
	Scope      bool   `help:"Open the waveform scope window (needs the scope build tag)."`
}

func (r *runCmd) Run(a *app) error {
	cfg := a.cfg
	if r.SampleRate > 0 {
		cfg.SampleRate = r.SampleRate
	}
	rate := float32(cfg.SampleRate)

	src, err := ensureFile(r.File)
	if err != nil {
		return err
	}
	graph, err := twen.Load(src, rate)
	if err != nil {
		// nothing to fall back to on the very first load
		return err
	}
	a.logger.Info("loaded", "file", r.File, "rate", cfg.SampleRate)

	e := newEngine(graph, float32(cfg.Gain), a.logger)
	if r.Scope {
		e.frames = make(chan []float32, 4)
		go func() {
			if err := runScope(e.frames, e.quit); err != nil {
				a.logger.Warn("scope unavailable", "err", err)
			}
		}()
	}
	go watch(r.File, cfg.Watch.Duration, rate, e.swap, e.quit, a.logger)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		a.logger.Info("shutting down")
		e.stop()
	}()

	return e.run(rate, cfg.BufferSize)
}
