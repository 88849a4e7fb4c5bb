package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"twen"
)

const (
	historyFile = ".twen_history"
	prompt      = "~> "
)

var (
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Italic(true)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

const banner = `twen repl — statements accumulate into one graph
:show prints the working source, :clear starts over, :quit exits`

type replCmd struct {
	SampleRate int `help:"Override the configured sample rate."`
}

// Run keeps a working source buffer. Each accepted line rebuilds the
// whole graph; a line that fails to load is reported and dropped, the
// previous graph keeps playing.
func (r *replCmd) Run(a *app) error {
	cfg := a.cfg
	if r.SampleRate > 0 {
		cfg.SampleRate = r.SampleRate
	}
	rate := float32(cfg.SampleRate)

	// built once; reused whenever the working source is cleared
	silent, err := twen.Load(defaultSource, rate)
	if err != nil {
		return err
	}
	e := newEngine(silent, float32(cfg.Gain), a.logger)
	engineErr := make(chan error, 1)
	go func() {
		engineErr <- e.run(rate, cfg.BufferSize)
	}()
	// hand a graph to the engine, or surface its exit error instead
	push := func(g *twen.NodeGraph) error {
		select {
		case e.swap <- g:
			return nil
		case err := <-engineErr:
			if err == nil {
				err = errors.New("engine stopped")
			}
			return err
		}
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	histPath := filepath.Join(os.TempDir(), historyFile)
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
	}
	if f, err := os.Open(histPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Println(bannerStyle.Render(banner))
	var src []string
	for {
		input, err := line.Prompt(promptStyle.Render(prompt))
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Println()
			break
		}
		if err != nil {
			e.stop()
			<-engineErr
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		switch input {
		case ":quit", ":q":
			e.stop()
			return <-engineErr
		case ":clear":
			src = nil
			if err := push(silent); err != nil {
				return err
			}
			continue
		case ":show":
			if len(src) == 0 {
				fmt.Println(faintStyle.Render("(empty)"))
				continue
			}
			fmt.Println(faintStyle.Render(strings.Join(src, "\n")))
			continue
		}

		candidate := append(append([]string(nil), src...), input)
		g, err := twen.Load(strings.Join(candidate, "\n"), rate)
		if err != nil {
			fmt.Println(errorStyle.Render(err.Error()))
			continue
		}
		src = candidate
		if err := push(g); err != nil {
			return err
		}
	}
	e.stop()
	return <-engineErr
}
