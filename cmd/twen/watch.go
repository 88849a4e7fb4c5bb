package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"twen"
)

const defaultSource = "Output(0.0)\n"

// ensureFile creates path with a silent default patch when it does not
// exist and returns the current contents.
func ensureFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(path, []byte(defaultSource), 0644); err != nil {
			return "", err
		}
		return defaultSource, nil
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// watch polls the source file's modified time and sends a freshly built
// graph on swap whenever the file changes and loads cleanly. A load
// error leaves the previous graph playing. If the file disappears the
// default patch is written back.
func watch(path string, every time.Duration, sampleRate float32, swap chan<- *twen.NodeGraph, quit <-chan struct{}, logger *slog.Logger) {
	var last time.Time
	if st, err := os.Stat(path); err == nil {
		last = st.ModTime()
	}
	tick := time.NewTicker(every)
	defer tick.Stop()
	for {
		select {
		case <-quit:
			return
		case <-tick.C:
		}
		st, err := os.Stat(path)
		if err != nil {
			if _, err := ensureFile(path); err != nil {
				logger.Warn("cannot recreate source file", "file", path, "err", err)
			}
			continue
		}
		if st.ModTime().Equal(last) {
			continue
		}
		last = st.ModTime()
		src, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("cannot read source file", "file", path, "err", err)
			continue
		}
		g, err := twen.Load(string(src), sampleRate)
		if err != nil {
			logger.Warn("load failed, keeping previous graph", "file", path, "err", err)
			continue
		}
		select {
		case swap <- g:
			logger.Info("graph reloaded", "file", path)
		case <-quit:
			return
		}
	}
}
