package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// config is the optional twen.toml. Flags override it, defaults fill it.
type config struct {
	SampleRate int      `toml:"sample-rate"`
	BufferSize int      `toml:"buffer-size"`
	Watch      duration `toml:"watch-interval"`
	Gain       float64  `toml:"gain"`
}

func defaultConfig() config {
	return config{
		SampleRate: 44100,
		BufferSize: 1024,
		Watch:      duration{100 * time.Millisecond},
		Gain:       1.0,
	}
}

// loadConfig reads twen.toml from dir. A missing file is not an error:
// defaults apply.
func loadConfig(dir string) (config, error) {
	cfg := defaultConfig()
	path := filepath.Join(dir, "twen.toml")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.SampleRate <= 0 {
		return cfg, fmt.Errorf("%s: sample-rate must be positive", path)
	}
	if cfg.BufferSize <= 0 {
		return cfg, fmt.Errorf("%s: buffer-size must be positive", path)
	}
	if cfg.Watch.Duration <= 0 {
		return cfg, fmt.Errorf("%s: watch-interval must be positive", path)
	}
	return cfg, nil
}
