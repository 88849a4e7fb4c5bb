package main

import (
	"fmt"
	"log/slog"

	pa "github.com/gordonklaus/portaudio"

	"twen"
)

// engine owns the live graph and fills the output stream one buffer at
// a time, one Sample per frame. Replacement graphs arrive on swap and
// are only picked up between buffer fills, so a reload can never race a
// Sample call.
type engine struct {
	graph  *twen.NodeGraph
	swap   chan *twen.NodeGraph
	frames chan []float32 // nil unless the scope is attached
	quit   chan struct{}
	gain   float32
	logger *slog.Logger
}

func newEngine(graph *twen.NodeGraph, gain float32, logger *slog.Logger) *engine {
	return &engine{
		graph:  graph,
		swap:   make(chan *twen.NodeGraph, 1),
		quit:   make(chan struct{}),
		gain:   gain,
		logger: logger,
	}
}

// run blocks until stop is called. Mono output; the graph is the sole
// sample source.
func (e *engine) run(sampleRate float32, bufferSize int) error {
	if err := pa.Initialize(); err != nil {
		return fmt.Errorf("portaudio: %w", err)
	}
	defer pa.Terminate()

	buf := make([]float32, bufferSize)
	stream, err := pa.OpenDefaultStream(0, 1, float64(sampleRate), len(buf), &buf)
	if err != nil {
		return fmt.Errorf("open stream: %w", err)
	}
	defer stream.Close()
	if err := stream.Start(); err != nil {
		return fmt.Errorf("start stream: %w", err)
	}
	defer stream.Stop()
	e.logger.Debug("stream open", "rate", sampleRate, "frames", bufferSize)

	for {
		select {
		case <-e.quit:
			return nil
		case g := <-e.swap:
			e.graph = g
			e.logger.Debug("graph swapped in")
		default:
		}
		for i := range buf {
			buf[i] = clip(e.graph.Sample() * e.gain)
		}
		e.publish(buf)
		if err := stream.Write(); err != nil {
			// output underflow under load is survivable
			e.logger.Debug("stream write", "err", err)
		}
	}
}

func (e *engine) stop() {
	close(e.quit)
}

// publish hands a copy of the latest buffer to the scope, dropping it
// if the scope is behind.
func (e *engine) publish(buf []float32) {
	if e.frames == nil {
		return
	}
	select {
	case e.frames <- append([]float32(nil), buf...):
	default:
	}
}

func clip(s float32) float32 {
	switch {
	case s > 1:
		return 1
	case s < -1:
		return -1
	}
	return s
}
