//go:build scope

package main

import (
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	scopeW = 640
	scopeH = 480
)

// runScope opens a window and draws each published buffer as a
// polyline, roughly at the display rate. Closing the window or pressing
// escape closes only the scope; audio keeps running.
func runScope(frames <-chan []float32, quit <-chan struct{}) error {
	runtime.LockOSThread()
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return err
	}
	defer sdl.Quit()
	window, err := sdl.CreateWindow("twen", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		scopeW, scopeH, sdl.WINDOW_SHOWN)
	if err != nil {
		return err
	}
	defer window.Destroy()
	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	points := make([]sdl.Point, 0, scopeW)
	for {
		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			switch ev := ev.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				if ev.Keysym.Sym == sdl.K_ESCAPE {
					return nil
				}
			}
		}

		var frame []float32
		select {
		case <-quit:
			return nil
		case frame = <-frames:
		}

		renderer.SetDrawColor(0, 0, 0, 255)
		renderer.Clear()
		renderer.SetDrawColor(0, 200, 55, 255)
		points = points[:0]
		for x := 0; x < scopeW; x++ {
			i := x * len(frame) / scopeW
			y := scopeH/2 - int(frame[i]*scopeH/2.5)
			points = append(points, sdl.Point{X: int32(x), Y: int32(y)})
		}
		renderer.DrawLines(points)
		renderer.Present()
	}
}
