//go:build !scope

package main

import "errors"

func runScope(frames <-chan []float32, quit <-chan struct{}) error {
	return errors.New("built without the scope window, rebuild with -tags scope")
}
