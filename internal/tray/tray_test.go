/*
MIT License

Copyright (c) 2025 Yuval Adar <adary@adary.org>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package tray

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"sync"
	"testing"
	"time"
)

func TestIconIsValidPNG(t *testing.T) {
	data, err := Icon()
	if err != nil {
		t.Fatalf("Icon failed: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Icon is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() != iconSize || img.Bounds().Dy() != iconSize {
		t.Errorf("Expected %dx%d icon, got %v", iconSize, iconSize, img.Bounds())
	}

	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("Expected transparent corner")
	}
	if _, _, _, a := img.At(iconSize/2, 2).RGBA(); a == 0 {
		t.Error("Expected opaque edge midpoint")
	}

	white := 0
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r == 0xFFFF && g == 0xFFFF && b == 0xFFFF {
				white++
			}
		}
	}
	if white == 0 {
		t.Error("Expected glyph pixels in the icon")
	}
}

func TestInsideRounded(t *testing.T) {
	if insideRounded(0, 0, 64, 14) {
		t.Error("Corner should be outside")
	}
	if !insideRounded(32, 32, 64, 14) {
		t.Error("Center should be inside")
	}
	if !insideRounded(0, 32, 64, 14) {
		t.Error("Edge midpoint should be inside")
	}
}

type fakeLauncher struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeLauncher) Launch() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func TestDispatcherHandlesEvents(t *testing.T) {
	launcher := &fakeLauncher{err: errors.New("no terminal")}
	quitCalled := false
	d := NewDispatcher(launcher, func() { quitCalled = true })

	events := make(chan Event, 3)
	events <- EventOpen
	events <- EventOpen
	events <- EventQuit

	done := make(chan struct{})
	go func() {
		d.Run(context.Background(), events)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatcher did not stop after quit")
	}

	if launcher.calls != 2 {
		t.Errorf("Expected 2 launches despite errors, got %d", launcher.calls)
	}
	if !quitCalled {
		t.Error("Expected quit callback")
	}
}

func TestDispatcherStopsOnCancel(t *testing.T) {
	d := NewDispatcher(&fakeLauncher{}, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		d.Run(ctx, make(chan Event))
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatcher did not stop on cancel")
	}
}

func TestEventString(t *testing.T) {
	if EventOpen.String() != "open" || EventQuit.String() != "quit" {
		t.Error("Unexpected event names")
	}
}

func TestTerminalLauncher(t *testing.T) {
	if err := (TerminalLauncher{UIPath: "/bin/true"}).Launch(); err == nil {
		t.Error("Expected error without terminal")
	}
	if err := (TerminalLauncher{Terminal: "true"}).Launch(); err == nil {
		t.Error("Expected error without ui path")
	}
	if err := (TerminalLauncher{Terminal: "/nonexistent/terminal", UIPath: "clipvault"}).Launch(); err == nil {
		t.Error("Expected error for missing terminal")
	}
}

func TestFindUI(t *testing.T) {
	if _, err := FindUI("sh"); err != nil {
		t.Errorf("Expected sh on PATH: %v", err)
	}
	if _, err := FindUI("clipvault-definitely-missing"); err == nil {
		t.Error("Expected error for missing binary")
	}
}
