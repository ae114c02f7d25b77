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
	"context"

	"fyne.io/systray"

	"github.com/adaryorg/clipvault/internal/logging"
)

// Event is a tray menu action.
type Event int

const (
	EventOpen Event = iota
	EventQuit
)

func (e Event) String() string {
	switch e {
	case EventOpen:
		return "open"
	case EventQuit:
		return "quit"
	}
	return "unknown"
}

// Run shows the tray icon and blocks until ctx is cancelled. Menu clicks
// are sent on events. It must be called from the main goroutine.
func Run(ctx context.Context, events chan<- Event) {
	onReady := func() {
		if icon, err := Icon(); err != nil {
			logging.Warn("Failed to render tray icon: %v", err)
		} else {
			systray.SetIcon(icon)
		}
		systray.SetTitle("ClipVault")
		systray.SetTooltip("ClipVault clipboard history")

		open := systray.AddMenuItem("Open", "Open clipboard history")
		systray.AddSeparator()
		quit := systray.AddMenuItem("Quit", "Stop watching the clipboard")

		go func() {
			for {
				select {
				case <-open.ClickedCh:
					send(ctx, events, EventOpen)
				case <-quit.ClickedCh:
					send(ctx, events, EventQuit)
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Quit even when the tray host never became ready.
	go func() {
		<-ctx.Done()
		systray.Quit()
	}()

	systray.Run(onReady, func() {
		logging.Debug("Tray stopped")
	})
}

func send(ctx context.Context, events chan<- Event, e Event) {
	select {
	case events <- e:
	case <-ctx.Done():
	}
}

// Dispatcher acts on tray events.
type Dispatcher struct {
	launcher Launcher
	onQuit   func()
}

func NewDispatcher(launcher Launcher, onQuit func()) *Dispatcher {
	return &Dispatcher{launcher: launcher, onQuit: onQuit}
}

// Run handles events until EventQuit arrives, the channel closes or ctx
// is cancelled.
func (d *Dispatcher) Run(ctx context.Context, events <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			logging.Debug("Tray event: %s", e)
			switch e {
			case EventOpen:
				if err := d.launcher.Launch(); err != nil {
					logging.Error("Failed to open UI: %v", err)
				}
			case EventQuit:
				if d.onQuit != nil {
					d.onQuit()
				}
				return
			}
		}
	}
}
