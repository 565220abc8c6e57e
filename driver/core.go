// Package driver runs a CHIP-8 core in real time: it samples host keys once
// per frame, executes a fixed instruction budget, ticks the timers and paints
// the frame buffer.
package driver

import (
	"image"
	"image/color"

	"github.com/p47t/chip8/v2"
)

// Core is the interpreter as seen by the frame loop.
type Core interface {
	// Load copies a program image into memory. Called once, before any Step.
	Load(rom []byte) error
	// Step executes one instruction. A non-nil error is a machine fault.
	Step() error
	// TickTimers decrements the delay and sound timers by one.
	TickTimers()
	KeyEvent(key chip8.Key, pressed bool)
	// Display returns the frame buffer, DisplayWidth*DisplayHeight pixels
	// in row-major order. The driver never writes to it.
	Display() []bool
}

// Surface is a drawable, presentable window area.
type Surface interface {
	Clear(c color.RGBA)
	FillRect(r image.Rectangle, c color.RGBA)
	// Present shows the frame and blocks until the host is ready for the
	// next one.
	Present() error
}

// Host is a window backend.
type Host interface {
	Surface

	// Poll pumps the host event queue and returns the keys currently held
	// down. open is false once the user asked to close the window.
	Poll() (keys KeySet, open bool)
	Close() error
}
