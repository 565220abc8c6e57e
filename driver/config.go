package driver

import (
	"image/color"

	"github.com/p47t/chip8/v2"
)

const (
	// TicksPerFrame is the number of instructions executed per displayed
	// frame. At 60 frames per second this is roughly a 1.2 kHz machine.
	TicksPerFrame = 20

	// Scale is the side, in window pixels, of one CHIP-8 pixel.
	Scale = 30

	WindowTitle = "CHIP-8"
)

var (
	Background = RGB(0x1E1E2E)
	Foreground = RGB(0x89B4FA)
)

// RGB returns the opaque color for a 0xRRGGBB value.
func RGB(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xFF}
}

// Config holds the fixed parameters of a run.
type Config struct {
	TicksPerFrame int
	Scale         int
	Background    color.RGBA
	Foreground    color.RGBA
	Keymap        Keymap
}

func DefaultConfig() Config {
	return Config{
		TicksPerFrame: TicksPerFrame,
		Scale:         Scale,
		Background:    Background,
		Foreground:    Foreground,
		Keymap:        DefaultKeymap,
	}
}

// WindowSize returns the window dimensions for the configured scale.
func (cfg Config) WindowSize() (w, h int) {
	return chip8.DisplayWidth * cfg.Scale, chip8.DisplayHeight * cfg.Scale
}
