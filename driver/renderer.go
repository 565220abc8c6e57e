package driver

import (
	"image"
	"image/color"

	"github.com/p47t/chip8/v2"
)

// Renderer paints a frame buffer as scaled filled squares.
type Renderer struct {
	Width, Height int
	Scale         int
	Background    color.RGBA
	Foreground    color.RGBA
}

func NewRenderer(cfg Config) *Renderer {
	return &Renderer{
		Width:      chip8.DisplayWidth,
		Height:     chip8.DisplayHeight,
		Scale:      cfg.Scale,
		Background: cfg.Background,
		Foreground: cfg.Foreground,
	}
}

// Render clears surf, fills one Scale×Scale square per set pixel and presents
// the result. Pixel i is at (i%Width, i/Width).
func (r *Renderer) Render(surf Surface, pixels []bool) error {
	if n := r.Width * r.Height; len(pixels) > n {
		pixels = pixels[:n]
	}
	surf.Clear(r.Background)
	for i, on := range pixels {
		if !on {
			continue
		}
		x := (i % r.Width) * r.Scale
		y := (i / r.Width) * r.Scale
		surf.FillRect(image.Rect(x, y, x+r.Scale, y+r.Scale), r.Foreground)
	}
	return surf.Present()
}
