package main

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/p47t/chip8/v2/driver"
)

// A window surface is not tied to the vertical blank, so Present paces
// frames itself.
const sdlFrameTime = time.Second / 60

// sdlHost fills rectangles directly on the window surface.
type sdlHost struct {
	window  *sdl.Window
	surface *sdl.Surface

	taps driver.KeyLatch
	next time.Time
	err  error // first paint error of the current frame
}

var sdlKeys = map[sdl.Scancode]driver.HostKey{
	sdl.SCANCODE_1:      driver.HostKey1,
	sdl.SCANCODE_2:      driver.HostKey2,
	sdl.SCANCODE_3:      driver.HostKey3,
	sdl.SCANCODE_4:      driver.HostKey4,
	sdl.SCANCODE_Q:      driver.HostKeyQ,
	sdl.SCANCODE_W:      driver.HostKeyW,
	sdl.SCANCODE_E:      driver.HostKeyE,
	sdl.SCANCODE_R:      driver.HostKeyR,
	sdl.SCANCODE_A:      driver.HostKeyA,
	sdl.SCANCODE_S:      driver.HostKeyS,
	sdl.SCANCODE_D:      driver.HostKeyD,
	sdl.SCANCODE_F:      driver.HostKeyF,
	sdl.SCANCODE_Z:      driver.HostKeyZ,
	sdl.SCANCODE_X:      driver.HostKeyX,
	sdl.SCANCODE_C:      driver.HostKeyC,
	sdl.SCANCODE_V:      driver.HostKeyV,
	sdl.SCANCODE_SPACE:  driver.HostKeySpace,
	sdl.SCANCODE_ESCAPE: driver.HostKeyEscape,
}

func newSDLHost(cfg driver.Config) (*sdlHost, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("failed to initialize SDL: %v", err)
	}

	width, height := cfg.WindowSize()
	window, err := sdl.CreateWindow(driver.WindowTitle,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width), int32(height), sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("failed to create window: %v", err)
	}

	surface, err := window.GetSurface()
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to get window surface: %v", err)
	}

	return &sdlHost{
		window:  window,
		surface: surface,
		next:    time.Now(),
	}, nil
}

func (h *sdlHost) Poll() (driver.KeySet, bool) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			return 0, false
		case *sdl.KeyboardEvent:
			if hk, ok := sdlKeys[ev.Keysym.Scancode]; ok && ev.State == sdl.PRESSED {
				h.taps.Press(hk)
			}
		}
	}

	state := sdl.GetKeyboardState()
	held := driver.FoldKeys(sdlKeys, func(sc sdl.Scancode) bool {
		return int(sc) < len(state) && state[sc] != 0
	})
	keys := h.taps.Merge(held)
	return keys, !keys.Has(driver.HostKeyEscape)
}

func (h *sdlHost) mapRGB(c color.RGBA) uint32 {
	return sdl.MapRGB(h.surface.Format, c.R, c.G, c.B)
}

func (h *sdlHost) Clear(c color.RGBA) {
	if err := h.surface.FillRect(nil, h.mapRGB(c)); err != nil && h.err == nil {
		h.err = err
	}
}

func (h *sdlHost) FillRect(r image.Rectangle, c color.RGBA) {
	rect := &sdl.Rect{X: int32(r.Min.X), Y: int32(r.Min.Y), W: int32(r.Dx()), H: int32(r.Dy())}
	if err := h.surface.FillRect(rect, h.mapRGB(c)); err != nil && h.err == nil {
		h.err = err
	}
}

func (h *sdlHost) Present() error {
	err := h.err
	h.err = nil
	if err != nil {
		return fmt.Errorf("paint: %v", err)
	}
	if err := h.window.UpdateSurface(); err != nil {
		return fmt.Errorf("update window surface: %v", err)
	}

	h.next = h.next.Add(sdlFrameTime)
	if wait := time.Until(h.next); wait > 0 {
		time.Sleep(wait)
	} else {
		// Running late, don't try to catch up.
		h.next = time.Now()
	}
	return nil
}

func (h *sdlHost) Close() error {
	err := h.window.Destroy()
	sdl.Quit()
	return err
}
