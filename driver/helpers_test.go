package driver

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/p47t/chip8/v2"
)

// trace is a call log shared by the fakes so that tests can check the order
// of operations across the core and the surface.
type trace []string

func (t *trace) add(format string, args ...any) {
	*t = append(*t, fmt.Sprintf(format, args...))
}

var errFault = errors.New("fake fault")

type fakeCore struct {
	tr *trace

	rom     []byte
	loads   int
	steps   int
	ticks   int
	pixels  []bool
	faultAt int // fail the n-th Step call (1-based), 0 never
}

func newFakeCore(tr *trace) *fakeCore {
	return &fakeCore{
		tr:     tr,
		pixels: make([]bool, chip8.DisplayWidth*chip8.DisplayHeight),
	}
}

func (c *fakeCore) Load(rom []byte) error {
	c.loads++
	c.rom = rom
	return nil
}

func (c *fakeCore) Step() error {
	c.steps++
	if c.faultAt != 0 && c.steps == c.faultAt {
		c.tr.add("fault")
		return errFault
	}
	c.tr.add("step")
	return nil
}

func (c *fakeCore) TickTimers() {
	c.ticks++
	c.tr.add("tick")
}

func (c *fakeCore) KeyEvent(key chip8.Key, pressed bool) {
	c.tr.add("key %X %t", key, pressed)
}

func (c *fakeCore) Display() []bool {
	return c.pixels
}

type paintOp struct {
	Op    string
	Rect  image.Rectangle
	Color color.RGBA
}

type recSurface struct {
	tr *trace

	ops        []paintOp
	presents   int
	presentErr error
}

func (s *recSurface) Clear(c color.RGBA) {
	s.ops = append(s.ops, paintOp{Op: "clear", Color: c})
	s.tr.add("clear")
}

func (s *recSurface) FillRect(r image.Rectangle, c color.RGBA) {
	s.ops = append(s.ops, paintOp{Op: "fill", Rect: r, Color: c})
}

func (s *recSurface) Present() error {
	s.presents++
	s.tr.add("present")
	return s.presentErr
}

func (s *recSurface) fills() []paintOp {
	var fills []paintOp
	for _, op := range s.ops {
		if op.Op == "fill" {
			fills = append(fills, op)
		}
	}
	return fills
}

// fakeHost replays a fixed sequence of key samples, then reports the window
// as closed.
type fakeHost struct {
	recSurface
	samples []KeySet
	polls   int
	closed  bool
}

func (h *fakeHost) Poll() (KeySet, bool) {
	if h.polls >= len(h.samples) {
		return 0, false
	}
	keys := h.samples[h.polls]
	h.polls++
	return keys, true
}

func (h *fakeHost) Close() error {
	h.closed = true
	return nil
}

func nullLogger() (*logrus.Logger, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.DebugLevel)
	return log, hook
}
