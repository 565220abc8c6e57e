package chip8

import (
	"errors"

	tm "github.com/buger/goterm"
)

// Key identifies one of the 16 keypad buttons, 0x0 to 0xF.
type Key uint8

const NumKeys = 16

var ErrAlreadyLoaded = errors.New("rom already loaded")

// System is a complete CHIP-8 machine: CPU, memory, frame buffer, keypad
// state and the delay and sound timers.
type System struct {
	cpu CPU
	mem Memory
	gfx Graphics

	keys [NumKeys]bool

	delayTimer uint8
	soundTimer uint8

	loaded bool
}

// NewSystem returns a powered up machine with an empty program memory.
func NewSystem() *System {
	sys := &System{}
	sys.Initialize()
	return sys
}

func (sys *System) Initialize() {
	sys.cpu.reset()
	sys.mem.clear()
	sys.gfx.clear()
	sys.keys = [NumKeys]bool{}
	sys.delayTimer = 0
	sys.soundTimer = 0
	sys.loaded = false
}

// Print dumps the CPU registers to the terminal.
func (sys *System) Print() {
	tm.Clear()
	tm.MoveCursor(1, 1)

	sys.cpu.Print(tm.Screen)
	tm.Printf("DT = %d, ST = %d\n", sys.delayTimer, sys.soundTimer)

	tm.Flush()
}

// Load copies rom into program memory at StartAddress. It can only be called
// once per Initialize.
func (sys *System) Load(rom []byte) error {
	if sys.loaded {
		return ErrAlreadyLoaded
	}
	if err := sys.mem.loadROM(rom); err != nil {
		return err
	}
	sys.loaded = true
	return nil
}

// Step executes one instruction.
func (sys *System) Step() error {
	return sys.cpu.cycle(sys)
}

// TickTimers decrements the delay and sound timers if they are running.
func (sys *System) TickTimers() {
	if sys.delayTimer > 0 {
		sys.delayTimer--
	}
	if sys.soundTimer > 0 {
		sys.soundTimer--
	}
}

// KeyEvent records a keypad state change. Keys outside 0x0-0xF are ignored.
func (sys *System) KeyEvent(key Key, pressed bool) {
	if key >= NumKeys {
		return
	}
	sys.keys[key] = pressed
}

// Display returns a read-only view of the frame buffer.
func (sys *System) Display() []bool {
	return sys.gfx.pixels[:]
}

// Pixel reports whether the pixel at (x, y) is lit. Coordinates off the
// DisplayWidth×DisplayHeight screen read as unlit.
func (sys *System) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return sys.gfx.getPixel(x, y)
}

func (sys *System) Cycles() int64 {
	return sys.cpu.cycles
}

func (sys *System) DelayTimer() uint8 { return sys.delayTimer }
func (sys *System) SoundTimer() uint8 { return sys.soundTimer }
