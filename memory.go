package chip8

import (
	"errors"
	"fmt"
)

const (
	MemorySize  = 4096
	FontAddress = 0x000
	glyphSize   = 5

	// MaxROMSize is the largest program that fits between StartAddress and
	// the end of memory.
	MaxROMSize = MemorySize - StartAddress
)

var ErrROMTooLarge = errors.New("rom image too large")

var fontSet = [16 * glyphSize]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

type Memory [MemorySize]uint8

func (mem *Memory) clear() {
	*mem = Memory{}
	copy(mem[FontAddress:], fontSet[:])
}

func (mem *Memory) loadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, max %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}
	copy(mem[StartAddress:], rom)
	return nil
}

func (mem *Memory) fetchOpcode(pc uint16) (uint16, error) {
	if int(pc)+1 >= MemorySize {
		return 0, fmt.Errorf("%w: fetch at 0x%04x", ErrMemoryBounds, pc)
	}
	return uint16(mem[pc])<<8 | uint16(mem[pc+1]), nil
}

// slice returns n bytes of memory starting at addr.
func (mem *Memory) slice(addr uint16, n int) ([]uint8, error) {
	if int(addr)+n > MemorySize {
		return nil, fmt.Errorf("%w: %d bytes at 0x%04x", ErrMemoryBounds, n, addr)
	}
	return mem[addr : int(addr)+n], nil
}
