package chip8

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
)

const (
	StartAddress = 0x200
	RegCarry     = 0xF
	StackDepth   = 16
)

var (
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrMemoryBounds   = errors.New("memory access out of bounds")
)

type CPU struct {
	V     [16]uint8 // general-purpose registers
	I     uint16    // index register
	PC    uint16    // program counter
	SP    uint16    // stack pointer
	Stack [StackDepth]uint16

	cycles int64
}

func (cpu *CPU) Print(w io.Writer) {
	fmt.Fprintf(w, "Cycles #%d\n", cpu.cycles)
	fmt.Fprintf(w, "PC = 0x%04x, SP = %d, I = 0x%04x\n", cpu.PC, cpu.SP, cpu.I)
	for i := 0; i < len(cpu.V); i += 4 {
		fmt.Fprintf(w, "V%X = 0x%02x, V%X = 0x%02x, V%X = 0x%02x, V%X = 0x%02x\n",
			i, cpu.V[i], i+1, cpu.V[i+1], i+2, cpu.V[i+2], i+3, cpu.V[i+3])
	}
}

func (cpu *CPU) reset() {
	*cpu = CPU{PC: StartAddress}
}

// cycle executes the instruction at PC. On error the program counter is left
// on the faulting instruction.
func (cpu *CPU) cycle(sys *System) error {
	if err := cpu.step(sys); err != nil {
		return err
	}
	cpu.cycles++
	return nil
}

func (cpu *CPU) step(sys *System) error {
	opc, err := sys.mem.fetchOpcode(cpu.PC)
	if err != nil {
		return err
	}

	x := uint8((opc & 0x0F00) >> 8)
	y := uint8((opc & 0x00F0) >> 4)
	nn := uint8(opc & 0x00FF)
	nnn := opc & 0x0FFF
	next := cpu.PC + 2

	switch opc & 0xF000 {
	case 0x0000:
		switch opc {
		case 0x00E0: // 00E0: clear the screen
			sys.gfx.clear()
		case 0x00EE: // 00EE: return from subroutine
			next, err = cpu.ret()
		default:
			// 0NNN: RCA 1802 machine code routine, ignored by interpreters.
		}

	case 0x1000: // 1NNN: jump to NNN
		next = nnn

	case 0x2000: // 2NNN: call subroutine at NNN
		next, err = cpu.call(nnn)

	case 0x3000: // 3XNN: skip if VX == NN
		next = cpu.skipIf(cpu.V[x] == nn)

	case 0x4000: // 4XNN: skip if VX != NN
		next = cpu.skipIf(cpu.V[x] != nn)

	case 0x5000: // 5XY0: skip if VX == VY
		next = cpu.skipIf(cpu.V[x] == cpu.V[y])

	case 0x6000: // 6XNN: VX = NN
		cpu.V[x] = nn

	case 0x7000: // 7XNN: VX += NN, carry untouched
		cpu.V[x] += nn

	case 0x8000:
		err = cpu.alu(opc, x, y)

	case 0x9000: // 9XY0: skip if VX != VY
		next = cpu.skipIf(cpu.V[x] != cpu.V[y])

	case 0xA000: // ANNN: I = NNN
		cpu.I = nnn

	case 0xB000: // BNNN: jump to NNN + V0
		next = nnn + uint16(cpu.V[0])

	case 0xC000: // CXNN: VX = rand & NN
		cpu.V[x] = uint8(rand.Uint32()) & nn

	case 0xD000: // DXYN: draw N rows of sprite data at I to (VX, VY)
		err = cpu.draw(sys, x, y, uint8(opc&0x000F))

	case 0xE000:
		key := cpu.V[x] & 0xF
		switch nn {
		case 0x9E: // EX9E: skip if key VX is pressed
			next = cpu.skipIf(sys.keys[key])
		case 0xA1: // EXA1: skip if key VX is not pressed
			next = cpu.skipIf(!sys.keys[key])
		default:
			err = unknownOp(opc, cpu.PC)
		}

	case 0xF000:
		next, err = cpu.misc(sys, opc, x, next)

	default:
		err = unknownOp(opc, cpu.PC)
	}

	if err != nil {
		return err
	}
	cpu.PC = next
	return nil
}

func (cpu *CPU) alu(opc uint16, x, y uint8) error {
	switch opc & 0x000F {
	case 0x0: // 8XY0
		cpu.V[x] = cpu.V[y]
	case 0x1: // 8XY1
		cpu.V[x] |= cpu.V[y]
	case 0x2: // 8XY2
		cpu.V[x] &= cpu.V[y]
	case 0x3: // 8XY3
		cpu.V[x] ^= cpu.V[y]
	case 0x4: // 8XY4: VF = carry
		sum := uint16(cpu.V[x]) + uint16(cpu.V[y])
		cpu.V[x] = uint8(sum)
		cpu.setCarry(sum > 0xFF)
	case 0x5: // 8XY5: VF = no borrow
		noBorrow := cpu.V[x] >= cpu.V[y]
		cpu.V[x] -= cpu.V[y]
		cpu.setCarry(noBorrow)
	case 0x6: // 8XY6: VF = shifted out bit
		lsb := cpu.V[x] & 0x01
		cpu.V[x] >>= 1
		cpu.V[RegCarry] = lsb
	case 0x7: // 8XY7: VX = VY - VX, VF = no borrow
		noBorrow := cpu.V[y] >= cpu.V[x]
		cpu.V[x] = cpu.V[y] - cpu.V[x]
		cpu.setCarry(noBorrow)
	case 0xE: // 8XYE: VF = shifted out bit
		msb := cpu.V[x] >> 7
		cpu.V[x] <<= 1
		cpu.V[RegCarry] = msb
	default:
		return unknownOp(opc, cpu.PC)
	}
	return nil
}

func (cpu *CPU) misc(sys *System, opc uint16, x uint8, next uint16) (uint16, error) {
	switch opc & 0x00FF {
	case 0x07: // FX07: VX = delay timer
		cpu.V[x] = sys.delayTimer
	case 0x0A: // FX0A: wait for a key press, store it in VX
		for k, down := range sys.keys {
			if down {
				cpu.V[x] = uint8(k)
				return next, nil
			}
		}
		return cpu.PC, nil // try again next cycle
	case 0x15: // FX15: delay timer = VX
		sys.delayTimer = cpu.V[x]
	case 0x18: // FX18: sound timer = VX
		sys.soundTimer = cpu.V[x]
	case 0x1E: // FX1E: I += VX
		addr := cpu.I + uint16(cpu.V[x])
		cpu.setCarry(addr > 0x0FFF)
		cpu.I = addr & 0x0FFF
	case 0x29: // FX29: I = address of the font glyph for VX
		cpu.I = FontAddress + uint16(cpu.V[x]&0xF)*glyphSize
	case 0x33: // FX33: BCD of VX at I, I+1, I+2
		buf, err := sys.mem.slice(cpu.I, 3)
		if err != nil {
			return 0, err
		}
		buf[0] = cpu.V[x] / 100
		buf[1] = (cpu.V[x] / 10) % 10
		buf[2] = cpu.V[x] % 10
	case 0x55: // FX55: store V0..VX at I
		buf, err := sys.mem.slice(cpu.I, int(x)+1)
		if err != nil {
			return 0, err
		}
		copy(buf, cpu.V[:x+1])
	case 0x65: // FX65: load V0..VX from I
		buf, err := sys.mem.slice(cpu.I, int(x)+1)
		if err != nil {
			return 0, err
		}
		copy(cpu.V[:x+1], buf)
	default:
		return 0, unknownOp(opc, cpu.PC)
	}
	return next, nil
}

func (cpu *CPU) call(addr uint16) (uint16, error) {
	if cpu.SP >= StackDepth {
		return 0, fmt.Errorf("%w: call to 0x%03x at 0x%03x", ErrStackOverflow, addr, cpu.PC)
	}
	cpu.Stack[cpu.SP] = cpu.PC + 2
	cpu.SP++
	return addr, nil
}

func (cpu *CPU) ret() (uint16, error) {
	if cpu.SP == 0 {
		return 0, fmt.Errorf("%w: return at 0x%03x", ErrStackUnderflow, cpu.PC)
	}
	cpu.SP--
	return cpu.Stack[cpu.SP], nil
}

func (cpu *CPU) skipIf(cond bool) uint16 {
	if cond {
		return cpu.PC + 4
	}
	return cpu.PC + 2
}

func (cpu *CPU) setCarry(set bool) {
	if set {
		cpu.V[RegCarry] = 1
	} else {
		cpu.V[RegCarry] = 0
	}
}

// draw XORs the sprite rows at I onto the display. VF is set when any lit
// pixel is turned off. I is left unchanged.
func (cpu *CPU) draw(sys *System, x, y, n uint8) error {
	sprite, err := sys.mem.slice(cpu.I, int(n))
	if err != nil {
		return err
	}
	cpu.setCarry(sys.gfx.draw(sprite, cpu.V[x], cpu.V[y]))
	return nil
}

func unknownOp(opc, pc uint16) error {
	return fmt.Errorf("%w: 0x%04x at 0x%03x", ErrUnknownOpcode, opc, pc)
}
