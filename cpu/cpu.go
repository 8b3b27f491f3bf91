// Package cpu implements the instruction engine: an 8-bit register file,
// a 4-bit flag register, and a fetch/decode/execute loop driven once per
// frame budget.
package cpu

import (
	"fmt"

	"github.com/mhollis/goboycore/memmap"
)

// FrameCycles is the cycle budget of one frame; StartCycle resets the
// running counter back to zero once it reaches this value.
const FrameCycles = 69905

// Register indices used by the 3-bit register-decode fields embedded in
// many opcodes. Index 6 does not name a register: it means "memory at
// HL".
const (
	RegB = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegHLMem
	RegA
)

// Register-pair indices used by 16-bit load/inc/dec/add opcodes.
const (
	PairBC = iota
	PairDE
	PairHL
	PairSP
)

// Processor holds the complete register file, the flag register, the
// stack pointer, the program counter, a monotonic cycle counter, and the
// stopped flag, plus the memory map it executes against.
type Processor struct {
	B, C, D, E, H, L, A uint8
	F                   uint8
	SP                  uint16
	pc                  int
	cycles              int
	stopped             bool

	mm *memmap.MemoryMap
}

// New returns a Processor with all registers zeroed, PC at the start of
// the cartridge, and the joypad register's unpressed default (0x30)
// latched at 0xFF00.
func New(mm *memmap.MemoryMap) *Processor {
	p := &Processor{mm: mm}
	mm.StoreFull(0xFF00, 0x30)
	return p
}

// PC returns the current program counter, for the debugger.
func (p *Processor) PC() int { return p.pc }

// SetPC overrides the program counter, for the debugger.
func (p *Processor) SetPC(pc int) { p.pc = pc }

// Cycles returns the running cycle counter within the current frame
// budget.
func (p *Processor) Cycles() int { return p.cycles }

// Stopped reports whether a STOP instruction has halted the processor.
func (p *Processor) Stopped() bool { return p.stopped }

// MemoryMap returns the processor's memory map, for the debugger.
func (p *Processor) MemoryMap() *memmap.MemoryMap { return p.mm }

func (p *Processor) String() string {
	return fmt.Sprintf(
		"B,C,D,E,H,L,A: %02X %02X %02X %02X %02X %02X %02X; PC: %04X SP: %04X F: %s",
		p.B, p.C, p.D, p.E, p.H, p.L, p.A, p.pc, p.SP, flagString(p.F),
	)
}

// reg8 returns the value named by a 3-bit register-decode field. Index
// RegHLMem reads memory at HL rather than a register.
func (p *Processor) reg8(idx uint8) uint8 {
	switch idx & 0x7 {
	case RegB:
		return p.B
	case RegC:
		return p.C
	case RegD:
		return p.D
	case RegE:
		return p.E
	case RegH:
		return p.H
	case RegL:
		return p.L
	case RegHLMem:
		return p.mm.GetFull(p.hl())
	case RegA:
		return p.A
	default:
		panic("should never happen: register index out of range")
	}
}

// setReg8 stores v into the register (or HL memory) named by idx.
func (p *Processor) setReg8(idx uint8, v uint8) {
	switch idx & 0x7 {
	case RegB:
		p.B = v
	case RegC:
		p.C = v
	case RegD:
		p.D = v
	case RegE:
		p.E = v
	case RegH:
		p.H = v
	case RegL:
		p.L = v
	case RegHLMem:
		p.mm.StoreFull(p.hl(), v)
	case RegA:
		p.A = v
	default:
		panic("should never happen: register index out of range")
	}
}

func (p *Processor) bc() uint16 { return uint16(p.B)<<8 | uint16(p.C) }
func (p *Processor) de() uint16 { return uint16(p.D)<<8 | uint16(p.E) }
func (p *Processor) hl() uint16 { return uint16(p.H)<<8 | uint16(p.L) }

func (p *Processor) setBC(v uint16) { p.B, p.C = uint8(v>>8), uint8(v) }
func (p *Processor) setDE(v uint16) { p.D, p.E = uint8(v>>8), uint8(v) }
func (p *Processor) setHL(v uint16) { p.H, p.L = uint8(v>>8), uint8(v) }

// pair returns the 16-bit value named by a register-pair index (BC, DE,
// HL, or SP).
func (p *Processor) pair(idx uint8) uint16 {
	switch idx & 0x3 {
	case PairBC:
		return p.bc()
	case PairDE:
		return p.de()
	case PairHL:
		return p.hl()
	case PairSP:
		return p.SP
	default:
		panic("should never happen: register pair index out of range")
	}
}

// setPair stores v into the register pair (or SP) named by idx.
func (p *Processor) setPair(idx uint8, v uint16) {
	switch idx & 0x3 {
	case PairBC:
		p.setBC(v)
	case PairDE:
		p.setDE(v)
	case PairHL:
		p.setHL(v)
	case PairSP:
		p.SP = v
	default:
		panic("should never happen: register pair index out of range")
	}
}

// fetchByte reads the cartridge byte at pc and advances pc by one.
func (p *Processor) fetchByte(cartLen int) uint8 {
	b := p.cartByte(cartLen, p.pc)
	p.pc++
	return b
}

// fetchWord reads a 16-bit immediate at pc, high byte first, and advances
// pc by two.
func (p *Processor) fetchWord(cartLen int) uint16 {
	hi := p.fetchByte(cartLen)
	lo := p.fetchByte(cartLen)
	return uint16(hi)<<8 | uint16(lo)
}

// cartByte reads byte idx from the cartridge via the memory map's
// cartridge-shadowed region.
func (p *Processor) cartByte(cartLen, idx int) uint8 {
	if idx < 0 || idx >= cartLen {
		panic("should never happen: program counter ran past cartridge end")
	}
	return p.mm.GetFull(uint16(idx))
}

// StartCycle runs the fetch/decode/execute loop until either the frame
// cycle budget is exhausted, the processor is stopped, or the program
// counter reaches the end of the cartridge. cartLen bounds pc; it is
// supplied by the caller rather than owned by Processor.
func (p *Processor) StartCycle(cartLen int) {
	if p.cycles >= FrameCycles {
		p.cycles = 0
	}

	for p.cycles < FrameCycles && !p.stopped && p.pc < cartLen {
		p.Step(cartLen)
	}

	if p.cycles >= FrameCycles {
		p.cycles = 0
	}
}

// Step decodes and executes exactly one instruction, advancing pc and
// the cycle counter.
func (p *Processor) Step(cartLen int) {
	opcode := p.fetchByte(cartLen)
	p.execute(opcode, cartLen)
}
