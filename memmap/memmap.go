// Package memmap implements the 64 KiB address-space intermediary that
// mediates cartridge reads, work-RAM access, video-memory writes, and
// memory-mapped I/O (including the joypad matrix register). It owns the
// PPU instance and mirrors video-memory, OAM and LCDC writes into it;
// reads are served from the memory map's own array.
package memmap

import (
	"github.com/mhollis/goboycore/cartridge"
	"github.com/mhollis/goboycore/ppu"
)

// Address-space regions with special semantics.
const (
	CartridgeEnd = 0x7FFF
	VRAMStart    = 0x8000
	VRAMEnd      = 0x9FFF
	OAMStart     = 0xFE00
	OAMEnd       = 0xFE9F
	JoypadReg    = 0xFF00
	LCDCReg      = 0xFF40
)

// MemoryMap is a flat 64 KiB address space. It exclusively owns the PPU
// and a read-only reference to the cartridge for the duration of a run.
type MemoryMap struct {
	mem  [0x10000]byte
	cart *cartridge.Cartridge
	ppu  *ppu.PPU

	buttons uint8 // low nibble: A,B,Select,Start; 0 = pressed
	dPad    uint8 // low nibble: Right,Left,Up,Down; 0 = pressed
}

// New builds a MemoryMap over cart, shadowing the cartridge's first 32 KiB
// into the backing array so unmapped reads in that range come back
// without a cartridge round trip.
func New(cart *cartridge.Cartridge) *MemoryMap {
	mm := &MemoryMap{cart: cart, ppu: ppu.New()}
	for i := 0; i <= CartridgeEnd && i < cart.Len(); i++ {
		mm.mem[i] = cart.At(i)
	}
	return mm
}

// PPU returns the memory map's owned picture-processing unit.
func (mm *MemoryMap) PPU() *ppu.PPU {
	return mm.ppu
}

// GetFull reads one byte from the full 64 KiB address space.
func (mm *MemoryMap) GetFull(addr uint16) uint8 {
	if addr == JoypadReg {
		return mm.joypadValue()
	}
	return mm.mem[addr]
}

// StoreFull writes one byte into the full 64 KiB address space, mirroring
// the write into the PPU's shadow buffers when addr falls in the
// video-memory, OAM, or LCDC ranges.
func (mm *MemoryMap) StoreFull(addr uint16, v uint8) {
	mm.mem[addr] = v

	switch {
	case addr >= VRAMStart && addr <= VRAMEnd:
		mm.ppu.WriteTileData(addr-VRAMStart, v)
	case addr >= OAMStart && addr <= OAMEnd:
		mm.ppu.WriteOAM(addr-OAMStart, v)
	case addr == LCDCReg:
		mm.ppu.SetLCDC(v)
	}
}

// GetPage0xFF reads the zero-page byte at 0xFF00|lo, used by the LDH
// opcodes.
func (mm *MemoryMap) GetPage0xFF(lo uint8) uint8 {
	return mm.GetFull(0xFF00 | uint16(lo))
}

// StorePage0xFF writes the zero-page byte at 0xFF00|lo.
func (mm *MemoryMap) StorePage0xFF(lo uint8, v uint8) {
	mm.StoreFull(0xFF00|uint16(lo), v)
}

// StoreButtons updates the 4-bit button matrix (A, B, Select, Start from
// bit 0; 0 = pressed).
func (mm *MemoryMap) StoreButtons(b uint8) {
	mm.buttons = b & 0x0F
}

// StoreDPad updates the 4-bit d-pad matrix (Right, Left, Up, Down from bit
// 0; 0 = pressed).
func (mm *MemoryMap) StoreDPad(d uint8) {
	mm.dPad = d & 0x0F
}

// joypadValue computes the 0xFF00 register from the currently selected
// matrix.
func (mm *MemoryMap) joypadValue() uint8 {
	switch mm.mem[JoypadReg] & 0x30 {
	case 0x30:
		return 0x3F
	case 0x20:
		return 0x20 | (mm.dPad & 0x0F)
	case 0x10:
		return 0x10 | (mm.buttons & 0x0F)
	default: // 0x00, both selected
		return 0x00
	}
}
