// Package ppu implements the picture-processing unit: it converts video
// memory plus the object-attribute table into a pixel stream.
package ppu

// Display resolution.
const (
	Width  = 160
	Height = 144
)

// Addressable sizes of the PPU's own buffers. TileDataSize spans the
// video-memory range inclusively (0x8000-0x9FFF) so that a write to the
// last valid address does not overrun the buffer.
const (
	TileDataSize = VRAMEnd - VRAMStart + 1
	OAMSize      = 160

	VRAMStart = 0x8000
	VRAMEnd   = 0x9FFF
)

// LCDC bit layout.
const (
	LCDCBGMapArea  = 0x08 // background tile map area select
	LCDCBGDataArea = 0x10 // background tile data area select
	LCDCObjSize    = 0x04 // 0: 8x8 sprites, 1: 8x16 sprites
)

// PPU holds tile data (video memory 0x8000-0x9FFF), object-attribute
// memory (0xFE00-0xFE9F), the LCD-control register, and the fixed
// palette. It is owned exclusively by a memmap.MemoryMap.
type PPU struct {
	tileData [TileDataSize]byte
	oam      [OAMSize]byte
	lcdc     uint8
}

// New returns a PPU with zeroed tile/OAM memory and lcdc.
func New() *PPU {
	return &PPU{}
}

// WriteTileData stores v at the given offset into the tile-data buffer
// (offset = addr - 0x8000).
func (p *PPU) WriteTileData(offset uint16, v uint8) {
	p.tileData[int(offset)%len(p.tileData)] = v
}

// TileByte returns the tile-data buffer's raw byte at offset, mainly for
// tests and the debugger.
func (p *PPU) TileByte(offset uint16) uint8 {
	return p.tileData[int(offset)%len(p.tileData)]
}

// WriteOAM stores v at the given offset into OAM (offset = addr - 0xFE00).
func (p *PPU) WriteOAM(offset uint16, v uint8) {
	p.oam[int(offset)%len(p.oam)] = v
}

// OAMByte returns OAM's raw byte at offset.
func (p *PPU) OAMByte(offset uint16) uint8 {
	return p.oam[int(offset)%len(p.oam)]
}

// SetLCDC stores the LCD-control register.
func (p *PPU) SetLCDC(v uint8) {
	p.lcdc = v
}

// LCDC returns the current LCD-control register.
func (p *PPU) LCDC() uint8 {
	return p.lcdc
}

// bgMapBase returns the base address of the active background tile map.
// A set bit selects 0x9800.
func (p *PPU) bgMapBase() uint16 {
	if p.lcdc&LCDCBGMapArea != 0 {
		return 0x9800
	}
	return 0x9C00
}

// bgDataBase returns the base address of the active background tile
// data area. A set bit selects 0x8000.
func (p *PPU) bgDataBase() uint16 {
	if p.lcdc&LCDCBGDataArea != 0 {
		return 0x8000
	}
	return 0x8800
}

// readVRAM returns the tile-data byte at the absolute VRAM address addr,
// wrapping modulo the buffer length.
func (p *PPU) readVRAM(addr uint16) uint8 {
	return p.tileData[int(addr-VRAMStart)%len(p.tileData)]
}

// tileAt decodes the 16-byte tile whose first byte lives at the absolute
// VRAM address base into 8 rows of 2-bit color indices.
func (p *PPU) tileAt(base uint16) [8][8]uint8 {
	var rows [8][8]uint8
	for r := 0; r < 8; r++ {
		lo := p.readVRAM(base + uint16(r*2))
		hi := p.readVRAM(base + uint16(r*2+1))
		for c := 0; c < 8; c++ {
			bit := uint(7 - c)
			rows[r][c] = (hi>>bit)&1<<1 | (lo>>bit)&1
		}
	}
	return rows
}

// backgroundGrid decodes the first 0x300 map entries (32x24 tiles of 8x8
// pixels) into a 256x256 grid of two-bit color indices; rows 192-255 of
// the grid stay zero.
func (p *PPU) backgroundGrid() [256][256]uint8 {
	var grid [256][256]uint8

	mapBase := p.bgMapBase()
	dataBase := p.bgDataBase()

	for i := 0; i < 0x300; i++ {
		tileIndex := p.readVRAM(mapBase + uint16(i))
		tile := p.tileAt(dataBase + uint16(tileIndex)*16)

		tx := i % 32
		ty := i / 32
		for r := 0; r < 8; r++ {
			for c := 0; c < 8; c++ {
				grid[ty*8+r][tx*8+c] = tile[r][c]
			}
		}
	}

	return grid
}

// Background returns the background frame only: every pixel in
// 0..=Width x 0..=Height, with no sprite overlay. Kept alongside Screen
// for callers/tests that want the unmerged layer.
func (p *PPU) Background() []ColorPosition {
	grid := p.backgroundGrid()
	out := make([]ColorPosition, 0, (Width+1)*(Height+1))

	for y := 0; y <= Height; y++ {
		for x := 0; x <= Width; x++ {
			idx := grid[y%256][x%256]
			out = append(out, ColorPosition{X: x, Y: y, Color: paletteColor(idx)})
		}
	}

	return out
}

// Screen returns the composited frame: the background merged with the
// sprite layer, using bit 7 of a sprite's flags to decide whether it
// stays hidden behind a non-transparent background pixel.
func (p *PPU) Screen() []ColorPosition {
	grid := p.backgroundGrid()
	out := make([]ColorPosition, 0, (Width+1)*(Height+1))

	for y := 0; y <= Height; y++ {
		row := p.scanlineSprites(y)
		for x := 0; x <= Width; x++ {
			bgIdx := grid[y%256][x%256]

			if sc, behindBG, ok := p.spriteColorAt(x, y, row); ok && !(behindBG && bgIdx != 0) {
				out = append(out, ColorPosition{X: x, Y: y, Color: sc})
				continue
			}
			out = append(out, ColorPosition{X: x, Y: y, Color: paletteColor(bgIdx)})
		}
	}

	return out
}
