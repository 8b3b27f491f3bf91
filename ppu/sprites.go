package ppu

import "sort"

// OAMEntryBytes is the byte size of one object-attribute entry: y, x,
// tile index, flags.
const OAMEntryBytes = 4

// MaxSprites is the number of entries in the object-attribute table.
const MaxSprites = OAMSize / OAMEntryBytes

// MaxSpritesPerLine is the hardware cap on sprites drawn per scanline.
const MaxSpritesPerLine = 10

// spritePatternBase is the fixed base address sprite tile data is always
// read from, regardless of the background data-area selection.
const spritePatternBase = 0x8000

// Sprite flag bits.
const (
	sprFlagPriority = 0x80 // 1: sprite hidden behind non-zero background pixel
	sprFlagYFlip    = 0x40
	sprFlagXFlip    = 0x20
	sprFlagPalette  = 0x10
)

// Sprite is one decoded object-attribute entry. Y and X are already
// offset by the hardware's -16/-8 screen-space adjustment.
type Sprite struct {
	Y, X      int
	TileIndex uint8
	Flags     uint8
	index     int // original OAM slot, used for scanline ordering
}

func (s Sprite) priorityBack() bool { return s.Flags&sprFlagPriority != 0 }
func (s Sprite) yFlip() bool        { return s.Flags&sprFlagYFlip != 0 }
func (s Sprite) xFlip() bool        { return s.Flags&sprFlagXFlip != 0 }
func (s Sprite) paletteSelect() bool {
	return s.Flags&sprFlagPalette != 0
}

// objectHeight returns 16 when LCDC selects 8x16 sprites, 8 otherwise.
func (p *PPU) objectHeight() int {
	if p.lcdc&LCDCObjSize != 0 {
		return 16
	}
	return 8
}

func (p *PPU) spriteAt(slot int) Sprite {
	base := uint16(slot * OAMEntryBytes)
	return Sprite{
		Y:         int(p.oam[base]) - 16,
		X:         int(p.oam[base+1]) - 8,
		TileIndex: p.oam[base+2],
		Flags:     p.oam[base+3],
		index:     slot,
	}
}

// GetAllSprites returns all 40 object-attribute entries, sorted by x
// ascending (global order, used by the debugger, not by scanline
// compositing which re-derives its own per-line subset).
func (p *PPU) GetAllSprites() []Sprite {
	out := make([]Sprite, MaxSprites)
	for i := range out {
		out[i] = p.spriteAt(i)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

// scanlineSprites selects the sprites that cover scanline y: OAM is
// scanned in its original index order and capped at the first
// MaxSpritesPerLine matches (matching real hardware's drop-further-
// sprites behavior), then that capped subset is sorted by x ascending
// for pixel-priority purposes.
func (p *PPU) scanlineSprites(y int) []Sprite {
	height := p.objectHeight()

	var line []Sprite
	for i := 0; i < MaxSprites && len(line) < MaxSpritesPerLine; i++ {
		s := p.spriteAt(i)
		if y >= s.Y && y < s.Y+height {
			line = append(line, s)
		}
	}

	sort.SliceStable(line, func(i, j int) bool {
		if line[i].X != line[j].X {
			return line[i].X < line[j].X
		}
		return line[i].index < line[j].index
	})

	return line
}

// spriteTileRow decodes row r (0-based within the sprite, after flip
// resolution) of the sprite's tile, honoring 8x16 sprites' two
// consecutive tiles (even tile index = top half).
func (p *PPU) spriteTileRow(s Sprite, r int) [8]uint8 {
	tileIndex := s.TileIndex
	if p.objectHeight() == 16 {
		tileIndex &^= 0x01
		if r >= 8 {
			tileIndex |= 0x01
			r -= 8
		}
	}

	base := spritePatternBase + uint16(tileIndex)*16
	lo := p.readVRAM(base + uint16(r*2))
	hi := p.readVRAM(base + uint16(r*2+1))

	var row [8]uint8
	for c := 0; c < 8; c++ {
		bit := uint(7 - c)
		row[c] = (hi>>bit)&1<<1 | (lo>>bit)&1
	}
	return row
}

// spriteColorAt resolves the color a sprite contributes to pixel (x, y)
// from the already-selected scanline subset, in x-ascending priority
// order with transparent-pixel (color index 0) fallthrough to the next
// candidate sprite. It reports whether any sprite produced an opaque
// pixel, and whether that sprite is flagged to stay behind a non-zero
// background pixel.
func (p *PPU) spriteColorAt(x, y int, line []Sprite) (Color, bool, bool) {
	height := p.objectHeight()

	for _, s := range line {
		if x < s.X || x >= s.X+8 {
			continue
		}

		row := y - s.Y
		col := x - s.X
		if s.yFlip() {
			row = height - 1 - row
		}
		if s.xFlip() {
			col = 7 - col
		}

		pixels := p.spriteTileRow(s, row)
		idx := pixels[col]
		if idx == 0 {
			continue // transparent, fall through to the next sprite
		}

		return paletteColor(idx), s.priorityBack(), true
	}

	return Color{}, false, false
}
