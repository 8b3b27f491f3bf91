package ppu

import "testing"

func writeOAMEntry(p *PPU, slot int, y, x, tile, flags uint8) {
	base := uint16(slot * OAMEntryBytes)
	p.WriteOAM(base, y)
	p.WriteOAM(base+1, x)
	p.WriteOAM(base+2, tile)
	p.WriteOAM(base+3, flags)
}

func TestScanlineSpriteCap(t *testing.T) {
	p := New()
	// 12 sprites all covering scanline 0 (screen y=0 -> OAM y=16)
	for i := 0; i < 12; i++ {
		writeOAMEntry(p, i, 16, uint8(8+i), 0, 0)
	}

	line := p.scanlineSprites(0)
	if len(line) != MaxSpritesPerLine {
		t.Fatalf("scanlineSprites count = %d, want %d", len(line), MaxSpritesPerLine)
	}
}

func TestScanlineSpriteXAscendingOrder(t *testing.T) {
	p := New()
	writeOAMEntry(p, 0, 16, 50, 0, 0)
	writeOAMEntry(p, 1, 16, 10, 0, 0)
	writeOAMEntry(p, 2, 16, 30, 0, 0)

	line := p.scanlineSprites(0)
	if len(line) != 3 {
		t.Fatalf("got %d sprites, want 3", len(line))
	}
	if line[0].X != 10-8 || line[1].X != 30-8 || line[2].X != 50-8 {
		t.Errorf("not x-ascending: %+v", line)
	}
}

func TestGetAllSpritesSortedByX(t *testing.T) {
	p := New()
	writeOAMEntry(p, 0, 0, 100, 0, 0)
	writeOAMEntry(p, 1, 0, 20, 0, 0)

	all := p.GetAllSprites()
	if len(all) != MaxSprites {
		t.Fatalf("len = %d, want %d", len(all), MaxSprites)
	}
	if all[0].X > all[1].X {
		t.Errorf("GetAllSprites not sorted ascending: %d before %d", all[0].X, all[1].X)
	}
}

func TestSpriteTransparentPixelFallthrough(t *testing.T) {
	p := New()

	// tile 0: fully transparent (all zero bits)
	// tile 1: opaque color index 3 everywhere (lo=hi=0xFF)
	writeTile(p, 0x8000, [8][2]uint8{
		{0x00, 0x00}, {0x00, 0x00}, {0x00, 0x00}, {0x00, 0x00},
		{0x00, 0x00}, {0x00, 0x00}, {0x00, 0x00}, {0x00, 0x00},
	})
	writeTile(p, 0x8010, [8][2]uint8{
		{0xFF, 0xFF}, {0xFF, 0xFF}, {0xFF, 0xFF}, {0xFF, 0xFF},
		{0xFF, 0xFF}, {0xFF, 0xFF}, {0xFF, 0xFF}, {0xFF, 0xFF},
	})

	// both sprites at the same position; transparent one first in OAM
	writeOAMEntry(p, 0, 16, 8, 0, 0) // transparent tile, x=0
	writeOAMEntry(p, 1, 16, 8, 1, 0) // opaque tile, same position

	line := p.scanlineSprites(0)
	c, _, ok := p.spriteColorAt(0, 0, line)
	if !ok {
		t.Fatal("expected an opaque sprite pixel via fallthrough")
	}
	if c != paletteColor(3) {
		t.Errorf("color = %+v, want palette index 3", c)
	}
}

func TestSpriteYFlip(t *testing.T) {
	p := New()
	// row 0: color 1 everywhere, row 7: color 2 everywhere, rest 0
	rows := [8][2]uint8{}
	rows[0] = [2]uint8{0xFF, 0x00} // lo=0xFF hi=0x00 -> index1 = 1
	rows[7] = [2]uint8{0x00, 0xFF} // lo=0x00 hi=0xFF -> index1 = 2
	writeTile(p, 0x8000, rows)

	writeOAMEntry(p, 0, 16, 8, 0, sprFlagYFlip)

	line := p.scanlineSprites(0) // screen y=0 -> sprite row 0 -> flipped -> source row 7 -> color 2
	c, _, ok := p.spriteColorAt(0, 0, line)
	if !ok {
		t.Fatal("expected opaque pixel")
	}
	if c != paletteColor(2) {
		t.Errorf("y-flip color = %+v, want palette index 2", c)
	}
}

func TestObjectHeightFromLCDC(t *testing.T) {
	p := New()
	if got := p.objectHeight(); got != 8 {
		t.Errorf("default height = %d, want 8", got)
	}
	p.SetLCDC(LCDCObjSize)
	if got := p.objectHeight(); got != 16 {
		t.Errorf("height with bit set = %d, want 16", got)
	}
}
