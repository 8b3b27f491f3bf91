package ppu

// Color is an RGB color used by the palette and returned to callers in a
// ColorPosition.
type Color struct {
	R, G, B uint8
}

// Fixed 4-entry palette mapping the two-bit color index {0,1,2,3} to
// presentation colors: white, light grey, dark grey, black.
var palette = [4]Color{
	{0xFF, 0xFF, 0xFF}, // 0: white
	{0xA9, 0xA9, 0xA9}, // 1: light grey
	{0x69, 0x69, 0x69}, // 2: dark grey
	{0x00, 0x00, 0x00}, // 3: black
}

func paletteColor(idx uint8) Color {
	return palette[idx&0x03]
}

// ColorPosition is one resolved pixel: a screen coordinate and its color.
type ColorPosition struct {
	X, Y  int
	Color Color
}
