package main

import "github.com/hajimehoshi/ebiten/v2"

// Button bit order within the joypad's button nibble.
var buttonKeys = []ebiten.Key{
	ebiten.KeyZ,     // A
	ebiten.KeyX,     // B
	ebiten.KeyShift, // Select
	ebiten.KeyEnter, // Start
}

// d-pad nibble key order: Right, Left, Up, Down.
var dPadKeys = []ebiten.Key{
	ebiten.KeyRight,
	ebiten.KeyLeft,
	ebiten.KeyUp,
	ebiten.KeyDown,
}

// poll samples the keyboard into one of the two 4-bit matrices the
// memory map expects. A pressed key reports 0, matching the joypad
// register's active-low convention.
func poll(keys []ebiten.Key) uint8 {
	var v uint8
	for i, key := range keys {
		if !ebiten.IsKeyPressed(key) {
			v |= 1 << i
		}
	}
	return v
}
