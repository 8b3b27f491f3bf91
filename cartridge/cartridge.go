// Package cartridge implements an immutable cartridge image: the ordered
// byte sequence that supplies instruction bytes and program-embedded data
// to the rest of the core.
package cartridge

import (
	"fmt"
	"os"
)

// FallbackProgram is used when no ROM path is supplied, for smoke testing.
var FallbackProgram = []byte{0x40, 0x41, 0x42}

// Cartridge is an ordered, immutable byte sequence. It is loaded once and
// never mutated for the lifetime of the process. The memory map holds a
// read-only reference and shadows the bytes into its address space; the
// processor fetches instructions through the memory map.
type Cartridge struct {
	data []byte
}

// New wraps an existing byte slice as a Cartridge. The caller must not
// mutate data afterwards.
func New(data []byte) *Cartridge {
	return &Cartridge{data: data}
}

// Load reads a cartridge image from path. If path is empty, it returns a
// Cartridge built from FallbackProgram instead of erroring, matching the
// smoke-testing fallback described for this core.
func Load(path string) (*Cartridge, error) {
	if path == "" {
		return New(append([]byte(nil), FallbackProgram...)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read cartridge %q: %w", path, err)
	}
	return New(data), nil
}

// Len returns the number of bytes in the cartridge.
func (c *Cartridge) Len() int {
	return len(c.data)
}

// At returns the byte at the given index. It panics if idx is out of
// range; the processor is responsible for checking idx against Len
// before every fetch, not for recovering here.
func (c *Cartridge) At(idx int) byte {
	return c.data[idx]
}
