package cpu

import "strings"

// Flag bits within the high nibble of F. The low nibble of F is
// unused and must always read as zero.
const (
	FlagZ = 1 << 7
	FlagN = 1 << 6
	FlagH = 1 << 5
	FlagC = 1 << 4
)

var flagMap = map[uint8]byte{
	FlagZ: 'Z',
	FlagN: 'N',
	FlagH: 'H',
	FlagC: 'C',
}

func flagString(f uint8) string {
	var sb strings.Builder
	for _, bit := range []uint8{FlagZ, FlagN, FlagH, FlagC} {
		if f&bit != 0 {
			sb.WriteByte(flagMap[bit])
		} else {
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

func (p *Processor) flag(bit uint8) bool {
	return p.F&bit != 0
}

func (p *Processor) setFlag(bit uint8, on bool) {
	if on {
		p.F |= bit
	} else {
		p.F &^= bit
	}
	p.F &= 0xF0 // the low nibble of F never holds a value
}

// setFlags stores all four flags in one call, for the instructions
// (ADD, SUB, ...) that define every flag on every execution.
func (p *Processor) setFlags(z, n, h, c bool) {
	p.setFlag(FlagZ, z)
	p.setFlag(FlagN, n)
	p.setFlag(FlagH, h)
	p.setFlag(FlagC, c)
}
