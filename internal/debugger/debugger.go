// Package debugger implements an interactive terminal inspector over a
// running Processor: register/flag dump, breakpoints, single-step, and
// memory/OAM dumps.
package debugger

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/mhollis/goboycore/cpu"
)

const pageWidth = 16

type model struct {
	proc    *cpu.Processor
	cartLen int

	breakpoints map[int]bool
	offset      int
	prevPC      int
	running     bool
	err         error
}

// New builds a bubbletea program over proc, bounded to a cartridge of
// cartLen bytes.
func New(proc *cpu.Processor, cartLen int) *tea.Program {
	return tea.NewProgram(model{
		proc:        proc,
		cartLen:     cartLen,
		breakpoints: make(map[int]bool),
	})
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit

		case " ", "s": // single step
			m.prevPC = m.proc.PC()
			m.proc.Step(m.cartLen)

		case "b": // toggle a breakpoint at the current PC
			pc := m.proc.PC()
			if m.breakpoints[pc] {
				delete(m.breakpoints, pc)
			} else {
				m.breakpoints[pc] = true
			}

		case "r": // run until a breakpoint or cartridge end
			m.prevPC = m.proc.PC()
			for m.proc.PC() < m.cartLen && !m.proc.Stopped() {
				m.proc.Step(m.cartLen)
				if m.breakpoints[m.proc.PC()] {
					break
				}
			}
		}
	}
	return m, nil
}

func (m model) renderPage(start int) string {
	s := fmt.Sprintf("%04x | ", start)
	mm := m.proc.MemoryMap()
	for i := 0; i < pageWidth; i++ {
		addr := uint16(start + i)
		b := mm.GetFull(addr)
		if start+i == m.proc.PC() {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) pageTable() string {
	header := "page | "
	for b := 0; b < pageWidth; b++ {
		header += fmt.Sprintf("  %01x  ", b)
	}

	base := m.offset - m.offset%pageWidth
	lines := []string{header}
	for i := 0; i < 5; i++ {
		lines = append(lines, m.renderPage(base+i*pageWidth))
	}
	return strings.Join(lines, "\n")
}

func (m model) status() string {
	bp := "none"
	if len(m.breakpoints) > 0 {
		var pcs []string
		for pc := range m.breakpoints {
			pcs = append(pcs, fmt.Sprintf("%04x", pc))
		}
		bp = strings.Join(pcs, ",")
	}

	return fmt.Sprintf("\n%s\nprev PC: %04x\nbreakpoints: %s\n", m.proc, m.prevPC, bp)
}

func (m model) oamDump() string {
	return spew.Sdump(m.proc.MemoryMap().PPU().GetAllSprites())
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), m.status()),
		"",
		m.oamDump(),
	)
}
