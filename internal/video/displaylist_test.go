package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupDisplayList installs 24 blank lines, one mode 2 line of screen
// memory at $4000 and a JVB back to $2000.
func setupDisplayList(c *Chips, mem *testMemory, ir byte) {
	mem.load(0x2000, 0x70, 0x70, 0x70, ir|0x40, 0x00, 0x40, 0x41, 0x00, 0x20)
	c.AnticPutByte(regDLISTL, 0x00)
	c.AnticPutByte(regDLISTH, 0x20)
	c.AnticPutByte(regCHBASE, 0xe0)
	c.AnticPutByte(regDMACTL, 0x22)
}

func fillScreen(c *Chips, v uint16) {
	fill(c.Screen(), v)
}

func TestMode2BlankRowShowsBackground(t *testing.T) {
	c, mem, _ := newTestChips()
	setupDisplayList(c, mem, 0x02)
	c.GTIAPutByte(regCOLBK, 0x00)
	fillScreen(c, 0xffff)

	c.RunFrame(true)

	for y := 24; y < 32; y++ {
		r := row(c, y)
		for x := leftChop; x < rightChop; x++ {
			require.Equal(t, uint16(0), r[x], "row %d word %d", y, x)
		}
	}
}

func TestMode2RowBordersAndPlayfield(t *testing.T) {
	c, mem, _ := newTestChips()
	setupDisplayList(c, mem, 0x02)
	c.GTIAPutByte(regCOLBK, 0x00)
	c.GTIAPutByte(regCOLPF2, 0x94)

	c.RunFrame(true)

	r := row(c, 24)
	assert.Equal(t, uint16(0), r[leftChop])
	assert.Equal(t, uint16(0x9494), r[16])
	assert.Equal(t, uint16(0x9494), r[175])
	assert.Equal(t, uint16(0), r[176])
	assert.Equal(t, uint16(0), row(c, 23)[100], "blank line above")
	assert.Equal(t, uint16(0), row(c, 32)[100], "blank line below")
}

func TestFrameNMIs(t *testing.T) {
	c, mem, cpu := newTestChips()
	setupDisplayList(c, mem, 0x82)
	c.AnticPutByte(regNMIEN, 0xc0)

	c.RunFrame(true)

	assert.Equal(t, 2, cpu.nmis, "one DLI and one VBI")
	assert.Equal(t, byte(0x5f), c.AnticGetByte(regNMIST))
	assert.Equal(t, PAL.Lines(), c.clk.ypos)
	assert.Equal(t, uint16(0x2000), c.dlist, "JVB reloads the list start")
}

func TestFrameWithoutNMIEN(t *testing.T) {
	c, mem, cpu := newTestChips()
	setupDisplayList(c, mem, 0x82)

	c.RunFrame(false)

	assert.Zero(t, cpu.nmis)
	assert.Equal(t, byte(0x5f), c.NMIST)
}

func TestNTSCFrameLength(t *testing.T) {
	mem := &testMemory{}
	c := New(mem, nil, nil, NTSC)
	cpu := &fakeCPU{clk: c.Clock()}
	c.SetCPU(cpu)
	setupDisplayList(c, mem, 0x02)
	c.RunFrame(false)
	assert.Equal(t, 262, c.clk.ypos)
}

func TestSkippedFrameKeepsTiming(t *testing.T) {
	c1, mem1, _ := newTestChips()
	setupDisplayList(c1, mem1, 0x02)
	c2, mem2, _ := newTestChips()
	setupDisplayList(c2, mem2, 0x02)

	c1.RunFrame(true)
	c2.RunFrame(false)

	require.Equal(t, c1.clk.ypos, c2.clk.ypos)
	assert.Equal(t, c1.clk.xpos, c2.clk.xpos)
	assert.Less(t, c1.clk.xpos, lineC)
}

func TestLateWSYNCStoreResumesNextLine(t *testing.T) {
	c, mem, cpu := newTestChips()
	setupDisplayList(c, mem, 0x02)
	stored := false
	cpu.step = func() {
		if !stored && c.clk.ypos == 40 {
			stored = true
			c.clk.Advance(c.clk.Limit() - c.clk.Xpos())
			c.AnticPutByte(regWSYNC, 0)
		}
	}
	c.RunFrame(false)
	assert.True(t, stored)
	assert.False(t, c.clk.Halted())
	assert.Contains(t, cpu.starts, wsyncC)
}

// setupVscrolList installs 24 blank lines, two mode 2 lines with the
// VSCROL bit, one without it and a JVB. Every character is 1, whose font
// has only row 3 set.
func setupVscrolList(c *Chips, mem *testMemory, vscrol byte) {
	mem.load(0x2000, 0x70, 0x70, 0x70, 0x62, 0x00, 0x40, 0x22, 0x02, 0x41, 0x00, 0x20)
	for i := uint16(0); i < 120; i++ {
		mem[0x4000+i] = 0x01
	}
	mem[0xe000+8+3] = 0xff
	c.AnticPutByte(regDLISTL, 0x00)
	c.AnticPutByte(regDLISTH, 0x20)
	c.AnticPutByte(regCHBASE, 0xe0)
	c.AnticPutByte(regVSCROL, vscrol)
	c.AnticPutByte(regDMACTL, 0x22)
	c.GTIAPutByte(regCOLBK, 0x26)
	c.GTIAPutByte(regCOLPF1, 0x0e)
	c.GTIAPutByte(regCOLPF2, 0x94)
}

// fontRows lists, for each screen row in [from, to), whether the middle
// of the playfield shows character foreground.
func fontRows(c *Chips, from, to int) []bool {
	var out []bool
	for y := from; y < to; y++ {
		out = append(out, row(c, y)[96] != word(0x94))
	}
	return out
}

func TestVerticalScrollRegion(t *testing.T) {
	c, mem, _ := newTestChips()
	setupVscrolList(c, mem, 3)

	c.RunFrame(true)

	// first scrolled line starts at font row 3 and runs to row 7
	assert.Equal(t, []bool{true, false, false, false, false}, fontRows(c, 24, 29))
	// the middle line is a full eight rows
	assert.Equal(t, []bool{false, false, false, true, false, false, false, false}, fontRows(c, 29, 37))
	// the line after the region ends at font row VSCROL
	assert.Equal(t, []bool{false, false, false, true}, fontRows(c, 37, 41))
	assert.Equal(t, word(0x26), row(c, 41)[96], "JVB follows the exit line")
	assert.NotEqual(t, word(0x94), row(c, 24)[96])
}

func TestVerticalScrollWithoutOffset(t *testing.T) {
	c, mem, _ := newTestChips()
	setupVscrolList(c, mem, 0)

	c.RunFrame(true)

	assert.Equal(t, []bool{false, false, false, true, false, false, false, false}, fontRows(c, 24, 32))
	assert.Equal(t, []bool{false, false, false, true, false, false, false, false}, fontRows(c, 32, 40))
	// exit line is cut to a single row
	assert.Equal(t, []bool{false}, fontRows(c, 40, 41))
	assert.Equal(t, word(0x26), row(c, 41)[96])
}

func TestVSCROLWriteOnExitLineEndsIt(t *testing.T) {
	c, mem, cpu := newTestChips()
	setupVscrolList(c, mem, 3)
	written := false
	cpu.step = func() {
		if !written && c.vscrolOff {
			written = true
			c.AnticPutByte(regVSCROL, 0)
		}
	}

	c.RunFrame(true)

	require.True(t, written)
	assert.Equal(t, []bool{false}, fontRows(c, 37, 38))
	assert.Equal(t, word(0x26), row(c, 38)[96], "the JVB is fetched on the next line")
}
