package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveStateRoundTrip(t *testing.T) {
	c, _, _ := newTestChips()
	c.AnticPutByte(regDMACTL, 0x3e)
	c.AnticPutByte(regHSCROL, 7)
	c.AnticPutByte(regVSCROL, 3)
	c.AnticPutByte(regCHBASE, 0xe0)
	c.AnticPutByte(regCHACTL, 0x06)
	c.AnticPutByte(regPMBASE, 0x38)
	c.AnticPutByte(regNMIEN, 0xc0)
	for n := uint16(0); n < 4; n++ {
		c.GTIAPutByte(regCOLPF0+n, 0x20+byte(n)*0x22)
		c.GTIAPutByte(regCOLPM0+n, 0x80+byte(n)*0x12)
		c.GTIAPutByte(regHPOSP0+n, 0x40+byte(n)*0x10)
		c.GTIAPutByte(regHPOSM0+n, 0x60+byte(n)*0x04)
		c.GTIAPutByte(regSIZEP0+n, byte(n))
		c.GTIAPutByte(regGRAFP0+n, 0xa5)
	}
	c.GTIAPutByte(regCOLBK, 0x96)
	c.GTIAPutByte(regSIZEM, 0x1b)
	c.GTIAPutByte(regGRAFM, 0x33)
	c.GTIAPutByte(regPRIOR, 0x54)
	c.GTIAPutByte(regGRACTL, 0x03)
	c.GTIAPutByte(regCONSOL, 0x00)
	c.newPMLine()
	c.cl[cPF1|cCOLLS] = 0x03
	c.clk.xpos, c.clk.limit, c.clk.ypos = 40, 60, 100
	c.dlist, c.screenaddr, c.IR, c.mode, c.dctr = 0x2345, 0x4567, 0x4f, 0xf, 3

	data, err := c.SaveState()
	require.NoError(t, err)

	r, _, _ := newTestChips()
	require.NoError(t, r.LoadState(data))

	assert.Equal(t, c.cl, r.cl)
	assert.Equal(t, c.geom, r.geom)
	assert.Equal(t, c.gtia9, r.gtia9)
	assert.Equal(t, c.gtia11, r.gtia11)
	assert.Equal(t, c.hiLum, r.hiLum)
	assert.Same(t, c.pm, r.pm)
	assert.Equal(t, c.chbase20, r.chbase20)
	assert.Equal(t, c.pmbaseS, r.pmbaseS)
	assert.Equal(t, c.hpospIdx, r.hpospIdx)
	assert.Equal(t, c.hpospMask, r.hpospMask)
	assert.Equal(t, c.sizem, r.sizem)
	assert.Equal(t, c.MPL, r.MPL)
	assert.Equal(t, c.PPL, r.PPL)
	assert.Equal(t, c.clk, r.clk)
	assert.Equal(t, c.ANTIC.dlist, r.ANTIC.dlist)
	assert.Equal(t, c.Speaker(), r.Speaker())
}

func TestLoadStateRejectsGarbage(t *testing.T) {
	c, _, _ := newTestChips()
	assert.Error(t, c.LoadState([]byte("not a state")))
}

type regWrite struct {
	addr uint16
	v    byte
}

func TestSaveStateRoundTripWriteOrders(t *testing.T) {
	tests := []struct {
		name   string
		writes []regWrite
	}{
		{"colour before priority change", []regWrite{
			{regPRIOR, 0x01}, {regCOLPF3, 0x44}, {regPRIOR, 0x1a},
		}},
		{"fifth player then plain priority", []regWrite{
			{regCOLPF0, 0x12}, {regPRIOR, 0x10}, {regCOLPF3, 0x68}, {regCOLPM2, 0x3a}, {regPRIOR, 0x04},
		}},
		{"GTIA mode 9 background", []regWrite{
			{regCOLBK, 0x36}, {regPRIOR, 0x41}, {regCOLPF1, 0x0c}, {regCOLBK, 0x52},
		}},
		{"GTIA mode 11 back to normal", []regWrite{
			{regPRIOR, 0xc8}, {regCOLBK, 0x24}, {regCOLPF2, 0x86}, {regPRIOR, 0x02}, {regCOLPM0, 0x1e},
		}},
		{"every priority class", []regWrite{
			{regCOLPF0, 0x22}, {regCOLPF1, 0x44}, {regCOLPF2, 0x66}, {regCOLPF3, 0x88},
			{regPRIOR, 0x08}, {regCOLPM3, 0xaa}, {regPRIOR, 0x0c}, {regCOLPM1, 0xcc}, {regPRIOR, 0x31},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestChips()
			for _, w := range tt.writes {
				c.GTIAPutByte(w.addr, w.v)
			}
			data, err := c.SaveState()
			require.NoError(t, err)

			// the restoring chip starts from unrelated tables
			r, _, _ := newTestChips()
			r.GTIAPutByte(regCOLBK, 0x5a)
			r.GTIAPutByte(regPRIOR, 0x40)
			r.GTIAPutByte(regCOLPF3, 0x9c)
			require.NoError(t, r.LoadState(data))

			assert.Equal(t, c.cl, r.cl)
			assert.Equal(t, c.gtia9, r.gtia9)
			assert.Equal(t, c.gtia11, r.gtia11)
			assert.Same(t, c.pm, r.pm)
			assert.Equal(t, c.drawBlank, r.drawBlank)
		})
	}
}

func TestLoadStateResetsGTIAModeTables(t *testing.T) {
	c, _, _ := newTestChips()
	data, err := c.SaveState()
	require.NoError(t, err)

	r, _, _ := newTestChips()
	r.GTIAPutByte(regPRIOR, 0x40)
	r.GTIAPutByte(regCOLBK, 0x36)
	require.NotZero(t, r.gtia9[1])
	require.NoError(t, r.LoadState(data))
	assert.Equal(t, [16]uint32{}, r.gtia9)
	assert.Equal(t, [16]uint32{}, r.gtia11)

	r.GTIAPutByte(regPRIOR, 0x40)
	r.GTIAPutByte(regCOLBK, 0x36)
	r.initGTIA()
	assert.Equal(t, [16]uint32{}, r.gtia9, "initGTIA clears the mode 9 table")
}
