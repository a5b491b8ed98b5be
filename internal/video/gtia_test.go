package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type colourSnapshot struct {
	cl            [128]uint16
	gtia9, gtia11 [16]uint32
	pm            *[256]byte
}

func snapshot(c *Chips) colourSnapshot {
	return colourSnapshot{cl: c.cl, gtia9: c.gtia9, gtia11: c.gtia11, pm: c.pm}
}

func TestColourWritesAreIdempotent(t *testing.T) {
	regs := []uint16{regCOLBK, regCOLPF0, regCOLPF1, regCOLPF2, regCOLPF3, regPRIOR}
	for _, prior := range []byte{0x00, 0x01, 0x04, 0x08, 0x11, 0x4c, 0x80, 0xc0} {
		c, _, _ := newTestChips()
		c.GTIAPutByte(regCOLPM0, 0x36)
		c.GTIAPutByte(regCOLPM2, 0x88)
		c.GTIAPutByte(regPRIOR, prior)
		for _, r := range regs {
			v := byte(0x94)
			if r == regPRIOR {
				v = prior
			}
			c.GTIAPutByte(r, v)
			first := snapshot(c)
			c.GTIAPutByte(r, v)
			assert.Equal(t, first, snapshot(c), "PRIOR %02x register %02x", prior, r)
		}
	}
}

func TestFifthPlayerBlackClass(t *testing.T) {
	c, _, _ := newTestChips()
	c.GTIAPutByte(regCOLPF0, 0x24)
	c.GTIAPutByte(regCOLPF1, 0x0e)
	c.GTIAPutByte(regCOLPF3, 0x46)
	c.GTIAPutByte(regCOLPM2, 0x88)
	c.GTIAPutByte(regPRIOR, 0x00)
	require.NotZero(t, c.cl[cPF3|cPM25])
	require.NotZero(t, c.cl[cPF2|cPM25])
	pf0, pf1 := c.cl[cPF0], c.cl[cPF1]

	// the rebuild only follows the priority bits, multicolour alone keeps
	// the table
	c.GTIAPutByte(regPRIOR, 0x20)
	assert.NotZero(t, c.cl[cPF3|cPM25])

	c.GTIAPutByte(regPRIOR, 0x21)
	assert.Equal(t, uint16(colourBlack), c.cl[cPF2|cPM25])
	assert.Equal(t, uint16(colourBlack), c.cl[cPF3|cPM25])
	assert.Equal(t, pf0, c.cl[cPF0])
	assert.Equal(t, pf1, c.cl[cPF1])
}

func TestPlayerCollisionSymmetry(t *testing.T) {
	c, _, _ := newTestChips()
	c.GTIAPutByte(regHPOSP0, 0x80)
	c.GTIAPutByte(regHPOSP0+2, 0x80)
	c.GTIAPutByte(regGRAFP0, 0xff)
	c.GTIAPutByte(regGRAFP0+2, 0x18)
	c.newPMLine()

	assert.Equal(t, byte(0x04), c.GTIAGetByte(regP0PL)&0x04, "P0PL sees player 2")
	assert.Equal(t, byte(0x01), c.GTIAGetByte(regP0PL+2)&0x01, "P2PL sees player 0")
	assert.Zero(t, c.GTIAGetByte(regP0PL+1))

	c.cl[cPF1|cCOLLS] = 0x05
	c.GTIAPutByte(regHITCLR, 0)
	for n := uint16(0); n < 4; n++ {
		assert.Zero(t, c.GTIAGetByte(regM0PL+n))
		assert.Zero(t, c.GTIAGetByte(regP0PL+n))
		assert.Zero(t, c.GTIAGetByte(regM0PF+n))
		assert.Zero(t, c.GTIAGetByte(regP0PF+n))
	}
}

func TestPlayfieldCollisionRegisters(t *testing.T) {
	c, _, _ := newTestChips()
	// player 1 and missile 2 under PF2
	c.cl[cPF2|cCOLLS] = 0x02 | 0x40
	assert.Equal(t, byte(0x04), c.GTIAGetByte(regP0PF+1))
	assert.Equal(t, byte(0x04), c.GTIAGetByte(regM0PF+2))
	assert.Zero(t, c.GTIAGetByte(regP0PF))
}

func TestMissileClipping(t *testing.T) {
	c, _, _ := newTestChips()
	c.GTIAPutByte(regSIZEM, 0xff)
	for _, pos := range []byte{0x00, 0x10, 0xd8, 0xff} {
		c.GTIAPutByte(regHPOSM0, pos)
		c.GTIAPutByte(regHPOSM0+3, pos)
		c.GTIAPutByte(regGRAFM, 0xff)
		require.NotPanics(t, c.newPMLine, "HPOSM %02x", pos)
		assert.Zero(t, c.pmLine[0])
		assert.Zero(t, c.pmLine[1])
		assert.Zero(t, c.pmLine[WordsPerLine-1])
		assert.Zero(t, c.pmLine[WordsPerLine-2])
	}
}

func TestPlayerOffscreenHasNoPixels(t *testing.T) {
	c, _, _ := newTestChips()
	c.GTIAPutByte(regGRAFP0, 0xff)
	c.GTIAPutByte(regHPOSP0, 0xe0)
	c.newPMLine()
	assert.False(t, c.pmDirty)

	c.GTIAPutByte(regHPOSP0, 0x30)
	c.newPMLine()
	assert.True(t, c.pmDirty)
	assert.Equal(t, byte(1), c.pmLine[0x10])
	assert.Equal(t, byte(1), c.pmLine[0x17])
	assert.Zero(t, c.pmLine[0x18])
}

func TestTriggerLatch(t *testing.T) {
	c, _, _ := newTestChips()
	c.GTIAPutByte(regGRACTL, 0x04)
	c.SetTrig(0, true)
	c.gtiaFrame()
	c.SetTrig(0, false)
	assert.Zero(t, c.GTIAGetByte(regTRIG0), "latched while GRACTL bit 2 is set")

	c.GTIAPutByte(regGRACTL, 0x00)
	assert.Equal(t, byte(1), c.GTIAGetByte(regTRIG0))
}

func TestConsoleAndPAL(t *testing.T) {
	c, _, _ := newTestChips()
	assert.Equal(t, byte(0x01), c.GTIAGetByte(regPAL))

	c.GTIAPutByte(regCONSOL, 0x08)
	assert.False(t, c.Speaker())
	c.GTIAPutByte(regCONSOL, 0x00)
	assert.True(t, c.Speaker())

	c.GTIAPutByte(regCONSOL, 0x08)
	c.SetConsoleKeys(0x06) // START pressed
	c.gtiaFrame()
	assert.Equal(t, byte(0x06), c.GTIAGetByte(regCONSOL))

	ntsc := New(&testMemory{}, nil, nil, NTSC)
	assert.Equal(t, byte(0x0f), ntsc.GTIAGetByte(regPAL))
}

func TestGTIA9Tables(t *testing.T) {
	c, _, _ := newTestChips()
	c.GTIAPutByte(regPRIOR, 0x40)
	c.GTIAPutByte(regCOLBK, 0x90)
	assert.Equal(t, uint32(0x93939393), c.gtia9[3])
	assert.Equal(t, uint32(0x90909090), c.gtia11[0])
	assert.Equal(t, uint32(0xb0b0b0b0), c.gtia11[2])
}
