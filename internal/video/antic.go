package video

// ANTIC write registers, relative to $D400.
const (
	regDMACTL = 0x00
	regCHACTL = 0x01
	regDLISTL = 0x02
	regDLISTH = 0x03
	regHSCROL = 0x04
	regVSCROL = 0x05
	regPMBASE = 0x07
	regCHBASE = 0x09
	regWSYNC  = 0x0a
	regNMIEN  = 0x0e
	regNMIRES = 0x0f
)

// ANTIC read registers.
const (
	regVCOUNT = 0x0b
	regPENH   = 0x0c
	regPENV   = 0x0d
	regNMIST  = 0x0f
)

// ANTIC holds the display-list processor registers and its derived state.
type ANTIC struct {
	DMACTL byte
	CHACTL byte
	HSCROL byte
	VSCROL byte
	PMBASE byte
	CHBASE byte
	NMIEN  byte
	NMIST  byte

	dlist      uint16
	screenaddr uint16

	IR        byte
	mode      byte
	dctr      byte
	lastline  byte
	needDL    bool
	vscrolOff bool

	// geometry for the current width/scroll variant
	geom geometry
	md   int

	chbase20   uint16
	invertMask byte
	blankMask  byte

	pmbaseS uint16
	pmbaseD uint16

	singleline   bool
	playerDMA    bool
	missileDMA   bool
	playerFlick  bool
	missileFlick bool

	// line buffer filled by the screen fetch, with a 4 byte margin on the
	// left for negative character offsets
	lineMem [52]byte

	penX, penY      byte
	PenH, PenV      byte
	LightPenEnabled bool
}

// SetLightPen sets the pen position reported by the input device, in
// colour clocks and half scanlines.
func (c *Chips) SetLightPen(x, y byte) {
	c.penX, c.penY = x, y
}

// DisplayList returns the display-list pointer, DLISTH:DLISTL.
func (c *Chips) DisplayList() uint16 { return c.dlist }

// AnticGetByte reads an ANTIC register.
func (c *Chips) AnticGetByte(addr uint16) byte {
	switch addr & 0x0f {
	case regVCOUNT:
		return byte(c.clk.ypos >> 1)
	case regPENH:
		return c.PenH
	case regPENV:
		return c.PenV
	case regNMIST:
		return c.NMIST
	default:
		return 0xff
	}
}

// AnticPutByte writes an ANTIC register.
func (c *Chips) AnticPutByte(addr uint16, b byte) {
	switch addr & 0x0f {
	case regDMACTL:
		c.putDMACTL(b)
	case regCHACTL:
		if (c.CHACTL^b)&4 != 0 {
			c.chbase20 ^= 7
		}
		c.CHACTL = b
		if b&2 != 0 {
			c.invertMask = 0x80
		} else {
			c.invertMask = 0
		}
		if b&1 != 0 {
			c.blankMask = 0xe0
		} else {
			c.blankMask = 0x60
		}
	case regDLISTL:
		c.dlist = c.dlist&0xff00 | uint16(b)
	case regDLISTH:
		c.dlist = c.dlist&0x00ff | uint16(b)<<8
	case regHSCROL:
		c.putHSCROL(b & 0x0f)
	case regVSCROL:
		c.VSCROL = b & 0x0f
		if c.vscrolOff {
			c.lastline = c.VSCROL
			if c.clk.xpos < vscofC {
				c.needDL = c.dctr == c.lastline
			}
		}
	case regPMBASE:
		c.PMBASE = b
		c.pmbaseD = uint16(b&0xfc) << 8
		c.pmbaseS = c.pmbaseD & 0xf8ff
	case regCHBASE:
		c.CHBASE = b
		c.chbase20 = uint16(b&0xfe) << 8
		if c.CHACTL&4 != 0 {
			c.chbase20 ^= 7
		}
	case regWSYNC:
		c.wsync()
	case regNMIEN:
		c.NMIEN = b
	case regNMIRES:
		c.NMIST = 0x1f
	}
}

func (c *Chips) putDMACTL(b byte) {
	c.DMACTL = b
	switch b & 3 {
	case 1:
		c.geom.narrow()
	case 2:
		c.geom.normal()
	case 3:
		c.geom.wide()
	}
	c.missileDMA = b&0x0c != 0
	c.playerDMA = b&0x08 != 0
	c.singleline = b&0x10 != 0
	c.updateFlicker()
	c.putHSCROL(c.HSCROL)
}

// updateFlicker recomputes whether GTIA latches bus garbage into its
// graphics registers: graphics enabled in GRACTL without the matching DMA.
func (c *Chips) updateFlicker() {
	c.playerFlick = !c.playerDMA && c.playerGra
	c.missileFlick = !c.missileDMA && c.missileGra
}

func (c *Chips) putHSCROL(b byte) {
	c.HSCROL = b
	if c.DMACTL&3 == 0 {
		return
	}
	c.geom.scroll(b, c.DMACTL)
}
