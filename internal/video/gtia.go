package video

// GTIA write registers, relative to $D000.
const (
	regHPOSP0 = 0x00
	regHPOSM0 = 0x04
	regSIZEP0 = 0x08
	regSIZEM  = 0x0c
	regGRAFP0 = 0x0d
	regGRAFM  = 0x11
	regCOLPM0 = 0x12
	regCOLPM1 = 0x13
	regCOLPM2 = 0x14
	regCOLPM3 = 0x15
	regCOLPF0 = 0x16
	regCOLPF1 = 0x17
	regCOLPF2 = 0x18
	regCOLPF3 = 0x19
	regCOLBK  = 0x1a
	regPRIOR  = 0x1b
	regVDELAY = 0x1c
	regGRACTL = 0x1d
	regHITCLR = 0x1e
	regCONSOL = 0x1f
)

// GTIA read registers.
const (
	regM0PF  = 0x00
	regP0PF  = 0x04
	regM0PL  = 0x08
	regP0PL  = 0x0c
	regTRIG0 = 0x10
	regPAL   = 0x14
)

// GTIA holds the colour, player/missile and console registers.
type GTIA struct {
	HPOSP  [4]byte
	HPOSM  [4]byte
	SIZEP  [4]byte
	SIZEM  byte
	GRAFP  [4]byte
	GRAFM  byte
	COLPM  [4]byte
	COLPF  [4]byte
	COLBK  byte
	PRIOR  byte
	VDELAY byte
	GRACTL byte

	// collision latches, only bits of other objects are meaningful
	MPL [4]byte
	PPL [4]byte

	hpospIdx  [4]int
	hpospMask [4]uint32
	hposmIdx  [4]int
	grafpSize [4]int
	sizem     [4]int

	playerGra  bool
	missileGra bool

	trig        [4]byte
	trigLatch   [4]byte
	consolKeys  byte
	consolTable [3]byte
	consolIndex int
	consolMask  byte
	speaker     bool
}

// initGTIA clears the colour table and writes zero to every register.
func (c *Chips) initGTIA() {
	c.cl = [128]uint16{}
	c.gtia9, c.gtia11 = [16]uint32{}, [16]uint32{}
	c.trig = [4]byte{1, 1, 1, 1}
	c.trigLatch = [4]byte{1, 1, 1, 1}
	c.consolKeys = 0x07
	c.consolTable = [3]byte{0x0f, 0x0f, 0x0f}
	// force a full rebuild on the first PRIOR write
	c.PRIOR = 0xff
	for i := uint16(0); i < 32; i++ {
		c.GTIAPutByte(i, 0)
	}
}

// PF0PM..PF3PM live in the low byte of the collision column of each
// playfield row.
func (c *Chips) pfpm(n int) byte { return byte(c.cl[cPF0+n<<4|cCOLLS]) }

// SetTrig sets the state of joystick button n (0..3).
func (c *Chips) SetTrig(n int, pressed bool) {
	if pressed {
		c.trig[n&3] = 0
	} else {
		c.trig[n&3] = 1
	}
}

// SetConsoleKeys sets the START/SELECT/OPTION state, bits 0..2, a cleared
// bit meaning pressed.
func (c *Chips) SetConsoleKeys(keys byte) { c.consolKeys = keys & 0x07 }

// HoldConsoleKeys makes the next two CONSOL reads after a frame report keys
// held down, the way a key held through power-on is seen by the OS.
func (c *Chips) HoldConsoleKeys(keys byte) {
	c.consolTable[1] = keys&0x07 | 0x08
	c.consolTable[2] = c.consolTable[1]
	c.consolIndex = 2
}

// Speaker reports the console speaker bit written through CONSOL.
func (c *Chips) Speaker() bool { return c.speaker }

// gtiaFrame runs once per frame after the display.
func (c *Chips) gtiaFrame() {
	consol := c.consolKeys | 0x08
	c.consolTable[0] = consol
	c.consolTable[2] &= consol
	c.consolTable[1] = c.consolTable[2]
	if c.GRACTL&4 != 0 {
		for i := range c.trigLatch {
			c.trigLatch[i] &= c.trig[i]
		}
	}
}

// GTIAGetByte reads a GTIA register.
func (c *Chips) GTIAGetByte(addr uint16) byte {
	a := addr & 0x1f
	switch {
	case a < regP0PF:
		bit := uint(4 + a)
		var v byte
		for pf := 0; pf < 4; pf++ {
			v |= (c.pfpm(pf) >> bit & 1) << pf
		}
		return v
	case a < regM0PL:
		bit := uint(a - regP0PF)
		var v byte
		for pf := 0; pf < 4; pf++ {
			v |= (c.pfpm(pf) >> bit & 1) << pf
		}
		return v
	case a < regP0PL:
		return c.MPL[a-regM0PL] & 0x0f
	}
	switch a {
	case regP0PL:
		return (c.PPL[1]&0x01)<<1 | (c.PPL[2]&0x01)<<2 | (c.PPL[3]&0x01)<<3
	case regP0PL + 1:
		return c.PPL[1]&0x01 | (c.PPL[2]&0x02)<<1 | (c.PPL[3]&0x02)<<2
	case regP0PL + 2:
		return c.PPL[2]&0x03 | (c.PPL[3]&0x04)<<1
	case regP0PL + 3:
		return c.PPL[3] & 0x07
	case regTRIG0, regTRIG0 + 1, regTRIG0 + 2, regTRIG0 + 3:
		n := a - regTRIG0
		return c.trig[n] & c.trigLatch[n]
	case regPAL:
		if c.tv == PAL {
			return 0x01
		}
		return 0x0f
	case regCONSOL:
		v := c.consolTable[c.consolIndex] & c.consolMask
		if c.consolIndex > 0 {
			c.consolIndex--
		}
		return v
	}
	return 0x0f
}

// GTIAPutByte writes a GTIA register.
func (c *Chips) GTIAPutByte(addr uint16, b byte) {
	a := addr & 0x1f
	switch {
	case a < regHPOSM0:
		c.putHPOSP(int(a), b)
		return
	case a < regSIZEP0:
		n := a - regHPOSM0
		c.HPOSM[n] = b
		c.hposmIdx[n] = int(b) - 0x20
		return
	case a < regSIZEM:
		n := a - regSIZEP0
		c.SIZEP[n] = b
		c.grafpSize[n] = int(b & 3)
		return
	case a >= regGRAFP0 && a < regGRAFM:
		c.GRAFP[a-regGRAFP0] = b
		return
	}

	switch a {
	case regSIZEM:
		c.SIZEM = b
		for n := 0; n < 4; n++ {
			c.sizem[n] = missileWidth[b>>(2*n)&3]
		}
	case regGRAFM:
		c.GRAFM = b
	case regCOLPM0, regCOLPM1:
		c.putCOLPM01(int(a-regCOLPM0), b&0xfe)
	case regCOLPM2, regCOLPM3:
		c.putCOLPM23(int(a-regCOLPM2), b&0xfe)
	case regCOLPF0, regCOLPF1:
		c.putCOLPF01(int(a-regCOLPF0), b&0xfe)
	case regCOLPF2:
		c.putCOLPF2(b & 0xfe)
	case regCOLPF3:
		c.putCOLPF3(b & 0xfe)
	case regCOLBK:
		b &= 0xfe
		c.COLBK = b
		cw := word(b)
		c.cl[cBAK] = cw
		if cw != uint16(c.gtia9[0]) {
			c.gtia9[0] = uint32(cw) | uint32(cw)<<16
			if c.PRIOR&0x40 != 0 {
				c.setupGTIA9_11()
			}
		}
	case regPRIOR:
		c.setPrior(b)
		c.PRIOR = b
		if b&0x40 != 0 {
			c.setupGTIA9_11()
		}
	case regVDELAY:
		c.VDELAY = b
	case regGRACTL:
		c.GRACTL = b
		c.missileGra = b&0x01 != 0
		c.playerGra = b&0x02 != 0
		c.updateFlicker()
		if b&4 == 0 {
			c.trigLatch = [4]byte{1, 1, 1, 1}
		}
	case regHITCLR:
		c.MPL = [4]byte{}
		c.PPL = [4]byte{}
		for pf := 0; pf < 4; pf++ {
			c.cl[cPF0+pf<<4|cCOLLS] = 0
		}
	case regCONSOL:
		c.speaker = b&0x08 == 0
		c.consolMask = ^b & 0x0f
	}
}

func (c *Chips) putHPOSP(n int, b byte) {
	c.HPOSP[n] = b
	c.hpospIdx[n] = int(b) - 0x20
	switch {
	case b >= 0x22:
		switch {
		case b >= 0xde:
			c.hpospMask[n] = 0
		case b > 0xbe:
			c.hpospMask[n] = 0xffffffff >> (b - 0xbe)
		default:
			c.hpospMask[n] = 0xffffffff
		}
	case b > 2:
		c.hpospMask[n] = 0xffffffff << (0x22 - b)
	default:
		c.hpospMask[n] = 0
	}
}

// putCOLPF01 handles COLPF0 and COLPF1. Which overlap cells follow the
// playfield colour depends on PRIOR.
func (c *Chips) putCOLPF01(n int, b byte) {
	cl := &c.cl
	pf := cPF0 + n<<4
	c.COLPF[n] = b
	cw := word(b)
	cl[pf] = cw
	prior := c.PRIOR
	if prior&1 == 0 {
		cl[pf|cPM2], cl[pf|cPM3], cl[pf|cPM23] = cw, cw, cw
		if prior&3 == 0 {
			if prior&0xf != 0 {
				cl[pf|cPM0], cl[pf|cPM1], cl[pf|cPM01] = cw, cw, cw
				if prior&0xf == 0xc {
					cl[pf|cPM023], cl[pf|cPM123], cl[pf|cPM0123] = cw, cw, cw
				}
			} else {
				cl[pf|cPM0] = cw | cl[cPM0]
				cl[pf|cPM1] = cw | cl[cPM1]
				cl[pf|cPM01] = cl[pf|cPM0] | cl[pf|cPM1]
			}
		}
		if n == 0 && prior&0xf >= 0xa {
			cl[cPF0|cPM25] = cw
		}
	}
	if n == 1 {
		c.setHiresLum(cw)
	}
}

func (c *Chips) putCOLPF2(b byte) {
	cl := &c.cl
	c.COLPF[2] = b
	cw := word(b)
	cl[cPF2] = cw
	prior := c.PRIOR
	if prior&4 != 0 {
		cl[cPF2|cPM0], cl[cPF2|cPM1], cl[cPF2|cPM01] = cw, cw, cw
	}
	if prior&9 == 0 {
		if prior&0xf != 0 {
			cl[cPF2|cPM2], cl[cPF2|cPM3], cl[cPF2|cPM23] = cw, cw, cw
		} else {
			cl[cPF2|cPM2] = cw | cl[cPM2]
			cl[cPF2|cPM3] = cw | cl[cPM3]
			cl[cPF2|cPM23] = cl[cPF2|cPM2] | cl[cPF2|cPM3]
		}
	}
}

func (c *Chips) putCOLPF3(b byte) {
	cl := &c.cl
	c.COLPF[3] = b
	cw := word(b)
	cl[cPF3] = cw
	prior := c.PRIOR
	if prior&4 != 0 {
		cl[cPF3|cPM0], cl[cPF3|cPM1], cl[cPF3|cPM01] = cw, cw, cw
	}
	if prior&9 != 0 {
		return
	}
	if prior&0xf != 0 {
		cl[cPF3|cPM2], cl[cPF3|cPM3], cl[cPF3|cPM23] = cw, cw, cw
		return
	}
	v := cw | cl[cPM2]
	cl[cPF3|cPM25], cl[cPF2|cPM25], cl[cPM25], cl[cPF3|cPM2] = v, v, v, v
	v = cw | cl[cPM3]
	cl[cPF3|cPM35], cl[cPF2|cPM35], cl[cPM35], cl[cPF3|cPM3] = v, v, v, v
	v = cl[cPF3|cPM2] | cl[cPF3|cPM3]
	cl[cPF3|cPM235], cl[cPF2|cPM235], cl[cPM235], cl[cPF3|cPM23] = v, v, v, v
	for _, i := range [...]int{cPM25, cPM35, cPM235} {
		cl[cPF0|i] = cw
		cl[cPF1|i] = cw
	}
}

// putCOLPM01 handles COLPM0 and COLPM1, which share the PM01 cells.
func (c *Chips) putCOLPM01(n int, b byte) {
	cl := &c.cl
	pm, other, tri := cPM0, cPM1, cPM023
	if n == 1 {
		pm, other, tri = cPM1, cPM0, cPM123
	}
	c.COLPM[n] = b
	cw := word(b)
	cl[pm], cl[tri] = cw, cw
	cw2 := cw | cl[other]
	cl[cPM01], cl[cPM0123] = cw2, cw2
	prior := c.PRIOR
	if prior&4 != 0 {
		return
	}
	cl[cPF2|pm], cl[cPF3|pm] = cw, cw
	cl[cPF2|cPM01], cl[cPF3|cPM01] = cw2, cw2
	if prior&0xc != 0 {
		return
	}
	if prior&3 != 0 {
		cl[cPF0|pm], cl[cPF1|pm] = cw, cw
		cl[cPF0|cPM01], cl[cPF1|cPM01] = cw2, cw2
	} else {
		cl[cPF0|pm] = cw | cl[cPF0]
		cl[cPF1|pm] = cw | cl[cPF1]
		cl[cPF0|cPM01] = cw2 | cl[cPF0]
		cl[cPF1|cPM01] = cw2 | cl[cPF1]
	}
}

// putCOLPM23 handles COLPM2 and COLPM3, which also feed the fifth player
// cells through PF3.
func (c *Chips) putCOLPM23(n int, b byte) {
	cl := &c.cl
	pm, other, five := cPM2, cPM3, cPM25
	if n == 1 {
		pm, other, five = cPM3, cPM2, cPM35
	}
	c.COLPM[2+n] = b
	cw := word(b)
	cl[pm] = cw
	cw2 := cw | cl[other]
	cl[cPM23] = cw2
	prior := c.PRIOR
	if prior&1 != 0 {
		cl[cPF0|pm], cl[cPF1|pm] = cw, cw
		cl[cPF0|cPM23], cl[cPF1|cPM23] = cw2, cw2
	}
	if prior&6 != 0 {
		return
	}
	if prior&9 != 0 {
		cl[cPF2|pm], cl[cPF3|pm] = cw, cw
		cl[cPF2|cPM23], cl[cPF3|cPM23] = cw2, cw2
		return
	}
	cl[cPF2|pm] = cw | cl[cPF2]
	v := cw | cl[cPF3]
	cl[cPF3|five], cl[cPF2|five], cl[five], cl[cPF3|pm] = v, v, v, v
	cl[cPF2|cPM23] = cw2 | cl[cPF2]
	v = cw2 | cl[cPF3]
	cl[cPF3|cPM235], cl[cPF2|cPM235], cl[cPM235], cl[cPF3|cPM23] = v, v, v, v
}
