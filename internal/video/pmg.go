package video

// holdMissiles keeps the bits of missiles whose VDELAY bit is set.
var holdMissiles = [16]byte{
	0x00, 0x03, 0x0c, 0x0f, 0x30, 0x33, 0x3c, 0x3f,
	0xc0, 0xc3, 0xcc, 0xcf, 0xf0, 0xf3, 0xfc, 0xff,
}

// pmgDMA fetches player and missile graphics for the current line.
// On even lines GTIA ignores the fetch for objects with VDELAY set.
func (c *Chips) pmgDMA() {
	y := c.clk.ypos
	odd := y&1 != 0
	if c.playerDMA {
		if c.playerGra {
			var base uint16
			step := uint16(0x100)
			if c.singleline {
				base = c.pmbaseS + uint16(y) + 0x400
			} else {
				base = c.pmbaseD + uint16(y>>1) + 0x200
				step = 0x80
			}
			for n := 0; n < 4; n++ {
				if odd || c.VDELAY&(0x10<<n) == 0 {
					c.GRAFP[n] = c.peek(base + uint16(n)*step)
				}
			}
		}
		c.clk.xpos += 4
	}
	if c.missileDMA {
		if c.missileGra {
			var addr uint16
			if c.singleline {
				addr = c.pmbaseS + uint16(y) + 0x300
			} else {
				addr = c.pmbaseD + uint16(y>>1) + 0x180
			}
			data := c.peek(addr)
			if odd {
				c.GRAFM = data
			} else {
				c.GRAFM = ((c.GRAFM ^ data) & holdMissiles[c.VDELAY&0xf]) ^ data
			}
		}
		c.clk.xpos++
	}
}

// missile bit layout in GRAFM and in the PM line, by missile number
var missileBits = [4]struct{ pm, mask, right, left byte }{
	{0x10, 0x03, 0x02, 0x01},
	{0x20, 0x0c, 0x08, 0x04},
	{0x40, 0x30, 0x20, 0x10},
	{0x80, 0xc0, 0x80, 0x40},
}

// newPMLine draws the players and missiles of the current line into the PM
// line and accumulates the object to object collisions.
func (c *Chips) newPMLine() {
	pm := &c.pmLine
	if c.pmDirty {
		for i := 0; i < WordsPerLine; i++ {
			pm[i] = 0
		}
		c.pmDirty = false
	}

	for n := 0; n < 4; n++ {
		if c.GRAFP[n] == 0 {
			continue
		}
		bits := grafpLookup[c.grafpSize[n]][c.GRAFP[n]] & c.hpospMask[n]
		if bits == 0 {
			continue
		}
		c.pmDirty = true
		bit := byte(1) << n
		for p := c.hpospIdx[n]; bits != 0; p++ {
			if bits&1 != 0 {
				pm[p] |= bit
				if n > 0 {
					c.PPL[n] |= pm[p]
				}
			}
			bits >>= 1
		}
	}

	if c.GRAFM == 0 {
		return
	}
	c.pmDirty = true
	for n := 3; n >= 0; n-- {
		m := missileBits[n]
		if c.GRAFM&m.mask == 0 {
			continue
		}
		j := c.sizem[n]
		p := c.hposmIdx[n]
		if c.GRAFM&m.right != 0 {
			if c.GRAFM&m.left != 0 {
				j <<= 1
			}
		} else {
			p += j
		}
		if p < 2 {
			j += p - 2
			p = 2
		} else if p+j > WordsPerLine-2 {
			j = WordsPerLine - 2 - p
		}
		for ; j > 0; j-- {
			pm[p] |= m.pm
			c.MPL[n] |= pm[p]
			p++
		}
	}
}
