package video

// dlByte fetches the next display list byte. The display list counter
// only carries within a 1 KB block.
func (c *Chips) dlByte() byte {
	b := c.peek(c.dlist)
	c.dlist++
	if c.dlist&0x3ff == 0 {
		c.dlist -= 0x400
	}
	c.clk.xpos++
	return b
}

// dlWord fetches a little-endian address operand. With player graphics
// enabled in GTIA but no player DMA, the low byte lands in GRAFP3.
func (c *Chips) dlWord() uint16 {
	lsb := c.dlByte()
	if c.playerFlick && (c.VDELAY&0x80 == 0 || c.clk.ypos&1 != 0) {
		c.GRAFP[3] = lsb
	}
	return uint16(c.dlByte())<<8 | uint16(lsb)
}

// loadLine fetches the screen bytes of a mode line into lineMem. The memory
// scan counter only carries within a 4 KB block.
func (c *Chips) loadLine() {
	n := c.geom.charsRead[c.md]
	base := c.screenaddr & 0xf000
	off := c.screenaddr & 0x0fff
	for i := 0; i < n; i++ {
		c.lineMem[4+i] = c.peek(base | (off+uint16(i))&0x0fff)
	}
	c.screenaddr = base | (off+uint16(n))&0x0fff
}
