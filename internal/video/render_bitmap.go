package video

// Map modes. Modes 8..E draw from the screen bytes directly, mode F is
// hires like modes 2 and 3.

func (c *Chips) colours4() ([4]uint16, [4]byte) {
	cl := &c.cl
	return [4]uint16{cl[cBAK], cl[cPF0], cl[cPF1], cl[cPF2]},
		[4]byte{cBAK, cPF0, cPF1, cPF2}
}

// drawMode8 draws four colour pixels four blocks wide.
func (c *Chips) drawMode8(line []uint16, mem []byte, n, x int) {
	lk, regs := c.colours4()
	for i := 0; i < n; i++ {
		sd := mem[i]
		for j := 0; j < 4; j++ {
			if x >= rightChop {
				break
			}
			v := sd >> 6
			if c.pmZero(x) {
				fill4(line, x, lk[v])
			} else {
				for k := 0; k < 4; k++ {
					c.lores(line, x+k, regs[v])
				}
			}
			sd <<= 2
			x += 4
		}
	}
	c.border(line)
}

// drawMode9 draws two colour pixels two blocks wide.
func (c *Chips) drawMode9(line []uint16, mem []byte, n, x int) {
	bak, pf0 := c.cl[cBAK], c.cl[cPF0]
	for i := 0; i < n; i++ {
		sd := mem[i]
		for j := 0; j < 4; j++ {
			if x >= rightChop {
				break
			}
			if c.pmZero(x) {
				w := bak
				if sd&0x80 != 0 {
					w = pf0
				}
				line[x], line[x+1] = w, w
				w = bak
				if sd&0x40 != 0 {
					w = pf0
				}
				line[x+2], line[x+3] = w, w
				sd <<= 2
			} else {
				for k := 0; k < 4; k++ {
					if sd&0x80 != 0 {
						c.lores(line, x+k, cPF0)
					} else {
						c.lores(line, x+k, cBAK)
					}
					if k&1 == 1 {
						sd <<= 1
					}
				}
			}
			x += 4
		}
	}
	c.border(line)
}

// drawModeA draws four colour pixels two blocks wide.
func (c *Chips) drawModeA(line []uint16, mem []byte, n, x int) {
	lk, regs := c.colours4()
	for i := 0; i < n; i++ {
		sd := mem[i]
		for j := 0; j < 2; j++ {
			if c.pmZero(x) {
				hi, lo := lk[sd>>6], lk[sd>>4&3]
				line[x], line[x+1], line[x+2], line[x+3] = hi, hi, lo, lo
				sd <<= 4
			} else {
				for k := 0; k < 4; k++ {
					c.lores(line, x+k, regs[sd>>6])
					if k&1 == 1 {
						sd <<= 2
					}
				}
			}
			x += 4
		}
	}
	c.border(line)
}

// drawModeC draws two colour pixels one block wide, for modes B and C.
func (c *Chips) drawModeC(line []uint16, mem []byte, n, x int) {
	bak, pf0 := c.cl[cBAK], c.cl[cPF0]
	for i := 0; i < n; i++ {
		sd := mem[i]
		for j := 0; j < 2; j++ {
			if c.pmZero(x) {
				for k := 0; k < 4; k++ {
					if sd&(0x80>>k) != 0 {
						line[x+k] = pf0
					} else {
						line[x+k] = bak
					}
				}
				sd <<= 4
			} else {
				for k := 0; k < 4; k++ {
					if sd&0x80 != 0 {
						c.lores(line, x+k, cPF0)
					} else {
						c.lores(line, x+k, cBAK)
					}
					sd <<= 1
				}
			}
			x += 4
		}
	}
	c.border(line)
}

// drawModeE draws four colour pixels one block wide, for modes D and E.
func (c *Chips) drawModeE(line []uint16, mem []byte, n, x int) {
	lk, regs := c.colours4()
	for i := 0; i < n; i++ {
		sd := mem[i]
		switch {
		case !c.pmZero(x):
			for k := 0; k < 4; k++ {
				c.lores(line, x+k, regs[sd>>6])
				sd <<= 2
			}
		case sd != 0:
			line[x] = lk[sd>>6]
			line[x+1] = lk[sd>>4&3]
			line[x+2] = lk[sd>>2&3]
			line[x+3] = lk[sd&3]
		default:
			fill4(line, x, lk[0])
		}
		x += 4
	}
	c.border(line)
}

// drawModeF draws hires pixels in PF1 luminance on PF2.
func (c *Chips) drawModeF(line []uint16, mem []byte, n, x int) {
	norm := c.hiresNorm()
	for i := 0; i < n; i++ {
		sd := mem[i]
		switch {
		case !c.pmZero(x):
			c.pmgHires(line, x, sd)
		case sd != 0:
			c.hiresBlock(line, x, sd, &norm)
		default:
			fill4(line, x, c.cl[cPF2])
		}
		x += 4
	}
	c.border(line)
}

func (c *Chips) drawModeFArtif(line []uint16, mem []byte, n, x int) {
	tally := uint32(mem[0])
	c.setupArtColours()
	for i := 1; i <= n; i++ {
		tally = tally<<8 | uint32(mem[i])
		if c.pmZero(x) {
			c.art.draw(line, x, tally)
		} else {
			c.pmgHires(line, x, mem[i-1])
		}
		x += 4
	}
	c.border(line)
}

func (c *Chips) drawModeFGTIA9(line []uint16, mem []byte, n, x int) {
	for i := 0; i < n; i++ {
		c.gtia9Block(line, x, x, mem[i])
		x += 4
	}
	c.border(line)
}

func (c *Chips) drawModeFGTIA10(line []uint16, mem []byte, n, x int) {
	lk := c.gtia10Lookup()
	for i := 0; i < n; i++ {
		c.gtia10Block(line, x+1, x+1, mem[i], &lk)
		x += 4
	}
	c.borderGTIA10(line)
}

func (c *Chips) drawModeFGTIA11(line []uint16, mem []byte, n, x int) {
	for i := 0; i < n; i++ {
		c.gtia11Block(line, x, x, mem[i])
		x += 4
	}
	c.borderGTIA11(line)
}

// drawModeFGTIABug draws the rest of a mode F line after PRIOR left a GTIA
// mode mid-line: GTIA keeps pairing bits, now as four playfield colours.
func (c *Chips) drawModeFGTIABug(line []uint16, mem []byte, n, x int) {
	cl := &c.cl
	lk := [4]uint16{cl[cPF0], cl[cPF1], cl[cPF2], cl[cPF3]}
	regs := [4]byte{cPF0, cPF1, cPF2, cPF3}
	for i := 0; i < n; i++ {
		sd := mem[i]
		if c.pmZero(x) {
			line[x] = lk[sd>>6]
			line[x+1] = lk[sd>>4&3]
			line[x+2] = lk[sd>>2&3]
			line[x+3] = lk[sd&3]
		} else {
			for k := 0; k < 4; k++ {
				c.lores(line, x+k, regs[sd>>6])
				sd <<= 2
			}
		}
		x += 4
	}
	c.border(line)
}
