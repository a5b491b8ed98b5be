package video

// Character modes. Each character byte covers four words of the line.

// hiresNorm returns the four words a PF1 luminance pixel pair can show on
// a PF2 background, indexed by the two pixel bits.
func (c *Chips) hiresNorm() [4]uint16 {
	pf2 := c.cl[cPF2]
	var n [4]uint16
	for i := range n {
		n[i] = pf2&hiresMask[i] | c.hiLum[i]
	}
	return n
}

// setHiresLum follows COLPF1: hires pixels take its luminance only.
func (c *Chips) setHiresLum(cw uint16) {
	lum := cw & 0x0f0f
	lo := lum & 0x0f
	c.hiLum = [4]uint16{0, lo << 8, lo, lum}
}

func (c *Chips) hiresBlock(line []uint16, p int, d byte, norm *[4]uint16) {
	line[p] = norm[d>>6]
	line[p+1] = norm[d>>4&3]
	line[p+2] = norm[d>>2&3]
	line[p+3] = norm[d&3]
}

// pmgHires draws one byte of hires data under PM objects.
func (c *Chips) pmgHires(line []uint16, p int, d byte) {
	for k := 0; k < 4; k++ {
		pm := c.pmLine[p+k]
		v := d >> 6
		if v != 0 {
			c.cl[cPF2|cCOLLS] |= uint16(pm)
		}
		line[p+k] = c.cl[c.pm[pm]|cPF2]&hiresMask[v] | c.hiLum[v]
		d <<= 2
	}
}

// text2 holds the per-line state of modes 2 and 3.
type text2 struct {
	chbase uint16
	// visible rows, by the top three bits of the character code
	visible [8]bool
}

// initText2 prepares a mode 2 or 3 line and charges the font fetch.
func (c *Chips) initText2() text2 {
	t := text2{chbase: (uint16(c.dctr) ^ c.chbase20) & 0xfc07}
	c.clk.xpos += c.geom.fontCycles[c.md]
	// mode 3 blanks the top two rows of lower case and the bottom two of
	// everything else
	t.visible[3] = c.mode == 2 || c.dctr&0xe != 0
	upper := c.dctr&0xe != 8
	t.visible[0], t.visible[1], t.visible[2] = upper, upper, upper
	return t
}

func (c *Chips) text2Byte(t *text2, sd byte) byte {
	var ch byte
	if sd&c.invertMask != 0 {
		ch = 0xff
	}
	if t.visible[(sd&c.blankMask)>>5] {
		ch ^= c.peek(t.chbase + uint16(sd&0x7f)<<3)
	}
	return ch
}

func (c *Chips) drawMode2(line []uint16, mem []byte, n, x int) {
	t := c.initText2()
	norm := c.hiresNorm()
	for i := 0; i < n; i++ {
		ch := c.text2Byte(&t, mem[i])
		switch {
		case !c.pmZero(x):
			c.pmgHires(line, x, ch)
		case ch != 0:
			c.hiresBlock(line, x, ch, &norm)
		default:
			fill4(line, x, c.cl[cPF2])
		}
		x += 4
	}
	c.border(line)
}

func (c *Chips) drawMode2Artif(line []uint16, mem []byte, n, x int) {
	t := c.initText2()
	tally := uint32(c.text2Byte(&t, mem[0]))
	c.setupArtColours()
	for i := 1; i <= n; i++ {
		tally = tally<<8 | uint32(c.text2Byte(&t, mem[i]))
		if c.pmZero(x) {
			c.art.draw(line, x, tally)
		} else {
			c.pmgHires(line, x, byte(tally>>8))
		}
		x += 4
	}
	c.border(line)
}

// gtia9Block draws one byte as two GTIA mode 9 luminance pixels. PF3
// objects add the luminance to their own colour.
func (c *Chips) gtia9Block(line []uint16, w, p int, b byte) {
	hi, lo := uint16(c.gtia9[b>>4]), uint16(c.gtia9[b&0xf])
	line[w], line[w+1], line[w+2], line[w+3] = hi, hi, lo, lo
	if c.pmZero(p) {
		return
	}
	for k := 0; k < 4; k++ {
		r := c.pm[c.pmLine[p+k]]
		if r == 0 {
			continue
		}
		if r == cPF3 {
			v := b >> 4
			if k >= 2 {
				v = b & 0xf
			}
			line[w+k] = uint16(v) | uint16(v)<<8 | c.cl[cPF3]
		} else {
			line[w+k] = c.cl[r]
		}
	}
}

// gtia11Block draws one byte as two GTIA mode 11 hue pixels.
func (c *Chips) gtia11Block(line []uint16, w, p int, b byte) {
	hi, lo := uint16(c.gtia11[b>>4]), uint16(c.gtia11[b&0xf])
	line[w], line[w+1], line[w+2], line[w+3] = hi, hi, lo, lo
	if c.pmZero(p) {
		return
	}
	for k := 0; k < 4; k++ {
		r := c.pm[c.pmLine[p+k]]
		if r == 0 {
			continue
		}
		if r != cPF3 {
			line[w+k] = c.cl[r]
			continue
		}
		v := b & 0xf0
		if k >= 2 {
			v = b << 4
		}
		if v != 0 {
			line[w+k] = uint16(v) | uint16(v)<<8 | c.cl[cPF3]
		} else {
			line[w+k] = c.cl[cPF3] & 0xf0f0
		}
	}
}

// gtia10Lookup is the nine colour palette of GTIA mode 10.
func (c *Chips) gtia10Lookup() [16]uint16 {
	cl := &c.cl
	bak := cl[cBAK]
	return [16]uint16{
		cl[cPM0], cl[cPM1], cl[cPM2], cl[cPM3],
		cl[cPF0], cl[cPF1], cl[cPF2], cl[cPF3],
		bak, bak, bak, bak,
		cl[cPF0], cl[cPF1], cl[cPF2], cl[cPF3],
	}
}

// gtia10Block draws one byte as two GTIA mode 10 pixels at word w. The PM
// line is read at p. Values 0..3 show as the matching player.
func (c *Chips) gtia10Block(line []uint16, w, p int, b byte, lk *[16]uint16) {
	if c.pmZero(p) {
		hi, lo := lk[b>>4], lk[b&0xf]
		line[w], line[w+1], line[w+2], line[w+3] = hi, hi, lo, lo
		return
	}
	v := b >> 4
	for k := 0; k < 4; k++ {
		colreg := gtia10Colreg[v]
		pm := c.pmLine[p+k]
		c.cl[colreg|cCOLLS] |= uint16(pm)
		pm |= gtia10PM[v]
		line[w+k] = c.cl[c.pm[pm]|colreg]
		if k == 1 {
			v = b & 0xf
		}
	}
}

func (c *Chips) drawMode2GTIA9(line []uint16, mem []byte, n, x int) {
	t := c.initText2()
	for i := 0; i < n; i++ {
		c.gtia9Block(line, x, x, c.text2Byte(&t, mem[i]))
		x += 4
	}
	c.border(line)
}

func (c *Chips) drawMode2GTIA10(line []uint16, mem []byte, n, x int) {
	t := c.initText2()
	lk := c.gtia10Lookup()
	for i := 0; i < n; i++ {
		c.gtia10Block(line, x, x+1, c.text2Byte(&t, mem[i]), &lk)
		x += 4
	}
	c.borderGTIA10(line)
}

func (c *Chips) drawMode2GTIA11(line []uint16, mem []byte, n, x int) {
	t := c.initText2()
	for i := 0; i < n; i++ {
		c.gtia11Block(line, x, x, c.text2Byte(&t, mem[i]))
		x += 4
	}
	c.borderGTIA11(line)
}

// drawMode4 draws four colour characters; inverse characters use PF3 for
// pixel value 3.
func (c *Chips) drawMode4(line []uint16, mem []byte, n, x int) {
	dctr := c.dctr
	if c.mode != 4 {
		dctr >>= 1
	}
	chbase := (uint16(dctr) ^ c.chbase20) & 0xfc07
	c.clk.xpos += c.geom.fontCycles[c.md]

	cl := &c.cl
	lk := [2][4]uint16{
		{cl[cBAK], cl[cPF0], cl[cPF1], cl[cPF2]},
		{cl[cBAK], cl[cPF0], cl[cPF1], cl[cPF3]},
	}
	regs := [2][4]byte{
		{cBAK, cPF0, cPF1, cPF2},
		{cBAK, cPF0, cPF1, cPF3},
	}
	for i := 0; i < n; i++ {
		sd := mem[i]
		inv := sd >> 7
		ch := c.peek(chbase + uint16(sd&0x7f)<<3)
		switch {
		case !c.pmZero(x):
			for k := 0; k < 4; k++ {
				c.lores(line, x+k, regs[inv][ch>>6])
				ch <<= 2
			}
		case ch != 0:
			l := &lk[inv]
			line[x] = l[ch>>6]
			line[x+1] = l[ch>>4&3]
			line[x+2] = l[ch>>2&3]
			line[x+3] = l[ch&3]
		default:
			fill4(line, x, cl[cBAK])
		}
		x += 4
	}
	c.border(line)
}

// drawMode6 draws double width characters in the colour selected by the
// top two bits of the code.
func (c *Chips) drawMode6(line []uint16, mem []byte, n, x int) {
	var chbase uint16
	if c.mode == 6 {
		chbase = uint16(c.dctr&7) ^ c.chbase20
	} else {
		chbase = uint16(c.dctr>>1) ^ c.chbase20
	}
	c.clk.xpos += c.geom.fontCycles[c.md]

	regs := [4]byte{cPF0, cPF1, cPF2, cPF3}
	bak := c.cl[cBAK]
	for i := 0; i < n; i++ {
		sd := mem[i]
		reg := regs[sd>>6]
		col := c.cl[reg]
		ch := c.peek(chbase + uint16(sd&0x3f)<<3)
		for half := 0; half < 2; half++ {
			if c.pmZero(x) {
				if ch&0xf0 != 0 {
					for k := 0; k < 4; k++ {
						if ch&(0x80>>k) != 0 {
							line[x+k] = col
						} else {
							line[x+k] = bak
						}
					}
				} else {
					fill4(line, x, bak)
				}
				ch <<= 4
			} else {
				for k := 0; k < 4; k++ {
					if ch&0x80 != 0 {
						c.lores(line, x+k, reg)
					} else {
						c.lores(line, x+k, cBAK)
					}
					ch <<= 1
				}
			}
			x += 4
		}
	}
	c.border(line)
}
