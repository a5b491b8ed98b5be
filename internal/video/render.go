package video

// renderer selects the routine that draws one mode line.
type renderer uint8

const (
	drawNone renderer = iota
	draw2
	draw2Artif
	draw2GTIA9
	draw2GTIA10
	draw2GTIA11
	draw4
	draw6
	draw8
	draw9
	drawA
	drawC
	drawE
	drawF
	drawFArtif
	drawFGTIA9
	drawFGTIA10
	drawFGTIA11
	drawFGTIABug
	// Modes 9, B and C only use BAK and PF0, neither of which exists in
	// the GTIA modes, so those lines show the blank line routine.
	drawBlank9
	drawBlank10
	drawBlank11
)

// blankRenderer draws lines without playfield.
type blankRenderer uint8

const (
	blankNormal blankRenderer = iota
	blankGTIA10
	blankGTIA11
)

// defaultRenderers is indexed by PRIOR>>6 and the ANTIC mode.
var defaultRenderers = [4][16]renderer{
	{drawNone, drawNone, draw2, draw2, draw4, draw4, draw6, draw6,
		draw8, draw9, drawA, drawC, drawC, drawE, drawE, drawF},
	{drawNone, drawNone, draw2GTIA9, draw2GTIA9, draw4, draw4, draw6, draw6,
		draw8, drawBlank9, drawA, drawBlank9, drawBlank9, drawE, drawE, drawFGTIA9},
	{drawNone, drawNone, draw2GTIA10, draw2GTIA10, draw4, draw4, draw6, draw6,
		draw8, drawBlank10, drawA, drawBlank10, drawBlank10, drawE, drawE, drawFGTIA10},
	{drawNone, drawNone, draw2GTIA11, draw2GTIA11, draw4, draw4, draw6, draw6,
		draw8, drawBlank11, drawA, drawBlank11, drawBlank11, drawE, drawE, drawFGTIA11},
}

var hiresMask = [4]uint16{0xffff, 0xf0ff, 0xfff0, 0xf0f0}

// GTIA mode 10 colour registers and implied players per pixel value.
var (
	gtia10Colreg = [16]byte{
		cBAK, cBAK, cBAK, cBAK, cPF0, cPF1, cPF2, cPF3,
		cBAK, cBAK, cBAK, cBAK, cPF0, cPF1, cPF2, cPF3,
	}
	gtia10PM = [16]byte{1, 2, 4, 8}
)

// render draws the playfield of the current mode line into line.
func (c *Chips) render(line []uint16) {
	g := &c.geom
	n := g.charsDisplayed[c.md]
	mem := c.lineMem[4+g.chOffset[c.md]:]
	x := g.xMin[c.md]

	switch c.draw {
	case draw2:
		c.drawMode2(line, mem, n, x)
	case draw2Artif:
		c.drawMode2Artif(line, mem, n, x)
	case draw2GTIA9:
		c.drawMode2GTIA9(line, mem, n, x)
	case draw2GTIA10:
		c.drawMode2GTIA10(line, mem, n, x)
	case draw2GTIA11:
		c.drawMode2GTIA11(line, mem, n, x)
	case draw4:
		c.drawMode4(line, mem, n, x)
	case draw6:
		c.drawMode6(line, mem, n, x)
	case draw8:
		c.drawMode8(line, mem, n, x)
	case draw9:
		c.drawMode9(line, mem, n, x)
	case drawA:
		c.drawModeA(line, mem, n, x)
	case drawC:
		c.drawModeC(line, mem, n, x)
	case drawE:
		c.drawModeE(line, mem, n, x)
	case drawF:
		c.drawModeF(line, mem, n, x)
	case drawFArtif:
		c.drawModeFArtif(line, mem, n, x)
	case drawFGTIA9:
		c.drawModeFGTIA9(line, mem, n, x)
	case drawFGTIA10:
		c.drawModeFGTIA10(line, mem, n, x)
	case drawFGTIA11:
		c.drawModeFGTIA11(line, mem, n, x)
	case drawFGTIABug:
		c.drawModeFGTIABug(line, mem, n, x)
	case drawBlank9:
		c.blank(line, blankNormal)
	case drawBlank10:
		c.blank(line, blankGTIA10)
	case drawBlank11:
		c.blank(line, blankGTIA11)
	default:
		panic("video: no renderer for mode line")
	}
}

// renderBlank draws a line without playfield using the GTIA mode from PRIOR.
func (c *Chips) renderBlank(line []uint16) { c.blank(line, c.drawBlank) }

func (c *Chips) blank(line []uint16, r blankRenderer) {
	switch r {
	case blankGTIA10:
		if !c.pmDirty {
			fill(line[leftChop:rightChop], c.cl[cPM0])
			return
		}
		bg := c.cl[cPM0]
		for p := leftChop; p < rightChop; p += 4 {
			c.borderBlock10(line, p, p, bg)
		}
	case blankGTIA11:
		if !c.pmDirty {
			fill(line[leftChop:rightChop], uint16(c.gtia11[0]))
			return
		}
		c.withGTIA11Border(func(bg uint16) {
			for p := leftChop; p < rightChop; p += 4 {
				c.borderBlock(line, p, bg)
			}
		})
	default:
		if !c.pmDirty {
			fill(line[leftChop:rightChop], c.cl[cBAK])
			return
		}
		bg := uint16(c.gtia9[0])
		for p := leftChop; p < rightChop; p += 4 {
			c.borderBlock(line, p, bg)
		}
	}
}

func (c *Chips) pmZero(p int) bool {
	pm := &c.pmLine
	return pm[p]|pm[p+1]|pm[p+2]|pm[p+3] == 0
}

func fill4(line []uint16, p int, v uint16) {
	line[p], line[p+1], line[p+2], line[p+3] = v, v, v, v
}

// lores resolves one word of a PM covered playfield pixel of colour
// register colreg and records the playfield collision.
func (c *Chips) lores(line []uint16, p int, colreg byte) {
	pm := c.pmLine[p]
	c.cl[colreg|cCOLLS] |= uint16(pm)
	line[p] = c.cl[c.pm[pm]|colreg]
}

// borderBlock draws four border words, resolving any PM objects over them.
func (c *Chips) borderBlock(line []uint16, p int, bg uint16) {
	if c.pmZero(p) {
		fill4(line, p, bg)
		return
	}
	for k := 0; k < 4; k++ {
		line[p+k] = c.cl[c.pm[c.pmLine[p+k]]]
	}
}

// borderBlock10 is borderBlock for GTIA mode 10, where the background is
// player 0 and the PM line is read at offset p.
func (c *Chips) borderBlock10(line []uint16, w, p int, bg uint16) {
	if c.pmZero(p) {
		fill4(line, w, bg)
		return
	}
	for k := 0; k < 4; k++ {
		line[w+k] = c.cl[c.pm[c.pmLine[p+k]|1]]
	}
}

// border draws the left and right borders around a playfield.
func (c *Chips) border(line []uint16) {
	bg := uint16(c.gtia9[0])
	c.borders(line, bg)
}

func (c *Chips) borders(line []uint16, bg uint16) {
	p := leftChop
	for k := c.geom.leftBorderChars; k > 0; k-- {
		c.borderBlock(line, p, bg)
		p += 4
	}
	for p = c.geom.rightBorderStart; p < rightChop; p += 4 {
		c.borderBlock(line, p, bg)
	}
}

func (c *Chips) borderGTIA10(line []uint16) {
	bg := c.cl[cPM0]
	p := leftChop
	for k := c.geom.leftBorderChars; k > 0; k-- {
		c.borderBlock10(line, p, p, bg)
		p += 4
	}
	line[p] = c.cl[c.pm[c.pmLine[p]|1]]

	p = c.geom.rightBorderStart + 1
	if p >= rightChop {
		return
	}
	line[p] = c.cl[c.pm[c.pmLine[p+1]|1]]
	line[p+1] = c.cl[c.pm[c.pmLine[p+2]|1]]
	line[p+2] = c.cl[c.pm[c.pmLine[p+3]|1]]
	w := p + 3
	for p += 4; p < rightChop; p += 4 {
		c.borderBlock10(line, w, p, bg)
		w += 4
	}
}

// withGTIA11Border runs draw with PF3 reduced to its hue and the
// background taken from the mode 11 table, then restores both.
func (c *Chips) withGTIA11Border(draw func(bg uint16)) {
	bg := uint16(c.gtia11[0])
	c.cl[cPF3] &= 0xf0f0
	c.cl[cBAK] = bg
	draw(bg)
	c.cl[cPF3] = word(c.COLPF[3])
	c.cl[cBAK] = word(c.COLBK)
}

func (c *Chips) borderGTIA11(line []uint16) {
	c.withGTIA11Border(func(bg uint16) { c.borders(line, bg) })
}
