package video

// Colour table columns. A playfield colour ORed with a PM overlap column
// selects the colour shown where that playfield and those objects meet.
const (
	cBAK    = 0x00
	cPM0    = 0x01
	cPM1    = 0x02
	cPM01   = 0x03
	cPM2    = 0x04
	cPM3    = 0x05
	cPM23   = 0x06
	cPM023  = 0x07
	cPM123  = 0x08
	cPM0123 = 0x09
	cPM25   = 0x0a
	cPM35   = 0x0b
	cPM235  = 0x0c
	cCOLLS  = 0x0d
	cPF0    = 0x40
	cPF1    = 0x50
	cPF2    = 0x60
	cPF3    = 0x70
	cBLACK  = cPF3 | cPM25

	colourBlack = 0
)

// priorToPM maps the low six PRIOR bits to a row of pmLookup.
var priorToPM = [64]byte{
	0, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 1, 1, 1, 1,
	2, 3, 4, 5, 6, 7, 6, 7, 3, 3, 2, 5, 8, 7, 9, 7,
	10, 10, 10, 10, 10, 11, 10, 11, 10, 10, 10, 10, 11, 11, 11, 11,
	12, 13, 14, 15, 16, 17, 16, 17, 13, 13, 12, 15, 18, 17, 19, 17,
}

// pmLookup resolves a PM overlap byte to a colour table column. Rows
// 10..19 keep the fifth-player and multicolour combinations, rows 0..9 fold
// them for playfields that do not distinguish them.
var pmLookup [20][256]byte

var pmTemplates = [10][16]byte{
	// PRIOR 0 (players over playfield)
	{cBAK, cPM0, cPM1, cPM01, cPM2, cPM0, cPM1, cPM01, cPM3, cPM0, cPM1, cPM01, cPM23, cPM0, cPM1, cPM01},
	// multicolour players
	{cBAK, cPM0, cPM1, cPM01, cPM2, cPM023, cPM123, cPM0123, cPM3, cPM023, cPM123, cPM0123, cPM23, cPM023, cPM123, cPM0123},
	// fifth player
	{cPF3, cPM0, cPM1, cPM01, cPM25, cPM0, cPM1, cPM01, cPM35, cPM0, cPM1, cPM01, cPM235, cPM0, cPM1, cPM01},
	{cPF3, cPM0, cPM1, cPM01, cPM2, cPM0, cPM1, cPM01, cPM3, cPM0, cPM1, cPM01, cPM23, cPM0, cPM1, cPM01},
	{cPF3, cPM0, cPM1, cPM01, cPF3, cPM0, cPM1, cPM01, cPF3, cPM0, cPM1, cPM01, cPF3, cPM0, cPM1, cPM01},
	{cPF3, cPM0, cPM1, cPM01, cBLACK, cPM0, cPM1, cPM01, cBLACK, cPM0, cPM1, cPM01, cBLACK, cPM0, cPM1, cPM01},
	{cPF3, cPF3, cPF3, cPF3, cPF3, cPF3, cPF3, cPF3, cPF3, cPF3, cPF3, cPF3, cPF3, cPF3, cPF3, cPF3},
	{cPF3, cPF3, cPF3, cPF3, cBLACK, cBLACK, cBLACK, cBLACK, cBLACK, cBLACK, cBLACK, cBLACK, cBLACK, cBLACK, cBLACK, cBLACK},
	{cPF3, cPF3, cPF3, cPF3, cPM25, cPM25, cPM25, cPM25, cPM25, cPM25, cPM25, cPM25, cPM25, cPM25, cPM25, cPM25},
	{cPF3, cPF3, cPF3, cPF3, cPM25, cBLACK, cBLACK, cBLACK, cPM25, cBLACK, cBLACK, cBLACK, cPM25, cBLACK, cBLACK, cBLACK},
}

var multiToNormal = [13]byte{
	cBAK,
	cPM0, cPM1, cPM0,
	cPM2, cPM3, cPM2,
	cPM023, cPM123, cPM023,
	cPM25, cPM35, cPM25,
}

// grafpLookup expands a player byte to a pixel mask, leftmost pixel in
// bit 0, for each of the four SIZEP widths.
var grafpLookup [4][256]uint32

var missileWidth = [4]int{1, 2, 1, 4}

func init() {
	fold := func(v byte) byte {
		if v <= cPM235 {
			return multiToNormal[v]
		}
		return v
	}
	for i := 0; i <= 1; i++ {
		for j := 0; j < 256; j++ {
			v := pmTemplates[i][(j&0xf)|(j>>4)]
			pmLookup[i+10][j] = v
			pmLookup[i][j] = fold(v)
		}
	}
	for i := 2; i <= 9; i++ {
		for j := 0; j < 256; j++ {
			var v byte
			if j < 16 {
				if i < 7 {
					v = pmTemplates[0][j]
				} else {
					v = pmTemplates[1][j]
				}
			} else {
				v = pmTemplates[i][j&0xf]
			}
			pmLookup[i+10][j] = v
			pmLookup[i][j] = fold(v)
		}
	}

	for i := 0; i < 256; i++ {
		var g1, g2, g4 uint32
		for bit := 7; bit >= 0; bit-- {
			g1 <<= 1
			g2 <<= 2
			g4 <<= 4
			if i&(1<<(7-bit)) != 0 {
				g1++
				g2 += 3
				g4 += 15
			}
		}
		grafpLookup[0][i] = g1
		grafpLookup[2][i] = g1
		grafpLookup[1][i] = g2
		grafpLookup[3][i] = g4
	}
}

func word(b byte) uint16 { return uint16(b) | uint16(b)<<8 }

// setPrior rebuilds the PM rows of the colour table for a new PRIOR value
// and reselects the PM lookup row and renderers. PRIOR itself is stored by
// the caller afterwards.
func (c *Chips) setPrior(b byte) {
	cl := &c.cl
	if (b^c.PRIOR)&0x0f != 0 {
		var cw, cw2 uint16
		if b&3 == 0 {
			cw, cw2 = cl[cPF0], cl[cPF1]
		}
		if b&0xc == 0 {
			cl[cPF0|cPM0] = cw | cl[cPM0]
			cl[cPF0|cPM1] = cw | cl[cPM1]
			cl[cPF0|cPM01] = cw | cl[cPM01]
			cl[cPF1|cPM0] = cw2 | cl[cPM0]
			cl[cPF1|cPM1] = cw2 | cl[cPM1]
			cl[cPF1|cPM01] = cw2 | cl[cPM01]
		} else {
			cl[cPF0|cPM0], cl[cPF0|cPM1], cl[cPF0|cPM01] = cw, cw, cw
			cl[cPF1|cPM0], cl[cPF1|cPM1], cl[cPF1|cPM01] = cw2, cw2, cw2
		}
		if b&4 != 0 {
			cl[cPF2|cPM0], cl[cPF2|cPM1], cl[cPF2|cPM01] = cl[cPF2], cl[cPF2], cl[cPF2]
			cl[cPF3|cPM0], cl[cPF3|cPM1], cl[cPF3|cPM01] = cl[cPF3], cl[cPF3], cl[cPF3]
		} else {
			cl[cPF3|cPM0], cl[cPF2|cPM0] = cl[cPM0], cl[cPM0]
			cl[cPF3|cPM1], cl[cPF2|cPM1] = cl[cPM1], cl[cPM1]
			cl[cPF3|cPM01], cl[cPF2|cPM01] = cl[cPM01], cl[cPM01]
		}
		cw, cw2 = 0, 0
		if b&9 == 0 {
			cw, cw2 = cl[cPF2], cl[cPF3]
		}
		if b&6 == 0 {
			cl[cPF2|cPM2] = cw | cl[cPM2]
			cl[cPF2|cPM3] = cw | cl[cPM3]
			cl[cPF2|cPM23] = cw | cl[cPM23]
			cl[cPF3|cPM2] = cw2 | cl[cPM2]
			cl[cPF3|cPM3] = cw2 | cl[cPM3]
			cl[cPF3|cPM23] = cw2 | cl[cPM23]
		} else {
			cl[cPF2|cPM2], cl[cPF2|cPM3], cl[cPF2|cPM23] = cw, cw, cw
			cl[cPF3|cPM2], cl[cPF3|cPM3], cl[cPF3|cPM23] = cw2, cw2, cw2
		}
		if b&1 != 0 {
			cl[cPF1|cPM2], cl[cPF0|cPM2] = cl[cPM2], cl[cPM2]
			cl[cPF1|cPM3], cl[cPF0|cPM3] = cl[cPM3], cl[cPM3]
			cl[cPF1|cPM23], cl[cPF0|cPM23] = cl[cPM23], cl[cPM23]
		} else {
			cl[cPF0|cPM2], cl[cPF0|cPM3], cl[cPF0|cPM23] = cl[cPF0], cl[cPF0], cl[cPF0]
			cl[cPF1|cPM2], cl[cPF1|cPM3], cl[cPF1|cPM23] = cl[cPF1], cl[cPF1], cl[cPF1]
		}
		if b&0xf == 0xc {
			cl[cPF0|cPM023], cl[cPF0|cPM123], cl[cPF0|cPM0123] = cl[cPF0], cl[cPF0], cl[cPF0]
			cl[cPF1|cPM023], cl[cPF1|cPM123], cl[cPF1|cPM0123] = cl[cPF1], cl[cPF1], cl[cPF1]
		} else {
			for _, i := range [...]int{cPM023, cPM123, cPM0123} {
				cl[cPF0|i] = colourBlack
				cl[cPF1|i] = colourBlack
			}
		}
		if b&0xf != 0 {
			cl[cPF0|cPM25] = cl[cPF0]
			cl[cPF1|cPM25] = cl[cPF1]
			cl[cPF3|cPM25], cl[cPF2|cPM25], cl[cPM25] = colourBlack, colourBlack, colourBlack
		} else {
			for _, i := range [...]int{cPM25, cPM35, cPM235} {
				cl[cPF0|i] = cl[cPF3]
				cl[cPF1|i] = cl[cPF3]
			}
			v := cl[cPF3|cPM2]
			cl[cPF3|cPM25], cl[cPF2|cPM25], cl[cPM25] = v, v, v
			v = cl[cPF3|cPM3]
			cl[cPF3|cPM35], cl[cPF2|cPM35], cl[cPM35] = v, v, v
			v = cl[cPF3|cPM23]
			cl[cPF3|cPM235], cl[cPF2|cPM235], cl[cPM235] = v, v, v
		}
	}
	c.pm = &pmLookup[priorToPM[b&0x3f]]
	switch {
	case b < 0x80:
		c.drawBlank = blankNormal
	case b < 0xc0:
		c.drawBlank = blankGTIA10
	default:
		c.drawBlank = blankGTIA11
	}
	wideLimit := 22
	if c.DMACTL&3 == 3 {
		wideLimit = 20
	}
	if b < 0x40 && c.PRIOR >= 0x40 && c.mode == 0xf && c.clk.xpos >= wideLimit {
		c.draw = drawFGTIABug
	} else {
		c.draw = c.table[b>>6][c.mode]
	}
}

// setupGTIA9_11 rebuilds the luminance and hue lookups for GTIA modes 9
// and 11 from the background colour kept in gtia9[0].
func (c *Chips) setupGTIA9_11() {
	c.gtia11[0] = c.gtia9[0] & 0xf0f0f0f0
	for i := uint32(1); i < 16; i++ {
		c.gtia9[i] = c.gtia9[0] | i | i<<8 | i<<16 | i<<24
		c.gtia11[i] = c.gtia9[0] | i<<4 | i<<12 | i<<20 | i<<28
	}
}
