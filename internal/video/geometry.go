package video

// Width/scroll variants. NORMAL is used by unscrolled lines, SCROLL by lines
// with the HSCROL bit set. The digit selects bytes per line: 0 for 40
// columns worth of data, 1 for 20, 2 for 10 (in a normal width playfield).
const (
	normal0 = iota
	normal1
	normal2
	scroll0
	scroll1
	scroll2
)

// geometry is what one DMACTL/HSCROL combination does to a mode line:
// how many bytes are fetched, how many characters land on screen and where,
// and how many cycles the fetches steal.
type geometry struct {
	charsRead      [6]int
	charsDisplayed [6]int
	xMin           [6]int
	chOffset       [6]int
	loadCycles     [6]int
	fontCycles     [6]int
	beforeCycles   [6]int
	extraCycles    [6]int

	// border between word 12 and the playfield, in groups of four words
	leftBorderChars int
	// first word of the right border
	rightBorderStart int
}

func (g *geometry) narrow() {
	g.charsRead = [6]int{32, 16, 8, 40, 20, 10}
	g.charsDisplayed[normal0], g.charsDisplayed[normal1], g.charsDisplayed[normal2] = 32, 16, 8
	g.xMin[normal0], g.xMin[normal1], g.xMin[normal2] = 32, 32, 32
	g.chOffset[normal0], g.chOffset[normal1], g.chOffset[normal2] = 0, 0, 0
	g.loadCycles[normal0], g.fontCycles[normal0] = 32, 32
	g.loadCycles[normal1], g.fontCycles[normal1] = 16, 16
	g.loadCycles[normal2] = 8
	g.beforeCycles[normal0] = 0
	g.beforeCycles[scroll0] = 8
	g.extraCycles[normal0] = 7
	g.extraCycles[scroll0] = 16
	g.leftBorderChars = 8 - 3
	g.rightBorderStart = (Width - 64) / 2
}

func (g *geometry) normal() {
	g.charsRead = [6]int{40, 20, 10, 48, 24, 12}
	g.charsDisplayed[normal0], g.charsDisplayed[normal1], g.charsDisplayed[normal2] = 40, 20, 10
	g.xMin[normal0], g.xMin[normal1], g.xMin[normal2] = 16, 16, 16
	g.chOffset[normal0], g.chOffset[normal1], g.chOffset[normal2] = 0, 0, 0
	g.loadCycles[normal0], g.fontCycles[normal0] = 40, 40
	g.loadCycles[normal1], g.fontCycles[normal1] = 20, 20
	g.loadCycles[normal2] = 10
	g.beforeCycles[normal0] = 8
	g.beforeCycles[scroll0] = 16
	g.extraCycles[normal0] = 16
	g.extraCycles[scroll0] = 23
	g.leftBorderChars = 4 - 3
	g.rightBorderStart = (Width - 32) / 2
}

func (g *geometry) wide() {
	g.charsRead = [6]int{48, 24, 12, 48, 24, 12}
	g.charsDisplayed[normal0], g.charsDisplayed[normal1], g.charsDisplayed[normal2] = 42, 22, 12
	g.xMin[normal0], g.xMin[normal1], g.xMin[normal2] = 12, 8, 0
	g.chOffset[normal0], g.chOffset[normal1], g.chOffset[normal2] = 3, 1, 0
	g.loadCycles[normal0], g.fontCycles[normal0] = 47, 47
	g.loadCycles[normal1], g.fontCycles[normal1] = 24, 24
	g.loadCycles[normal2] = 12
	g.beforeCycles[normal0] = 16
	g.beforeCycles[scroll0] = 16
	g.extraCycles[normal0] = 23
	g.extraCycles[scroll0] = 23
	g.leftBorderChars = 3 - 3
	g.rightBorderStart = (Width - 8) / 2
}

// scroll derives the SCROLL variants from the NORMAL ones for a fine
// scroll of b colour clocks (0..15).
func (g *geometry) scroll(b, dmactl byte) {
	hs := int(b)
	g.charsDisplayed[scroll0] = g.charsDisplayed[normal0]
	g.chOffset[scroll0] = 4 - hs>>2
	g.xMin[scroll0] = g.xMin[normal0]
	if hs&3 != 0 {
		g.xMin[scroll0] += hs&3 - 4
		g.charsDisplayed[scroll0]++
		g.chOffset[scroll0]--
	}
	g.charsDisplayed[scroll2] = g.charsDisplayed[normal2]
	if dmactl&3 == 3 {
		g.chOffset[scroll0]--
		if hs == 4 || hs == 12 {
			g.charsDisplayed[scroll1] = 21
		} else {
			g.charsDisplayed[scroll1] = 22
		}
		switch {
		case hs <= 4:
			g.xMin[scroll1] = hs + 8
			g.chOffset[scroll1] = 1
		case hs <= 12:
			g.xMin[scroll1] = hs
			g.chOffset[scroll1] = 0
		default:
			g.xMin[scroll1] = hs - 8
			g.chOffset[scroll1] = -1
		}
		g.xMin[scroll2] = hs
		g.chOffset[scroll2] = 0
	} else {
		g.charsDisplayed[scroll1] = g.charsDisplayed[normal1]
		g.chOffset[scroll1] = 2 - hs>>3
		g.xMin[scroll1] = g.xMin[normal0]
		if hs != 0 {
			if hs&7 != 0 {
				g.xMin[scroll1] += hs&7 - 8
				g.charsDisplayed[scroll1]++
				g.chOffset[scroll1]--
			}
			g.xMin[scroll2] = g.xMin[normal2] + hs - 16
			g.charsDisplayed[scroll2]++
			g.chOffset[scroll2] = 0
		} else {
			g.xMin[scroll2] = g.xMin[normal2]
			g.chOffset[scroll2] = 1
		}
	}

	if dmactl&2 != 0 {
		g.loadCycles[scroll0] = 47 - hs>>2
		g.fontCycles[scroll0] = (47*4 + 1 - hs) >> 2
		g.loadCycles[scroll1] = (24*8 + 3 - hs) >> 3
		g.fontCycles[scroll1] = (24*8 + 1 - hs) >> 3
		if hs < 0xc {
			g.loadCycles[scroll2] = 12
		} else {
			g.loadCycles[scroll2] = 11
		}
	} else {
		g.loadCycles[scroll0], g.fontCycles[scroll0] = 40, 40
		g.loadCycles[scroll1], g.fontCycles[scroll1] = 20, 20
		g.loadCycles[scroll2] = 16
	}
}
