package video

// modeType selects the geometry variant from the low five bits of the
// instruction: the mode and the HSCROL bit.
var modeType = [32]int{
	normal0, normal0, normal0, normal0, normal0, normal0, normal1, normal1,
	normal2, normal2, normal1, normal1, normal1, normal0, normal0, normal0,
	scroll0, scroll0, scroll0, scroll0, scroll0, scroll0, scroll1, scroll1,
	scroll2, scroll2, scroll1, scroll1, scroll1, scroll0, scroll0, scroll0,
}

// normalLastline is the last scanline counter value of each mode line.
var normalLastline = [16]byte{0, 0, 7, 9, 7, 15, 7, 15, 7, 3, 3, 1, 0, 1, 0, 0}

// RunFrame executes one television frame: the display list, the CPU in the
// gaps ANTIC leaves, and both NMIs. With draw false the timing is kept but
// nothing is written to the screen.
func (c *Chips) RunFrame(draw bool) {
	vscrolFlag := false
	noJVB := true
	c.delayedGTIA11 = 250

	c.gtiaFrame()
	penX, penY := c.penX, c.penY

	c.clk.ypos = 0
	for c.clk.ypos < firstLine {
		c.scanline()
		c.overscreenLine()
	}

	c.needDL = true
	for c.clk.ypos < lastLine {
		if c.LightPenEnabled && byte(c.clk.ypos>>1) == penY {
			c.PenH, c.PenV = penX, penY
			if c.GRACTL&4 != 0 {
				c.trigLatch[0] = 0
			}
		}
		c.scanline()
		c.pmgDMA()

		needLoad := false
		if c.needDL {
			if c.DMACTL&0x20 != 0 {
				c.IR = c.dlByte()
				c.mode = c.IR & 0xf
				c.flickerFetch()
			} else {
				// repeat the last instruction without its DLI
				c.IR &= 0x7f
			}
			c.dctr = 0
			c.needDL = false
			c.vscrolOff = false
			switch c.mode {
			case 0x00:
				c.lastline = (c.IR >> 4) & 7
				if vscrolFlag {
					c.lastline = c.VSCROL
					vscrolFlag = false
					c.vscrolOff = true
				}
			case 0x01:
				c.lastline = 0
				if c.IR&0x40 != 0 && c.DMACTL&0x20 != 0 {
					c.dlist = c.dlWord()
					c.mode = 0
					noJVB = false
				} else if vscrolFlag {
					c.lastline = c.VSCROL
					vscrolFlag = false
					c.vscrolOff = true
				}
			default:
				c.lastline = normalLastline[c.mode]
				if c.IR&0x20 != 0 {
					if !vscrolFlag {
						c.run(vsconC)
						c.dctr = c.VSCROL
						vscrolFlag = true
					}
				} else if vscrolFlag {
					c.lastline = c.VSCROL
					vscrolFlag = false
					c.vscrolOff = true
				}
				if c.IR&0x40 != 0 && c.DMACTL&0x20 != 0 {
					c.screenaddr = c.dlWord()
				}
				c.md = modeType[c.IR&0x1f]
				needLoad = true
				c.draw = c.table[c.PRIOR>>6][c.mode]
			}
		}
		if c.mode == 1 && c.DMACTL&0x20 != 0 {
			c.dlist = c.dlWord()
		}
		if c.dctr == c.lastline {
			if noJVB {
				c.needDL = true
			}
			if c.IR&0x80 != 0 {
				c.run(nmistC)
				c.NMIST = 0x9f
				if c.NMIEN&0x80 != 0 {
					c.run(nmiC)
					c.nmi()
				}
			}
		}

		blankLine := c.mode < 2 || c.DMACTL&3 == 0
		if !draw {
			c.clk.xpos += dmaRefr
			if blankLine {
				c.endLine()
				if noJVB {
					c.dctr = (c.dctr + 1) & 0xf
				}
				continue
			}
			if needLoad {
				c.clk.xpos += c.geom.loadCycles[c.md]
				if c.mode <= 5 {
					c.clk.xpos += c.geom.beforeCycles[c.md] - c.geom.extraCycles[c.md]
				}
			}
			if c.mode < 8 {
				c.clk.xpos += c.geom.fontCycles[c.md]
			}
			c.endLine()
			c.dctr = (c.dctr + 1) & 0xf
			continue
		}

		if needLoad && c.mode <= 5 && c.DMACTL&3 != 0 {
			c.clk.xpos += c.geom.beforeCycles[c.md]
		}
		line := c.screen[(c.clk.ypos-firstLine)*WordsPerLine:][:WordsPerLine]

		if blankLine && c.playersOffscreen() && c.GRAFM == 0 && c.PRIOR < 0x80 {
			c.clk.xpos += dmaRefr
			c.endLine()
			fill(line[leftChop:rightChop], word(c.COLBK))
			if noJVB {
				c.dctr = (c.dctr + 1) & 0xf
			}
			continue
		}

		c.run(scrC)
		c.newPMLine()
		c.clk.xpos += dmaRefr
		if blankLine {
			c.renderBlank(line)
			c.endLine()
			if noJVB {
				c.dctr = (c.dctr + 1) & 0xf
			}
			continue
		}
		if needLoad {
			c.loadLine()
			c.clk.xpos += c.geom.loadCycles[c.md]
			if c.mode <= 5 {
				c.clk.xpos -= c.geom.extraCycles[c.md]
			}
		}
		c.render(line)

		if c.PRIOR >= 0xc0 {
			c.delayedGTIA11 = c.clk.ypos + 1
		} else if c.clk.ypos == c.delayedGTIA11 {
			prev := c.screen[(c.clk.ypos-firstLine-1)*WordsPerLine:][:WordsPerLine]
			for i := leftChop; i < rightChop; i++ {
				line[i] |= prev[i]
			}
		}
		c.endLine()
		c.dctr = (c.dctr + 1) & 0xf
	}

	c.scanline()
	c.run(nmistC)
	c.NMIST = 0x5f
	if c.NMIEN&0x40 != 0 {
		c.run(nmiC)
		c.nmi()
	}
	c.clk.xpos += dmaRefr
	c.endLine()
	for c.clk.ypos < c.tv.Lines() {
		c.scanline()
		c.overscreenLine()
	}
	if c.pokey != nil {
		c.pokey.Frame()
	}
}

// flickerFetch models GTIA latching bus data while graphics are enabled in
// GRACTL without DMA: missiles see the instruction byte, players the bytes
// the CPU was fetching.
func (c *Chips) flickerFetch() {
	odd := c.clk.ypos&1 != 0
	if c.missileFlick {
		if odd {
			c.GRAFM = c.IR
		} else {
			c.GRAFM = ((c.GRAFM ^ c.IR) & holdMissiles[c.VDELAY&0xf]) ^ c.IR
		}
	}
	if c.playerFlick {
		hold := c.VDELAY
		if odd {
			hold = 0
		}
		at := c.cpuPC() - uint16(c.clk.xpos) + 8
		for n := 0; n < 4; n++ {
			if hold&(0x10<<n) == 0 {
				c.GRAFP[n] = c.peek(at + uint16(n))
			}
		}
	}
}

// playersOffscreen reports whether no player can reach the visible area.
func (c *Chips) playersOffscreen() bool {
	for n := 0; n < 4; n++ {
		if c.GRAFP[n] != 0 && c.HPOSP[n] > 0x0c && c.HPOSP[n] < 0xd4 {
			return false
		}
	}
	return true
}

func fill(dst []uint16, v uint16) {
	for i := range dst {
		dst[i] = v
	}
}
