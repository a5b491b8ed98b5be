package video

import "fmt"

// Artifacting modes: the colours an NTSC set shows for hires pixel pairs.
const (
	ArtifactOff = iota
	ArtifactBrownBlue
	ArtifactBlueBrown
	ArtifactGreenRed
	ArtifactRedGreen

	ArtifactMax = ArtifactRedGreen
)

// artifact colour indices into a row of artColours
const (
	artBrown = iota
	artBlue
	artDarkBrown
	artDarkBlue
	artBrightBrown
	artBrightBlue
	artRed
	artGreen
)

var artColours = [4][8]byte{
	{0x88, 0x14, 0x88, 0x14, 0x8f, 0x1f, 0xbb, 0x5f}, // brown/blue
	{0x14, 0x88, 0x14, 0x88, 0x1f, 0x8f, 0x5f, 0xbb}, // blue/brown
	{0x46, 0xd6, 0x46, 0xd6, 0x4a, 0xdf, 0xac, 0x4f}, // green/red
	{0xd6, 0x46, 0xd6, 0x46, 0xdf, 0x4a, 0x4f, 0xac}, // red/green
}

// artTable maps eight bits of hires data (the four pixels of a block plus
// two neighbours on each side) to four screen bytes, pixel j in bits 8j.
// The masks mark the bytes that follow the PF1 luminance and the PF2
// colour, so a colour change is patched in place.
type artTable struct {
	lookup  [256]uint32
	bkmask  [256]uint32
	lummask [256]uint32
	pf1Save uint16
	pf2Save uint16
}

// artifact holds the normal table, used while PF1 is at least as bright
// as PF2, and the reverse one.
type artifact struct {
	normal, reverse artTable
	rev             bool
}

func (a *artifact) cur() *artTable {
	if a.rev {
		return &a.reverse
	}
	return &a.normal
}

func setByte(v *uint32, j int, b byte) {
	*v = *v&^(0xff<<(8*j)) | uint32(b)<<(8*j)
}

// SetArtifactMode selects an artifacting mode. Unknown modes are rejected
// and leave artifacting off.
func (c *Chips) SetArtifactMode(mode int) error {
	if mode < ArtifactOff || mode > ArtifactRedGreen {
		c.initArtifact(ArtifactOff)
		return fmt.Errorf("video: invalid artifacting mode %d", mode)
	}
	c.initArtifact(mode)
	return nil
}

// ArtifactMode returns the active artifacting mode.
func (c *Chips) ArtifactMode() int { return c.artifMode }

func (c *Chips) initArtifact(mode int) {
	c.artifMode = mode
	if mode == ArtifactOff {
		c.table[0][2], c.table[0][3] = draw2, draw2
		c.table[0][0xf] = drawF
		c.reselect()
		return
	}
	c.table[0][2], c.table[0][3] = draw2Artif, draw2Artif
	c.table[0][0xf] = drawFArtif

	colours := &artColours[mode-1]
	a := &c.art
	pf1, pf2 := c.cl[cPF1]&0x0f0f, c.cl[cPF2]
	a.normal.pf1Save, a.reverse.pf1Save = pf1, pf1
	a.normal.pf2Save, a.reverse.pf2Save = pf2, pf2
	white := byte(c.cl[cPF2]&0xf0) | byte(c.cl[cPF1]&0x0f)
	colpf2 := c.COLPF[2]

	n, r := &a.normal, &a.reverse
	for i := 0; i < 256; i++ {
		ri := 255 - i
		n.bkmask[i], n.lummask[i] = 0, 0
		r.bkmask[ri], r.lummask[ri] = 0, 0
		for j := 0; j < 4; j++ {
			q := byte(i << j)
			var col int
			switch {
			case q&0x20 == 0:
				switch q & 0xf8 {
				case 0x50:
					col = artBlue
				case 0xd8:
					col = artDarkBlue
				default:
					setByte(&n.lookup[i], j, colpf2)
					setByte(&r.lookup[ri], j, white)
					setByte(&n.bkmask[i], j, 0xff)
					setByte(&r.lummask[ri], j, 0x0f)
					setByte(&r.bkmask[ri], j, 0xf0)
					continue
				}
			case q&0x40 != 0:
				switch {
				case q&0x10 != 0:
					col = -1
				case q&0x80 != 0:
					if q&0x08 != 0 {
						col = artBrightBrown
					} else {
						col = -1
					}
				default:
					col = artGreen
				}
			case q&0x10 != 0:
				switch {
				case q&0x08 == 0:
					col = artRed
				case q&0x80 != 0:
					col = artBrightBrown
				default:
					col = -1
				}
			default:
				col = artBrown
			}
			if col < 0 {
				// PF1 pixel
				setByte(&n.lookup[i], j, white)
				setByte(&r.lookup[ri], j, colpf2)
				setByte(&r.bkmask[ri], j, 0xff)
				setByte(&n.lummask[i], j, 0x0f)
				setByte(&n.bkmask[i], j, 0xf0)
				continue
			}
			v := colours[(j&1)^col]
			setByte(&n.lookup[i], j, v)
			setByte(&r.lookup[ri], j, v)
		}
	}
	c.reselect()
}

// reselect picks the renderer for the current line again after the
// renderer table changed.
func (c *Chips) reselect() {
	c.draw = c.table[c.PRIOR>>6][c.mode]
}

// setupArtColours patches the active table for PF1 and PF2 changes,
// switching tables when PF1 becomes darker than PF2.
func (c *Chips) setupArtColours() {
	a := &c.art
	lum := c.cl[cPF1] & 0x0f0f
	pf2 := c.cl[cPF2]
	t := a.cur()
	if lum == t.pf1Save && pf2 == t.pf2Save {
		return
	}
	a.rev = lum < pf2&0x0f0f
	t = a.cur()
	if d := lum ^ t.pf1Save; d != 0 {
		nc := uint32(d) | uint32(d)<<16
		t.pf1Save = lum
		for i := range t.lookup {
			t.lookup[i] ^= t.lummask[i] & nc
		}
	}
	if d := pf2 ^ t.pf2Save; d != 0 {
		nc := uint32(d) | uint32(d)<<16
		t.pf2Save = pf2
		for i := range t.lookup {
			t.lookup[i] ^= t.bkmask[i] & nc
		}
	}
}

// draw writes the four words of the block centred in tally.
func (a *artifact) draw(line []uint16, p int, tally uint32) {
	t := a.cur()
	hi := t.lookup[byte(tally>>10)]
	lo := t.lookup[byte(tally>>6)]
	line[p], line[p+1] = uint16(hi), uint16(hi>>16)
	line[p+2], line[p+3] = uint16(lo), uint16(lo>>16)
}
