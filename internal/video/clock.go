package video

type syncState uint8

const (
	syncRunning syncState = iota
	// syncHaltPending: a WSYNC store arrived too late in the line. The CPU
	// stays stopped until the next run reaches the WSYNC position.
	syncHaltPending
)

// Clock is the beam position in CPU cycles. ANTIC steals cycles by moving
// xpos forward; the CPU consumes cycles until xpos reaches the limit.
type Clock struct {
	xpos  int
	limit int
	ypos  int
	sync  syncState
}

func (k *Clock) Xpos() int { return k.xpos }
func (k *Clock) Limit() int { return k.limit }
func (k *Clock) Advance(cycles int) { k.xpos += cycles }
func (k *Clock) Ypos() int { return k.ypos }
func (k *Clock) Halted() bool { return k.sync == syncHaltPending }

// run lets the CPU execute until xpos reaches limit.
func (c *Chips) run(limit int) {
	if c.clk.sync == syncHaltPending {
		if limit < wsyncC {
			return
		}
		c.clk.xpos = wsyncC
		c.clk.sync = syncRunning
	}
	c.clk.limit = limit
	if c.cpu != nil {
		c.cpu.Run()
	} else if c.clk.xpos < limit {
		c.clk.xpos = limit
	}
}

// endLine runs the CPU to the end of the scanline and wraps the clock.
func (c *Chips) endLine() {
	c.run(lineC)
	c.clk.xpos -= lineC
	c.clk.ypos++
}

func (c *Chips) overscreenLine() {
	c.clk.xpos += dmaRefr
	c.endLine()
}

// wsync is the WSYNC register store.
func (c *Chips) wsync() {
	if c.clk.xpos <= wsyncC && c.clk.limit >= wsyncC {
		c.clk.xpos = wsyncC
		return
	}
	c.clk.sync = syncHaltPending
	c.clk.xpos = c.clk.limit
}
