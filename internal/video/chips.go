package video

// CPU is the processor that shares the bus cycles with ANTIC. Run executes
// instructions until the clock reaches its limit; NMI pushes state and
// vectors through $FFFA, advancing the clock by the interrupt latency.
type CPU interface {
	Run()
	NMI()
	PC() uint16
}

// Memory gives ANTIC side-effect free access to the 64 KB address space.
type Memory interface {
	Peek(addr uint16) byte
}

// Scanliner receives the per-scanline and per-frame POKEY hooks.
type Scanliner interface {
	Scanline()
	Frame()
}

// TVSystem selects the number of lines per frame and the PAL register.
type TVSystem int

const (
	PAL TVSystem = iota
	NTSC
)

// Lines returns the total number of scanlines in one frame.
func (tv TVSystem) Lines() int {
	if tv == NTSC {
		return 262
	}
	return 312
}

func (tv TVSystem) String() string {
	if tv == NTSC {
		return "NTSC"
	}
	return "PAL"
}

// Screen geometry. Every word of the screen holds two pixels, the low byte
// being the left one.
const (
	Width        = 384
	Height       = 240
	WordsPerLine = Width / 2

	firstLine = 8
	lastLine  = firstLine + Height

	// Words 0..11 and 180..191 are never drawn.
	leftChop  = 12
	rightChop = 180
)

// Cycle positions within a scanline, in CPU cycles.
const (
	vsconC  = 5
	nmistC  = 10
	nmiC    = 16
	scrC    = 32
	wsyncC  = 110
	lineC   = 114
	vscofC  = 116
	dmaRefr = 9
)

// Chips is one ANTIC and one GTIA wired together. It owns the scanline
// clock, all registers, the colour table and the output screen.
type Chips struct {
	ANTIC
	GTIA

	mem   Memory
	cpu   CPU
	pokey Scanliner
	tv    TVSystem

	clk Clock

	screen  []uint16
	pmLine  [WordsPerLine + 8]byte
	pmDirty bool

	// pm resolves a PM overlap byte to a colour table column.
	pm *[256]byte

	cl     [128]uint16
	gtia9  [16]uint32
	gtia11 [16]uint32
	hiLum  [4]uint16

	table     [4][16]renderer
	draw      renderer
	drawBlank blankRenderer
	artifMode int
	art       artifact

	delayedGTIA11 int
}

// New returns a powered-on pair of chips. cpu may be nil until SetCPU is
// called; pokey may be nil.
func New(mem Memory, cpu CPU, pokey Scanliner, tv TVSystem) *Chips {
	c := &Chips{
		mem:    mem,
		cpu:    cpu,
		pokey:  pokey,
		tv:     tv,
		screen: make([]uint16, Height*WordsPerLine),
	}
	c.table = defaultRenderers
	c.initGTIA()
	c.Reset()
	return c
}

// SetCPU attaches the processor. The CPU usually needs the chips as its
// clock, so it is created afterwards.
func (c *Chips) SetCPU(cpu CPU) { c.cpu = cpu }

// SetScanliner attaches the POKEY hooks.
func (c *Chips) SetScanliner(s Scanliner) { c.pokey = s }

// Clock exposes the scanline clock the CPU runs against.
func (c *Chips) Clock() *Clock { return &c.clk }

// TV returns the configured television system.
func (c *Chips) TV() TVSystem { return c.tv }

// Reset puts ANTIC into its power-on state. GTIA registers keep their
// values, matching the hardware reset line.
func (c *Chips) Reset() {
	c.NMIEN = 0
	c.NMIST = 0x3f
	c.AnticPutByte(regDMACTL, 0)
}

// Screen returns the output buffer, Height rows of WordsPerLine words.
func (c *Chips) Screen() []uint16 { return c.screen }

// Pixels expands the screen into one Atari colour byte per pixel. dst must
// hold at least Width*Height bytes.
func (c *Chips) Pixels(dst []byte) {
	_ = dst[Width*Height-1]
	for i, w := range c.screen {
		dst[2*i] = byte(w)
		dst[2*i+1] = byte(w >> 8)
	}
}

// Xpos and Ypos report the beam position, for debuggers.
func (c *Chips) Xpos() int { return c.clk.xpos }
func (c *Chips) Ypos() int { return c.clk.ypos }

func (c *Chips) scanline() {
	if c.pokey != nil {
		c.pokey.Scanline()
	}
}

func (c *Chips) nmi() {
	if c.cpu != nil {
		c.cpu.NMI()
	}
}

func (c *Chips) cpuPC() uint16 {
	if c.cpu == nil {
		return 0
	}
	return c.cpu.PC()
}

func (c *Chips) peek(addr uint16) byte { return c.mem.Peek(addr) }
