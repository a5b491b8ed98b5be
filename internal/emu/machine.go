package emu

import (
	"fmt"
	"log"
	"sync"

	"github.com/FabianRolfMatthiasNoll/AtariVideo/internal/bus"
	"github.com/FabianRolfMatthiasNoll/AtariVideo/internal/cart"
	"github.com/FabianRolfMatthiasNoll/AtariVideo/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/AtariVideo/internal/dlist"
	"github.com/FabianRolfMatthiasNoll/AtariVideo/internal/palette"
	"github.com/FabianRolfMatthiasNoll/AtariVideo/internal/pokey"
	"github.com/FabianRolfMatthiasNoll/AtariVideo/internal/video"
)

// Visible part of the screen. ANTIC never draws the outer 24 pixels on
// either side.
const (
	ScreenWidth  = 336
	ScreenHeight = video.Height
	cropX        = (video.Width - ScreenWidth) / 2
)

// Input is the state of joystick 0 and the console keys.
type Input struct {
	Up, Down, Left, Right bool
	Fire                  bool
	Start, Select, Option bool
}

// Machine is an Atari 800XL without OS ROM: 6502, ANTIC/GTIA, POKEY and
// PIA on one bus.
type Machine struct {
	cfg Config

	bus   *bus.Bus
	cpu   *cpu.CPU
	chips *video.Chips
	pokey *pokey.Pokey

	pal palette.Palette
	pix []byte // one colour byte per pixel, video.Width x video.Height
	fb  []byte // RGBA ScreenWidth x ScreenHeight

	img     *cart.Image
	romPath string
	frames  int

	// audioMu guards the POKEY sample ring, read by the audio goroutine.
	audioMu sync.Mutex
}

// New builds a powered-on machine. The palette is resolved from cfg; an
// unreadable palette file is an error.
func New(cfg Config) (*Machine, error) {
	cfg = cfg.Defaults()
	m := &Machine{
		cfg: cfg,
		pix: make([]byte, video.Width*video.Height),
		fb:  make([]byte, ScreenWidth*ScreenHeight*4),
	}
	pal, err := loadPalette(cfg)
	if err != nil {
		return nil, err
	}
	m.pal = pal

	m.bus = bus.New()
	m.pokey = pokey.New(nil, nil, cfg.cpuHz(), cfg.SampleRate)
	m.chips = video.New(m.bus, nil, m.pokey, cfg.TV)
	m.cpu = cpu.New(m.bus, m.chips.Clock())
	m.cpu.Trace = cfg.Trace
	m.chips.SetCPU(m.cpu)
	m.pokey.SetClock(m.chips.Clock())
	m.pokey.SetIRQHandler(m.cpu.SetIRQ)
	m.pokey.SetSpeaker(m.chips.Speaker)

	m.bus.Map(bus.PageGTIA, bus.DeviceFuncs{Get: m.chips.GTIAGetByte, Put: m.chips.GTIAPutByte})
	m.bus.Map(bus.PagePOKEY, m.pokey)
	m.bus.Map(bus.PageANTIC, bus.DeviceFuncs{Get: m.chips.AnticGetByte, Put: m.chips.AnticPutByte})

	if err := m.chips.SetArtifactMode(cfg.Artifact); err != nil {
		log.Printf("Invalid artifacting mode, using default.")
	}
	m.installStub()
	m.cpu.Reset()
	return m, nil
}

func loadPalette(cfg Config) (palette.Palette, error) {
	pal := palette.Default
	switch {
	case cfg.PaletteFile != "":
		p, err := palette.Load(cfg.PaletteFile)
		if err != nil {
			return pal, fmt.Errorf("palette: %w", err)
		}
		pal = p
	case cfg.GeneratePalette:
		pal = palette.Generate(cfg.Black, cfg.White, cfg.Colshift)
	}
	if cfg.ColIntens > 0 {
		pal = pal.Adjust(cfg.Black, cfg.White, cfg.ColIntens)
	}
	return pal, nil
}

// Config returns the validated configuration.
func (m *Machine) Config() Config { return m.cfg }

// Chips exposes ANTIC/GTIA for debuggers and tools.
func (m *Machine) Chips() *video.Chips { return m.chips }

// CPU exposes the processor for debuggers and tools.
func (m *Machine) CPU() *cpu.CPU { return m.cpu }

// Bus exposes the memory map.
func (m *Machine) Bus() *bus.Bus { return m.bus }

// Pokey exposes POKEY.
func (m *Machine) Pokey() *pokey.Pokey { return m.pokey }

// Palette returns the active colour palette.
func (m *Machine) Palette() palette.Palette { return m.pal }

// Frames counts frames run since the last program load.
func (m *Machine) Frames() int { return m.frames }

// LoadImage places a program image in memory and starts it.
func (m *Machine) LoadImage(img *cart.Image) error {
	m.img = img
	m.frames = 0
	return m.boot()
}

// LoadFile reads and starts the program at path.
func (m *Machine) LoadFile(path string) error {
	img, err := cart.Load(path)
	if err != nil {
		return err
	}
	log.Printf("loaded %s: %s", path, img.Describe())
	if err := m.LoadImage(img); err != nil {
		return err
	}
	m.romPath = path
	return nil
}

// ROMPath returns the path of the loaded program, if it came from a file.
func (m *Machine) ROMPath() string { return m.romPath }

// Reset is a cold start: chips and CPU are reset and the loaded program,
// if any, is booted again.
func (m *Machine) Reset() error {
	m.frames = 0
	return m.boot()
}

// StepFrame runs one frame and refreshes the framebuffer.
func (m *Machine) StepFrame() {
	m.audioMu.Lock()
	m.chips.RunFrame(true)
	m.audioMu.Unlock()
	m.frames++
	m.refresh()
}

// StepFrameNoRender runs one frame keeping the timing but drawing nothing.
func (m *Machine) StepFrameNoRender() {
	m.audioMu.Lock()
	m.chips.RunFrame(false)
	m.audioMu.Unlock()
	m.frames++
}

func (m *Machine) refresh() {
	m.chips.Pixels(m.pix)
	for y := 0; y < ScreenHeight; y++ {
		row := m.pix[y*video.Width+cropX : y*video.Width+cropX+ScreenWidth]
		m.pal.RGBA(m.fb[y*ScreenWidth*4:(y+1)*ScreenWidth*4], row)
	}
}

// Framebuffer is the last drawn frame, RGBA ScreenWidth x ScreenHeight.
func (m *Machine) Framebuffer() []byte { return m.fb }

// Pixels is the last drawn frame as Atari colour bytes, full
// video.Width x video.Height screen.
func (m *Machine) Pixels() []byte { return m.pix }

// DisplayList decodes the display list ANTIC currently points at.
func (m *Machine) DisplayList() dlist.DisplayList {
	return dlist.Decode(m.bus, m.chips.DisplayList())
}

// SetInput applies joystick 0 and the console keys.
func (m *Machine) SetInput(in Input) {
	dirs := byte(0x0f)
	if in.Up {
		dirs &^= 0x01
	}
	if in.Down {
		dirs &^= 0x02
	}
	if in.Left {
		dirs &^= 0x04
	}
	if in.Right {
		dirs &^= 0x08
	}
	m.bus.SetStick(0, dirs)
	m.chips.SetTrig(0, in.Fire)

	keys := byte(0x07)
	if in.Start {
		keys &^= 0x01
	}
	if in.Select {
		keys &^= 0x02
	}
	if in.Option {
		keys &^= 0x04
	}
	m.chips.SetConsoleKeys(keys)
}

// KeyDown presses a key given as its POKEY keyboard code, with bit 6 for
// SHIFT and bit 7 for CONTROL.
func (m *Machine) KeyDown(code byte) { m.pokey.KeyDown(code) }

// KeyUp releases all keys.
func (m *Machine) KeyUp() { m.pokey.KeyUp() }

// SetBreak sets the BREAK key.
func (m *Machine) SetBreak(down bool) { m.pokey.SetBreak(down) }

// SetLightPen forwards a pen position in colour clocks and half lines.
func (m *Machine) SetLightPen(x, y byte) {
	m.chips.LightPenEnabled = true
	m.chips.SetLightPen(x, y)
}

// PullSamples returns up to max mono samples of POKEY and speaker audio.
func (m *Machine) PullSamples(max int) []int16 {
	m.audioMu.Lock()
	defer m.audioMu.Unlock()
	return m.pokey.PullSamples(max)
}

// BufferedSamples returns the number of samples ready to pull.
func (m *Machine) BufferedSamples() int {
	m.audioMu.Lock()
	defer m.audioMu.Unlock()
	return m.pokey.Available()
}

// SampleRate is the audio output rate.
func (m *Machine) SampleRate() int { return m.cfg.SampleRate }
