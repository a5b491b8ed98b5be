package pokey

import (
	"bytes"
	"encoding/gob"
)

// Write registers, addr&0x0f.
const (
	regAUDF1  = 0x00
	regAUDC1  = 0x01
	regAUDCTL = 0x08
	regSTIMER = 0x09
	regSKRES  = 0x0a
	regPOTGO  = 0x0b
	regSEROUT = 0x0d
	regIRQEN  = 0x0e
	regSKCTL  = 0x0f
)

// Read registers, addr&0x0f.
const (
	regPOT0   = 0x00
	regALLPOT = 0x08
	regKBCODE = 0x09
	regRANDOM = 0x0a
	regSERIN  = 0x0d
	regIRQST  = 0x0e
	regSKSTAT = 0x0f
)

// AUDCTL bits.
const (
	audPoly9  = 0x80
	audCh1179 = 0x40
	audCh3179 = 0x20
	audCh1Ch2 = 0x10
	audCh3Ch4 = 0x08
	audClk15  = 0x01
)

const (
	lineC = 114
	div64 = 28
	div15 = 114

	poly9Size  = 0x01ff
	poly17Size = 0x1ffff
)

// IRQ status bits, active low in IRQST.
const (
	IRQBreak  byte = 0x80
	IRQKey    byte = 0x40
	IRQSerIn  byte = 0x20
	IRQSerOut byte = 0x10
	IRQXmt    byte = 0x08
	IRQTimer4 byte = 0x04
	IRQTimer2 byte = 0x02
	IRQTimer1 byte = 0x01
)

var (
	poly9  [poly9Size]byte
	poly17 [16385]byte
)

func init() {
	reg := uint32(0x1ff)
	for i := range poly9 {
		reg = ((reg>>5^reg)&1)<<8 + reg>>1
		poly9[i] = byte(reg)
	}
	reg = 0x1ffff
	for i := range poly17 {
		reg = ((reg>>5^reg)&0xff)<<9 + reg>>8
		poly17[i] = byte(reg >> 1)
	}
}

// Clock gives POKEY the horizontal beam position for RANDOM.
type Clock interface {
	Xpos() int
}

// Pokey models the parts of POKEY the video core and programs observe:
// timers and their IRQs, the keyboard, RANDOM and the four tone channels.
type Pokey struct {
	AUDF   [4]byte
	AUDC   [4]byte
	AUDCTL byte

	IRQEN, IRQST  byte
	SKCTL, SKSTAT byte
	KBCODE        byte
	pot           [8]byte
	potScanline   int
	divNIRQ       [4]int
	divNMax       [4]int
	baseMult      int
	randomCounter int
	lastKey       int
	breakDown     bool
	irqLine       bool

	clk Clock
	irq func(bool)

	snd sound
}

// New creates a POKEY generating audio at sampleRate for a CPU running at
// cpuHz. irq receives changes of the IRQ line and may be nil.
func New(clk Clock, irq func(bool), cpuHz, sampleRate int) *Pokey {
	p := &Pokey{clk: clk, irq: irq}
	p.snd.init(cpuHz, sampleRate)
	p.Reset()
	return p
}

// SetClock attaches the beam clock after construction.
func (p *Pokey) SetClock(clk Clock) { p.clk = clk }

// SetIRQHandler sets the IRQ line callback.
func (p *Pokey) SetIRQHandler(irq func(bool)) { p.irq = irq }

// Reset puts POKEY into its power-on state.
func (p *Pokey) Reset() {
	p.AUDF, p.AUDC, p.AUDCTL = [4]byte{}, [4]byte{}, 0
	p.IRQEN, p.IRQST = 0, 0xff
	p.SKCTL, p.SKSTAT = 0, 0xff
	p.KBCODE = 0xff
	for i := range p.pot {
		p.pot[i] = 228
	}
	p.potScanline = 0
	p.divNIRQ, p.divNMax = [4]int{}, [4]int{}
	p.baseMult = div64
	p.updateCounters(0x0f)
	p.randomCounter = 0
	p.lastKey = -1
	p.breakDown = false
	p.snd.reset()
	p.updateIRQ()
}

func (p *Pokey) xpos() int {
	if p.clk == nil {
		return 0
	}
	return p.clk.Xpos()
}

// GetByte reads a POKEY register.
func (p *Pokey) GetByte(addr uint16) byte {
	addr &= 0x0f
	if addr < regALLPOT {
		if int(p.pot[addr]) <= p.potScanline {
			return p.pot[addr]
		}
		return byte(p.potScanline)
	}
	switch addr {
	case regALLPOT:
		v := byte(0xff)
		for i, pv := range p.pot {
			if int(pv) <= p.potScanline {
				v &^= 1 << i
			}
		}
		return v
	case regKBCODE:
		return p.KBCODE
	case regRANDOM:
		return p.random()
	case regIRQST:
		return p.IRQST
	case regSKSTAT:
		return p.SKSTAT
	}
	return 0xff
}

// random samples the poly counter at the current beam position. RANDOM
// holds still while POKEY is in reset.
func (p *Pokey) random() byte {
	if p.SKCTL&0x03 == 0 {
		return 0xff
	}
	i := p.randomCounter + p.xpos()
	if p.AUDCTL&audPoly9 != 0 {
		return poly9[i%poly9Size]
	}
	i %= poly17Size
	j := i >> 3
	i &= 7
	return byte(int(poly17[j])>>i + int(poly17[j+1])<<(8-i))
}

// PutByte writes a POKEY register.
func (p *Pokey) PutByte(addr uint16, v byte) {
	addr &= 0x0f
	switch addr {
	case regAUDF1, regAUDF1 + 2, regAUDF1 + 4, regAUDF1 + 6:
		ch := int(addr >> 1)
		p.AUDF[ch] = v
		switch {
		case ch == 0 && p.AUDCTL&audCh1Ch2 != 0:
			p.updateCounters(1<<0 | 1<<1)
		case ch == 2 && p.AUDCTL&audCh3Ch4 != 0:
			p.updateCounters(1<<2 | 1<<3)
		default:
			p.updateCounters(1 << ch)
		}
	case regAUDC1, regAUDC1 + 2, regAUDC1 + 4, regAUDC1 + 6:
		p.AUDC[addr>>1] = v
	case regAUDCTL:
		p.AUDCTL = v
		p.baseMult = div64
		if v&audClk15 != 0 {
			p.baseMult = div15
		}
		p.updateCounters(0x0f)
	case regSTIMER:
		p.divNIRQ[0] = p.divNMax[0]
		p.divNIRQ[1] = p.divNMax[1]
		p.divNIRQ[3] = p.divNMax[3]
		p.snd.restart()
	case regSKRES:
		p.SKSTAT |= 0xe0
	case regPOTGO:
		if p.SKCTL&0x04 == 0 {
			p.potScanline = 0
		}
	case regSEROUT:
		// serial output is not connected; XMTDONE stays idle
	case regIRQEN:
		p.IRQEN = v
		p.IRQST |= ^v & 0xf7
		p.updateIRQ()
	case regSKCTL:
		p.SKCTL = v
		if v&0x04 != 0 {
			p.potScanline = 228
		}
	}
}

// updateCounters recomputes the timer periods of the channels in mask.
// IRQ periods are clamped to one scanline, the granularity of the timers;
// the tone generator keeps the exact period.
func (p *Pokey) updateCounters(mask int) {
	for ch := 0; ch < 4; ch++ {
		if mask&(1<<ch) == 0 {
			continue
		}
		n := p.period(ch)
		p.snd.ch[ch].period = n
		if n < lineC {
			n = lineC
		}
		p.divNMax[ch] = n
	}
}

func (p *Pokey) period(ch int) int {
	f := int(p.AUDF[ch])
	switch ch {
	case 0:
		if p.AUDCTL&audCh1179 != 0 {
			return f + 4
		}
	case 1:
		if p.AUDCTL&audCh1Ch2 != 0 {
			f = f<<8 | int(p.AUDF[0])
			if p.AUDCTL&audCh1179 != 0 {
				return f + 7
			}
		}
	case 2:
		if p.AUDCTL&audCh3179 != 0 {
			return f + 4
		}
	case 3:
		if p.AUDCTL&audCh3Ch4 != 0 {
			f = f<<8 | int(p.AUDF[2])
			if p.AUDCTL&audCh3179 != 0 {
				return f + 7
			}
		}
	}
	return (f + 1) * p.baseMult
}

// Scanline advances the timers, pots and the sound generator by one line.
func (p *Pokey) Scanline() {
	if p.potScanline < 228 {
		p.potScanline++
	}
	p.randomCounter += lineC
	for _, t := range [...]struct {
		ch  int
		bit byte
	}{{0, IRQTimer1}, {1, IRQTimer2}, {3, IRQTimer4}} {
		p.divNIRQ[t.ch] -= lineC
		if p.divNIRQ[t.ch] < 0 {
			p.divNIRQ[t.ch] += p.divNMax[t.ch]
			if p.IRQEN&t.bit != 0 {
				p.IRQST &^= t.bit
			}
		}
	}
	p.updateIRQ()
	p.snd.tick(lineC, p)
}

// Frame keeps the random counter inside its poly period.
func (p *Pokey) Frame() {
	if p.AUDCTL&audPoly9 != 0 {
		p.randomCounter %= poly9Size
	} else {
		p.randomCounter %= poly17Size
	}
}

// KeyDown presses the key with the given keyboard code. Shift and control
// live in bits 6 and 7 of code as on the real keyboard matrix.
func (p *Pokey) KeyDown(code byte) {
	p.SKSTAT |= 0x0c
	if code&0x40 != 0 {
		p.SKSTAT &^= 0x08
	}
	p.SKSTAT &^= 0x04
	if (int(code)^p.lastKey)&0x3f != 0 || p.lastKey < 0 {
		p.lastKey = int(code)
		p.KBCODE = code
		p.IRQST &^= IRQKey
	}
	p.updateIRQ()
}

// KeyUp releases all keys.
func (p *Pokey) KeyUp() {
	p.SKSTAT |= 0x0c
	p.lastKey = -1
}

// SetBreak reports the state of the BREAK key; the IRQ fires on the press.
func (p *Pokey) SetBreak(down bool) {
	if down && !p.breakDown {
		p.IRQST &^= IRQBreak
		p.updateIRQ()
	}
	p.breakDown = down
}

// SetPot sets paddle n to v (0..228).
func (p *Pokey) SetPot(n int, v byte) {
	if n >= 0 && n < len(p.pot) {
		p.pot[n] = v
	}
}

func (p *Pokey) updateIRQ() {
	line := ^p.IRQST&p.IRQEN != 0
	if line == p.irqLine {
		return
	}
	p.irqLine = line
	if p.irq != nil {
		p.irq(line)
	}
}

// IRQ reports the level of the IRQ line.
func (p *Pokey) IRQ() bool { return p.irqLine }

// --- Save/Load state ---

type pokeyState struct {
	AUDF, AUDC    [4]byte
	AUDCTL        byte
	IRQEN, IRQST  byte
	SKCTL, SKSTAT byte
	KBCODE        byte
	Pot           [8]byte
	PotScanline   int
	DivNIRQ       [4]int
	DivNMax       [4]int
	BaseMult      int
	RandomCounter int
	Sound         soundState
}

// SaveState serializes the registers, timers and tone generator phases.
func (p *Pokey) SaveState() ([]byte, error) {
	var buf bytes.Buffer
	s := pokeyState{
		AUDF: p.AUDF, AUDC: p.AUDC, AUDCTL: p.AUDCTL,
		IRQEN: p.IRQEN, IRQST: p.IRQST, SKCTL: p.SKCTL, SKSTAT: p.SKSTAT,
		KBCODE: p.KBCODE, Pot: p.pot, PotScanline: p.potScanline,
		DivNIRQ: p.divNIRQ, DivNMax: p.divNMax, BaseMult: p.baseMult,
		RandomCounter: p.randomCounter, Sound: p.snd.state(),
	}
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadState restores a state written by SaveState.
func (p *Pokey) LoadState(data []byte) error {
	var s pokeyState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return err
	}
	p.AUDF, p.AUDC, p.AUDCTL = s.AUDF, s.AUDC, s.AUDCTL
	p.IRQEN, p.IRQST, p.SKCTL, p.SKSTAT = s.IRQEN, s.IRQST, s.SKCTL, s.SKSTAT
	p.KBCODE, p.pot, p.potScanline = s.KBCODE, s.Pot, s.PotScanline
	p.divNIRQ, p.divNMax, p.baseMult = s.DivNIRQ, s.DivNMax, s.BaseMult
	p.randomCounter = s.RandomCounter
	p.snd.load(s.Sound)
	for ch := range p.snd.ch {
		p.snd.ch[ch].period = p.period(ch)
	}
	p.updateIRQ()
	return nil
}
