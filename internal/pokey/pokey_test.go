package pokey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock int

func (f *fixedClock) Xpos() int { return int(*f) }

func newTestPokey() (*Pokey, *fixedClock, *[]bool) {
	var clk fixedClock
	var lines []bool
	p := New(&clk, func(l bool) { lines = append(lines, l) }, 1773447, 44100)
	return p, &clk, &lines
}

func TestRandomFollowsBeam(t *testing.T) {
	p, clk, _ := newTestPokey()
	assert.Equal(t, byte(0xff), p.GetByte(regRANDOM), "held in reset")

	p.PutByte(regSKCTL, 0x03)
	seen := map[byte]bool{}
	for x := 0; x < 16; x++ {
		*clk = fixedClock(x)
		seen[p.GetByte(regRANDOM)] = true
	}
	assert.Greater(t, len(seen), 8, "RANDOM should vary with xpos")

	*clk = 5
	a := p.GetByte(regRANDOM)
	p.Scanline()
	*clk = 5
	b := p.GetByte(0xd20a)
	assert.NotEqual(t, a, b, "a scanline moves the poly counter on")
}

func TestTimerIRQ(t *testing.T) {
	p, _, lines := newTestPokey()
	p.PutByte(regIRQEN, IRQTimer1)
	p.PutByte(regAUDF1, 0)
	p.PutByte(regSTIMER, 0)
	require.Equal(t, lineC, p.divNMax[0], "short periods clamp to one line")

	p.Scanline()
	require.Empty(t, *lines)
	p.Scanline()
	require.Equal(t, []bool{true}, *lines)
	assert.Zero(t, p.GetByte(regIRQST)&IRQTimer1)
	assert.True(t, p.IRQ())

	// acknowledging by masking the source drops the line
	p.PutByte(regIRQEN, 0)
	assert.Equal(t, []bool{true, false}, *lines)
	assert.Equal(t, byte(0xff), p.GetByte(regIRQST))
}

func TestTimerPeriods(t *testing.T) {
	p, _, _ := newTestPokey()
	p.PutByte(regAUDF1, 9)
	assert.Equal(t, 10*div64, p.period(0))
	p.PutByte(regAUDCTL, audClk15)
	assert.Equal(t, 10*div15, p.period(0))
	p.PutByte(regAUDCTL, audCh1179)
	assert.Equal(t, 13, p.period(0))
	p.PutByte(regAUDF1+2, 1)
	p.PutByte(regAUDCTL, audCh1179|audCh1Ch2)
	assert.Equal(t, 0x109+7, p.period(1))
}

func TestKeyboard(t *testing.T) {
	p, _, lines := newTestPokey()
	p.PutByte(regIRQEN, IRQKey)
	p.KeyDown(0x3f | 0x40)
	assert.Equal(t, byte(0x7f), p.GetByte(regKBCODE))
	assert.Zero(t, p.GetByte(regSKSTAT)&0x04, "key down")
	assert.Zero(t, p.GetByte(regSKSTAT)&0x08, "shift down")
	assert.Equal(t, []bool{true}, *lines)

	p.KeyUp()
	assert.Equal(t, byte(0x0c), p.GetByte(regSKSTAT)&0x0c)
}

func TestBreakKeyFiresOnPress(t *testing.T) {
	p, _, lines := newTestPokey()
	p.PutByte(regIRQEN, IRQBreak)
	p.SetBreak(true)
	p.SetBreak(true)
	assert.Equal(t, []bool{true}, *lines)
	assert.Zero(t, p.GetByte(regIRQST)&IRQBreak)
}

func TestPots(t *testing.T) {
	p, _, _ := newTestPokey()
	p.SetPot(0, 3)
	p.PutByte(regPOTGO, 0)
	assert.Equal(t, byte(0xff), p.GetByte(regALLPOT))
	p.Scanline()
	assert.Equal(t, byte(1), p.GetByte(regPOT0))
	for i := 0; i < 3; i++ {
		p.Scanline()
	}
	assert.Equal(t, byte(3), p.GetByte(regPOT0))
	assert.Equal(t, byte(0xfe), p.GetByte(regALLPOT))
}

func TestVolumeOnlyAndSpeaker(t *testing.T) {
	p, _, _ := newTestPokey()
	p.Scanline()
	silent := p.PullSamples(100)
	require.NotEmpty(t, silent)
	for _, s := range silent {
		assert.Zero(t, s)
	}

	p.PutByte(regAUDC1, 0x1f)
	speaker := false
	p.SetSpeaker(func() bool { return speaker })
	p.Scanline()
	loud := p.PullSamples(100)
	require.NotEmpty(t, loud)
	speaker = true
	p.Scanline()
	louder := p.PullSamples(100)
	require.NotEmpty(t, louder)
	assert.Greater(t, louder[0], loud[0])
	assert.Zero(t, p.Available())
}

func TestPureToneAlternates(t *testing.T) {
	p, _, _ := newTestPokey()
	p.PutByte(regAUDCTL, audCh1179)
	p.PutByte(regAUDF1, 36) // 40 cycles, about one sample per half wave
	p.PutByte(regAUDC1, 0xaf)
	for i := 0; i < 10; i++ {
		p.Scanline()
	}
	samples := p.PullSamples(1000)
	levels := map[int16]bool{}
	for _, s := range samples {
		levels[s] = true
	}
	assert.Len(t, levels, 2)
}

func TestSaveLoadState(t *testing.T) {
	p, _, _ := newTestPokey()
	p.PutByte(regAUDF1, 0x40)
	p.PutByte(regAUDC1, 0xa8)
	p.PutByte(regAUDCTL, audClk15)
	p.PutByte(regIRQEN, 0xc0)
	p.PutByte(regSKCTL, 0x03)
	p.KeyDown(0x21)
	p.Scanline()

	data, err := p.SaveState()
	require.NoError(t, err)
	r, _, _ := newTestPokey()
	require.NoError(t, r.LoadState(data))
	assert.Equal(t, p.AUDF, r.AUDF)
	assert.Equal(t, p.AUDCTL, r.AUDCTL)
	assert.Equal(t, p.IRQST, r.IRQST)
	assert.Equal(t, p.KBCODE, r.KBCODE)
	assert.Equal(t, p.divNIRQ, r.divNIRQ)
	assert.Equal(t, p.snd.ch, r.snd.ch)
	assert.True(t, r.IRQ())

	assert.Error(t, r.LoadState([]byte{1, 2, 3}))
}
