package ui

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/FabianRolfMatthiasNoll/AtariVideo/internal/emu"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func held(keys ...ebiten.Key) func(ebiten.Key) bool {
	return func(k ebiten.Key) bool {
		for _, h := range keys {
			if h == k {
				return true
			}
		}
		return false
	}
}

func TestPressedKey(t *testing.T) {
	assert.Equal(t, -1, pressedKey(held()))
	assert.Equal(t, 0x3f, pressedKey(held(ebiten.KeyA)))
	assert.Equal(t, 0x3f|keyShift, pressedKey(held(ebiten.KeyA, ebiten.KeyShiftLeft)))
	assert.Equal(t, 0x0c|keyCtrl, pressedKey(held(ebiten.KeyEnter, ebiten.KeyControlRight)))
	assert.Equal(t, -1, pressedKey(held(ebiten.KeyArrowUp)), "arrows are the joystick")
	// the first entry wins when several keys are held
	assert.Equal(t, 0x3f, pressedKey(held(ebiten.KeyZ, ebiten.KeyA)))
}

func TestConfigDefaults(t *testing.T) {
	var c Config
	c.Defaults()
	assert.Equal(t, "atarivid", c.Title)
	assert.Equal(t, 2, c.Scale)
}

func newMachine(t *testing.T) *emu.Machine {
	t.Helper()
	m, err := emu.New(emu.Config{})
	require.NoError(t, err)
	return m
}

func TestPokeyStreamStereo(t *testing.T) {
	m := newMachine(t)
	m.StepFrameNoRender()
	s := &pokeyStream{m: m}
	p := make([]byte, 4*100)
	n, err := s.Read(p)
	require.NoError(t, err)
	require.Equal(t, 400, n)
	for i := 0; i < n; i += 4 {
		assert.Equal(t, binary.LittleEndian.Uint16(p[i:]), binary.LittleEndian.Uint16(p[i+2:]))
	}
}

func TestPokeyStreamMutedAndShort(t *testing.T) {
	m := newMachine(t)
	muted := true
	s := &pokeyStream{m: m, muted: &muted}
	p := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	n, _ := s.Read(p)
	assert.Equal(t, 8, n)
	assert.Equal(t, make([]byte, 8), p)

	short := []byte{9, 9}
	n, _ = s.Read(short)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0, 0}, short)
}

func TestPokeyStreamUnderrun(t *testing.T) {
	s := &pokeyStream{m: newMachine(t), lowLatency: true}
	p := make([]byte, 4*512)
	n, err := s.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 256*4, n)
	assert.Equal(t, 1, s.underruns)
}

func TestOverlayLines(t *testing.T) {
	m := newMachine(t)
	lines := overlayLines(m, 4)
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "PAL F0 PC:FF13 DL:0000"), lines[0])
	assert.LessOrEqual(t, len(lines), 4)
}
