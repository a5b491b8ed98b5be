package palette

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	r, g, b := Default.RGB(0x00)
	assert.Equal(t, [3]byte{0x2d, 0x2d, 0x2d}, [3]byte{r, g, b})
	assert.Equal(t, uint32(0xffffff), Default[0x0f])
	assert.Equal(t, uint32(0xffff97), Default[0xff])
}

func TestGenerateGreyRamp(t *testing.T) {
	p := Generate(0, 255, 30)
	for j := 0; j < 16; j++ {
		r, g, b := p.RGB(byte(j))
		want := byte(255 * j / 15)
		if r != want || g != want || b != want {
			t.Fatalf("hue 0 lum %d got %02x%02x%02x want grey %02x", j, r, g, b, want)
		}
	}
	// hues carry chroma, and clamping keeps every component in range
	r, g, b := p.RGB(0x48)
	assert.False(t, r == g && g == b, "hue 4 should not be grey")
}

func TestGenerateColshiftRotates(t *testing.T) {
	a := Generate(0, 255, 0)
	b := Generate(0, 255, 50)
	assert.NotEqual(t, a[0x38], b[0x38])
	assert.Equal(t, a[0x08], b[0x08], "greys do not rotate")
}

func TestAdjustIdentity(t *testing.T) {
	p := Generate(0, 255, 30)
	q := p.Adjust(0, 255, 100)
	for i := range p {
		pr, pg, pb := p.RGB(byte(i))
		qr, qg, qb := q.RGB(byte(i))
		assert.InDelta(t, int(pr), int(qr), 2, "colour %02x red", i)
		assert.InDelta(t, int(pg), int(qg), 2, "colour %02x green", i)
		assert.InDelta(t, int(pb), int(qb), 2, "colour %02x blue", i)
	}
}

func TestAdjustDesaturates(t *testing.T) {
	q := Default.Adjust(0, 255, 0)
	for i := range q {
		r, g, b := q.RGB(byte(i))
		assert.InDelta(t, int(r), int(g), 1, "colour %02x", i)
		assert.InDelta(t, int(g), int(b), 1, "colour %02x", i)
	}
}

func TestReadACT(t *testing.T) {
	raw := make([]byte, 772)
	raw[3*0x94], raw[3*0x94+1], raw[3*0x94+2] = 0x12, 0x34, 0x56
	p, err := Read(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, uint32(0x123456), p[0x94])

	_, err = Read(bytes.NewReader(raw[:700]))
	assert.ErrorIs(t, err, ErrShortPalette)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pal.act")
	raw := make([]byte, 768)
	raw[0] = 0xff
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xff0000), p[0])

	_, err = Load(filepath.Join(t.TempDir(), "missing.act"))
	assert.Error(t, err)
}

func TestRGBA(t *testing.T) {
	dst := make([]byte, 8)
	Default.RGBA(dst, []byte{0x0f, 0x00})
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0x2d, 0x2d, 0x2d, 0xff}, dst)
}
