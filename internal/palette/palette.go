// Package palette maps Atari colour bytes to RGB.
package palette

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// ErrShortPalette is returned when an .act file holds fewer than 256 entries.
var ErrShortPalette = errors.New("palette: file shorter than 768 bytes")

// Palette holds 0xRRGGBB for each of the 256 colour bytes.
type Palette [256]uint32

// Default is the built-in PAL palette.
var Default = Palette{
	0x2d2d2d, 0x3b3b3b, 0x494949, 0x575757, 0x656565, 0x737373, 0x818181, 0x8f8f8f,
	0x9d9d9d, 0xababab, 0xb9b9b9, 0xc7c7c7, 0xd5d5d5, 0xe3e3e3, 0xf1f1f1, 0xffffff,
	0x5c2300, 0x6a3100, 0x783f00, 0x864d0a, 0x945b18, 0xa26926, 0xb07734, 0xbe8542,
	0xcc9350, 0xdaa15e, 0xe8af6c, 0xf6bd7a, 0xffcb88, 0xffd996, 0xffe7a4, 0xfff5b2,
	0x691409, 0x772217, 0x853025, 0x933e33, 0xa14c41, 0xaf5a4f, 0xbd685d, 0xcb766b,
	0xd98479, 0xe79287, 0xf5a095, 0xffaea3, 0xffbcb1, 0xffcabf, 0xffd8cd, 0xffe6db,
	0x6c0a38, 0x7a1846, 0x882654, 0x963462, 0xa44270, 0xb2507e, 0xc05e8c, 0xce6c9a,
	0xdc7aa8, 0xea88b6, 0xf896c4, 0xffa4d2, 0xffb2e0, 0xffc0ee, 0xffcefc, 0xffdcff,
	0x640565, 0x721373, 0x802181, 0x8e2f8f, 0x9c3d9d, 0xaa4bab, 0xb859b9, 0xc667c7,
	0xd475d5, 0xe283e3, 0xf091f1, 0xfe9fff, 0xffadff, 0xffbbff, 0xffc9ff, 0xffd7ff,
	0x520789, 0x601597, 0x6e23a5, 0x7c31b3, 0x8a3fc1, 0x984dcf, 0xa65bdd, 0xb469eb,
	0xc277f9, 0xd085ff, 0xde93ff, 0xeca1ff, 0xfaafff, 0xffbdff, 0xffcbff, 0xffd9ff,
	0x3a109c, 0x481eaa, 0x562cb8, 0x643ac6, 0x7248d4, 0x8056e2, 0x8e64f0, 0x9c72fe,
	0xaa80ff, 0xb88eff, 0xc69cff, 0xd4aaff, 0xe2b8ff, 0xf0c6ff, 0xfed4ff, 0xffe2ff,
	0x1f1e9c, 0x2d2caa, 0x3b3ab8, 0x4948c6, 0x5756d4, 0x6564e2, 0x7372f0, 0x8180fe,
	0x8f8eff, 0x9d9cff, 0xabaaff, 0xb9b8ff, 0xc7c6ff, 0xd5d4ff, 0xe3e2ff, 0xf1f0ff,
	0x072e89, 0x153c97, 0x234aa5, 0x3158b3, 0x3f66c1, 0x4d74cf, 0x5b82dd, 0x6990eb,
	0x779ef9, 0x85acff, 0x93baff, 0xa1c8ff, 0xafd6ff, 0xbde4ff, 0xcbf2ff, 0xd9ffff,
	0x003e65, 0x034c73, 0x115a81, 0x1f688f, 0x2d769d, 0x3b84ab, 0x4992b9, 0x57a0c7,
	0x65aed5, 0x73bce3, 0x81caf1, 0x8fd8ff, 0x9de6ff, 0xabf4ff, 0xb9ffff, 0xc7ffff,
	0x004b38, 0x005946, 0x096754, 0x177562, 0x258370, 0x33917e, 0x419f8c, 0x4fad9a,
	0x5dbba8, 0x6bc9b6, 0x79d7c4, 0x87e5d2, 0x95f3e0, 0xa3ffee, 0xb1fffc, 0xbfffff,
	0x005209, 0x006017, 0x0c6e25, 0x1a7c33, 0x288a41, 0x36984f, 0x44a65d, 0x52b46b,
	0x60c279, 0x6ed087, 0x7cde95, 0x8aeca3, 0x98fab1, 0xa6ffbf, 0xb4ffcd, 0xc2ffdb,
	0x005300, 0x0b6100, 0x196f00, 0x277d0a, 0x358b18, 0x439926, 0x51a734, 0x5fb542,
	0x6dc350, 0x7bd15e, 0x89df6c, 0x97ed7a, 0xa5fb88, 0xb3ff96, 0xc1ffa4, 0xcfffb2,
	0x134e00, 0x215c00, 0x2f6a00, 0x3d7800, 0x4b8600, 0x59940b, 0x67a219, 0x75b027,
	0x83be35, 0x91cc43, 0x9fda51, 0xade85f, 0xbbf66d, 0xc9ff7b, 0xd7ff89, 0xe5ff97,
	0x2d4300, 0x3b5100, 0x495f00, 0x576d00, 0x657b00, 0x738901, 0x81970f, 0x8fa51d,
	0x9db32b, 0xabc139, 0xb9cf47, 0xc7dd55, 0xd5eb63, 0xe3f971, 0xf1ff7f, 0xffff8d,
	0x463300, 0x544100, 0x624f00, 0x705d00, 0x7e6b00, 0x8c790b, 0x9a8719, 0xa89527,
	0xb6a335, 0xc4b143, 0xd2bf51, 0xe0cd5f, 0xeedb6d, 0xfce97b, 0xfff789, 0xffff97,
}

// RGB returns the components of colour c.
func (p *Palette) RGB(c byte) (r, g, b byte) {
	v := p[c]
	return byte(v >> 16), byte(v >> 8), byte(v)
}

func (p *Palette) set(i int, r, g, b int) {
	p[i] = uint32(clamp(r))<<16 | uint32(clamp(g))<<8 | uint32(clamp(b))
}

func clamp(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return v
}

func (p *Palette) y(i int) float64 {
	r, g, b := p.RGB(byte(i))
	return 0.30*float64(r) + 0.59*float64(g) + 0.11*float64(b)
}

// Generate builds an artificial palette from the black and white levels.
// colshift rotates the hues in hundredths of a half turn.
func Generate(black, white, colshift int) Palette {
	var p Palette
	for i := 0; i < 16; i++ {
		var r, g, b int
		if i != 0 {
			angle := math.Pi * (float64(i)/7.0 - float64(colshift)*0.01)
			span := float64(white - black)
			r = int(0.08 / 0.30 * math.Cos(angle) * span)
			g = int(0.08 / 0.59 * math.Cos(angle+math.Pi*2/3) * span)
			b = int(0.08 / 0.11 * math.Cos(angle+math.Pi*4/3) * span)
		}
		for j := 0; j < 16; j++ {
			y := black + white*j/15
			p.set(i*16+j, y+r, y+g, y+b)
		}
	}
	return p
}

// Adjust rescales p so that luminance runs from black to white and scales
// the colour saturation by colintens percent.
func (p Palette) Adjust(black, white, colintens int) Palette {
	blackIn := p.y(0)
	whiteIn := p.y(15)
	if whiteIn == blackIn {
		return p
	}
	brightfix := float64(white-black) / (whiteIn - blackIn)
	colorfix := brightfix * float64(colintens) / 100
	var out Palette
	for i := range p {
		y := p.y(i)
		r8, g8, b8 := p.RGB(byte(i))
		r := float64(r8) - y
		g := float64(g8) - y
		b := float64(b8) - y
		y = (y-blackIn)*brightfix + float64(black)
		out.set(i, int(y+r*colorfix), int(y+g*colorfix), int(y+b*colorfix))
	}
	return out
}

// Read parses a 768-byte palette: 256 RGB triplets. Extra trailing bytes,
// as written by some tools, are ignored.
func Read(r io.Reader) (Palette, error) {
	var raw [768]byte
	var p Palette
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return p, ErrShortPalette
		}
		return p, fmt.Errorf("palette: %w", err)
	}
	for i := range p {
		p[i] = uint32(raw[3*i])<<16 | uint32(raw[3*i+1])<<8 | uint32(raw[3*i+2])
	}
	return p, nil
}

// Load reads a palette file from disk.
func Load(path string) (Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return Palette{}, fmt.Errorf("palette: %w", err)
	}
	defer f.Close()
	p, err := Read(f)
	if err != nil {
		return p, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// RGBA expands colour bytes into an RGBA8888 buffer. dst must hold four
// bytes per entry of src.
func (p *Palette) RGBA(dst, src []byte) {
	for i, c := range src {
		v := p[c]
		d := dst[i*4 : i*4+4 : i*4+4]
		d[0], d[1], d[2], d[3] = byte(v>>16), byte(v>>8), byte(v), 0xff
	}
}
