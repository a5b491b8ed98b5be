package dlist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mem [0x10000]byte

func (m *mem) Peek(addr uint16) byte { return m[addr] }

func (m *mem) load(addr uint16, data ...byte) {
	for i, v := range data {
		m[addr+uint16(i)] = v
	}
}

// graphics 0 list as the OS builds it
func gr0(m *mem) {
	m.load(0x2000, 0x70, 0x70, 0x70, 0x42, 0x40, 0x9c)
	for i := 0; i < 23; i++ {
		m[0x2006+i] = 0x02
	}
	m.load(0x201d, 0x41, 0x00, 0x20)
}

func TestDecodeGraphics0(t *testing.T) {
	m := &mem{}
	gr0(m)
	d := Decode(m, 0x2000)
	require.Len(t, d.Entries, 3+1+23+1)
	assert.True(t, d.Entries[3].IsLMS())
	assert.Equal(t, uint16(0x9c40), d.Entries[3].Arg)
	last := d.Entries[len(d.Entries)-1]
	assert.True(t, last.IsJVB())
	assert.Equal(t, uint16(0x2000), last.Arg)
	assert.Equal(t, 24+24*8, d.Scanlines())
}

func TestDecodeFollowsJMPAndWraps(t *testing.T) {
	m := &mem{}
	// LMS split across the 1 KB boundary, then a JMP to a JVB
	m.load(0x23fe, 0x4f, 0x00)
	m.load(0x2000, 0x50, 0x01, 0x00, 0x30)
	m.load(0x3000, 0x41, 0xfe, 0x23)
	d := Decode(m, 0x23fe)
	require.Len(t, d.Entries, 3)
	assert.Equal(t, uint16(0x5000), d.Entries[0].Arg, "operand wraps to $2000")
	assert.Equal(t, "JMP 3000", d.Entries[1].Description())
	assert.Equal(t, uint16(0x3000), d.Entries[2].Addr)
}

func TestDecodeStopsOnLoop(t *testing.T) {
	m := &mem{}
	m.load(0x4000, 0x70, 0x01, 0x00, 0x40)
	d := Decode(m, 0x4000)
	assert.Len(t, d.Entries, 2)
}

func TestDecodeBytes(t *testing.T) {
	d := DecodeBytes(0x0600, []byte{0xf0, 0x4d, 0x00, 0x80, 0x0d, 0x41, 0x00, 0x06, 0x99})
	require.Len(t, d.Entries, 4)
	assert.True(t, d.Entries[0].IsDLI())
	assert.Equal(t, 8, d.Entries[0].Scanlines())
	assert.Equal(t, uint16(0x0604), d.Entries[2].Addr)

	// truncated operand
	d = DecodeBytes(0, []byte{0x42, 0x00})
	assert.Empty(t, d.Entries)
}

func TestDescriptions(t *testing.T) {
	cases := map[byte]string{
		0x70: "8 BLANK",
		0x80: "DLI 1 BLANK",
		0x02: "MODE 2",
		0x7f: "LMS 1234 VSCROL HSCROL MODE F",
		0xc4: "DLI LMS 1234 MODE 4",
		0x01: "JMP 1234",
		0x41: "JVB 1234",
	}
	for cmd, want := range cases {
		e := Entry{Command: cmd, Arg: 0x1234}
		assert.Equal(t, want, e.Description(), "command %02x", cmd)
	}
}

func TestCompactedAndString(t *testing.T) {
	m := &mem{}
	gr0(m)
	c := Decode(m, 0x2000).Compacted()
	require.Len(t, c, 4)
	assert.Equal(t, 3, c[0].Count)
	assert.Equal(t, 23, c[2].Count)

	s := Decode(m, 0x2000).String()
	assert.True(t, strings.HasPrefix(s, "2000: 3x 8 BLANK\n"), s)
	assert.Contains(t, s, "2003: LMS 9C40 MODE 2\n")
	assert.Contains(t, s, "201D: JVB 2000\n")
}

func TestBytesPerLine(t *testing.T) {
	assert.Equal(t, 40, BytesPerLine(2, 0x22, false))
	assert.Equal(t, 48, BytesPerLine(2, 0x22, true))
	assert.Equal(t, 48, BytesPerLine(2, 0x23, true))
	assert.Equal(t, 16, BytesPerLine(6, 0x21, false))
	assert.Equal(t, 10, BytesPerLine(8, 0x22, false))
	assert.Equal(t, 0, BytesPerLine(2, 0x20, false), "playfield DMA off")
}

func TestRowsWrapIn4K(t *testing.T) {
	d := DecodeBytes(0, []byte{0x4f, 0xf0, 0x4f, 0x0f, 0x0f, 0x41, 0x00, 0x00})
	rows := d.Rows(0x22)
	require.Len(t, rows, 3)
	assert.Equal(t, uint16(0x4ff0), rows[0].Addr)
	assert.Equal(t, uint16(0x4018), rows[1].Addr)
	assert.Equal(t, uint16(0x4040), rows[2].Addr)
	assert.Equal(t, 40, rows[2].Length)
}
