package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/FabianRolfMatthiasNoll/AtariVideo/internal/dlist"
	"github.com/FabianRolfMatthiasNoll/AtariVideo/internal/emu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var list = dlist.DecodeBytes(0x3000, []byte{0x70, 0x70, 0xf0, 0x42, 0x00, 0x40, 0x02, 0x41, 0x00, 0x30})

func TestPrintListPlain(t *testing.T) {
	var b bytes.Buffer
	printList(&b, list, false)
	out := b.String()
	assert.Contains(t, out, "3000: 2x 8 BLANK\n")
	assert.Contains(t, out, "3002: DLI 8 BLANK\n")
	assert.Contains(t, out, "3003: LMS 4000 MODE 2\n")
	assert.Contains(t, out, "6 entries, 40 scanlines\n")
	assert.NotContains(t, out, "\x1b[")
}

func TestPrintListHighlights(t *testing.T) {
	var b bytes.Buffer
	printList(&b, list, true)
	out := b.String()
	assert.Contains(t, out, ansiDLI+"3002: DLI 8 BLANK"+ansiReset)
	assert.Contains(t, out, ansiLMS+"3003: LMS 4000 MODE 2"+ansiReset)
}

func TestPrintRows(t *testing.T) {
	var b bytes.Buffer
	printRows(&b, list, 0x22)
	assert.Equal(t, "3003: MODE 2 4000+40\n3006: MODE 2 4028+40\n", b.String())
}

func TestPrintRegs(t *testing.T) {
	m, err := emu.New(emu.Config{})
	require.NoError(t, err)
	m.Bus().Write(0xd01a, 0x94)
	var b bytes.Buffer
	printRegs(&b, m.Chips())
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "COLBK=94")
}

func TestParseHex(t *testing.T) {
	for _, s := range []string{"3000", "$3000", "0x3000"} {
		v, err := parseHex(s)
		require.NoError(t, err)
		assert.Equal(t, uint16(0x3000), v)
	}
	_, err := parseHex("zz")
	assert.Error(t, err)
}
