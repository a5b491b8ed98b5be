package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type regFile struct {
	regs   [0x100]byte
	reads  []uint16
	writes []uint16
}

func (r *regFile) GetByte(addr uint16) byte {
	r.reads = append(r.reads, addr)
	return r.regs[addr&0xff]
}

func (r *regFile) PutByte(addr uint16, v byte) {
	r.writes = append(r.writes, addr)
	r.regs[addr&0xff] = v
}

func TestBus_RAM(t *testing.T) {
	b := New()
	b.Write(0x0600, 0x99)
	if got := b.Read(0x0600); got != 0x99 {
		t.Fatalf("RAM read got %02x, want 99", got)
	}
	b.Write(0xffff, 0x12)
	if got := b.Peek(0xffff); got != 0x12 {
		t.Fatalf("Peek at top of memory got %02x, want 12", got)
	}
}

func TestBus_IODispatch(t *testing.T) {
	b := New()
	gtia, antic := &regFile{}, &regFile{}
	b.Map(PageGTIA, gtia)
	b.Map(PageANTIC, antic)

	b.Write(0xd01a, 0x94)
	b.Write(0xd40a, 0x00)
	assert.Equal(t, []uint16{0xd01a}, gtia.writes)
	assert.Equal(t, []uint16{0xd40a}, antic.writes)
	assert.Equal(t, byte(0x94), b.Read(0xd01a))
	assert.Zero(t, b.RAM()[0xd01a], "I/O writes never reach RAM")

	assert.Equal(t, byte(0xff), b.Read(0xd600), "unmapped page")
	b.Write(0xd600, 1)
}

func TestBus_PeekHasNoSideEffects(t *testing.T) {
	b := New()
	pokey := &regFile{}
	b.Map(PagePOKEY, pokey)
	assert.Equal(t, byte(0xff), b.Peek(0xd20a))
	assert.Empty(t, pokey.reads)
}

func TestBus_MapRejectsNonIOPage(t *testing.T) {
	b := New()
	assert.Panics(t, func() { b.Map(0xe0, &regFile{}) })
}

func TestBus_DeviceFuncs(t *testing.T) {
	b := New()
	var put byte
	b.Map(PageANTIC, DeviceFuncs{
		Get: func(addr uint16) byte { return byte(addr) },
		Put: func(addr uint16, v byte) { put = v },
	})
	assert.Equal(t, byte(0x0b), b.Read(0xd40b))
	b.Write(0xd40e, 0xc0)
	assert.Equal(t, byte(0xc0), put)
}

func TestBus_Cartridge(t *testing.T) {
	b := New()
	rom := make([]byte, 0x2000)
	rom[0] = 0xa9
	rom[0x1ffa] = 0x34
	require.NoError(t, b.SetCartridge(rom))

	assert.Equal(t, byte(0xa9), b.Read(0xa000))
	assert.Equal(t, byte(0x34), b.Peek(0xbffa))
	b.Write(0xa000, 0)
	assert.Equal(t, byte(0xa9), b.Read(0xa000), "ROM ignores writes")
	b.Write(0x9fff, 7)
	assert.Equal(t, byte(7), b.Read(0x9fff))

	assert.Error(t, b.SetCartridge(make([]byte, 100)))
	require.NoError(t, b.SetCartridge(nil))
	assert.Zero(t, b.Read(0xa000))
}

func TestBus_LoadWraps(t *testing.T) {
	b := New()
	b.Load(0xfffe, []byte{1, 2, 3})
	assert.Equal(t, byte(1), b.Read(0xfffe))
	assert.Equal(t, byte(3), b.Read(0x0000))
}

func TestPIA_PortsAndDirection(t *testing.T) {
	b := New()
	assert.Equal(t, byte(0xff), b.Read(0xd300), "no stick pressed")
	b.SetStick(0, 0x0e) // stick 0 up
	assert.Equal(t, byte(0xfe), b.Read(0xd300))
	b.SetStick(1, 0x07)
	assert.Equal(t, byte(0x7e), b.Read(0xd300))

	// select the direction register, make port B an output
	b.Write(0xd303, 0x38)
	b.Write(0xd301, 0xff)
	b.Write(0xd303, 0x3c)
	b.Write(0xd301, 0xfd)
	assert.Equal(t, byte(0xfd), b.Read(0xd301))
}

func TestBus_SaveLoadState(t *testing.T) {
	b := New()
	b.Write(0x1234, 0x56)
	b.SetStick(0, 0x0b)
	data, err := b.SaveState()
	require.NoError(t, err)

	r := New()
	require.NoError(t, r.LoadState(data))
	assert.Equal(t, byte(0x56), r.Read(0x1234))
	assert.Equal(t, b.Read(0xd300), r.Read(0xd300))
	assert.Error(t, r.LoadState([]byte("junk")))
}
