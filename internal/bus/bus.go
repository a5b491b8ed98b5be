package bus

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// Device is a chip mapped into one of the I/O pages.
type Device interface {
	GetByte(addr uint16) byte
	PutByte(addr uint16, v byte)
}

// DeviceFuncs adapts a pair of register handlers to Device.
type DeviceFuncs struct {
	Get func(addr uint16) byte
	Put func(addr uint16, v byte)
}

func (d DeviceFuncs) GetByte(addr uint16) byte    { return d.Get(addr) }
func (d DeviceFuncs) PutByte(addr uint16, v byte) { d.Put(addr, v) }

// I/O pages of the 800XL memory map.
const (
	PageGTIA  = 0xd0
	PagePOKEY = 0xd2
	PagePIA   = 0xd3
	PageANTIC = 0xd4
)

// Bus is the 64 KB Atari address space: RAM everywhere except the I/O
// pages $D000-$D7FF and an optional cartridge window.
type Bus struct {
	ram [0x10000]byte
	io  [8]Device // $D000-$D7FF by page

	cart     []byte
	cartBase uint16

	pia pia
}

// New creates a bus with all of RAM cleared and the PIA mapped.
func New() *Bus {
	b := &Bus{}
	b.pia.reset()
	b.io[PagePIA-0xd0] = &b.pia
	return b
}

// Map installs dev on an I/O page ($D0..$D7).
func (b *Bus) Map(page byte, dev Device) {
	if page < 0xd0 || page > 0xd7 {
		panic(fmt.Sprintf("bus: page %02x is not an I/O page", page))
	}
	b.io[page-0xd0] = dev
}

// SetCartridge maps an 8 KB or 16 KB left cartridge so that it ends at
// $BFFF. A nil image removes it.
func (b *Bus) SetCartridge(rom []byte) error {
	if rom == nil {
		b.cart = nil
		return nil
	}
	if len(rom) != 0x2000 && len(rom) != 0x4000 {
		return fmt.Errorf("bus: cartridge size %d not supported", len(rom))
	}
	b.cart = rom
	b.cartBase = uint16(0xc000 - len(rom))
	return nil
}

func (b *Bus) inCart(addr uint16) bool {
	return b.cart != nil && addr >= b.cartBase && addr < 0xc000
}

// Read is the CPU read path; reads of chip registers have side effects.
func (b *Bus) Read(addr uint16) byte {
	switch {
	case addr >= 0xd000 && addr < 0xd800:
		if dev := b.io[addr>>8-0xd0]; dev != nil {
			return dev.GetByte(addr)
		}
		return 0xff
	case b.inCart(addr):
		return b.cart[addr-b.cartBase]
	}
	return b.ram[addr]
}

// Write is the CPU write path. ROM ignores writes.
func (b *Bus) Write(addr uint16, v byte) {
	switch {
	case addr >= 0xd000 && addr < 0xd800:
		if dev := b.io[addr>>8-0xd0]; dev != nil {
			dev.PutByte(addr, v)
		}
	case b.inCart(addr):
	default:
		b.ram[addr] = v
	}
}

// Peek reads memory the way ANTIC's DMA sees it: no chip side effects.
// The I/O pages read as $FF.
func (b *Bus) Peek(addr uint16) byte {
	switch {
	case addr >= 0xd000 && addr < 0xd800:
		return 0xff
	case b.inCart(addr):
		return b.cart[addr-b.cartBase]
	}
	return b.ram[addr]
}

// Load copies data into RAM at addr, wrapping at the top of memory.
func (b *Bus) Load(addr uint16, data []byte) {
	for i, v := range data {
		b.ram[addr+uint16(i)] = v
	}
}

// RAM exposes the raw RAM array for tools.
func (b *Bus) RAM() *[0x10000]byte { return &b.ram }

// SetStick sets joystick n (0 or 1) to the active-low direction nibble.
func (b *Bus) SetStick(n int, dirs byte) { b.pia.setStick(n, dirs) }

// --- Save/Load state ---

type busState struct {
	RAM []byte
	PIA piaState
}

// SaveState serializes RAM and the PIA. Cartridge ROM and mapped chips
// are saved by their owners.
func (b *Bus) SaveState() ([]byte, error) {
	var buf bytes.Buffer
	s := busState{RAM: b.ram[:], PIA: b.pia.state()}
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadState restores RAM and the PIA.
func (b *Bus) LoadState(data []byte) error {
	var s busState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return err
	}
	if len(s.RAM) != len(b.ram) {
		return fmt.Errorf("bus: state has %d bytes of RAM", len(s.RAM))
	}
	copy(b.ram[:], s.RAM)
	b.pia.load(s.PIA)
	return nil
}
