package emu

import (
	"encoding/binary"
	"fmt"
	"log"

	"github.com/FabianRolfMatthiasNoll/AtariVideo/internal/cart"
)

// Without an OS ROM the machine needs somewhere for the vectors to point.
// A small stub under the OS area dispatches the NMIs through the RAM
// vectors the OS would use and gives programs an idle loop to return to.
const (
	stubBase = 0xff00
	stubRTI  = 0xff12 // default handler
	stubIdle = 0xff13 // JMP * after a subroutine returns

	vdslst = 0x0200 // DLI vector
	vvblki = 0x0222 // immediate VBI vector
	rtclok = 0x14   // frame counter, low byte

	// frames an INIT routine or cartridge init may take to return
	initFrames = 100
)

var stub = []byte{
	0x2c, 0x0f, 0xd4, // BIT NMIST
	0x10, 0x03,       // BPL vbi
	0x6c, 0x00, 0x02, // JMP (VDSLST)
	0x48,             // vbi: PHA
	0x8d, 0x0f, 0xd4, // STA NMIRES
	0xe6, rtclok,     // INC RTCLOK
	0x68,             // PLA
	0x6c, 0x22, 0x02, // JMP (VVBLKI)
	0x40,             // RTI
	0x4c, 0x13, 0xff, // idle: JMP idle
}

func (m *Machine) putWord(addr, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	m.bus.Load(addr, b[:])
}

func (m *Machine) installStub() {
	m.bus.Load(stubBase, stub)
	m.putWord(0xfffa, stubBase)
	m.putWord(0xfffc, stubIdle)
	m.putWord(0xfffe, stubRTI)
	m.putWord(vdslst, stubRTI)
	m.putWord(vvblki, stubRTI)
}

// boot resets the chips and CPU and starts the loaded image the way DOS or
// the OS cartridge check would.
func (m *Machine) boot() error {
	m.chips.Reset()
	m.pokey.Reset()
	if err := m.bus.SetCartridge(nil); err != nil {
		return err
	}
	m.installStub()
	m.cpu.SP = 0xff
	m.cpu.Reset()
	if m.img == nil {
		return nil
	}
	switch m.img.Kind {
	case cart.KindXEX:
		return m.bootXEX(m.img.XEX)
	default:
		return m.bootCart(m.img.ROM)
	}
}

// bootXEX loads each segment, calling INITAD whenever a segment sets it,
// then jumps to RUNAD.
func (m *Machine) bootXEX(x *cart.XEX) error {
	for i, s := range x.Segments {
		m.putWord(cart.INITAD, stubRTI)
		m.bus.Load(s.Start, s.Data)
		if addr, ok := s.Word(cart.INITAD); ok {
			if err := m.call(addr); err != nil {
				return fmt.Errorf("xex segment %d: init %04x: %w", i, addr, err)
			}
		}
	}
	run := x.RunAddr()
	log.Printf("xex: run %04X", run)
	m.cpu.SetPC(run)
	return nil
}

// bootCart maps the cartridge, runs its init routine and jumps to its
// start address, both taken from the top of the cartridge area.
func (m *Machine) bootCart(rom []byte) error {
	if err := m.bus.SetCartridge(rom); err != nil {
		return err
	}
	start := uint16(m.bus.Peek(0xbffa)) | uint16(m.bus.Peek(0xbffb))<<8
	initAddr := uint16(m.bus.Peek(0xbffe)) | uint16(m.bus.Peek(0xbfff))<<8
	if err := m.call(initAddr); err != nil {
		return fmt.Errorf("cartridge init %04x: %w", initAddr, err)
	}
	log.Printf("cartridge: start %04X", start)
	m.cpu.SetPC(start)
	return nil
}

// call runs the subroutine at addr until it returns to the idle loop.
func (m *Machine) call(addr uint16) error {
	ret := uint16(stubIdle - 1)
	m.cpu.SP = 0xff
	m.bus.Write(0x01ff, byte(ret>>8))
	m.bus.Write(0x01fe, byte(ret))
	m.cpu.SP = 0xfd
	m.cpu.SetPC(addr)
	for i := 0; i < initFrames; i++ {
		m.chips.RunFrame(false)
		if m.cpu.PC() == stubIdle {
			return nil
		}
		if m.cpu.Jammed() {
			return fmt.Errorf("CPU jammed at %04x", m.cpu.PC())
		}
	}
	return fmt.Errorf("no return after %d frames", initFrames)
}
