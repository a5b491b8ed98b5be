package cpu

import (
	"bytes"
	"encoding/gob"
	"log"
	"math"
)

// Bus is the 6502's view of the 64 KB address space.
type Bus interface {
	Read(addr uint16) byte
	Write(addr uint16, v byte)
}

// Clock is the beam clock the CPU runs against. Run executes instructions
// while Xpos is below Limit.
type Clock interface {
	Xpos() int
	Limit() int
	Advance(cycles int)
}

// Status register bits.
const (
	FlagC byte = 1 << 0
	FlagZ byte = 1 << 1
	FlagI byte = 1 << 2
	FlagD byte = 1 << 3
	FlagB byte = 1 << 4
	FlagU byte = 1 << 5
	FlagV byte = 1 << 6
	FlagN byte = 1 << 7
)

const (
	vecNMI   uint16 = 0xfffa
	vecReset uint16 = 0xfffc
	vecIRQ   uint16 = 0xfffe
)

// CPU is an NMOS 6502 clocked by ANTIC's horizontal position.
type CPU struct {
	A, X, Y byte
	SP      byte
	P       byte

	pc     uint16
	irq    bool
	jammed bool

	// Trace logs every instruction before it executes.
	Trace bool

	bus Bus
	clk Clock
}

// freeClock is used when no beam clock is attached.
type freeClock struct{ x int }

func (f *freeClock) Xpos() int          { return f.x }
func (f *freeClock) Limit() int         { return math.MaxInt }
func (f *freeClock) Advance(cycles int) { f.x += cycles }

// New creates a CPU on b. A nil clk gives a free-running clock.
func New(b Bus, clk Clock) *CPU {
	if clk == nil {
		clk = &freeClock{}
	}
	return &CPU{bus: b, clk: clk, SP: 0xff, P: FlagU | FlagI}
}

// SetClock attaches the beam clock.
func (c *CPU) SetClock(clk Clock) { c.clk = clk }

// PC returns the program counter.
func (c *CPU) PC() uint16 { return c.pc }

// SetPC allows tests or a loader to set the program counter.
func (c *CPU) SetPC(pc uint16) { c.pc = pc }

// Jammed reports whether a KIL opcode stopped the CPU.
func (c *CPU) Jammed() bool { return c.jammed }

// Reset loads PC from the reset vector the way the 6502 does on power up.
func (c *CPU) Reset() {
	c.SP -= 3
	c.P |= FlagI | FlagU
	c.irq = false
	c.jammed = false
	c.pc = c.read16(vecReset)
}

// SetIRQ drives the level-sensitive IRQ line.
func (c *CPU) SetIRQ(level bool) { c.irq = level }

// Run executes instructions until the clock reaches its limit. ANTIC calls
// it once per DMA gap.
func (c *CPU) Run() {
	c.checkIRQ()
	for c.clk.Xpos() < c.clk.Limit() {
		c.Step()
	}
}

// NMI pushes PC and the status with B clear and jumps through $FFFA.
func (c *CPU) NMI() {
	c.interrupt(vecNMI)
	c.clk.Advance(7)
}

func (c *CPU) checkIRQ() {
	if c.irq && c.P&FlagI == 0 && c.clk.Xpos() < c.clk.Limit() {
		c.interrupt(vecIRQ)
		c.clk.Advance(7)
	}
}

func (c *CPU) interrupt(vec uint16) {
	c.push16(c.pc)
	c.push(c.P&^FlagB | FlagU)
	c.P |= FlagI
	c.pc = c.read16(vec)
}

func (c *CPU) read(addr uint16) byte     { return c.bus.Read(addr) }
func (c *CPU) write(addr uint16, v byte) { c.bus.Write(addr, v) }

func (c *CPU) fetch() byte {
	v := c.read(c.pc)
	c.pc++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch()
	hi := c.fetch()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) read16(addr uint16) uint16 {
	return uint16(c.read(addr+1))<<8 | uint16(c.read(addr))
}

// zp16 reads a pointer from page zero, wrapping within the page.
func (c *CPU) zp16(p byte) uint16 {
	return uint16(c.read(uint16(p+1)))<<8 | uint16(c.read(uint16(p)))
}

func (c *CPU) push(v byte) {
	c.write(0x100|uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() byte {
	c.SP++
	return c.read(0x100 | uint16(c.SP))
}

func (c *CPU) push16(v uint16) {
	c.push(byte(v >> 8))
	c.push(byte(v))
}

func (c *CPU) pop16() uint16 {
	lo := c.pop()
	hi := c.pop()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) setFlag(f byte, on bool) {
	if on {
		c.P |= f
	} else {
		c.P &^= f
	}
}

func (c *CPU) setNZ(v byte) {
	c.P &^= FlagN | FlagZ
	if v == 0 {
		c.P |= FlagZ
	}
	c.P |= v & FlagN
}

// Step executes one instruction. The base cycle count is added to the clock
// before the instruction runs so that a WSYNC store sees the position after
// the store; page-crossing and branch penalties follow.
func (c *CPU) Step() (cycles int) {
	if c.jammed {
		c.clk.Advance(2)
		return 2
	}
	if c.Trace {
		log.Printf("%04X  %02X  A:%02X X:%02X Y:%02X P:%02X SP:%02X",
			c.pc, c.read(c.pc), c.A, c.X, c.Y, c.P, c.SP)
	}
	op := c.fetch()
	cycles = int(opCycles[op])
	c.clk.Advance(cycles)
	extra := c.exec(op)
	if extra > 0 {
		c.clk.Advance(extra)
	}
	return cycles + extra
}

// exec runs op and returns the cycles beyond the base count.
func (c *CPU) exec(op byte) (extra int) {
	switch op {
	// Loads and stores
	case 0xA9, 0xA5, 0xB5, 0xAD, 0xBD, 0xB9, 0xA1, 0xB1: // LDA
		v, x := c.load(op)
		c.A = v
		c.setNZ(v)
		return x
	case 0xA2, 0xA6, 0xB6, 0xAE, 0xBE: // LDX
		v, x := c.load(op)
		c.X = v
		c.setNZ(v)
		return x
	case 0xA0, 0xA4, 0xB4, 0xAC, 0xBC: // LDY
		v, x := c.load(op)
		c.Y = v
		c.setNZ(v)
		return x
	case 0x85, 0x95, 0x8D, 0x9D, 0x99, 0x81, 0x91: // STA
		c.store(op, c.A)
	case 0x86, 0x96, 0x8E: // STX
		c.store(op, c.X)
	case 0x84, 0x94, 0x8C: // STY
		c.store(op, c.Y)

	// Logic and arithmetic
	case 0x09, 0x05, 0x15, 0x0D, 0x1D, 0x19, 0x01, 0x11: // ORA
		v, x := c.load(op)
		c.A |= v
		c.setNZ(c.A)
		return x
	case 0x29, 0x25, 0x35, 0x2D, 0x3D, 0x39, 0x21, 0x31: // AND
		v, x := c.load(op)
		c.A &= v
		c.setNZ(c.A)
		return x
	case 0x49, 0x45, 0x55, 0x4D, 0x5D, 0x59, 0x41, 0x51: // EOR
		v, x := c.load(op)
		c.A ^= v
		c.setNZ(c.A)
		return x
	case 0x69, 0x65, 0x75, 0x6D, 0x7D, 0x79, 0x61, 0x71: // ADC
		v, x := c.load(op)
		c.adc(v)
		return x
	case 0xE9, 0xEB, 0xE5, 0xF5, 0xED, 0xFD, 0xF9, 0xE1, 0xF1: // SBC
		v, x := c.load(op)
		c.sbc(v)
		return x
	case 0xC9, 0xC5, 0xD5, 0xCD, 0xDD, 0xD9, 0xC1, 0xD1: // CMP
		v, x := c.load(op)
		c.compare(c.A, v)
		return x
	case 0xE0, 0xE4, 0xEC: // CPX
		v, _ := c.load(op)
		c.compare(c.X, v)
	case 0xC0, 0xC4, 0xCC: // CPY
		v, _ := c.load(op)
		c.compare(c.Y, v)
	case 0x24, 0x2C: // BIT
		v, _ := c.load(op)
		c.setFlag(FlagZ, c.A&v == 0)
		c.P = c.P&^(FlagN|FlagV) | v&(FlagN|FlagV)

	// Shifts and read-modify-write
	case 0x0A: // ASL A
		c.A = c.asl(c.A)
	case 0x4A: // LSR A
		c.A = c.lsr(c.A)
	case 0x2A: // ROL A
		c.A = c.rol(c.A)
	case 0x6A: // ROR A
		c.A = c.ror(c.A)
	case 0x06, 0x16, 0x0E, 0x1E: // ASL
		c.rmw(op, c.asl)
	case 0x46, 0x56, 0x4E, 0x5E: // LSR
		c.rmw(op, c.lsr)
	case 0x26, 0x36, 0x2E, 0x3E: // ROL
		c.rmw(op, c.rol)
	case 0x66, 0x76, 0x6E, 0x7E: // ROR
		c.rmw(op, c.ror)
	case 0xE6, 0xF6, 0xEE, 0xFE: // INC
		c.rmw(op, func(v byte) byte { v++; c.setNZ(v); return v })
	case 0xC6, 0xD6, 0xCE, 0xDE: // DEC
		c.rmw(op, func(v byte) byte { v--; c.setNZ(v); return v })

	// Register transfers and increments
	case 0xAA: // TAX
		c.X = c.A
		c.setNZ(c.X)
	case 0x8A: // TXA
		c.A = c.X
		c.setNZ(c.A)
	case 0xA8: // TAY
		c.Y = c.A
		c.setNZ(c.Y)
	case 0x98: // TYA
		c.A = c.Y
		c.setNZ(c.A)
	case 0xBA: // TSX
		c.X = c.SP
		c.setNZ(c.X)
	case 0x9A: // TXS
		c.SP = c.X
	case 0xE8: // INX
		c.X++
		c.setNZ(c.X)
	case 0xCA: // DEX
		c.X--
		c.setNZ(c.X)
	case 0xC8: // INY
		c.Y++
		c.setNZ(c.Y)
	case 0x88: // DEY
		c.Y--
		c.setNZ(c.Y)

	// Stack
	case 0x48: // PHA
		c.push(c.A)
	case 0x68: // PLA
		c.A = c.pop()
		c.setNZ(c.A)
	case 0x08: // PHP
		c.push(c.P | FlagB | FlagU)
	case 0x28: // PLP
		c.P = c.pop()&^FlagB | FlagU

	// Flags
	case 0x18: // CLC
		c.P &^= FlagC
	case 0x38: // SEC
		c.P |= FlagC
	case 0x58: // CLI
		c.P &^= FlagI
	case 0x78: // SEI
		c.P |= FlagI
	case 0xB8: // CLV
		c.P &^= FlagV
	case 0xD8: // CLD
		c.P &^= FlagD
	case 0xF8: // SED
		c.P |= FlagD

	// Branches
	case 0x10: // BPL
		return c.branch(c.P&FlagN == 0)
	case 0x30: // BMI
		return c.branch(c.P&FlagN != 0)
	case 0x50: // BVC
		return c.branch(c.P&FlagV == 0)
	case 0x70: // BVS
		return c.branch(c.P&FlagV != 0)
	case 0x90: // BCC
		return c.branch(c.P&FlagC == 0)
	case 0xB0: // BCS
		return c.branch(c.P&FlagC != 0)
	case 0xD0: // BNE
		return c.branch(c.P&FlagZ == 0)
	case 0xF0: // BEQ
		return c.branch(c.P&FlagZ != 0)

	// Jumps, calls and interrupts
	case 0x4C: // JMP abs
		c.pc = c.fetch16()
	case 0x6C: // JMP (ind), the high byte never leaves the pointer's page
		p := c.fetch16()
		c.pc = uint16(c.read(p&0xff00|uint16(byte(p)+1)))<<8 | uint16(c.read(p))
	case 0x20: // JSR
		target := c.fetch16()
		c.push16(c.pc - 1)
		c.pc = target
	case 0x60: // RTS
		c.pc = c.pop16() + 1
	case 0x40: // RTI
		c.P = c.pop()&^FlagB | FlagU
		c.pc = c.pop16()
	case 0x00: // BRK
		c.pc++
		c.push16(c.pc)
		c.push(c.P | FlagB | FlagU)
		c.P |= FlagI
		c.pc = c.read16(vecIRQ)

	case 0xEA, 0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA: // NOP
	case 0x80, 0x82, 0x89, 0xC2, 0xE2, 0x04, 0x44, 0x64, 0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4, 0x0C: // NOP with operand
		c.ea(op)
	case 0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC: // NOP abs,X
		_, x := c.load(op)
		return x

	// Undocumented combinations used by some demos
	case 0xA7, 0xB7, 0xAF, 0xBF, 0xA3, 0xB3: // LAX
		v, x := c.load(op)
		c.A, c.X = v, v
		c.setNZ(v)
		return x
	case 0x87, 0x97, 0x8F, 0x83: // SAX
		c.store(op, c.A&c.X)
	case 0x07, 0x17, 0x0F, 0x1F, 0x1B, 0x03, 0x13: // SLO
		c.rmw(op, func(v byte) byte { v = c.asl(v); c.A |= v; c.setNZ(c.A); return v })
	case 0x27, 0x37, 0x2F, 0x3F, 0x3B, 0x23, 0x33: // RLA
		c.rmw(op, func(v byte) byte { v = c.rol(v); c.A &= v; c.setNZ(c.A); return v })
	case 0x47, 0x57, 0x4F, 0x5F, 0x5B, 0x43, 0x53: // SRE
		c.rmw(op, func(v byte) byte { v = c.lsr(v); c.A ^= v; c.setNZ(c.A); return v })
	case 0x67, 0x77, 0x6F, 0x7F, 0x7B, 0x63, 0x73: // RRA
		c.rmw(op, func(v byte) byte { v = c.ror(v); c.adc(v); return v })
	case 0xC7, 0xD7, 0xCF, 0xDF, 0xDB, 0xC3, 0xD3: // DCP
		c.rmw(op, func(v byte) byte { v--; c.compare(c.A, v); return v })
	case 0xE7, 0xF7, 0xEF, 0xFF, 0xFB, 0xE3, 0xF3: // ISC
		c.rmw(op, func(v byte) byte { v++; c.sbc(v); return v })
	case 0x0B, 0x2B: // ANC
		v, _ := c.load(op)
		c.A &= v
		c.setNZ(c.A)
		c.setFlag(FlagC, c.A&0x80 != 0)
	case 0x4B: // ALR
		v, _ := c.load(op)
		c.A = c.lsr(c.A & v)
	case 0x6B: // ARR, binary mode only
		v, _ := c.load(op)
		c.A &= v
		c.A = c.A>>1 | (c.P&FlagC)<<7
		c.setNZ(c.A)
		c.setFlag(FlagC, c.A&0x40 != 0)
		c.setFlag(FlagV, (c.A>>6^c.A>>5)&1 != 0)
	case 0xAB: // ANX
		v, _ := c.load(op)
		c.A &= v
		c.X = c.A
		c.setNZ(c.A)
	case 0x8B: // ANE
		v, _ := c.load(op)
		c.setNZ(c.A & c.X & v)
		c.A &= c.X & (v | 0xef)
	case 0xCB: // SBX
		v, _ := c.load(op)
		c.X &= c.A
		c.setFlag(FlagC, c.X >= v)
		c.X -= v
		c.setNZ(c.X)
	case 0xBB: // LAS
		v, x := c.load(op)
		c.SP &= v
		c.A, c.X = c.SP, c.SP
		c.setNZ(c.A)
		return x
	case 0x9C: // SHY
		base := c.fetch16()
		c.write(base+uint16(c.X), c.Y&(byte(base>>8)+1))
	case 0x9E: // SHX
		base := c.fetch16()
		c.write(base+uint16(c.Y), c.X&(byte(base>>8)+1))
	case 0x9F: // SHA abs,Y
		base := c.fetch16()
		c.write(base+uint16(c.Y), c.A&c.X&(byte(base>>8)+1))
	case 0x93: // SHA (zp),Y
		base := c.zp16(c.fetch())
		c.write(base+uint16(c.Y), c.A&c.X&(byte(base>>8)+1))
	case 0x9B: // TAS
		base := c.fetch16()
		c.SP = c.A & c.X
		c.write(base+uint16(c.Y), c.SP&(byte(base>>8)+1))

	default: // KIL
		c.jammed = true
		c.pc--
	}
	return 0
}

// ea computes the effective address for op and reports whether indexing
// crossed a page.
func (c *CPU) ea(op byte) (addr uint16, crossed bool) {
	switch opModes[op] {
	case modeImm:
		addr = c.pc
		c.pc++
	case modeZp:
		addr = uint16(c.fetch())
	case modeZpX:
		addr = uint16(c.fetch() + c.X)
	case modeZpY:
		addr = uint16(c.fetch() + c.Y)
	case modeAbs:
		addr = c.fetch16()
	case modeAbsX:
		base := c.fetch16()
		addr = base + uint16(c.X)
		crossed = base&0xff00 != addr&0xff00
	case modeAbsY:
		base := c.fetch16()
		addr = base + uint16(c.Y)
		crossed = base&0xff00 != addr&0xff00
	case modeIzX:
		addr = c.zp16(c.fetch() + c.X)
	case modeIzY:
		base := c.zp16(c.fetch())
		addr = base + uint16(c.Y)
		crossed = base&0xff00 != addr&0xff00
	}
	return addr, crossed
}

// load reads the operand of op, returning one extra cycle on a page cross.
func (c *CPU) load(op byte) (byte, int) {
	addr, crossed := c.ea(op)
	if crossed {
		return c.read(addr), 1
	}
	return c.read(addr), 0
}

func (c *CPU) store(op byte, v byte) {
	addr, _ := c.ea(op)
	c.write(addr, v)
}

// rmw reads, modifies and writes back op's operand. On the I/O pages the
// unmodified value is written one cycle earlier, as the NMOS part does.
func (c *CPU) rmw(op byte, f func(byte) byte) {
	addr, _ := c.ea(op)
	v := c.read(addr)
	if addr&0xef00 == 0xc000 {
		c.clk.Advance(-1)
		c.write(addr, v)
		c.clk.Advance(1)
	}
	c.write(addr, f(v))
}

func (c *CPU) branch(cond bool) int {
	off := int8(c.fetch())
	if !cond {
		return 0
	}
	target := uint16(int32(c.pc) + int32(off))
	extra := 1
	if target&0xff00 != c.pc&0xff00 {
		extra++
	}
	c.pc = target
	return extra
}

func (c *CPU) compare(r, v byte) {
	c.setFlag(FlagC, r >= v)
	c.setNZ(r - v)
}

func (c *CPU) asl(v byte) byte {
	c.setFlag(FlagC, v&0x80 != 0)
	v <<= 1
	c.setNZ(v)
	return v
}

func (c *CPU) lsr(v byte) byte {
	c.setFlag(FlagC, v&0x01 != 0)
	v >>= 1
	c.setNZ(v)
	return v
}

func (c *CPU) rol(v byte) byte {
	carry := c.P & FlagC
	c.setFlag(FlagC, v&0x80 != 0)
	v = v<<1 | carry
	c.setNZ(v)
	return v
}

func (c *CPU) ror(v byte) byte {
	carry := c.P & FlagC
	c.setFlag(FlagC, v&0x01 != 0)
	v = v>>1 | carry<<7
	c.setNZ(v)
	return v
}

// adc adds with carry. In decimal mode Z comes from the binary sum and N
// and V from the intermediate high nibble.
func (c *CPU) adc(v byte) {
	carry := c.P & FlagC
	sum := uint16(c.A) + uint16(v) + uint16(carry)
	if c.P&FlagD == 0 {
		c.setFlag(FlagV, ^(c.A^v)&(c.A^byte(sum))&0x80 != 0)
		c.setFlag(FlagC, sum > 0xff)
		c.A = byte(sum)
		c.setNZ(c.A)
		return
	}
	lo := c.A&0x0f + v&0x0f + carry
	hi := uint16(c.A>>4) + uint16(v>>4)
	if lo > 9 {
		lo += 6
	}
	if lo > 0x0f {
		hi++
	}
	c.setFlag(FlagZ, byte(sum) == 0)
	c.setFlag(FlagN, hi&0x08 != 0)
	c.setFlag(FlagV, (byte(hi<<4)^c.A)&0x80 != 0 && (c.A^v)&0x80 == 0)
	if hi > 9 {
		hi += 6
	}
	c.setFlag(FlagC, hi > 0x0f)
	c.A = byte(hi<<4) | lo&0x0f
}

// sbc subtracts with borrow. Flags always follow the binary result.
func (c *CPU) sbc(v byte) {
	borrow := 1 - int(c.P&FlagC)
	diff := int(c.A) - int(v) - borrow
	res := byte(diff)
	c.setFlag(FlagV, (c.A^v)&(c.A^res)&0x80 != 0)
	c.setFlag(FlagC, diff >= 0)
	c.setNZ(res)
	if c.P&FlagD == 0 {
		c.A = res
		return
	}
	lo := int(c.A&0x0f) - int(v&0x0f) - borrow
	hi := int(c.A>>4) - int(v>>4)
	if lo < 0 {
		lo -= 6
		hi--
	}
	if hi < 0 {
		hi -= 6
	}
	c.A = byte(hi<<4) | byte(lo)&0x0f
}

// --- Save/Load state ---

type cpuState struct {
	A, X, Y, SP, P byte
	PC             uint16
	IRQ, Jammed    bool
}

// SaveState serializes the registers.
func (c *CPU) SaveState() ([]byte, error) {
	var buf bytes.Buffer
	s := cpuState{A: c.A, X: c.X, Y: c.Y, SP: c.SP, P: c.P, PC: c.pc, IRQ: c.irq, Jammed: c.jammed}
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadState restores registers written by SaveState.
func (c *CPU) LoadState(data []byte) error {
	var s cpuState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return err
	}
	c.A, c.X, c.Y, c.SP, c.P = s.A, s.X, s.Y, s.SP, s.P
	c.pc, c.irq, c.jammed = s.PC, s.IRQ, s.Jammed
	return nil
}
