package cpu

type addrMode uint8

const (
	modeImp addrMode = iota
	modeImm
	modeZp
	modeZpX
	modeZpY
	modeAbs
	modeAbsX
	modeAbsY
	modeIzX
	modeIzY
)

// opCycles holds the base cycle count of every opcode.
var opCycles = [256]byte{
	7, 6, 2, 8, 3, 3, 5, 5, 3, 2, 2, 2, 4, 4, 6, 6, // 0x
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7, // 1x
	6, 6, 2, 8, 3, 3, 5, 5, 4, 2, 2, 2, 4, 4, 6, 6, // 2x
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7, // 3x
	6, 6, 2, 8, 3, 3, 5, 5, 3, 2, 2, 2, 3, 4, 6, 6, // 4x
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7, // 5x
	6, 6, 2, 8, 3, 3, 5, 5, 4, 2, 2, 2, 5, 4, 6, 6, // 6x
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7, // 7x
	2, 6, 2, 6, 3, 3, 3, 3, 2, 2, 2, 2, 4, 4, 4, 4, // 8x
	2, 6, 2, 6, 4, 4, 4, 4, 2, 5, 2, 5, 5, 5, 5, 5, // 9x
	2, 6, 2, 6, 3, 3, 3, 3, 2, 2, 2, 2, 4, 4, 4, 4, // Ax
	2, 5, 2, 5, 4, 4, 4, 4, 2, 4, 2, 4, 4, 4, 4, 4, // Bx
	2, 6, 2, 8, 3, 3, 5, 5, 2, 2, 2, 2, 4, 4, 6, 6, // Cx
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7, // Dx
	2, 6, 2, 8, 3, 3, 5, 5, 2, 2, 2, 2, 4, 4, 6, 6, // Ex
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7, // Fx
}

var opModes [256]addrMode

// The 6502 opcode matrix is regular: the low five bits pick the addressing
// mode, with a handful of exceptions in the X register columns.
func init() {
	for i := 0; i < 256; i++ {
		op := byte(i)
		odd := op&0x10 != 0
		var m addrMode
		switch op & 0x0f {
		case 0x0:
			switch {
			case op == 0x20:
				m = modeAbs
			case op >= 0x80 && !odd:
				m = modeImm
			}
		case 0x1, 0x3:
			m = modeIzX
			if odd {
				m = modeIzY
			}
		case 0x2:
			if !odd && op >= 0x80 {
				m = modeImm
			}
		case 0x4, 0x5, 0x6, 0x7:
			m = modeZp
			if odd {
				m = modeZpX
				if op == 0x96 || op == 0x97 || op == 0xB6 || op == 0xB7 {
					m = modeZpY
				}
			}
		case 0x9, 0xB:
			m = modeImm
			if odd {
				m = modeAbsY
			}
		case 0xC, 0xD, 0xE, 0xF:
			m = modeAbs
			if odd {
				m = modeAbsX
				if op == 0x9E || op == 0x9F || op == 0xBE || op == 0xBF {
					m = modeAbsY
				}
			}
		}
		opModes[i] = m
	}
}
