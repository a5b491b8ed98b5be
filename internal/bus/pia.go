package bus

// pia is the 6520 PIA at $D300: two 8-bit ports with data direction
// registers. Port A carries the joysticks; port B is plain latch output.
type pia struct {
	portA, portB byte // output latches
	ddrA, ddrB   byte
	pactl, pbctl byte
	sticks       byte // input lines of port A, active low
}

func (p *pia) reset() {
	p.portA, p.portB = 0, 0
	p.ddrA, p.ddrB = 0, 0
	p.pactl, p.pbctl = 0x3c, 0x3c
	p.sticks = 0xff
}

func (p *pia) setStick(n int, dirs byte) {
	shift := uint(n&1) * 4
	p.sticks = p.sticks&^(0x0f<<shift) | (dirs&0x0f)<<shift
}

// GetByte reads PORTA/PORTB or, with bit 2 of the control register clear,
// the data direction register behind them.
func (p *pia) GetByte(addr uint16) byte {
	switch addr & 0x03 {
	case 0:
		if p.pactl&0x04 == 0 {
			return p.ddrA
		}
		return p.sticks&^p.ddrA | p.portA&p.ddrA
	case 1:
		if p.pbctl&0x04 == 0 {
			return p.ddrB
		}
		return ^p.ddrB | p.portB&p.ddrB
	case 2:
		return p.pactl
	default:
		return p.pbctl
	}
}

func (p *pia) PutByte(addr uint16, v byte) {
	switch addr & 0x03 {
	case 0:
		if p.pactl&0x04 == 0 {
			p.ddrA = v
		} else {
			p.portA = v
		}
	case 1:
		if p.pbctl&0x04 == 0 {
			p.ddrB = v
		} else {
			p.portB = v
		}
	case 2:
		p.pactl = v&0x3f | 0x30
	default:
		p.pbctl = v&0x3f | 0x30
	}
}

type piaState struct {
	PortA, PortB byte
	DDRA, DDRB   byte
	PACTL, PBCTL byte
	Sticks       byte
}

func (p *pia) state() piaState {
	return piaState{p.portA, p.portB, p.ddrA, p.ddrB, p.pactl, p.pbctl, p.sticks}
}

func (p *pia) load(s piaState) {
	p.portA, p.portB, p.ddrA, p.ddrB = s.PortA, s.PortB, s.DDRA, s.DDRB
	p.pactl, p.pbctl, p.sticks = s.PACTL, s.PBCTL, s.Sticks
}
