package pokey

// channel is one POKEY tone generator. Its divider output toggles every
// period cycles; the distortion bits of AUDC pick which poly counter gates
// the toggle.
type channel struct {
	period  int
	counter int
	out     bool
}

// sound mixes the four channels and the console speaker into mono 16-bit
// samples kept in a ring buffer.
type sound struct {
	cyclesPerSample float64
	cycAccum        float64
	mixGain         float64

	ch      [4]channel
	poly4   uint8
	poly5   uint8
	poly17  uint32
	speaker func() bool

	buf     []int16
	bufHead int
	bufTail int
}

func (s *sound) init(cpuHz, sampleRate int) {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	if cpuHz <= 0 {
		cpuHz = 1773447
	}
	s.cyclesPerSample = float64(cpuHz) / float64(sampleRate)
	s.mixGain = 0.5
	s.buf = make([]int16, 16384)
}

func (s *sound) reset() {
	s.ch = [4]channel{}
	s.cycAccum = 0
	s.poly4, s.poly5, s.poly17 = 0x0f, 0x1f, 0x1ffff
	s.bufHead, s.bufTail = 0, 0
}

func (s *sound) restart() {
	for i := range s.ch {
		s.ch[i].counter = s.ch[i].period
	}
}

// SetSpeaker attaches the console speaker, which POKEY's output is mixed with.
func (p *Pokey) SetSpeaker(f func() bool) { p.snd.speaker = f }

// stepPolys advances the noise counters by one divider clock.
func (s *sound) stepPolys() {
	s.poly4 = (s.poly4<<1 | (s.poly4>>3^s.poly4>>2)&1) & 0x0f
	s.poly5 = (s.poly5<<1 | (s.poly5>>4^s.poly5>>2)&1) & 0x1f
	s.poly17 = (s.poly17>>1 | ((s.poly17^s.poly17>>5)&1)<<16) & 0x1ffff
}

// gate reports whether the poly counters selected by audc let the divider
// toggle through. Bit 5 of AUDC bypasses the 5-bit poly, bit 6 selects
// the 4-bit poly over the 17-bit one and bit 7 bypasses both.
func (s *sound) gate(audc byte) bool {
	if audc&0x80 == 0 && s.poly5&1 == 0 {
		return false
	}
	if audc&0x20 != 0 {
		return true
	}
	if audc&0x40 != 0 {
		return s.poly4&1 != 0
	}
	return s.poly17&1 != 0
}

// tick advances the generator by cycles and emits the samples that fall
// inside them.
func (s *sound) tick(cycles int, p *Pokey) {
	s.cycAccum += float64(cycles)
	for s.cycAccum >= s.cyclesPerSample {
		step := int(s.cyclesPerSample)
		for i := range s.ch {
			c := &s.ch[i]
			if c.period <= 0 {
				continue
			}
			c.counter -= step
			for c.counter <= 0 {
				c.counter += c.period
				s.stepPolys()
				if s.gate(p.AUDC[i]) {
					c.out = !c.out
				}
			}
		}
		s.pushSample(s.mix(p))
		s.cycAccum -= s.cyclesPerSample
	}
}

func (s *sound) mix(p *Pokey) int16 {
	level := 0
	for i, c := range s.ch {
		vol := int(p.AUDC[i] & 0x0f)
		switch {
		case p.AUDC[i]&0x10 != 0:
			level += vol
		case c.out:
			level += vol
		}
	}
	if s.speaker != nil && s.speaker() {
		level += 15
	}
	// four channels plus the speaker at full volume
	return int16(float64(level) / 75 * 32767 * s.mixGain)
}

func (s *sound) pushSample(v int16) {
	next := (s.bufHead + 1) & (len(s.buf) - 1)
	if next == s.bufTail {
		// buffer full, drop sample
		return
	}
	s.buf[s.bufHead] = v
	s.bufHead = next
}

// PullSamples copies up to max samples out of the ring buffer.
func (p *Pokey) PullSamples(max int) []int16 {
	s := &p.snd
	if max <= 0 || s.bufHead == s.bufTail {
		return nil
	}
	out := make([]int16, 0, max)
	for len(out) < max && s.bufTail != s.bufHead {
		out = append(out, s.buf[s.bufTail])
		s.bufTail = (s.bufTail + 1) & (len(s.buf) - 1)
	}
	return out
}

// Available reports how many samples are waiting.
func (p *Pokey) Available() int {
	s := &p.snd
	if s.bufHead >= s.bufTail {
		return s.bufHead - s.bufTail
	}
	return len(s.buf) - s.bufTail + s.bufHead
}

type channelState struct {
	Counter int
	Out     bool
}

type soundState struct {
	Ch           [4]channelState
	Poly4, Poly5 uint8
	Poly17       uint32
	CycAccum     float64
}

func (s *sound) state() soundState {
	st := soundState{Poly4: s.poly4, Poly5: s.poly5, Poly17: s.poly17, CycAccum: s.cycAccum}
	for i, c := range s.ch {
		st.Ch[i] = channelState{Counter: c.counter, Out: c.out}
	}
	return st
}

func (s *sound) load(st soundState) {
	s.poly4, s.poly5, s.poly17, s.cycAccum = st.Poly4, st.Poly5, st.Poly17, st.CycAccum
	for i, c := range st.Ch {
		s.ch[i].counter, s.ch[i].out = c.Counter, c.Out
	}
}
