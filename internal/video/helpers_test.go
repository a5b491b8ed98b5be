package video

// testMemory is a flat 64 KB address space.
type testMemory [0x10000]byte

func (m *testMemory) Peek(addr uint16) byte { return m[addr] }

func (m *testMemory) load(addr uint16, data ...byte) {
	for i, b := range data {
		m[addr+uint16(i)] = b
	}
}

// fakeCPU burns every cycle it is given and records where each run began.
type fakeCPU struct {
	clk    *Clock
	starts []int
	nmis   int
	// step, if set, runs once per Run call before the remaining cycles
	// are burnt
	step func()
}

func (f *fakeCPU) Run() {
	f.starts = append(f.starts, f.clk.Xpos())
	if f.step != nil {
		f.step()
	}
	if d := f.clk.Limit() - f.clk.Xpos(); d > 0 {
		f.clk.Advance(d)
	}
}

func (f *fakeCPU) NMI() {
	f.nmis++
	f.clk.Advance(7)
}

func (f *fakeCPU) PC() uint16 { return 0x0600 }

func newTestChips() (*Chips, *testMemory, *fakeCPU) {
	mem := &testMemory{}
	c := New(mem, nil, nil, PAL)
	cpu := &fakeCPU{clk: c.Clock()}
	c.SetCPU(cpu)
	return c, mem, cpu
}

// row returns screen row y.
func row(c *Chips, y int) []uint16 {
	return c.Screen()[y*WordsPerLine:][:WordsPerLine]
}
