package video

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// --- Save/Load state ---
type chipsState struct {
	DMACTL, CHACTL, HSCROL, VSCROL byte
	PMBASE, CHBASE, NMIEN, NMIST   byte

	IR, Mode, Dctr, Lastline byte
	NeedDL, VscrolOff        bool
	Dlist, Screenaddr        uint16
	Md                       int

	Xpos, Limit, Ypos int
	Halted            bool

	HPOSP, HPOSM, SIZEP, GRAFP [4]byte
	SIZEM, GRAFM               byte
	COLPM, COLPF               [4]byte
	COLBK, PRIOR               byte
	VDELAY, GRACTL             byte

	MPL, PPL  [4]byte
	TrigLatch [4]byte

	// The colour table depends on the order of PRIOR and colour writes,
	// so it is kept whole. It also carries the playfield collisions.
	CL            [128]uint16
	GTIA9, GTIA11 [16]uint32

	ConsolMask  byte
	Speaker     bool
	ConsolTable [3]byte
	ConsolIndex int
}

// SaveState serializes the registers and the beam position.
func (c *Chips) SaveState() ([]byte, error) {
	s := chipsState{
		DMACTL: c.DMACTL, CHACTL: c.CHACTL, HSCROL: c.HSCROL, VSCROL: c.VSCROL,
		PMBASE: c.PMBASE, CHBASE: c.CHBASE, NMIEN: c.NMIEN, NMIST: c.NMIST,
		IR: c.IR, Mode: c.mode, Dctr: c.dctr, Lastline: c.lastline,
		NeedDL: c.needDL, VscrolOff: c.vscrolOff,
		Dlist: c.dlist, Screenaddr: c.screenaddr, Md: c.md,
		Xpos: c.clk.xpos, Limit: c.clk.limit, Ypos: c.clk.ypos,
		Halted: c.clk.sync == syncHaltPending,
		HPOSP: c.HPOSP, HPOSM: c.HPOSM, SIZEP: c.SIZEP, GRAFP: c.GRAFP,
		SIZEM: c.SIZEM, GRAFM: c.GRAFM,
		COLPM: c.COLPM, COLPF: c.COLPF, COLBK: c.COLBK, PRIOR: c.PRIOR,
		VDELAY: c.VDELAY, GRACTL: c.GRACTL,
		MPL: c.MPL, PPL: c.PPL, TrigLatch: c.trigLatch,
		ConsolMask: c.consolMask, Speaker: c.speaker,
		ConsolTable: c.consolTable, ConsolIndex: c.consolIndex,
		CL: c.cl, GTIA9: c.gtia9, GTIA11: c.gtia11,
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, fmt.Errorf("video: encode state: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadState restores a state written by SaveState. Derived state is
// rebuilt by writing the registers again on top of a cleared GTIA, then
// the saved colour and GTIA mode tables replace the rebuilt ones.
func (c *Chips) LoadState(data []byte) error {
	var s chipsState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return fmt.Errorf("video: decode state: %w", err)
	}

	trig := c.trig
	keys := c.consolKeys
	c.initGTIA()
	c.trig = trig
	c.consolKeys = keys

	for n := uint16(0); n < 4; n++ {
		c.GTIAPutByte(regHPOSP0+n, s.HPOSP[n])
		c.GTIAPutByte(regHPOSM0+n, s.HPOSM[n])
		c.GTIAPutByte(regSIZEP0+n, s.SIZEP[n])
		c.GTIAPutByte(regGRAFP0+n, s.GRAFP[n])
		c.GTIAPutByte(regCOLPM0+n, s.COLPM[n])
		c.GTIAPutByte(regCOLPF0+n, s.COLPF[n])
	}
	c.GTIAPutByte(regSIZEM, s.SIZEM)
	c.GTIAPutByte(regGRAFM, s.GRAFM)
	c.GTIAPutByte(regCOLBK, s.COLBK)
	c.GTIAPutByte(regPRIOR, s.PRIOR)
	c.GTIAPutByte(regVDELAY, s.VDELAY)
	c.GTIAPutByte(regGRACTL, s.GRACTL)

	c.MPL, c.PPL = s.MPL, s.PPL
	c.cl = s.CL
	c.gtia9, c.gtia11 = s.GTIA9, s.GTIA11
	c.trigLatch = s.TrigLatch
	c.consolMask, c.speaker = s.ConsolMask, s.Speaker
	c.consolTable, c.consolIndex = s.ConsolTable, s.ConsolIndex

	c.AnticPutByte(regCHACTL, s.CHACTL)
	c.AnticPutByte(regPMBASE, s.PMBASE)
	c.AnticPutByte(regCHBASE, s.CHBASE)
	c.HSCROL = s.HSCROL
	c.AnticPutByte(regDMACTL, s.DMACTL)
	c.VSCROL = s.VSCROL
	c.NMIEN, c.NMIST = s.NMIEN, s.NMIST

	c.IR, c.mode, c.dctr, c.lastline = s.IR, s.Mode, s.Dctr, s.Lastline
	c.needDL, c.vscrolOff = s.NeedDL, s.VscrolOff
	c.dlist, c.screenaddr, c.md = s.Dlist, s.Screenaddr, s.Md

	c.clk.xpos, c.clk.limit, c.clk.ypos = s.Xpos, s.Limit, s.Ypos
	c.clk.sync = syncRunning
	if s.Halted {
		c.clk.sync = syncHaltPending
	}
	if c.artifMode != ArtifactOff {
		c.initArtifact(c.artifMode)
	}
	c.reselect()
	return nil
}
