// Package dlist decodes ANTIC display lists for tools and the overlay.
package dlist

import (
	"fmt"
	"strings"
)

// Memory is read without side effects, the way ANTIC's DMA reads.
type Memory interface {
	Peek(addr uint16) byte
}

// Entry is one display-list instruction.
type Entry struct {
	Addr    uint16
	Command byte
	Arg     uint16
}

func (e Entry) IsDLI() bool { return e.Command&0x80 != 0 }

func (e Entry) Mode() byte { return e.Command & 0x0f }

// IsLMS reports a mode line that loads the screen address.
func (e Entry) IsLMS() bool { return e.Mode() > 1 && e.Command&0x40 != 0 }

// IsJVB reports the jump-and-wait-for-vertical-blank instruction.
func (e Entry) IsJVB() bool { return e.Mode() == 1 && e.Command&0x40 != 0 }

func (e Entry) CommandName() string {
	switch e.Mode() {
	case 0:
		return "BLANK"
	case 1:
		if e.Command&0x40 != 0 {
			return "JVB"
		}
		return "JMP"
	}
	return fmt.Sprintf("MODE %X", e.Mode())
}

// Scanlines is the number of TV lines the instruction produces.
func (e Entry) Scanlines() int {
	switch e.Mode() {
	case 0:
		return int(e.Command>>4&0x07) + 1
	case 1:
		return 1
	}
	return modeLines[e.Mode()]
}

func (e Entry) Description() string {
	var parts []string
	if e.IsDLI() {
		parts = append(parts, "DLI")
	}
	switch e.Mode() {
	case 0:
		parts = append(parts, fmt.Sprintf("%d %s", e.Scanlines(), e.CommandName()))
	case 1:
		parts = append(parts, fmt.Sprintf("%s %04X", e.CommandName(), e.Arg))
	default:
		if e.IsLMS() {
			parts = append(parts, fmt.Sprintf("LMS %04X", e.Arg))
		}
		if e.Command&0x20 != 0 {
			parts = append(parts, "VSCROL")
		}
		if e.Command&0x10 != 0 {
			parts = append(parts, "HSCROL")
		}
		parts = append(parts, e.CommandName())
	}
	return strings.Join(parts, " ")
}

// modeLines holds the scanlines per mode line for modes 2-F.
var modeLines = [16]int{0, 0, 8, 10, 8, 16, 8, 16, 8, 4, 4, 2, 1, 2, 1, 1}

// DisplayList is a decoded list starting at StartAddr.
type DisplayList struct {
	StartAddr uint16
	Entries   []Entry
}

// next advances a display-list address the way ANTIC's counter does: only
// the low ten bits count, so a list never crosses a 1 KB boundary.
func next(addr uint16) uint16 {
	return addr&0xfc00 | (addr+1)&0x03ff
}

// maxEntries bounds a walk when a list never reaches a JVB.
const maxEntries = 512

// Decode walks the list at start through mem, following JMP and stopping
// after the JVB. A list that loops on itself without a JVB stops at the
// first revisited instruction.
func Decode(mem Memory, start uint16) DisplayList {
	d := DisplayList{StartAddr: start}
	seen := map[uint16]bool{}
	pc := start
	for len(d.Entries) < maxEntries && !seen[pc] {
		seen[pc] = true
		e := Entry{Addr: pc, Command: mem.Peek(pc)}
		pc = next(pc)
		if e.Mode() == 1 || e.IsLMS() {
			lo := mem.Peek(pc)
			pc = next(pc)
			hi := mem.Peek(pc)
			pc = next(pc)
			e.Arg = uint16(hi)<<8 | uint16(lo)
		}
		d.Entries = append(d.Entries, e)
		if e.Mode() == 1 {
			if e.IsJVB() {
				break
			}
			pc = e.Arg
		}
	}
	return d
}

// DecodeBytes decodes a list held in data, as dumped from memory at start.
// Jumps are listed but not followed.
func DecodeBytes(start uint16, data []byte) DisplayList {
	d := DisplayList{StartAddr: start}
	pc := 0
	for pc < len(data) {
		e := Entry{Addr: start + uint16(pc), Command: data[pc]}
		pc++
		if e.Mode() == 1 || e.IsLMS() {
			if pc+1 >= len(data) {
				break
			}
			e.Arg = uint16(data[pc]) | uint16(data[pc+1])<<8
			pc += 2
		}
		d.Entries = append(d.Entries, e)
		if e.IsJVB() {
			break
		}
	}
	return d
}

// Compacted is a run of identical consecutive instructions.
type Compacted struct {
	Count int
	Entry Entry
}

// Compacted folds runs of instructions with equal command and argument.
func (d DisplayList) Compacted() []Compacted {
	var out []Compacted
	for _, e := range d.Entries {
		if n := len(out); n > 0 && out[n-1].Entry.Command == e.Command && out[n-1].Entry.Arg == e.Arg {
			out[n-1].Count++
			continue
		}
		out = append(out, Compacted{Count: 1, Entry: e})
	}
	return out
}

// Scanlines totals the TV lines the list produces up to its JVB.
func (d DisplayList) Scanlines() int {
	n := 0
	for _, e := range d.Entries {
		if e.IsJVB() {
			break
		}
		n += e.Scanlines()
	}
	return n
}

// String lists the compacted instructions one per line.
func (d DisplayList) String() string {
	var b strings.Builder
	for _, c := range d.Compacted() {
		if c.Count > 1 {
			fmt.Fprintf(&b, "%04X: %dx %s\n", c.Entry.Addr, c.Count, c.Entry.Description())
		} else {
			fmt.Fprintf(&b, "%04X: %s\n", c.Entry.Addr, c.Entry.Description())
		}
	}
	return b.String()
}

// Row is the screen memory one mode line fetches.
type Row struct {
	Entry  Entry
	Addr   uint16
	Length int
}

// widthBytes returns the bytes a mode 2 line fetches for the DMACTL
// playfield width.
func widthBytes(dmactl byte) int {
	switch dmactl & 0x03 {
	case 1:
		return 32
	case 2:
		return 40
	case 3:
		return 48
	}
	return 0
}

// BytesPerLine is the screen fetch of one line of mode at the DMACTL width.
// Horizontal scrolling widens narrow and normal playfields by one step.
func BytesPerLine(mode, dmactl byte, hscrol bool) int {
	w := widthBytes(dmactl)
	if w == 0 {
		return 0
	}
	if hscrol && w < 48 {
		w += 8
	}
	switch mode {
	case 2, 3, 4, 5, 0xd, 0xe, 0xf:
		return w
	case 6, 7, 0xa, 0xb, 0xc:
		return w / 2
	case 8, 9:
		return w / 4
	}
	return 0
}

// Rows maps every mode line to its screen memory. The screen counter wraps
// within 4 KB as ANTIC's does.
func (d DisplayList) Rows(dmactl byte) []Row {
	var rows []Row
	var addr uint16
	for _, e := range d.Entries {
		if e.Mode() < 2 {
			continue
		}
		if e.IsLMS() {
			addr = e.Arg
		}
		n := BytesPerLine(e.Mode(), dmactl, e.Command&0x10 != 0)
		rows = append(rows, Row{Entry: e, Addr: addr, Length: n})
		addr = addr&0xf000 | (addr+uint16(n))&0x0fff
	}
	return rows
}
