package cart

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Vectors a load file may write to take control.
const (
	RUNAD  = 0x02e0
	INITAD = 0x02e2
)

// ErrNotXEX is returned for data that does not start with the $FFFF marker.
var ErrNotXEX = errors.New("not an Atari binary load file")

// Segment is one block of a load file, loaded at Start..End inclusive.
type Segment struct {
	Start, End uint16
	Data       []byte
}

// Covers reports whether the segment writes addr.
func (s Segment) Covers(addr uint16) bool {
	return addr >= s.Start && addr <= s.End
}

// Word returns the little-endian word the segment stores at addr, if it
// stores both bytes.
func (s Segment) Word(addr uint16) (uint16, bool) {
	if !s.Covers(addr) || !s.Covers(addr+1) {
		return 0, false
	}
	off := addr - s.Start
	return binary.LittleEndian.Uint16(s.Data[off:]), true
}

// XEX is a parsed binary load file.
type XEX struct {
	Segments []Segment
}

// ParseXEX splits a load file into segments. The $FFFF marker is required
// at the start and may repeat before any later segment. Trailing garbage
// shorter than a header is ignored the way DOS does.
func ParseXEX(data []byte) (*XEX, error) {
	if len(data) < 2 || data[0] != 0xff || data[1] != 0xff {
		return nil, ErrNotXEX
	}
	x := &XEX{}
	p := 2
	for p+4 <= len(data) {
		start := binary.LittleEndian.Uint16(data[p:])
		if start == 0xffff {
			p += 2
			continue
		}
		end := binary.LittleEndian.Uint16(data[p+2:])
		p += 4
		if end < start {
			return nil, fmt.Errorf("xex: segment %04x-%04x: end before start", start, end)
		}
		n := int(end) - int(start) + 1
		if p+n > len(data) {
			// DOS loads what is there of a truncated last segment
			n = len(data) - p
			end = start + uint16(n) - 1
			if n == 0 {
				break
			}
		}
		x.Segments = append(x.Segments, Segment{Start: start, End: end, Data: data[p : p+n]})
		p += n
	}
	if len(x.Segments) == 0 {
		return nil, fmt.Errorf("xex: %w: no segments", ErrNotXEX)
	}
	return x, nil
}

// RunAddr is the address the program starts at: the last RUNAD written,
// or the start of the first segment when none is.
func (x *XEX) RunAddr() uint16 {
	run, ok := uint16(0), false
	for _, s := range x.Segments {
		if w, has := s.Word(RUNAD); has {
			run, ok = w, true
		}
	}
	if !ok {
		return x.Segments[0].Start
	}
	return run
}

// Size is the number of bytes the file loads.
func (x *XEX) Size() int {
	n := 0
	for _, s := range x.Segments {
		n += len(s.Data)
	}
	return n
}
