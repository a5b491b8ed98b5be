package cart

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrBadCartHeader is returned for a .car image with a broken header.
var ErrBadCartHeader = errors.New("bad CART header")

const carHeaderSize = 16

// Cartridge types of the .car format that map as a plain left cartridge.
const (
	TypeStd8  = 1
	TypeStd16 = 2
)

// Header is the 16-byte header of a .car image.
type Header struct {
	Type     uint32
	Checksum uint32
}

// TypeString names the cartridge type for logs.
func (h Header) TypeString() string {
	switch h.Type {
	case TypeStd8:
		return "Standard 8 KB"
	case TypeStd16:
		return "Standard 16 KB"
	}
	return fmt.Sprintf("type %d", h.Type)
}

// romSize is the image size a supported type requires.
func romSize(typ uint32) int {
	switch typ {
	case TypeStd8:
		return 0x2000
	case TypeStd16:
		return 0x4000
	}
	return 0
}

// Checksum is the sum of all ROM bytes, as stored in the header.
func Checksum(rom []byte) uint32 {
	var sum uint32
	for _, b := range rom {
		sum += uint32(b)
	}
	return sum
}

// ParseCAR validates a .car image and returns its header and ROM. Only the
// standard 8 KB and 16 KB types are supported.
func ParseCAR(data []byte) (Header, []byte, error) {
	if len(data) < carHeaderSize || string(data[:4]) != "CART" {
		return Header{}, nil, ErrBadCartHeader
	}
	h := Header{
		Type:     binary.BigEndian.Uint32(data[4:]),
		Checksum: binary.BigEndian.Uint32(data[8:]),
	}
	rom := data[carHeaderSize:]
	want := romSize(h.Type)
	if want == 0 {
		return h, nil, fmt.Errorf("car: %s not supported: %w", h.TypeString(), ErrBadCartHeader)
	}
	if len(rom) != want {
		return h, nil, fmt.Errorf("car: %s with %d bytes of ROM: %w", h.TypeString(), len(rom), ErrBadCartHeader)
	}
	if sum := Checksum(rom); sum != h.Checksum {
		return h, nil, fmt.Errorf("car: checksum %08x, header says %08x: %w", sum, h.Checksum, ErrBadCartHeader)
	}
	return h, rom, nil
}
