package cart

import (
	"fmt"
	"os"
)

// Kind is the format of a program image.
type Kind int

const (
	KindXEX Kind = iota
	KindCAR
	KindROM // raw 8 or 16 KB cartridge dump
)

func (k Kind) String() string {
	switch k {
	case KindXEX:
		return "XEX"
	case KindCAR:
		return "CAR"
	}
	return "ROM"
}

// Image is a program ready to be placed in memory: either the segments of
// a load file or a cartridge ROM.
type Image struct {
	Kind   Kind
	XEX    *XEX
	Header Header // KindCAR only
	ROM    []byte
}

// Open picks the format from the contents: a $FFFF marker is a load file,
// "CART" a .car image, and a bare 8 or 16 KB file a raw cartridge dump.
func Open(data []byte) (*Image, error) {
	switch {
	case len(data) >= 2 && data[0] == 0xff && data[1] == 0xff:
		x, err := ParseXEX(data)
		if err != nil {
			return nil, err
		}
		return &Image{Kind: KindXEX, XEX: x}, nil
	case len(data) >= 4 && string(data[:4]) == "CART":
		h, rom, err := ParseCAR(data)
		if err != nil {
			return nil, err
		}
		return &Image{Kind: KindCAR, Header: h, ROM: rom}, nil
	case len(data) == 0x2000 || len(data) == 0x4000:
		return &Image{Kind: KindROM, ROM: data}, nil
	}
	return nil, fmt.Errorf("cart: unrecognised image of %d bytes", len(data))
}

// Load reads and opens the image at path.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	img, err := Open(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Describe summarises the image for the loader log line.
func (img *Image) Describe() string {
	switch img.Kind {
	case KindXEX:
		return fmt.Sprintf("XEX segments=%d bytes=%d run=%04X", len(img.XEX.Segments), img.XEX.Size(), img.XEX.RunAddr())
	case KindCAR:
		return fmt.Sprintf("CAR %s bytes=%d", img.Header.TypeString(), len(img.ROM))
	}
	return fmt.Sprintf("ROM bytes=%d", len(img.ROM))
}
