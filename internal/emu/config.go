package emu

import (
	"log"

	"github.com/FabianRolfMatthiasNoll/AtariVideo/internal/video"
)

// Config contains settings that affect emulation behavior.
type Config struct {
	TV       video.TVSystem
	Artifact int // hi-res artifacting mode, 0 = off

	// Palette: a 768-byte .act file, or a generated palette when
	// GeneratePalette is set. The built-in table is used otherwise.
	PaletteFile     string
	GeneratePalette bool
	Black, White    int
	Colshift        int
	ColIntens       int // saturation in percent applied to any palette; 0 keeps it

	SampleRate int
	Trace      bool // log CPU instructions
}

// Defaults fills missing fields and replaces invalid ones.
func (c Config) Defaults() Config {
	if c.Artifact < video.ArtifactOff || c.Artifact > video.ArtifactMax {
		log.Printf("Invalid artifacting mode, using default.")
		c.Artifact = video.ArtifactOff
	}
	if c.TV != video.NTSC {
		c.TV = video.PAL
	}
	if c.SampleRate <= 0 {
		c.SampleRate = 44100
	}
	if c.White == 0 && c.Black == 0 {
		c.White = 255
	}
	return c
}

// cpuHz is the 6502 clock of the TV system.
func (c Config) cpuHz() int {
	if c.TV == video.NTSC {
		return 1789790
	}
	return 1773447
}
