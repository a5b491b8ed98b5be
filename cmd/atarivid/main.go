package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/FabianRolfMatthiasNoll/AtariVideo/internal/emu"
	"github.com/FabianRolfMatthiasNoll/AtariVideo/internal/ui"
	"github.com/FabianRolfMatthiasNoll/AtariVideo/internal/video"
)

type CLIFlags struct {
	ProgPath string
	Scale    int
	Title    string
	Trace    bool

	TV        string
	Artifact  int
	Palette   string
	GenPal    bool
	Black     int
	White     int
	Colshift  int
	ColIntens int

	Audio      bool
	LowLatency bool
	Overlay    bool
	LoadState  string

	// headless
	Headless bool
	Frames   int
	PNGOut   string
	PNGScale int
	WAVOut   string
	StateOut string
	Expect   string // expected framebuffer CRC32 hex (e.g., "1a2b3c4d")
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.ProgPath, "prog", "", "program to run (.xex, .car or raw 8/16 KB cartridge)")
	flag.IntVar(&f.Scale, "scale", 2, "window scale")
	flag.StringVar(&f.Title, "title", "atarivid", "window title")
	flag.BoolVar(&f.Trace, "trace", false, "CPU trace log")

	flag.StringVar(&f.TV, "tv", "pal", "television system: pal or ntsc")
	flag.IntVar(&f.Artifact, "artifact", 0, "hi-res artifacting mode 0-4")
	flag.StringVar(&f.Palette, "palette", "", "768-byte .act palette file")
	flag.BoolVar(&f.GenPal, "genpal", false, "generate the palette instead of using the built-in table")
	flag.IntVar(&f.Black, "black", 0, "palette black level")
	flag.IntVar(&f.White, "white", 255, "palette white level")
	flag.IntVar(&f.Colshift, "colshift", 30, "hue shift of the generated palette")
	flag.IntVar(&f.ColIntens, "colintens", 0, "palette saturation in percent, 0 leaves it")

	flag.BoolVar(&f.Audio, "audio", true, "play sound")
	flag.BoolVar(&f.LowLatency, "lowlatency", false, "smaller audio buffers")
	flag.BoolVar(&f.Overlay, "overlay", false, "start with the display-list overlay shown")
	flag.StringVar(&f.LoadState, "loadstate", "", "restore a save state after loading the program")

	// headless options
	flag.BoolVar(&f.Headless, "headless", false, "run without a window")
	flag.IntVar(&f.Frames, "frames", 300, "frames to run in headless mode")
	flag.StringVar(&f.PNGOut, "outpng", "", "write last framebuffer to PNG at path")
	flag.IntVar(&f.PNGScale, "pngscale", 1, "scale factor of the PNG")
	flag.StringVar(&f.WAVOut, "outwav", "", "write the audio of the run to a WAV file")
	flag.StringVar(&f.StateOut, "outstate", "", "write a save state after the run")
	flag.StringVar(&f.Expect, "expect", "", "assert framebuffer CRC32 (hex)")
	flag.Parse()
	return f
}

func parseTV(s string) (video.TVSystem, error) {
	switch strings.ToLower(s) {
	case "pal":
		return video.PAL, nil
	case "ntsc":
		return video.NTSC, nil
	}
	return video.PAL, fmt.Errorf("unknown TV system %q", s)
}

func (f CLIFlags) emuConfig() (emu.Config, error) {
	tv, err := parseTV(f.TV)
	if err != nil {
		return emu.Config{}, err
	}
	return emu.Config{
		TV:              tv,
		Artifact:        f.Artifact,
		PaletteFile:     f.Palette,
		GeneratePalette: f.GenPal,
		Black:           f.Black,
		White:           f.White,
		Colshift:        f.Colshift,
		ColIntens:       f.ColIntens,
		Trace:           f.Trace,
	}, nil
}

func main() {
	f := parseFlags()
	cfg, err := f.emuConfig()
	if err != nil {
		log.Fatal(err)
	}
	m, err := emu.New(cfg)
	if err != nil {
		log.Fatalf("machine: %v", err)
	}
	if f.ProgPath != "" {
		if err := m.LoadFile(f.ProgPath); err != nil {
			log.Fatalf("load: %v", err)
		}
	}
	if f.LoadState != "" {
		if err := m.LoadStateFromFile(f.LoadState); err != nil {
			log.Fatalf("load state: %v", err)
		}
	}

	if f.Headless {
		opts := headlessOptions{
			Frames:   f.Frames,
			PNGPath:  f.PNGOut,
			PNGScale: f.PNGScale,
			WAVPath:  f.WAVOut,
			Expect:   f.Expect,
		}
		if err := runHeadless(m, opts); err != nil {
			log.Fatal(err)
		}
		if f.StateOut != "" {
			if err := m.SaveStateToFile(f.StateOut); err != nil {
				log.Fatal(err)
			}
			log.Printf("wrote %s", f.StateOut)
		}
		return
	}

	uiCfg := ui.Config{
		Title:           f.Title,
		Scale:           f.Scale,
		Audio:           f.Audio,
		AudioLowLatency: f.LowLatency,
		Overlay:         f.Overlay,
	}
	app := ui.NewApp(uiCfg, m)
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
