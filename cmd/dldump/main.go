package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/FabianRolfMatthiasNoll/AtariVideo/internal/dlist"
	"github.com/FabianRolfMatthiasNoll/AtariVideo/internal/emu"
	"github.com/FabianRolfMatthiasNoll/AtariVideo/internal/video"
	"golang.org/x/term"
)

type CLIFlags struct {
	ProgPath string
	Frames   int
	NTSC     bool
	Trace    bool

	RawPath string // decode a memory dump instead of running a program
	Start   string // load address of the dump, hex

	Rows  bool
	Regs  bool
	Color string // auto, always, never
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.ProgPath, "prog", "", "program to run before dumping")
	flag.IntVar(&f.Frames, "frames", 60, "frames to run")
	flag.BoolVar(&f.NTSC, "ntsc", false, "run as NTSC")
	flag.BoolVar(&f.Trace, "trace", false, "CPU trace log")
	flag.StringVar(&f.RawPath, "raw", "", "decode a display list from a binary dump")
	flag.StringVar(&f.Start, "start", "0", "address of the first byte of -raw, hex")
	flag.BoolVar(&f.Rows, "rows", false, "list the screen memory of every mode line")
	flag.BoolVar(&f.Regs, "regs", true, "print ANTIC/GTIA registers")
	flag.StringVar(&f.Color, "color", "auto", "highlight DLI and LMS lines: auto, always or never")
	flag.Parse()
	return f
}

const (
	ansiDLI   = "\x1b[33m"
	ansiLMS   = "\x1b[36m"
	ansiReset = "\x1b[0m"
)

func useColor(mode string, out *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return term.IsTerminal(int(out.Fd()))
}

// printList writes the compacted display list, highlighting DLI and LMS
// instructions when colour is on.
func printList(w io.Writer, d dlist.DisplayList, color bool) {
	for _, c := range d.Compacted() {
		line := fmt.Sprintf("%04X: %s", c.Entry.Addr, c.Entry.Description())
		if c.Count > 1 {
			line = fmt.Sprintf("%04X: %dx %s", c.Entry.Addr, c.Count, c.Entry.Description())
		}
		if color {
			switch {
			case c.Entry.IsDLI():
				line = ansiDLI + line + ansiReset
			case c.Entry.IsLMS():
				line = ansiLMS + line + ansiReset
			}
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "%d entries, %d scanlines\n", len(d.Entries), d.Scanlines())
}

func printRows(w io.Writer, d dlist.DisplayList, dmactl byte) {
	for _, r := range d.Rows(dmactl) {
		fmt.Fprintf(w, "%04X: MODE %X %04X+%d\n", r.Entry.Addr, r.Entry.Mode(), r.Addr, r.Length)
	}
}

func printRegs(w io.Writer, c *video.Chips) {
	fmt.Fprintf(w, "DMACTL=%02X CHACTL=%02X DLIST=%04X HSCROL=%02X VSCROL=%02X\n",
		c.DMACTL, c.CHACTL, c.DisplayList(), c.HSCROL, c.VSCROL)
	fmt.Fprintf(w, "PMBASE=%02X CHBASE=%02X NMIEN=%02X NMIST=%02X\n",
		c.PMBASE, c.CHBASE, c.NMIEN, c.NMIST)
	fmt.Fprintf(w, "COLPF=% 02X COLPM=% 02X COLBK=%02X PRIOR=%02X GRACTL=%02X\n",
		c.COLPF[:], c.COLPM[:], c.COLBK, c.PRIOR, c.GRACTL)
	fmt.Fprintf(w, "HPOSP=% 02X HPOSM=% 02X\n", c.HPOSP[:], c.HPOSM[:])
}

func parseHex(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "$"), "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("bad address %q: %w", s, err)
	}
	return uint16(v), nil
}

func main() {
	f := parseFlags()
	color := useColor(f.Color, os.Stdout)

	if f.RawPath != "" {
		start, err := parseHex(f.Start)
		if err != nil {
			log.Fatal(err)
		}
		data, err := os.ReadFile(f.RawPath)
		if err != nil {
			log.Fatalf("read %s: %v", f.RawPath, err)
		}
		printList(os.Stdout, dlist.DecodeBytes(start, data), color)
		return
	}

	if f.ProgPath == "" {
		log.Fatal("-prog or -raw is required")
	}
	cfg := emu.Config{Trace: f.Trace}
	if f.NTSC {
		cfg.TV = video.NTSC
	}
	m, err := emu.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := m.LoadFile(f.ProgPath); err != nil {
		log.Fatalf("load: %v", err)
	}
	for i := 0; i < f.Frames; i++ {
		m.StepFrameNoRender()
	}
	c := m.Chips()
	fmt.Printf("after %d frames, PC=%04X\n", f.Frames, m.CPU().PC())
	if f.Regs {
		printRegs(os.Stdout, c)
	}
	d := m.DisplayList()
	printList(os.Stdout, d, color)
	if f.Rows {
		printRows(os.Stdout, d, c.DMACTL)
	}
}
