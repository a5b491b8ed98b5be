package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/FabianRolfMatthiasNoll/AtariVideo/internal/emu"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const lineH = 13

var (
	shade     = color.RGBA{0, 0, 0, 0xb0}
	textColor = color.RGBA{0xff, 0xff, 0xff, 0xff}
	dliColor  = color.RGBA{0xff, 0xc0, 0x40, 0xff}
)

// statusLine summarises the beam and chip state of the last frame.
func statusLine(m *emu.Machine) string {
	c := m.Chips()
	return fmt.Sprintf("%s F%d PC:%04X DL:%04X DMA:%02X PRI:%02X",
		c.TV(), m.Frames(), m.CPU().PC(), c.DisplayList(), c.DMACTL, c.PRIOR)
}

// overlayLines is the status line followed by the display list, cut to
// rows lines.
func overlayLines(m *emu.Machine, rows int) []string {
	lines := []string{statusLine(m)}
	dl := strings.TrimRight(m.DisplayList().String(), "\n")
	if dl != "" {
		lines = append(lines, strings.Split(dl, "\n")...)
	}
	if len(lines) > rows {
		lines = append(lines[:rows-1], "...")
	}
	return lines
}

func (a *App) drawOverlay(screen *ebiten.Image) {
	rows := emu.ScreenHeight/lineH - 1
	lines := overlayLines(a.m, rows)
	w := 0
	for _, l := range lines {
		if b := text.BoundString(basicfont.Face7x13, l); b.Dx() > w {
			w = b.Dx()
		}
	}
	bg := ebiten.NewImage(w+8, len(lines)*lineH+6)
	bg.Fill(shade)
	screen.DrawImage(bg, nil)
	for i, l := range lines {
		clr := textColor
		if strings.Contains(l, "DLI") {
			clr = dliColor
		}
		text.Draw(screen, l, basicfont.Face7x13, 4, (i+1)*lineH, clr)
	}
}

func (a *App) drawToast(screen *ebiten.Image) {
	b := text.BoundString(basicfont.Face7x13, a.toastMsg)
	y := emu.ScreenHeight - lineH - 4
	bg := ebiten.NewImage(b.Dx()+8, lineH+4)
	bg.Fill(shade)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, float64(y))
	screen.DrawImage(bg, op)
	text.Draw(screen, a.toastMsg, basicfont.Face7x13, 4, y+lineH, textColor)
}
