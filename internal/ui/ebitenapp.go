package ui

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/FabianRolfMatthiasNoll/AtariVideo/internal/emu"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type App struct {
	cfg    Config
	m      *emu.Machine
	tex    *ebiten.Image
	paused bool
	fast   bool

	overlay bool
	lastKey int

	audioCtx    *audio.Context
	audioPlayer *audio.Player
	audioSrc    *pokeyStream
	audioMuted  bool

	currentSlot int
	toastMsg    string
	toastUntil  time.Time
}

func NewApp(cfg Config, m *emu.Machine) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(emu.ScreenWidth*cfg.Scale, emu.ScreenHeight*cfg.Scale)
	a := &App{cfg: cfg, m: m, overlay: cfg.Overlay, lastKey: -1}
	if cfg.Audio {
		a.startAudio()
	}
	return a
}

func (a *App) startAudio() {
	a.audioCtx = audio.NewContext(a.m.SampleRate())
	a.audioSrc = &pokeyStream{m: a.m, muted: &a.audioMuted, lowLatency: a.cfg.AudioLowLatency}
	p, err := a.audioCtx.NewPlayer(a.audioSrc)
	if err != nil {
		log.Printf("audio: %v", err)
		return
	}
	a.audioPlayer = p
	a.applyPlayerBufferSize()
	a.audioPlayer.Play()
}

func (a *App) Run() error { return ebiten.RunGame(a) }

func (a *App) toast(msg string) {
	a.toastMsg = msg
	a.toastUntil = time.Now().Add(2 * time.Second)
}

func (a *App) statePath(slot int) string {
	base := "noprog"
	if p := a.m.ROMPath(); p != "" {
		base = filepath.Base(p)
	}
	return filepath.Join(a.cfg.StateDir, fmt.Sprintf("%s.slot%d.state", base, slot))
}

func (a *App) Update() error {
	// Arrows and right Alt: joystick 0. F2-F4: OPTION, SELECT, START.
	a.m.SetInput(emu.Input{
		Up:     ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:   ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:   ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:  ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Fire:   ebiten.IsKeyPressed(ebiten.KeyAltRight),
		Option: ebiten.IsKeyPressed(ebiten.KeyF2),
		Select: ebiten.IsKeyPressed(ebiten.KeyF3),
		Start:  ebiten.IsKeyPressed(ebiten.KeyF4),
	})
	if k := pressedKey(ebiten.IsKeyPressed); k != a.lastKey {
		if k < 0 {
			a.m.KeyUp()
		} else {
			a.m.KeyDown(byte(k))
		}
		a.lastKey = k
	}
	a.m.SetBreak(ebiten.IsKeyPressed(ebiten.KeyF7))

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		a.overlay = !a.overlay
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		if err := a.m.SaveStateToFile(a.statePath(a.currentSlot)); err != nil {
			a.toast("Save failed: " + err.Error())
		} else {
			a.toast(fmt.Sprintf("Saved slot %d", a.currentSlot+1))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		if err := a.m.LoadStateFromFile(a.statePath(a.currentSlot)); err != nil {
			a.toast("Load failed: " + err.Error())
		} else {
			a.toast(fmt.Sprintf("Loaded slot %d", a.currentSlot+1))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF6) {
		a.paused = !a.paused
		a.audioMuted = a.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF10) {
		if err := a.m.Reset(); err != nil {
			a.toast("Reset failed: " + err.Error())
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if name, err := a.saveScreenshot(); err != nil {
			a.toast("Screenshot failed: " + err.Error())
		} else {
			a.toast("Wrote " + name)
		}
	}

	// Fast-forward while Backquote is held
	fast := ebiten.IsKeyPressed(ebiten.KeyBackquote)
	if fast != a.fast {
		a.fast = fast
		a.applyPlayerBufferSize()
	}

	if a.paused {
		if inpututil.IsKeyJustPressed(ebiten.KeyF8) {
			a.m.StepFrame()
		}
		return nil
	}
	if a.fast {
		for i := 0; i < 4; i++ {
			a.m.StepFrameNoRender()
		}
	}
	a.m.StepFrame()
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(emu.ScreenWidth, emu.ScreenHeight)
	}
	a.tex.WritePixels(a.m.Framebuffer())
	screen.DrawImage(a.tex, nil)

	if a.overlay {
		a.drawOverlay(screen)
	}
	if time.Now().Before(a.toastUntil) {
		a.drawToast(screen)
	}
}

func (a *App) Layout(outW, outH int) (int, int) { return emu.ScreenWidth, emu.ScreenHeight }

func (a *App) saveScreenshot() (string, error) {
	fb := a.m.Framebuffer()
	img := &image.RGBA{
		Pix:    make([]byte, len(fb)),
		Stride: 4 * emu.ScreenWidth,
		Rect:   image.Rect(0, 0, emu.ScreenWidth, emu.ScreenHeight),
	}
	copy(img.Pix, fb)
	ts := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("screenshot_%s.png", ts)
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return name, png.Encode(f, img)
}
