package main

import (
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"log"
	"os"
	"strings"
	"time"

	"github.com/FabianRolfMatthiasNoll/AtariVideo/internal/emu"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"golang.org/x/image/draw"
)

type headlessOptions struct {
	Frames   int
	PNGPath  string
	PNGScale int
	WAVPath  string
	Expect   string // framebuffer CRC32 as hex, with or without 0x
}

func runHeadless(m *emu.Machine, o headlessOptions) error {
	if o.Frames <= 0 {
		o.Frames = 1
	}
	var pcm []int
	start := time.Now()
	for i := 0; i < o.Frames; i++ {
		m.StepFrame()
		samples := m.PullSamples(m.BufferedSamples())
		if o.WAVPath != "" {
			for _, s := range samples {
				pcm = append(pcm, int(s))
			}
		}
	}
	dur := time.Since(start)

	fb := m.Framebuffer()
	crc := crc32.ChecksumIEEE(fb)
	fps := float64(o.Frames) / dur.Seconds()

	log.Printf("headless: frames=%d elapsed=%s fps=%.2f fb_crc32=%08x",
		o.Frames, dur.Truncate(time.Millisecond), fps, crc)

	if o.PNGPath != "" {
		if err := saveFramePNG(fb, emu.ScreenWidth, emu.ScreenHeight, o.PNGScale, o.PNGPath); err != nil {
			return fmt.Errorf("write PNG: %w", err)
		}
		log.Printf("wrote %s", o.PNGPath)
	}
	if o.WAVPath != "" {
		if err := saveWAV(pcm, m.SampleRate(), o.WAVPath); err != nil {
			return fmt.Errorf("write WAV: %w", err)
		}
		log.Printf("wrote %s (%d samples)", o.WAVPath, len(pcm))
	}

	if o.Expect != "" {
		want := strings.TrimPrefix(strings.ToLower(o.Expect), "0x")
		got := fmt.Sprintf("%08x", crc)
		if got != want {
			return fmt.Errorf("checksum mismatch: got %s, want %s", got, want)
		}
	}
	return nil
}

// saveFramePNG writes an RGBA framebuffer, enlarged scale times with
// nearest-neighbour sampling so pixels stay sharp.
func saveFramePNG(pix []byte, w, h, scale int, path string) error {
	src := &image.RGBA{
		Pix:    make([]byte, len(pix)),
		Stride: 4 * w,
		Rect:   image.Rect(0, 0, w, h),
	}
	copy(src.Pix, pix)
	var img image.Image = src
	if scale > 1 {
		dst := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		img = dst
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func saveWAV(pcm []int, rate int, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		Data:           pcm,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}
