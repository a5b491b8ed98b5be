package ui

import (
	"encoding/binary"
	"time"

	"github.com/FabianRolfMatthiasNoll/AtariVideo/internal/emu"
)

// applyPlayerBufferSize sets the audio player's internal buffer to a small size for low latency.
// ~20ms in low-latency (or during fast-forward), ~40ms otherwise.
func (a *App) applyPlayerBufferSize() {
	if a.audioPlayer == nil {
		return
	}
	bufMs := 40
	if a.cfg.AudioLowLatency || a.fast {
		bufMs = 20
	}
	a.audioPlayer.SetBufferSize(time.Duration(bufMs) * time.Millisecond)
}

// pokeyStream implements io.Reader by pulling mono samples from the machine
// and writing them as 16-bit little-endian stereo frames.
type pokeyStream struct {
	m          *emu.Machine
	muted      *bool
	lowLatency bool
	underruns  int
}

func silence(p []byte) {
	for i := range p {
		p[i] = 0
	}
}

func (s *pokeyStream) Read(p []byte) (int, error) {
	// less than one stereo frame: fill with silence rather than return 0
	if len(p) < 4 {
		silence(p)
		return len(p), nil
	}
	if s.muted != nil && *s.muted {
		silence(p)
		time.Sleep(5 * time.Millisecond)
		return len(p), nil
	}
	maxReq := len(p) / 4
	capFrames := 2048
	if s.lowLatency {
		capFrames = 1024
	}
	if maxReq > capFrames {
		maxReq = capFrames
	}

	// wait briefly for the emulation to produce something
	waitDur := 15 * time.Millisecond
	if s.lowLatency {
		waitDur = 8 * time.Millisecond
	}
	deadline := time.Now().Add(waitDur)
	for s.m.BufferedSamples() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	samples := s.m.PullSamples(maxReq)
	if len(samples) == 0 {
		n := 256
		if n > maxReq {
			n = maxReq
		}
		silence(p[:n*4])
		s.underruns++
		return n * 4, nil
	}
	for i, v := range samples {
		binary.LittleEndian.PutUint16(p[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(p[i*4+2:], uint16(v))
	}
	return len(samples) * 4, nil
}
