package emu

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
)

// --- Save/Load state ---
type machineState struct {
	Bus    []byte
	CPU    []byte
	Chips  []byte
	Pokey  []byte
	Frames int
}

// SaveState snapshots the whole machine. A mapped cartridge is not part of
// the state; it must be loaded again before restoring.
func (m *Machine) SaveState() ([]byte, error) {
	var s machineState
	var err error
	if s.Bus, err = m.bus.SaveState(); err != nil {
		return nil, fmt.Errorf("save bus: %w", err)
	}
	if s.CPU, err = m.cpu.SaveState(); err != nil {
		return nil, fmt.Errorf("save cpu: %w", err)
	}
	if s.Chips, err = m.chips.SaveState(); err != nil {
		return nil, fmt.Errorf("save video: %w", err)
	}
	m.audioMu.Lock()
	s.Pokey, err = m.pokey.SaveState()
	m.audioMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("save pokey: %w", err)
	}
	s.Frames = m.frames
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadState restores a snapshot taken by SaveState.
func (m *Machine) LoadState(data []byte) error {
	var s machineState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	if err := m.bus.LoadState(s.Bus); err != nil {
		return fmt.Errorf("load bus: %w", err)
	}
	if err := m.cpu.LoadState(s.CPU); err != nil {
		return fmt.Errorf("load cpu: %w", err)
	}
	if err := m.chips.LoadState(s.Chips); err != nil {
		return fmt.Errorf("load video: %w", err)
	}
	m.audioMu.Lock()
	err := m.pokey.LoadState(s.Pokey)
	m.audioMu.Unlock()
	if err != nil {
		return fmt.Errorf("load pokey: %w", err)
	}
	m.frames = s.Frames
	m.refresh()
	return nil
}

func (m *Machine) SaveStateToFile(path string) error {
	data, err := m.SaveState()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

func (m *Machine) LoadStateFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read state: %w", err)
	}
	return m.LoadState(data)
}
