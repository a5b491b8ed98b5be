package ui

import "github.com/hajimehoshi/ebiten/v2"

// Atari keyboard modifiers ORed into the key code.
const (
	keyShift = 0x40
	keyCtrl  = 0x80
)

// atariKeys maps host keys to POKEY keyboard codes. Arrow keys are left
// out: they drive the joystick.
var atariKeys = []struct {
	key  ebiten.Key
	code byte
}{
	{ebiten.KeyA, 0x3f},
	{ebiten.KeyB, 0x15},
	{ebiten.KeyC, 0x12},
	{ebiten.KeyD, 0x3a},
	{ebiten.KeyE, 0x2a},
	{ebiten.KeyF, 0x38},
	{ebiten.KeyG, 0x3d},
	{ebiten.KeyH, 0x39},
	{ebiten.KeyI, 0x0d},
	{ebiten.KeyJ, 0x01},
	{ebiten.KeyK, 0x05},
	{ebiten.KeyL, 0x00},
	{ebiten.KeyM, 0x25},
	{ebiten.KeyN, 0x23},
	{ebiten.KeyO, 0x08},
	{ebiten.KeyP, 0x0a},
	{ebiten.KeyQ, 0x2f},
	{ebiten.KeyR, 0x28},
	{ebiten.KeyS, 0x3e},
	{ebiten.KeyT, 0x2d},
	{ebiten.KeyU, 0x0b},
	{ebiten.KeyV, 0x10},
	{ebiten.KeyW, 0x2e},
	{ebiten.KeyX, 0x16},
	{ebiten.KeyY, 0x2b},
	{ebiten.KeyZ, 0x17},
	{ebiten.Key0, 0x32},
	{ebiten.Key1, 0x1f},
	{ebiten.Key2, 0x1e},
	{ebiten.Key3, 0x1a},
	{ebiten.Key4, 0x18},
	{ebiten.Key5, 0x1d},
	{ebiten.Key6, 0x1b},
	{ebiten.Key7, 0x33},
	{ebiten.Key8, 0x35},
	{ebiten.Key9, 0x36},
	{ebiten.KeySpace, 0x21},
	{ebiten.KeyEnter, 0x0c},
	{ebiten.KeyEscape, 0x1c},
	{ebiten.KeyTab, 0x2c},
	{ebiten.KeyBackspace, 0x34},
	{ebiten.KeyComma, 0x20},
	{ebiten.KeyPeriod, 0x22},
	{ebiten.KeyMinus, 0x0e},
	{ebiten.KeyEqual, 0x0f},
	{ebiten.KeySemicolon, 0x02},
	{ebiten.KeySlash, 0x26},
	{ebiten.KeyCapsLock, 0x3c},
}

// pressedKey returns the code of the first mapped key held down, with the
// SHIFT and CONTROL bits applied, or -1.
func pressedKey(pressed func(ebiten.Key) bool) int {
	for _, ak := range atariKeys {
		if !pressed(ak.key) {
			continue
		}
		c := int(ak.code)
		if pressed(ebiten.KeyShiftLeft) || pressed(ebiten.KeyShiftRight) {
			c |= keyShift
		}
		if pressed(ebiten.KeyControlLeft) || pressed(ebiten.KeyControlRight) {
			c |= keyCtrl
		}
		return c
	}
	return -1
}
