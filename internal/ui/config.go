package ui

// Config contains window/input/audio related settings.
type Config struct {
	Title           string // window title
	Scale           int    // integer upscaling factor
	Audio           bool   // play POKEY and speaker audio
	AudioLowLatency bool   // hard-cap buffering for minimal latency
	Overlay         bool   // show status and display list on start
	StateDir        string // directory for save-state slots
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "atarivid"
	}
	if c.Scale <= 0 {
		c.Scale = 2
	}
	if c.StateDir == "" {
		c.StateDir = "."
	}
}
