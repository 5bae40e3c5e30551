package demo

import (
	"errors"
	"flag"
	"fmt"

	"github.com/plus3/curvedemo/follow"
)

// Config is the command-line configuration of the demo.
type Config struct {
	Width    int
	Height   int
	TPS      int
	Headless bool
	Ticks    uint64
	LogEvery uint64
	DebugUI  bool
	Step     int
}

// DefaultConfig is an 800x600 window at 60 ticks per second with the
// parameter at 0.
func DefaultConfig() Config {
	return Config{
		Width:    800,
		Height:   600,
		TPS:      60,
		LogEvery: 60,
		DebugUI:  true,
	}
}

// RegisterFlags binds c's fields to fs, using the current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "Window width in pixels.")
	fs.IntVar(&c.Height, "height", c.Height, "Window height in pixels.")
	fs.IntVar(&c.TPS, "tps", c.TPS, "Updates per second.")
	fs.BoolVar(&c.Headless, "headless", c.Headless, "Run without a window, reading w/s lines from stdin.")
	fs.Uint64Var(&c.Ticks, "ticks", c.Ticks, "Headless: stop after this many ticks (0 runs until interrupted).")
	fs.Uint64Var(&c.LogEvery, "log-every", c.LogEvery, "Headless: log the follower state every N ticks (0 disables).")
	fs.BoolVar(&c.DebugUI, "debug-ui", c.DebugUI, "Show the ImGui overlay.")
	fs.IntVar(&c.Step, "t", c.Step, fmt.Sprintf("Initial parameter in tenths, 0..%d.", follow.Steps-1))
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps must be positive, got %d", c.TPS))
	}
	if c.Step < 0 || c.Step >= follow.Steps {
		errs = append(errs, fmt.Errorf("t must be in [0, %d], got %d", follow.Steps-1, c.Step))
	}
	return errors.Join(errs...)
}
