package input

import (
	"time"

	"github.com/pkg/errors"
)

// Config holds the thresholds used to synthesize clicks and drags, and the
// queueing policy of a Manager.
type Config struct {
	// ClickTimeout is the longest a button may stay down and still produce a
	// click. Zero means no limit.
	ClickTimeout time.Duration
	// ClickDistance is how far, in window units, the pointer may travel from
	// the press position before the press turns into a drag.
	ClickDistance float64
	// MultiClickTime is the longest delay between two clicks of the same
	// button for them to count as a double (triple...) click.
	MultiClickTime time.Duration
	// QueueSize bounds the number of events waiting for Flush.
	QueueSize int
	// CoalesceMoves keeps only the last of consecutive queued Move events.
	CoalesceMoves bool
	// SlowDispatch is the dispatch duration above which a warning is logged.
	// Zero disables the warning.
	SlowDispatch time.Duration
}

// Defaults.
const (
	DefaultClickTimeout   = 300 * time.Millisecond
	DefaultClickDistance  = 4
	DefaultMultiClickTime = 400 * time.Millisecond
	DefaultQueueSize      = 256
	DefaultSlowDispatch   = 2 * time.Millisecond
)

func DefaultConfig() Config {
	return Config{
		ClickTimeout:   DefaultClickTimeout,
		ClickDistance:  DefaultClickDistance,
		MultiClickTime: DefaultMultiClickTime,
		QueueSize:      DefaultQueueSize,
		SlowDispatch:   DefaultSlowDispatch,
	}
}

// Validate reports the first invalid setting in cfg.
func (cfg *Config) Validate() error {
	switch {
	case cfg.ClickTimeout < 0:
		return errors.Errorf("negative click timeout %v", cfg.ClickTimeout)
	case cfg.ClickDistance < 0:
		return errors.Errorf("negative click distance %v", cfg.ClickDistance)
	case cfg.MultiClickTime < 0:
		return errors.Errorf("negative multi-click time %v", cfg.MultiClickTime)
	case cfg.QueueSize <= 0:
		return errors.Errorf("invalid queue size %d", cfg.QueueSize)
	case cfg.SlowDispatch < 0:
		return errors.Errorf("negative slow dispatch threshold %v", cfg.SlowDispatch)
	}
	return nil
}

// An Option configures a Manager.
type Option interface {
	set(*Config)
}

type cfn func(*Config)

func (f cfn) set(cfg *Config) {
	f(cfg)
}

// WithConfig replaces the whole configuration. Options that follow it still
// apply.
func WithConfig(c Config) Option {
	return cfn(func(cfg *Config) {
		*cfg = c
	})
}

func QueueSize(n int) Option {
	return cfn(func(cfg *Config) {
		cfg.QueueSize = n
	})
}

func CoalesceMoves(b bool) Option {
	return cfn(func(cfg *Config) {
		cfg.CoalesceMoves = b
	})
}

func SlowDispatch(d time.Duration) Option {
	return cfn(func(cfg *Config) {
		cfg.SlowDispatch = d
	})
}
