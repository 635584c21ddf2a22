// Package loop provides the game loops that drive event processing, and
// therefore mouse dispatch, once per frame.
package loop

import (
	"context"
	"time"
)

// EventProcessor wraps the ProcessEvents method.
//
// ProcessEvents is called once at the start of every frame. Implementations
// poll the platform for input and flush their input.Manager there, so that
// mouse hooks run on the loop goroutine. It returns true when the application
// should quit.
type EventProcessor interface {
	ProcessEvents() (quit bool)
}

type FixedStepUpdater interface {
	EventProcessor
	Update(timestep time.Duration)
	Draw(frameTime, partialTimestep time.Duration)
}

// FrameStarter is the interface implemented by any App that wants the time
// stamp at the beginning of each loop iteration.
type FrameStarter interface {
	FrameStart(time.Time)
}

type SimpleUpdater interface {
	EventProcessor
	Update()
	Draw()
}

// Simple runs one update per frame. It suits applications that wait for
// events rather than poll them.
type Simple struct {
	ticker *time.Ticker
	minFT  time.Duration
	now    func() time.Time
}

// MinFrameTime sets the minimum frame time.
//
// If the t value is greater than 0, the frame rate will be clamped
// to time.Second/t.
func (l *Simple) MinFrameTime(t time.Duration) {
	if t == l.minFT {
		return
	}
	l.stopTicker()
	l.minFT = t
	if l.minFT > 0 {
		l.ticker = time.NewTicker(l.minFT)
	}
}

// SetClock replaces time.Now as the source of frame time stamps. It is ignored
// while a minimum frame time is set.
func (l *Simple) SetClock(now func() time.Time) {
	l.now = now
}

func (l *Simple) frameStart(ctx context.Context) (time.Time, bool) {
	if l.ticker != nil {
		select {
		case t := <-l.ticker.C:
			return t, true
		case <-ctx.Done():
			return time.Time{}, false
		}
	}
	if ctx.Err() != nil {
		return time.Time{}, false
	}
	if l.now != nil {
		return l.now(), true
	}
	return time.Now(), true
}

func (l *Simple) stopTicker() {
	if l.ticker != nil {
		l.ticker.Stop()
		l.ticker = nil
	}
}

// Run runs the loop until a.ProcessEvents returns true or ctx is done. It
// returns ctx.Err() in the latter case.
func (l *Simple) Run(ctx context.Context, a SimpleUpdater) error {
	defer l.stopTicker()
	fStart, _ := a.(FrameStarter)
	for !a.ProcessEvents() {
		now, ok := l.frameStart(ctx)
		if !ok {
			return ctx.Err()
		}
		if fStart != nil {
			fStart.FrameStart(now)
		}
		a.Update()
		a.Draw()
	}
	return nil
}

// FixedStep runs updates at a fixed time step, independently of the frame
// rate.
type FixedStep struct {
	Simple
	MaxFT time.Duration // maximum frame time
	DT    time.Duration // timestep
}

// Default timings for FixedStep
const (
	DefaultDT    time.Duration = time.Second / 240
	DefaultMaxFT time.Duration = time.Second
)

// Run runs the loop until a.ProcessEvents returns true or ctx is done. It
// returns ctx.Err() in the latter case.
func (l *FixedStep) Run(ctx context.Context, a FixedStepUpdater) error {
	defer l.stopTicker()
	var (
		tPrev  time.Time
		tAcc   time.Duration
		fStart FrameStarter
	)

	fStart, _ = a.(FrameStarter)

	if l.DT == 0 {
		l.DT = DefaultDT
	}
	if l.MaxFT == 0 {
		l.MaxFT = DefaultMaxFT
	}

	for !a.ProcessEvents() {
		now, ok := l.frameStart(ctx)
		if !ok {
			return ctx.Err()
		}
		if tPrev.IsZero() {
			tPrev = now
		}
		ft := now.Sub(tPrev)
		if ft > l.MaxFT {
			ft = l.MaxFT
		}
		tAcc += ft
		tPrev = now
		if fStart != nil {
			fStart.FrameStart(now)
		}
		for dt := l.DT; tAcc >= dt; tAcc -= dt {
			a.Update(dt)
		}
		a.Draw(ft, tAcc)
	}
	return nil
}
