package loop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeApp quits after frames calls to ProcessEvents.
type fakeApp struct {
	frames  int
	events  int
	updates []time.Duration
	draws   int
	starts  int
	cancel  func()
}

func (a *fakeApp) ProcessEvents() bool {
	a.events++
	if a.cancel != nil && a.events == a.frames {
		a.cancel()
		return false
	}
	return a.events > a.frames
}

func (a *fakeApp) Update(dt time.Duration)        { a.updates = append(a.updates, dt) }
func (a *fakeApp) Draw(ft, partial time.Duration) { a.draws++ }
func (a *fakeApp) FrameStart(time.Time)           { a.starts++ }

type simpleApp struct{ fakeApp }

func (a *simpleApp) Update() { a.fakeApp.Update(0) }
func (a *simpleApp) Draw()   { a.draws++ }

// clock returns a clock advancing by step at each call.
func clock(step time.Duration) func() time.Time {
	t := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestFixedStep(t *testing.T) {
	a := &fakeApp{frames: 3}
	l := FixedStep{DT: 10 * time.Millisecond}
	l.SetClock(clock(25 * time.Millisecond))
	require.NoError(t, l.Run(context.Background(), a))

	// first frame has no elapsed time, the next two 25ms each: 50ms = 5 steps.
	assert.Equal(t, 4, a.events)
	assert.Equal(t, 3, a.draws)
	assert.Equal(t, 3, a.starts)
	assert.Len(t, a.updates, 5)
	for _, dt := range a.updates {
		assert.Equal(t, 10*time.Millisecond, dt)
	}
	assert.Equal(t, DefaultMaxFT, l.MaxFT)
}

func TestFixedStepClampsFrameTime(t *testing.T) {
	a := &fakeApp{frames: 2}
	l := FixedStep{DT: 10 * time.Millisecond, MaxFT: 30 * time.Millisecond}
	l.SetClock(clock(time.Second))
	require.NoError(t, l.Run(context.Background(), a))
	assert.Len(t, a.updates, 3)
}

func TestRunCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	a := &fakeApp{frames: 2, cancel: cancel}
	var l FixedStep
	err := l.Run(ctx, a)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, a.draws)
}

func TestSimple(t *testing.T) {
	a := &simpleApp{fakeApp{frames: 4}}
	var l Simple
	require.NoError(t, l.Run(context.Background(), a))
	assert.Equal(t, 4, a.draws)
	assert.Len(t, a.updates, 4)
	assert.Equal(t, 4, a.starts)
}

func TestSimpleMinFrameTime(t *testing.T) {
	a := &simpleApp{fakeApp{frames: 2}}
	var l Simple
	l.MinFrameTime(time.Millisecond)
	start := time.Now()
	require.NoError(t, l.Run(context.Background(), a))
	assert.GreaterOrEqual(t, time.Since(start), time.Millisecond)
	assert.Nil(t, l.ticker)
}
