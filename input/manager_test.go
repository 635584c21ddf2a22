package input

import (
	"sync"
	"testing"
	"time"

	"github.com/edaniels/golog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/rodent"
	"github.com/db47h/rodent/mouse"
)

func newTestManager(t *testing.T, options ...Option) *Manager {
	t.Helper()
	m, err := NewManager(golog.NewTestLogger(t), options...)
	require.NoError(t, err)
	return m
}

func TestNewManagerValidates(t *testing.T) {
	_, err := NewManager(golog.NewTestLogger(t), QueueSize(0))
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.ClickDistance = -1
	_, err = NewManager(golog.NewTestLogger(t), WithConfig(cfg))
	assert.Error(t, err)

	m := newTestManager(t, CoalesceMoves(true), SlowDispatch(0))
	assert.True(t, m.Config().CoalesceMoves)
	assert.Equal(t, time.Duration(0), m.Config().SlowDispatch)
	assert.Equal(t, DefaultQueueSize, m.Config().QueueSize)
}

func TestManagerFlushOrder(t *testing.T) {
	const n = 20
	var got []rodent.Point
	m := newTestManager(t)
	m.Add(&mouse.Funcs{Moved: func(e mouse.Event) { got = append(got, e.Pos) }})

	for i := 0; i < n; i++ {
		m.Post(mouse.Event{Kind: mouse.Move, Pos: rodent.PtI(i, 0)})
	}
	assert.Empty(t, got, "nothing delivered before Flush")
	assert.Equal(t, n, m.Pending())
	assert.Equal(t, n, m.Flush())
	assert.Equal(t, 0, m.Pending())
	require.Len(t, got, n)
	for i, p := range got {
		assert.Equal(t, rodent.PtI(i, 0), p)
	}
	assert.Equal(t, 0, m.Flush())
	assert.Equal(t, uint64(n), m.Stats().Dispatched)
}

func TestManagerPostFromHook(t *testing.T) {
	var clicks int
	m := newTestManager(t)
	m.Add(&mouse.Funcs{
		Released: func(e mouse.Event) { m.Post(mouse.Event{Kind: mouse.Click}) },
		Clicked:  func(mouse.Event) { clicks++ },
	})
	m.Post(mouse.Event{Kind: mouse.Release})
	assert.Equal(t, 1, m.Flush())
	assert.Equal(t, 0, clicks)
	assert.Equal(t, 1, m.Flush())
	assert.Equal(t, 1, clicks)
}

func TestManagerDropsOldest(t *testing.T) {
	var got []int
	m := newTestManager(t, QueueSize(3))
	m.Add(&mouse.Funcs{Pressed: func(e mouse.Event) { got = append(got, e.Clicks) }})
	for i := 1; i <= 5; i++ {
		m.Post(mouse.Event{Kind: mouse.Press, Clicks: i})
	}
	m.Flush()
	assert.Equal(t, []int{3, 4, 5}, got)
	assert.Equal(t, uint64(2), m.Stats().Dropped)
}

func TestManagerCoalesceMoves(t *testing.T) {
	var got []string
	m := newTestManager(t, CoalesceMoves(true))
	rec := func(e mouse.Event) { got = append(got, e.Kind.String()+e.Pos.String()) }
	m.Add(&mouse.Funcs{Moved: rec, Dragged: rec, Pressed: rec})

	m.Post(mouse.Event{Kind: mouse.Move, Pos: rodent.Pt(1, 0)})
	m.Post(mouse.Event{Kind: mouse.Move, Pos: rodent.Pt(2, 0)})
	m.Post(mouse.Event{Kind: mouse.Move, Pos: rodent.Pt(3, 0)})
	m.Post(mouse.Event{Kind: mouse.Press, Pos: rodent.Pt(3, 0)})
	m.Post(mouse.Event{Kind: mouse.Drag, Pos: rodent.Pt(4, 0)})
	m.Post(mouse.Event{Kind: mouse.Drag, Pos: rodent.Pt(5, 0)})
	m.Post(mouse.Event{Kind: mouse.Move, Pos: rodent.Pt(6, 0)})
	assert.Equal(t, 5, m.Flush())
	assert.Equal(t, []string{
		"move(3.00,0.00)",
		"press(3.00,0.00)",
		"drag(4.00,0.00)",
		"drag(5.00,0.00)",
		"move(6.00,0.00)",
	}, got)
}

func TestManagerCountsFailures(t *testing.T) {
	var pressed int
	m := newTestManager(t)
	m.Add(&panicker{v: "bad listener"})
	m.Add(&mouse.Funcs{Pressed: func(mouse.Event) { pressed++ }})

	m.Dispatch(mouse.Event{Kind: mouse.Press})
	m.Dispatch(mouse.Event{Kind: mouse.Press})
	assert.Equal(t, 2, pressed)
	assert.Equal(t, uint64(2), m.Failures())
}

func TestManagerConcurrentPost(t *testing.T) {
	const (
		workers = 8
		n       = 100
	)
	var moves int
	m := newTestManager(t, QueueSize(workers*n))
	m.Add(&mouse.Funcs{Moved: func(mouse.Event) { moves++ }})

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < n; i++ {
				m.Post(mouse.Event{Kind: mouse.Move})
			}
		}()
	}
	wg.Wait()
	m.Flush()
	assert.Equal(t, workers*n, moves)
}

func TestManagerStats(t *testing.T) {
	m := newTestManager(t)
	s := m.Stats()
	assert.Zero(t, s.Average)
	assert.Zero(t, s.PerSecond)

	m.Add(&mouse.Funcs{Moved: func(mouse.Event) { time.Sleep(time.Millisecond) }})
	m.Dispatch(mouse.Event{Kind: mouse.Move})
	s = m.Stats()
	assert.GreaterOrEqual(t, s.Average, time.Millisecond)
	assert.Greater(t, s.PerSecond, 0.0)
}

func TestTimer(t *testing.T) {
	var tm Timer
	tm.Add(2 * time.Millisecond)
	tm.Add(4 * time.Millisecond)
	assert.Equal(t, 3*time.Millisecond, tm.Average())
	for i := 0; i < 2*samples; i++ {
		tm.Add(time.Millisecond)
	}
	assert.Equal(t, time.Millisecond, tm.Average())
	assert.InDelta(t, 1000.0, tm.AveragePerSecond(), 1e-9)
}
