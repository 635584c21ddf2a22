package mouse_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/db47h/rodent"
	"github.com/db47h/rodent/mouse"
)

var allKinds = []mouse.Kind{
	mouse.Press, mouse.Release, mouse.Click, mouse.Move,
	mouse.Drag, mouse.Wheel, mouse.Enter, mouse.Exit,
}

func boundaryPoints() []rodent.Point {
	return []rodent.Point{
		rodent.Pt(0, 0),
		rodent.Pt(-1, -1),
		rodent.Pt(-1e9, 42),
		rodent.Pt(math.MaxFloat64, math.MaxFloat64),
		rodent.Pt(-math.MaxFloat64, math.SmallestNonzeroFloat64),
	}
}

func TestNopListener(t *testing.T) {
	var l mouse.NopListener
	for _, k := range allKinds {
		for _, p := range boundaryPoints() {
			e := mouse.Event{Kind: k, Pos: p, World: p, Button: mouse.ButtonLeft, Time: time.Now()}
			assert.NotPanics(t, func() { mouse.Deliver(l, e) }, "%s at %v", k, p)
		}
	}
	assert.Equal(t, mouse.NopListener{}, l)
}

// clickCounter overrides OnClicked only.
type clickCounter struct {
	mouse.NopListener
	clicks []mouse.Event
}

func (c *clickCounter) OnClicked(e mouse.Event) { c.clicks = append(c.clicks, e) }

func TestPartialOverride(t *testing.T) {
	c := new(clickCounter)
	for _, k := range allKinds {
		mouse.Deliver(c, mouse.Event{Kind: k, Button: mouse.ButtonLeft})
	}
	require.Len(t, c.clicks, 1)
	assert.Equal(t, mouse.Click, c.clicks[0].Kind)
}

// recorder logs every hook.
type recorder struct {
	log []mouse.Event
}

func (r *recorder) add(e mouse.Event)             { r.log = append(r.log, e) }
func (r *recorder) OnPressed(e mouse.Event)       { r.add(e) }
func (r *recorder) OnReleased(e mouse.Event)      { r.add(e) }
func (r *recorder) OnClicked(e mouse.Event)       { r.add(e) }
func (r *recorder) OnMoved(e mouse.Event)         { r.add(e) }
func (r *recorder) OnDragged(e mouse.Event)       { r.add(e) }
func (r *recorder) OnWheelScrolled(e mouse.Event) { r.add(e) }
func (r *recorder) OnEntersArea(e mouse.Event)    { r.add(e) }
func (r *recorder) OnExitsArea(e mouse.Event)     { r.add(e) }

func TestDeliverRoutesEveryKind(t *testing.T) {
	for _, k := range allKinds {
		r := new(recorder)
		mouse.Deliver(r, mouse.Event{Kind: k})
		require.Len(t, r.log, 1, k.String())
		assert.Equal(t, k, r.log[0].Kind)
	}

	r := new(recorder)
	mouse.Deliver(r, mouse.Event{Kind: mouse.KindNone})
	mouse.Deliver(r, mouse.Event{Kind: mouse.Kind(200)})
	assert.Empty(t, r.log)
}

func TestDeliverOrder(t *testing.T) {
	const n = 50
	r := new(recorder)
	for i := 0; i < n; i++ {
		mouse.Deliver(r, mouse.Event{Kind: mouse.Move, Pos: rodent.PtI(i, -i)})
	}
	require.Len(t, r.log, n)
	for i, e := range r.log {
		assert.Equal(t, rodent.PtI(i, -i), e.Pos)
	}
}

func TestEventIsCopied(t *testing.T) {
	mutator := &mouse.Funcs{Pressed: func(e mouse.Event) { e.Pos = rodent.Pt(1, 1) }}
	e := mouse.Event{Kind: mouse.Press, Pos: rodent.Pt(5, 5)}
	mouse.Deliver(mutator, e)
	assert.Equal(t, rodent.Pt(5, 5), e.Pos)
}

func TestFuncs(t *testing.T) {
	var moved, wheel int
	f := &mouse.Funcs{
		Moved:         func(mouse.Event) { moved++ },
		WheelScrolled: func(e mouse.Event) { wheel += int(e.Wheel.Y) },
	}
	for _, k := range allKinds {
		assert.NotPanics(t, func() { mouse.Deliver(f, mouse.Event{Kind: k, Wheel: rodent.Pt(0, 2)}) })
	}
	assert.Equal(t, 1, moved)
	assert.Equal(t, 2, wheel)
}

func TestButtonSet(t *testing.T) {
	var s mouse.ButtonSet
	assert.True(t, s.Empty())
	s = s.With(mouse.ButtonLeft).With(mouse.ButtonMiddle)
	assert.True(t, s.Has(mouse.ButtonLeft))
	assert.False(t, s.Has(mouse.ButtonRight))
	assert.Equal(t, "[left middle]", s.String())
	assert.Equal(t, s, s.With(mouse.ButtonNone))
	s = s.Without(mouse.ButtonLeft).Without(mouse.ButtonMiddle)
	assert.True(t, s.Empty())
}

func TestNames(t *testing.T) {
	assert.Equal(t, "wheel", mouse.Wheel.String())
	assert.Equal(t, "unknown", mouse.Kind(99).String())
	assert.Equal(t, "middle", mouse.ButtonMiddle.String())

	b, ok := mouse.ParseButton("right")
	assert.True(t, ok)
	assert.Equal(t, mouse.ButtonRight, b)
	_, ok = mouse.ParseButton("thumb")
	assert.False(t, ok)

	m := mouse.ModShift | mouse.ModAlt
	assert.True(t, m.Has(mouse.ModShift))
	assert.False(t, m.Has(mouse.ModShift|mouse.ModControl))
}
