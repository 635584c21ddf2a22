package input

import (
	"time"

	"github.com/db47h/rodent"
	"github.com/db47h/rodent/mouse"
)

// Sink receives the events synthesized by a Tracker. *Manager is a Sink.
type Sink interface {
	Post(mouse.Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(mouse.Event)

func (f SinkFunc) Post(e mouse.Event) { f(e) }

type buttonState uint8

const (
	idle buttonState = iota
	pressed
	dragging
)

type press struct {
	state buttonState
	pos   rodent.Point
	t     time.Time
}

type lastClick struct {
	button mouse.Button
	pos    rodent.Point
	t      time.Time
	count  int
}

// Tracker turns raw platform signals (button transitions, cursor motion,
// scrolling, cursor enter/leave) into mouse events.
//
// Each button runs through a small state machine: idle → pressed →
// (released as a click | released at the end of a drag). A release produces a
// Click right after the Release if the pointer never strayed further than
// ClickDistance from the press position and the button was held no longer than
// ClickTimeout.
//
// A Tracker is not safe for concurrent use. Platform layers usually call it
// from their event callbacks on the main thread.
type Tracker struct {
	cfg  Config
	sink Sink

	pos     rodent.Point
	hasPos  bool
	held    mouse.ButtonSet
	mods    mouse.Modifier
	presses [mouse.ButtonLast + 1]press
	last    lastClick
	inside  int8 // 0: unknown, 1: inside, -1: outside
}

// NewTracker returns a Tracker that posts events to sink using the click
// thresholds of cfg.
func NewTracker(sink Sink, cfg Config) *Tracker {
	return &Tracker{cfg: cfg, sink: sink}
}

// Pos returns the last known pointer position.
func (t *Tracker) Pos() rodent.Point { return t.pos }

// Held returns the set of buttons currently held.
func (t *Tracker) Held() mouse.ButtonSet { return t.held }

// SetModifiers sets the keyboard modifiers reported with subsequent events.
func (t *Tracker) SetModifiers(mods mouse.Modifier) { t.mods = mods }

func (t *Tracker) emit(e mouse.Event, at time.Time) {
	e.Pos = t.pos
	e.World = t.pos
	e.Buttons = t.held
	e.Mods = t.mods
	e.Time = at
	t.sink.Post(e)
}

func validButton(b mouse.Button) bool {
	return b != mouse.ButtonNone && b <= mouse.ButtonLast
}

// ButtonDown records a button transitioning down at the current pointer
// position. Pressing a button that is already held is ignored.
func (t *Tracker) ButtonDown(b mouse.Button, mods mouse.Modifier, at time.Time) {
	if !validButton(b) || t.held.Has(b) {
		return
	}
	t.mods = mods
	t.held = t.held.With(b)
	t.presses[b] = press{state: pressed, pos: t.pos, t: at}
	t.emit(mouse.Event{Kind: mouse.Press, Button: b}, at)
}

// ButtonUp records a button transitioning up. Releasing a button that is not
// held is ignored.
func (t *Tracker) ButtonUp(b mouse.Button, mods mouse.Modifier, at time.Time) {
	if !validButton(b) || !t.held.Has(b) {
		return
	}
	t.mods = mods
	t.held = t.held.Without(b)
	p := t.presses[b]
	t.presses[b] = press{}
	t.emit(mouse.Event{Kind: mouse.Release, Button: b}, at)

	if p.state != pressed {
		t.last = lastClick{}
		return
	}
	if d := at.Sub(p.t); t.cfg.ClickTimeout > 0 && d > t.cfg.ClickTimeout {
		t.last = lastClick{}
		return
	}
	t.emit(mouse.Event{Kind: mouse.Click, Button: b, Clicks: t.countClick(b, at)}, at)
}

func (t *Tracker) countClick(b mouse.Button, at time.Time) int {
	l := &t.last
	d := at.Sub(l.t)
	if l.count > 0 && l.button == b && d >= 0 && d <= t.cfg.MultiClickTime && t.near(l.pos) {
		l.count++
	} else {
		l.count = 1
	}
	l.button, l.pos, l.t = b, t.pos, at
	return l.count
}

func (t *Tracker) near(p rodent.Point) bool {
	return t.pos.Dist2(p) <= t.cfg.ClickDistance*t.cfg.ClickDistance
}

// CursorMoved records a new pointer position. It produces a Move if no button
// is held, a Drag otherwise. Reporting the same position twice is a no-op.
func (t *Tracker) CursorMoved(p rodent.Point, at time.Time) {
	if t.hasPos && t.pos.Eq(p) {
		return
	}
	t.pos, t.hasPos = p, true
	if t.held.Empty() {
		t.emit(mouse.Event{Kind: mouse.Move}, at)
		return
	}
	for b := mouse.ButtonLeft; b <= mouse.ButtonLast; b++ {
		if pr := &t.presses[b]; pr.state == pressed && !t.near(pr.pos) {
			pr.state = dragging
		}
	}
	t.emit(mouse.Event{Kind: mouse.Drag}, at)
}

// Scrolled records a scroll wheel or axis delta. Zero deltas are ignored.
func (t *Tracker) Scrolled(dx, dy float64, at time.Time) {
	if dx == 0 && dy == 0 {
		return
	}
	t.emit(mouse.Event{Kind: mouse.Wheel, Wheel: rodent.Pt(dx, dy)}, at)
}

// CursorEntered records the pointer crossing into (entered == true) or out of
// the window. Repeated notifications for the same side are ignored.
//
// Held buttons are kept on exit since the platform still reports their
// release.
func (t *Tracker) CursorEntered(entered bool, at time.Time) {
	var side int8 = -1
	kind := mouse.Exit
	if entered {
		side, kind = 1, mouse.Enter
	}
	if side == t.inside {
		return
	}
	t.inside = side
	t.emit(mouse.Event{Kind: kind}, at)
}

// Reset releases all buttons without producing events, e.g. when the window
// loses focus.
func (t *Tracker) Reset() {
	t.held = 0
	t.presses = [mouse.ButtonLast + 1]press{}
	t.last = lastClick{}
}
