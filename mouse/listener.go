// Package mouse defines the capability through which any object observes mouse
// activity.
//
// An object opts into notifications by implementing Listener. Most
// implementations embed NopListener and override only the hooks they care
// about:
//
//	type button struct {
//		mouse.NopListener
//		pressed int
//	}
//
//	func (b *button) OnClicked(e mouse.Event) { b.pressed++ }
//
// Hooks are called synchronously from the dispatcher's goroutine and must
// return promptly.
package mouse

// Listener is the set of mouse hooks.
type Listener interface {
	// OnPressed is called when a mouse button transitions down.
	OnPressed(Event)
	// OnReleased is called when a mouse button transitions up.
	OnReleased(Event)
	// OnClicked is called after OnReleased when a press and release of the
	// same button form a click.
	OnClicked(Event)
	// OnMoved is called when the pointer moves with no button held.
	OnMoved(Event)
	// OnDragged is called when the pointer moves while a button is held.
	OnDragged(Event)
	// OnWheelScrolled is called when the scroll wheel or axis produces a delta.
	OnWheelScrolled(Event)
	// OnEntersArea is called when the pointer enters the observed area.
	OnEntersArea(Event)
	// OnExitsArea is called when the pointer leaves the observed area.
	OnExitsArea(Event)
}

// NopListener implements Listener with hooks that do nothing. Embed it to
// override a subset of hooks.
type NopListener struct{}

func (NopListener) OnPressed(Event)       {}
func (NopListener) OnReleased(Event)      {}
func (NopListener) OnClicked(Event)       {}
func (NopListener) OnMoved(Event)         {}
func (NopListener) OnDragged(Event)       {}
func (NopListener) OnWheelScrolled(Event) {}
func (NopListener) OnEntersArea(Event)    {}
func (NopListener) OnExitsArea(Event)     {}

// Funcs adapts plain functions to the Listener interface. Nil fields are
// no-ops.
type Funcs struct {
	Pressed       func(Event)
	Released      func(Event)
	Clicked       func(Event)
	Moved         func(Event)
	Dragged       func(Event)
	WheelScrolled func(Event)
	EntersArea    func(Event)
	ExitsArea     func(Event)
}

func call(f func(Event), e Event) {
	if f != nil {
		f(e)
	}
}

func (f *Funcs) OnPressed(e Event)       { call(f.Pressed, e) }
func (f *Funcs) OnReleased(e Event)      { call(f.Released, e) }
func (f *Funcs) OnClicked(e Event)       { call(f.Clicked, e) }
func (f *Funcs) OnMoved(e Event)         { call(f.Moved, e) }
func (f *Funcs) OnDragged(e Event)       { call(f.Dragged, e) }
func (f *Funcs) OnWheelScrolled(e Event) { call(f.WheelScrolled, e) }
func (f *Funcs) OnEntersArea(e Event)    { call(f.EntersArea, e) }
func (f *Funcs) OnExitsArea(e Event)     { call(f.ExitsArea, e) }

// Deliver calls the hook of l that matches e.Kind. Events of an unknown kind
// are dropped.
func Deliver(l Listener, e Event) {
	switch e.Kind {
	case Press:
		l.OnPressed(e)
	case Release:
		l.OnReleased(e)
	case Click:
		l.OnClicked(e)
	case Move:
		l.OnMoved(e)
	case Drag:
		l.OnDragged(e)
	case Wheel:
		l.OnWheelScrolled(e)
	case Enter:
		l.OnEntersArea(e)
	case Exit:
		l.OnExitsArea(e)
	}
}
