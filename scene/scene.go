// Package scene groups mouse listeners into scenes. A Scene maps window
// coordinates to world coordinates and tracks rectangular regions that get
// their own enter and exit notifications. A Stage switches between scenes.
package scene

import (
	"image"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"

	"github.com/db47h/rodent"
	"github.com/db47h/rodent/input"
	"github.com/db47h/rodent/mouse"
)

// A Region is a rectangular part of a scene, in world coordinates, observed
// by a listener.
//
// The listener receives OnEntersArea and OnExitsArea when the pointer crosses
// the region bounds. Other events reach it only while the pointer is inside
// the region.
type Region struct {
	Bounds   image.Rectangle
	Listener mouse.Listener

	hovered atomic.Bool
}

// Hovered returns true if the pointer was inside r at the last event.
func (r *Region) Hovered() bool { return r.hovered.Load() }

// A Scene is a named set of mouse listeners and regions.
//
// Scene implements mouse.Listener so that it can be registered with an
// input.Manager or a Stage. Each event is given world coordinates through
// View, then delivered to the scene listeners in the order they were added,
// then to the regions. If any of them panics, the scene still delivers the
// event to all others, then panics with the combined error so that the
// dispatcher can report it. input.HookErrors splits that error back into the
// individual hook failures.
//
// Events must be delivered from a single goroutine. Regions and listeners may
// be added or removed from any goroutine, and a Stage may switch away from the
// scene while it is handling an event.
type Scene struct {
	View rodent.View

	name      string
	listeners input.Registry

	m       sync.Mutex
	regions []*Region
	last    mouse.Event // last delivered event
}

func New(name string) *Scene {
	return &Scene{name: name}
}

func (s *Scene) Name() string { return s.name }

// AddListener registers l with the scene. See input.Registry.Add.
func (s *Scene) AddListener(l mouse.Listener) bool { return s.listeners.Add(l) }

// RemoveListener removes l from the scene. See input.Registry.Remove.
func (s *Scene) RemoveListener(l mouse.Listener) bool { return s.listeners.Remove(l) }

// Listeners returns the scene listeners in delivery order.
func (s *Scene) Listeners() []mouse.Listener { return s.listeners.Listeners() }

// AddRegion adds a region with the given bounds, in world coordinates.
func (s *Scene) AddRegion(bounds image.Rectangle, l mouse.Listener) *Region {
	r := &Region{Bounds: bounds, Listener: l}
	s.m.Lock()
	s.regions = append(s.regions[:len(s.regions):len(s.regions)], r)
	s.m.Unlock()
	return r
}

// RemoveRegion removes r from the scene. It returns false if r does not belong
// to s.
func (s *Scene) RemoveRegion(r *Region) bool {
	s.m.Lock()
	defer s.m.Unlock()
	for i, x := range s.regions {
		if x == r {
			rs := make([]*Region, 0, len(s.regions)-1)
			rs = append(rs, s.regions[:i]...)
			s.regions = append(rs, s.regions[i+1:]...)
			return true
		}
	}
	return false
}

// Regions returns the scene regions in delivery order.
func (s *Scene) Regions() []*Region {
	s.m.Lock()
	defer s.m.Unlock()
	return s.regions[:len(s.regions):len(s.regions)]
}

func (s *Scene) OnPressed(e mouse.Event)       { s.handle(e) }
func (s *Scene) OnReleased(e mouse.Event)      { s.handle(e) }
func (s *Scene) OnClicked(e mouse.Event)       { s.handle(e) }
func (s *Scene) OnMoved(e mouse.Event)         { s.handle(e) }
func (s *Scene) OnDragged(e mouse.Event)       { s.handle(e) }
func (s *Scene) OnWheelScrolled(e mouse.Event) { s.handle(e) }
func (s *Scene) OnEntersArea(e mouse.Event)    { s.handle(e) }
func (s *Scene) OnExitsArea(e mouse.Event)     { s.handle(e) }

func (s *Scene) handle(e mouse.Event) {
	e.World = s.View.ScreenToWorld(e.Pos)
	err := s.listeners.Deliver(e)

	var rerr error
	switch e.Kind {
	case mouse.Move, mouse.Drag:
		for _, r := range s.Regions() {
			in := e.World.In(r.Bounds)
			switch {
			case in && r.hovered.CompareAndSwap(false, true):
				deliverTo(&rerr, r.Listener, withKind(e, mouse.Enter))
			case !in && r.hovered.CompareAndSwap(true, false):
				deliverTo(&rerr, r.Listener, withKind(e, mouse.Exit))
			}
			if in {
				deliverTo(&rerr, r.Listener, e)
			}
		}
	case mouse.Exit:
		s.exitRegions(&rerr, e)
	case mouse.Enter:
		// regions are entered on the next motion event.
	default:
		for _, r := range s.Regions() {
			if e.World.In(r.Bounds) {
				deliverTo(&rerr, r.Listener, e)
			}
		}
	}
	s.m.Lock()
	s.last = e
	s.m.Unlock()

	if err = multierr.Append(err, rerr); err != nil {
		panic(err)
	}
}

// leave sends an Exit to every hovered region, at the last known position.
func (s *Scene) leave(at time.Time) error {
	s.m.Lock()
	e := s.last
	s.m.Unlock()
	e.Kind = mouse.Exit
	e.Time = at

	var rerr error
	s.exitRegions(&rerr, e)
	return rerr
}

func (s *Scene) exitRegions(errp *error, e mouse.Event) {
	for _, r := range s.Regions() {
		if r.hovered.CompareAndSwap(true, false) {
			deliverTo(errp, r.Listener, e)
		}
	}
}

func deliverTo(errp *error, l mouse.Listener, e mouse.Event) {
	*errp = multierr.Append(*errp, input.DeliverTo(l, e))
}

func withKind(e mouse.Event, k mouse.Kind) mouse.Event {
	e.Kind = k
	return e
}
