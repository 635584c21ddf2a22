package replay

import (
	"fmt"
	"sync"

	"github.com/db47h/rodent/mouse"
)

// Recorder is a mouse.Listener that records one line per hook invocation.
type Recorder struct {
	m     sync.Mutex
	lines []string
}

func (r *Recorder) add(e mouse.Event) {
	r.m.Lock()
	r.lines = append(r.lines, Format(e))
	r.m.Unlock()
}

// Lines returns the recorded lines in invocation order.
func (r *Recorder) Lines() []string {
	r.m.Lock()
	defer r.m.Unlock()
	return append([]string(nil), r.lines...)
}

func (r *Recorder) OnPressed(e mouse.Event)       { r.add(e) }
func (r *Recorder) OnReleased(e mouse.Event)      { r.add(e) }
func (r *Recorder) OnClicked(e mouse.Event)       { r.add(e) }
func (r *Recorder) OnMoved(e mouse.Event)         { r.add(e) }
func (r *Recorder) OnDragged(e mouse.Event)       { r.add(e) }
func (r *Recorder) OnWheelScrolled(e mouse.Event) { r.add(e) }
func (r *Recorder) OnEntersArea(e mouse.Event)    { r.add(e) }
func (r *Recorder) OnExitsArea(e mouse.Event)     { r.add(e) }

// Format returns a one line description of e.
func Format(e mouse.Event) string {
	switch e.Kind {
	case mouse.Press, mouse.Release:
		return fmt.Sprintf("%s %s %s", e.Kind, e.Button, e.Pos)
	case mouse.Click:
		return fmt.Sprintf("click %s x%d %s", e.Button, e.Clicks, e.Pos)
	case mouse.Drag:
		return fmt.Sprintf("drag %s %s", e.Buttons, e.Pos)
	case mouse.Wheel:
		return fmt.Sprintf("wheel %s at %s", e.Wheel, e.Pos)
	}
	return fmt.Sprintf("%s %s", e.Kind, e.Pos)
}
