package scene

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/db47h/rodent/mouse"
)

var (
	ErrUnknownScene   = errors.New("unknown scene")
	ErrDuplicateScene = errors.New("duplicate scene name")
)

// A Stage holds a set of scenes, only one of which is current. Stage
// implements mouse.Listener by forwarding every event to the current scene.
type Stage struct {
	m       sync.Mutex
	scenes  map[string]*Scene
	current *Scene
}

// Add adds s to the stage. The first scene added becomes the current scene.
func (st *Stage) Add(s *Scene) error {
	st.m.Lock()
	defer st.m.Unlock()
	if _, ok := st.scenes[s.Name()]; ok {
		return errors.Wrapf(ErrDuplicateScene, "add scene %q", s.Name())
	}
	if st.scenes == nil {
		st.scenes = make(map[string]*Scene)
	}
	st.scenes[s.Name()] = s
	if st.current == nil {
		st.current = s
	}
	return nil
}

// Switch makes the scene with the given name current. Regions of the previous
// scene that were under the pointer receive an exit notification. If any of
// their hooks fail, the switch still happens and the failures are returned.
func (st *Stage) Switch(name string) error {
	st.m.Lock()
	s, ok := st.scenes[name]
	if !ok {
		st.m.Unlock()
		return errors.Wrapf(ErrUnknownScene, "switch to %q", name)
	}
	prev := st.current
	st.current = s
	st.m.Unlock()

	if prev != nil && prev != s {
		return errors.Wrapf(prev.leave(time.Now()), "leave scene %q", prev.Name())
	}
	return nil
}

// Current returns the current scene, or nil if the stage is empty.
func (st *Stage) Current() *Scene {
	st.m.Lock()
	defer st.m.Unlock()
	return st.current
}

func (st *Stage) forward(e mouse.Event) {
	if s := st.Current(); s != nil {
		s.handle(e)
	}
}

func (st *Stage) OnPressed(e mouse.Event)       { st.forward(e) }
func (st *Stage) OnReleased(e mouse.Event)      { st.forward(e) }
func (st *Stage) OnClicked(e mouse.Event)       { st.forward(e) }
func (st *Stage) OnMoved(e mouse.Event)         { st.forward(e) }
func (st *Stage) OnDragged(e mouse.Event)       { st.forward(e) }
func (st *Stage) OnWheelScrolled(e mouse.Event) { st.forward(e) }
func (st *Stage) OnEntersArea(e mouse.Event)    { st.forward(e) }
func (st *Stage) OnExitsArea(e mouse.Event)     { st.forward(e) }
