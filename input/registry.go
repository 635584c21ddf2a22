package input

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"github.com/db47h/rodent/mouse"
)

// HookError reports a listener hook that panicked during delivery.
type HookError struct {
	Listener mouse.Listener
	Kind     mouse.Kind
	Value    interface{} // value passed to panic
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%T: %s hook panicked: %v", e.Listener, e.Kind, e.Value)
}

// Unwrap returns the panic value if it is an error.
func (e *HookError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// HookErrors splits err into the hook failures it combines. A failure whose
// panic value itself combines hook failures, as a panicking scene's does, is
// replaced by those.
func HookErrors(err error) []error {
	var errs []error
	for _, e := range multierr.Errors(err) {
		if he, ok := e.(*HookError); ok {
			if inner := nestedHookErrors(he); inner != nil {
				errs = append(errs, inner...)
				continue
			}
		}
		errs = append(errs, e)
	}
	return errs
}

func nestedHookErrors(he *HookError) []error {
	v, ok := he.Value.(error)
	if !ok {
		return nil
	}
	for _, e := range multierr.Errors(v) {
		if _, ok := e.(*HookError); !ok {
			return nil
		}
	}
	return HookErrors(v)
}

// Registry is an ordered set of mouse listeners. Events are delivered in the
// order listeners were added.
//
// Listeners are compared with ==, so they must be of a comparable type;
// pointers are the usual choice.
//
// A Registry is safe for concurrent use. Listeners may add or remove listeners
// from within a hook; the change takes effect with the next event.
type Registry struct {
	m  sync.RWMutex
	ls []mouse.Listener
}

// Add appends l to the registry. It returns false if l was already registered.
func (r *Registry) Add(l mouse.Listener) bool {
	if l == nil {
		return false
	}
	r.m.Lock()
	defer r.m.Unlock()
	if r.indexOf(l) >= 0 {
		return false
	}
	r.ls = append(r.ls, l)
	return true
}

// Remove removes l from the registry. It returns false if l was not
// registered.
func (r *Registry) Remove(l mouse.Listener) bool {
	r.m.Lock()
	defer r.m.Unlock()
	i := r.indexOf(l)
	if i < 0 {
		return false
	}
	// allocate a new slice so that snapshots taken by Listeners stay valid.
	ls := make([]mouse.Listener, 0, len(r.ls)-1)
	ls = append(ls, r.ls[:i]...)
	r.ls = append(ls, r.ls[i+1:]...)
	return true
}

func (r *Registry) indexOf(l mouse.Listener) int {
	for i, x := range r.ls {
		if x == l {
			return i
		}
	}
	return -1
}

func (r *Registry) Len() int {
	r.m.RLock()
	defer r.m.RUnlock()
	return len(r.ls)
}

// Listeners returns the registered listeners in delivery order. The returned
// slice must not be modified.
func (r *Registry) Listeners() []mouse.Listener {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.ls[:len(r.ls):len(r.ls)]
}

// Deliver calls the hook matching e.Kind on every registered listener. A
// panicking hook does not prevent delivery to the remaining listeners: each
// panic is recovered and returned as a *HookError, combined with
// multierr.
func (r *Registry) Deliver(e mouse.Event) error {
	var err error
	for _, l := range r.Listeners() {
		err = multierr.Append(err, DeliverTo(l, e))
	}
	return err
}

// DeliverTo calls the hook of l matching e.Kind. If the hook panics, the panic
// is recovered and returned as a *HookError.
func DeliverTo(l mouse.Listener, e mouse.Event) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &HookError{Listener: l, Kind: e.Kind, Value: v}
		}
	}()
	mouse.Deliver(l, e)
	return nil
}
