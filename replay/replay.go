// Package replay feeds scripted raw mouse input through an input.Tracker and
// records the resulting hook invocations. It is used to reproduce input
// sequences without a window.
//
// Scripts are YAML documents:
//
//	steps:
//	  - {at: 0ms, op: move, x: 10, y: 10}
//	  - {at: 15ms, op: down, button: left, mods: [shift]}
//	  - {at: 60ms, op: up, button: left}
//	  - {at: 80ms, op: scroll, dy: -1}
//	  - {at: 90ms, op: exit}
package replay

import (
	"io"
	"time"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v3"

	"github.com/db47h/rodent"
	"github.com/db47h/rodent/input"
	"github.com/db47h/rodent/mouse"
)

// Op is a raw platform signal.
type Op uint8

const (
	OpMove Op = iota
	OpDown
	OpUp
	OpScroll
	OpEnter
	OpExit
)

var opNames = map[string]Op{
	"move":   OpMove,
	"down":   OpDown,
	"up":     OpUp,
	"scroll": OpScroll,
	"enter":  OpEnter,
	"exit":   OpExit,
}

var modNames = map[string]mouse.Modifier{
	"shift":   mouse.ModShift,
	"control": mouse.ModControl,
	"alt":     mouse.ModAlt,
	"super":   mouse.ModSuper,
}

// Step is a single scripted signal, At after the start of the script.
type Step struct {
	At     time.Duration
	Op     Op
	Button mouse.Button
	Mods   mouse.Modifier
	Pos    rodent.Point // OpMove
	Delta  rodent.Point // OpScroll
}

type Script struct {
	Steps []Step
}

type rawStep struct {
	At     string   `yaml:"at"`
	Op     string   `yaml:"op"`
	Button string   `yaml:"button"`
	Mods   []string `yaml:"mods"`
	X      float64  `yaml:"x"`
	Y      float64  `yaml:"y"`
	DX     float64  `yaml:"dx"`
	DY     float64  `yaml:"dy"`
}

// Parse reads a YAML script from r. Step times must not decrease.
func Parse(r io.Reader) (Script, error) {
	var raw struct {
		Steps []rawStep `yaml:"steps"`
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && err != io.EOF {
		return Script{}, errors.Wrap(err, "parse script")
	}

	s := Script{Steps: make([]Step, 0, len(raw.Steps))}
	var prev time.Duration
	for i, rs := range raw.Steps {
		st, err := rs.step()
		if err != nil {
			return Script{}, errors.Wrapf(err, "step %d", i)
		}
		if st.At < prev {
			return Script{}, errors.Errorf("step %d: time %v before previous step", i, st.At)
		}
		prev = st.At
		s.Steps = append(s.Steps, st)
	}
	return s, nil
}

func (rs *rawStep) step() (st Step, err error) {
	if rs.At != "" {
		if st.At, err = time.ParseDuration(rs.At); err != nil {
			return st, err
		}
	}
	var ok bool
	if st.Op, ok = opNames[rs.Op]; !ok {
		return st, errors.Errorf("unknown op %q", rs.Op)
	}
	for _, m := range rs.Mods {
		mod, ok := modNames[m]
		if !ok {
			return st, errors.Errorf("unknown modifier %q", m)
		}
		st.Mods |= mod
	}
	switch st.Op {
	case OpDown, OpUp:
		st.Button, ok = mouse.ParseButton(rs.Button)
		if !ok || st.Button == mouse.ButtonNone {
			return st, errors.Errorf("invalid button %q", rs.Button)
		}
	case OpMove:
		st.Pos = rodent.Pt(rs.X, rs.Y)
	case OpScroll:
		st.Delta = rodent.Pt(rs.DX, rs.DY)
	}
	return st, nil
}

// Run feeds the steps of s to t, with time stamps relative to start.
func Run(s Script, t *input.Tracker, start time.Time) {
	for _, st := range s.Steps {
		at := start.Add(st.At)
		switch st.Op {
		case OpMove:
			t.CursorMoved(st.Pos, at)
		case OpDown:
			t.ButtonDown(st.Button, st.Mods, at)
		case OpUp:
			t.ButtonUp(st.Button, st.Mods, at)
		case OpScroll:
			t.SetModifiers(st.Mods)
			t.Scrolled(st.Delta.X, st.Delta.Y, at)
		case OpEnter:
			t.CursorEntered(true, at)
		case OpExit:
			t.CursorEntered(false, at)
		}
	}
}
