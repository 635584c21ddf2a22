package mouse

import (
	"strings"
	"time"

	"github.com/db47h/rodent"
)

// Kind identifies the hook an Event is delivered to.
type Kind uint8

const (
	KindNone Kind = iota
	Press
	Release
	Click
	Move
	Drag
	Wheel
	Enter
	Exit
)

var kindNames = [...]string{
	KindNone: "none",
	Press:    "press",
	Release:  "release",
	Click:    "click",
	Move:     "move",
	Drag:     "drag",
	Wheel:    "wheel",
	Enter:    "enter",
	Exit:     "exit",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Button is a mouse button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
	Button4
	Button5
	Button6
	Button7
	Button8
)

// ButtonLast is the highest valid button.
const ButtonLast = Button8

var buttonNames = [...]string{
	ButtonNone:   "none",
	ButtonLeft:   "left",
	ButtonRight:  "right",
	ButtonMiddle: "middle",
	Button4:      "button4",
	Button5:      "button5",
	Button6:      "button6",
	Button7:      "button7",
	Button8:      "button8",
}

func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return "unknown"
}

// ParseButton returns the Button whose String() is s.
func ParseButton(s string) (Button, bool) {
	for i, n := range buttonNames {
		if n == s {
			return Button(i), true
		}
	}
	return ButtonNone, false
}

// ButtonSet is a set of held buttons.
type ButtonSet uint16

func (s ButtonSet) Has(b Button) bool          { return s&(1<<b) != 0 }
func (s ButtonSet) Without(b Button) ButtonSet { return s &^ (1 << b) }
func (s ButtonSet) Empty() bool                { return s == 0 }

func (s ButtonSet) With(b Button) ButtonSet {
	if b == ButtonNone || b > ButtonLast {
		return s
	}
	return s | 1<<b
}

func (s ButtonSet) String() string {
	var names []string
	for b := ButtonLeft; b <= ButtonLast; b++ {
		if s.Has(b) {
			names = append(names, b.String())
		}
	}
	return "[" + strings.Join(names, " ") + "]"
}

// Modifier is a set of keyboard modifiers held during an event.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

func (m Modifier) Has(mod Modifier) bool { return m&mod == mod }

// Event describes a single mouse notification. Listeners receive a copy.
type Event struct {
	Kind    Kind
	Pos     rodent.Point // window coordinates
	World   rodent.Point // world coordinates, set to Pos unless a view applies
	Button  Button       // button that changed state (Press, Release, Click)
	Buttons ButtonSet    // buttons held when the event occurred
	Mods    Modifier
	Wheel   rodent.Point // scroll offsets (Wheel)
	Clicks  int          // consecutive click count (Click)
	Time    time.Time
}
