// Package gesture turns pointer events into drags of a view.
package gesture

import (
	"bytes"
	"fmt"
	"time"

	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"
)

type Type uint8

func (t Type) Has(x Type) bool { return t&x == x }
func (t Type) Any(x Type) bool { return t&x != 0 }

const (
	TypeBegin Type = 1 << iota
	TypeMove
	TypeEnd

	TypeInvalid Type = 0
)

func (t Type) String() string {
	switch t {
	case TypeBegin:
		return "begin"
	case TypeMove:
		return "move"
	case TypeEnd:
		return "end"
	}
	return "invalid"
}

func typeFor(t interface{}) Type {
	switch t {
	case touch.TypeBegin, mouse.DirPress:
		return TypeBegin
	case touch.TypeEnd, mouse.DirRelease:
		return TypeEnd
	case touch.TypeMove, mouse.DirNone:
		return TypeMove
	default:
		return TypeInvalid
	}
}

// ZE is the zero Event.
var ZE Event

type Event struct {
	X, Y float32
	Type Type
	Time time.Time
}

func (e Event) GoString() string {
	return fmt.Sprintf("%T{X:%2v Y:%2v Type:%-5v Time:%s}", e, e.X, e.Y, e.Type, e.Time.Format("15:04:05.000"))
}

// Drag is the history of a drag in progress, condensed to its first event
// and the two most recent.
type Drag []Event

func (a Drag) Last() Event {
	if len(a) == 0 {
		return ZE
	}
	return a[len(a)-1]
}

// Duration returns the time elapsed between the first and last event.
func (a Drag) Duration() time.Duration {
	if len(a) == 0 {
		return 0
	}
	return a.Last().Time.Sub(a[0].Time)
}

func (a Drag) condense() Drag {
	if len(a) <= 3 {
		return a
	}
	return Drag{a[0], a[len(a)-2], a[len(a)-1]}
}

func (a Drag) GoString() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%T len(%v)", a, len(a))
	for _, e := range a {
		fmt.Fprintf(&buf, "\n%#v", e)
	}
	return buf.String()
}

// Dragger is moved by drags; view.Controller implements it.
type Dragger interface {
	DragStart(x, y float64)
	UpdateDelta(x, y float64) bool
	ResetDelta()
}

var now = time.Now

// EventFilter feeds primary button mouse drags and single finger touch drags
// to a Dragger.
type EventFilter struct {
	Dragger Dragger

	// Button starts drags; zero means mouse.ButtonLeft.
	Button mouse.Button

	// Changed is called after an event moved the view, if not nil.
	Changed func()

	tracking Drag
	sequence touch.Sequence
}

// Tracking returns the drag in progress, nil if none.
func (f *EventFilter) Tracking() Drag { return f.tracking }

// Filter consumes mouse.Event and touch.Event values and returns e unchanged.
func (f *EventFilter) Filter(e interface{}) interface{} {
	var t Event
	switch e := e.(type) {
	case mouse.Event:
		if e.Button.IsWheel() || e.Direction == mouse.DirStep {
			return e
		}
		if e.Direction != mouse.DirNone && e.Button != f.button() {
			return e
		}
		t = Event{X: e.X, Y: e.Y, Time: now(), Type: typeFor(e.Direction)}
	case touch.Event:
		if f.tracking != nil && e.Sequence != f.sequence {
			return e
		}
		f.sequence = e.Sequence
		t = Event{X: e.X, Y: e.Y, Time: now(), Type: typeFor(e.Type)}
	default:
		return e
	}
	f.handle(t)
	return e
}

func (f *EventFilter) button() mouse.Button {
	if f.Button == mouse.ButtonNone {
		return mouse.ButtonLeft
	}
	return f.Button
}

func (f *EventFilter) handle(t Event) {
	x, y := float64(t.X), float64(t.Y)
	switch {
	case t.Type.Has(TypeBegin):
		f.tracking = Drag{t}
		f.Dragger.DragStart(x, y)
	case f.tracking == nil:
		// stale move or release of a gesture never begun here
	case t.Type.Has(TypeMove):
		f.tracking = append(f.tracking, t).condense()
		if f.Dragger.UpdateDelta(x, y) && f.Changed != nil {
			f.Changed()
		}
	case t.Type.Has(TypeEnd):
		changed := f.Dragger.UpdateDelta(x, y)
		f.Dragger.ResetDelta()
		f.tracking = nil
		if changed && f.Changed != nil {
			f.Changed()
		}
	}
}
