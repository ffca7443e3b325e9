package hellomesh

import (
	"github.com/gekko3d/hellomesh/rt/core"
)

// ControlEvent is a request from the control surface: the keyboard panel or
// the config watcher.
type ControlEvent interface {
	controlEvent()
}

// ShapeSelected selects the shape at Index in core.Shapes order. Unknown
// indices are ignored.
type ShapeSelected struct {
	Index int
}

type WireframeToggled struct {
	On bool
}

// ScaleChanged sets the uniform model scale, clamped to the configured range.
type ScaleChanged struct {
	Scale float32
}

func (ShapeSelected) controlEvent()    {}
func (WireframeToggled) controlEvent() {}
func (ScaleChanged) controlEvent()     {}

const controlEventsCapacity = 64

// ControlEvents is the queue between event producers and the main loop.
// Push is safe from any goroutine; Drain belongs to the main loop.
type ControlEvents struct {
	ch  chan ControlEvent
	log Logger
}

func NewControlEvents(capacity int, log Logger) *ControlEvents {
	if log == nil {
		log = NewNopLogger()
	}
	return &ControlEvents{ch: make(chan ControlEvent, capacity), log: log}
}

// Push enqueues ev without blocking. A full queue drops ev and reports false.
func (q *ControlEvents) Push(ev ControlEvent) bool {
	select {
	case q.ch <- ev:
		return true
	default:
		q.log.Warnf("Control event queue full, dropping %#v", ev)
		return false
	}
}

func (q *ControlEvents) Drain() []ControlEvent {
	var events []ControlEvent
	for {
		select {
		case ev := <-q.ch:
			events = append(events, ev)
		default:
			return events
		}
	}
}

// ControlState is what the control surface has selected so far.
type ControlState struct {
	Shape     core.Shape
	Wireframe bool
	Scale     float32

	ScaleMin  float32
	ScaleMax  float32
	ScaleStep float32
}

func NewControlState(cfg Config) *ControlState {
	s := &ControlState{
		Shape:     cfg.InitialShape(),
		Wireframe: cfg.Wireframe,
		ScaleMin:  cfg.ScaleMin,
		ScaleMax:  cfg.ScaleMax,
		ScaleStep: cfg.ScaleStep,
	}
	s.Scale = s.clampScale(cfg.Scale)
	return s
}

func (s *ControlState) clampScale(v float32) float32 {
	if v < s.ScaleMin {
		return s.ScaleMin
	}
	if v > s.ScaleMax {
		return s.ScaleMax
	}
	return v
}

// ControlChange reports which parts of a ControlState an event changed.
type ControlChange struct {
	Shape     bool
	Wireframe bool
	Scale     bool
}

func (c ControlChange) Any() bool { return c.Shape || c.Wireframe || c.Scale }

func (c ControlChange) merge(o ControlChange) ControlChange {
	return ControlChange{
		Shape:     c.Shape || o.Shape,
		Wireframe: c.Wireframe || o.Wireframe,
		Scale:     c.Scale || o.Scale,
	}
}

// Apply updates s for ev. Selecting the current shape again still counts as
// a shape change so the mesh is rebuilt.
func (s *ControlState) Apply(ev ControlEvent) ControlChange {
	switch e := ev.(type) {
	case ShapeSelected:
		shape, ok := core.ShapeFromIndex(e.Index)
		if !ok {
			return ControlChange{}
		}
		s.Shape = shape
		return ControlChange{Shape: true}
	case WireframeToggled:
		if s.Wireframe == e.On {
			return ControlChange{}
		}
		s.Wireframe = e.On
		return ControlChange{Wireframe: true}
	case ScaleChanged:
		scale := s.clampScale(e.Scale)
		if scale == s.Scale {
			return ControlChange{}
		}
		s.Scale = scale
		return ControlChange{Scale: true}
	}
	return ControlChange{}
}

func (s *ControlState) ApplyAll(events []ControlEvent) ControlChange {
	var change ControlChange
	for _, ev := range events {
		change = change.merge(s.Apply(ev))
	}
	return change
}

// NextShapeIndex is the selector index after the current shape, wrapping.
func (s *ControlState) NextShapeIndex() int {
	return (int(s.Shape) + 1) % len(core.Shapes())
}
