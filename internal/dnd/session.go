// Package dnd turns drag gestures on the board into column moves.
package dnd

import (
	"errors"
	"math"
	"time"

	"issueboard/internal/board"
)

type State int

const (
	Idle State = iota
	Armed
	Dragging
	Dropped
	Cancelled
)

func (s State) String() string {
	switch s {
	case Armed:
		return "armed"
	case Dragging:
		return "dragging"
	case Dropped:
		return "dropped"
	case Cancelled:
		return "cancelled"
	default:
		return "idle"
	}
}

// Input is the device that started a gesture.
type Input int

const (
	Pointer Input = iota
	Touch
)

// Activation decides when an armed gesture becomes a drag. Distance applies
// to pointer input; Delay and Tolerance to touch input.
type Activation struct {
	Distance  float64
	Delay     time.Duration
	Tolerance float64
}

var DefaultActivation = Activation{
	Distance:  10,
	Delay:     250 * time.Millisecond,
	Tolerance: 10,
}

type Point struct {
	X, Y float64
}

func (p Point) distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// ResultKind says how a gesture ended.
type ResultKind int

const (
	// NoGesture means nothing was in progress.
	NoGesture ResultKind = iota
	// Click is a release before activation: open the issue.
	Click
	Drop
	Cancel
)

// Result describes a finished gesture.
type Result struct {
	Kind    ResultKind
	IssueID int64
	// Origin is the issue's placement when the drag started.
	Origin board.Placement
	Target Target
}

var ErrGestureInProgress = errors.New("a gesture is already in progress")

// PlacementFunc looks up where an issue currently sits.
type PlacementFunc func(issueID int64) (board.Placement, bool)

// TransitionFunc observes state changes.
type TransitionFunc func(from, to State)

// Session tracks one drag gesture at a time. It is not safe for concurrent
// use; gesture callbacks for a session are expected to arrive in order.
type Session struct {
	activation Activation
	placement  PlacementFunc
	now        func() time.Time
	observe    TransitionFunc

	state     State
	input     Input
	issueID   int64
	start     Point
	startedAt time.Time
	origin    board.Placement
	target    *Target
}

type SessionOption func(*Session)

func WithActivation(a Activation) SessionOption {
	return func(s *Session) { s.activation = a }
}

func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

func WithTransitions(fn TransitionFunc) SessionOption {
	return func(s *Session) { s.observe = fn }
}

func NewSession(placement PlacementFunc, opts ...SessionOption) *Session {
	s := &Session{
		activation: DefaultActivation,
		placement:  placement,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) State() State { return s.state }

// IssueID is the issue being gestured on, or zero when idle.
func (s *Session) IssueID() int64 { return s.issueID }

// Origin returns the cached placement; it is only set while dragging.
func (s *Session) Origin() (board.Placement, bool) {
	return s.origin, s.state == Dragging
}

// Target returns the target currently hovered, if any.
func (s *Session) Target() (Target, bool) {
	if s.target == nil {
		return Target{}, false
	}
	return *s.target, true
}

// PointerDown arms the session on an issue.
func (s *Session) PointerDown(issueID int64, input Input, at Point) error {
	if s.state != Idle {
		return ErrGestureInProgress
	}
	s.input = input
	s.issueID = issueID
	s.start = at
	s.startedAt = s.now()
	s.transition(Armed)
	return nil
}

// PointerMove feeds movement. Pointer input activates once it has travelled
// the activation distance. Touch input that strays past the tolerance before
// the delay is a scroll and ends the gesture.
func (s *Session) PointerMove(at Point) {
	if s.state != Armed {
		return
	}
	moved := s.start.distance(at)
	switch s.input {
	case Pointer:
		if moved >= s.activation.Distance {
			s.activate()
		}
	case Touch:
		if moved > s.activation.Tolerance {
			s.reset()
			return
		}
		if s.now().Sub(s.startedAt) >= s.activation.Delay {
			s.activate()
		}
	}
}

// Tick lets a stationary touch activate once the hold delay has passed.
func (s *Session) Tick() {
	if s.state == Armed && s.input == Touch && s.now().Sub(s.startedAt) >= s.activation.Delay {
		s.activate()
	}
}

// Over records the hovered target; nil clears it.
func (s *Session) Over(target *Target) {
	if s.state != Dragging {
		return
	}
	if target == nil {
		s.target = nil
		return
	}
	t := *target
	s.target = &t
}

// Release ends the gesture where the pointer was lifted.
func (s *Session) Release() Result {
	switch s.state {
	case Armed:
		result := Result{Kind: Click, IssueID: s.issueID}
		s.reset()
		return result
	case Dragging:
		if s.target == nil {
			return s.finish(Cancelled)
		}
		return s.finish(Dropped)
	default:
		return Result{Kind: NoGesture}
	}
}

// Cancel aborts the gesture, as on an escape key.
func (s *Session) Cancel() Result {
	switch s.state {
	case Armed:
		s.reset()
		return Result{Kind: Cancel}
	case Dragging:
		return s.finish(Cancelled)
	default:
		return Result{Kind: NoGesture}
	}
}

func (s *Session) activate() {
	origin, ok := s.placement(s.issueID)
	if !ok {
		s.reset()
		return
	}
	s.origin = origin
	s.transition(Dragging)
}

func (s *Session) finish(terminal State) Result {
	result := Result{Kind: Cancel, IssueID: s.issueID, Origin: s.origin}
	if terminal == Dropped {
		result.Kind = Drop
		result.Target = *s.target
	}
	s.transition(terminal)
	s.reset()
	return result
}

func (s *Session) reset() {
	s.issueID = 0
	s.origin = board.Placement{}
	s.target = nil
	s.start = Point{}
	s.startedAt = time.Time{}
	s.transition(Idle)
}

func (s *Session) transition(to State) {
	from := s.state
	s.state = to
	if s.observe != nil && from != to {
		s.observe(from, to)
	}
}
