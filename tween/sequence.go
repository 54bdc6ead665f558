package tween

import "fmt"

// Infinite repeats a sequence forever.
const Infinite = -1

// Direction controls the order a sequence plays its steps in.
type Direction int

const (
	// Normal plays every iteration forwards.
	Normal Direction = iota
	// Reverse plays every iteration backwards.
	Reverse
	// Alternate starts forwards and flips each iteration.
	Alternate
	// AlternateReverse starts backwards and flips each iteration.
	AlternateReverse
)

func (d Direction) String() string {
	switch d {
	case Normal:
		return "normal"
	case Reverse:
		return "reverse"
	case Alternate:
		return "alternate"
	case AlternateReverse:
		return "alternate_reverse"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Sequence plays tweens one after another. Playing backwards runs the steps
// in reverse order with each step reversed. Steps should not Loop, or the
// sequence never moves past them.
type Sequence struct {
	Steps      []*Tween
	Direction  Direction
	Iterations int

	iteration   int
	index       int
	state       State
	onCompleted []func()
	onStopped   []func()
}

var _ Animation = (*Sequence)(nil)

// NewSequence returns a sequence playing steps once, forwards.
func NewSequence(steps ...*Tween) *Sequence {
	return &Sequence{Steps: steps, Iterations: 1}
}

func (s *Sequence) OnCompleted(fn func()) { s.onCompleted = append(s.onCompleted, fn) }
func (s *Sequence) OnStopped(fn func())   { s.onStopped = append(s.onStopped, fn) }

func (s *Sequence) State() State { return s.state }

// Iteration returns the zero based index of the iteration being played.
func (s *Sequence) Iteration() int { return s.iteration }

func (s *Sequence) reversed(iteration int) bool {
	switch s.Direction {
	case Normal:
		return false
	case Reverse:
		return true
	case Alternate:
		return iteration%2 == 1
	case AlternateReverse:
		return iteration%2 == 0
	default:
		panic(fmt.Sprintf("tween: invalid direction %d", s.Direction))
	}
}

// step returns the tween played at position i of the current iteration.
func (s *Sequence) step(i int) *Tween {
	if s.reversed(s.iteration) {
		return s.Steps[len(s.Steps)-1-i]
	}
	return s.Steps[i]
}

func (s *Sequence) startStep() {
	t := s.step(s.index)
	t.Reverse = s.reversed(s.iteration)
	t.Start()
}

func (s *Sequence) Start() {
	s.iteration = 0
	s.index = 0
	if len(s.Steps) == 0 || s.Iterations == 0 {
		s.complete()
		return
	}
	s.state = Running
	s.startStep()
}

func (s *Sequence) Pause() {
	if s.state == Running {
		s.state = Paused
	}
}

func (s *Sequence) Resume() {
	if s.state == Paused {
		s.state = Running
	}
}

func (s *Sequence) Stop() {
	if s.state != Running && s.state != Paused {
		return
	}
	s.step(s.index).Stop()
	s.state = Stopped
	for _, fn := range s.onStopped {
		fn()
	}
}

func (s *Sequence) Advance(dt float32) bool {
	switch s.state {
	case Paused:
		return false
	case Running:
	default:
		return true
	}

	if !s.step(s.index).Advance(dt) {
		return false
	}

	s.index++
	if s.index < len(s.Steps) {
		s.startStep()
		return false
	}

	s.iteration++
	s.index = 0
	if s.Iterations != Infinite && s.iteration >= s.Iterations {
		s.complete()
		return true
	}
	s.startStep()
	return false
}

func (s *Sequence) complete() {
	s.state = Completed
	for _, fn := range s.onCompleted {
		fn()
	}
}
