package tween

import "slices"

// Scheduler advances running animations once per frame. Animations added
// or removed while Update runs take effect after it returns.
type Scheduler struct {
	active   []Animation
	toAdd    []Animation
	toRemove []Animation
	updating bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Play starts a and schedules it.
func (s *Scheduler) Play(a Animation) {
	a.Start()
	s.Add(a)
}

// Add schedules an already started animation.
func (s *Scheduler) Add(a Animation) {
	if s.updating {
		s.toAdd = append(s.toAdd, a)
		return
	}
	if !slices.Contains(s.active, a) {
		s.active = append(s.active, a)
	}
}

// Remove unschedules a without stopping it.
func (s *Scheduler) Remove(a Animation) {
	if s.updating {
		s.toRemove = append(s.toRemove, a)
		return
	}
	s.active = slices.DeleteFunc(s.active, func(x Animation) bool { return x == a })
}

// Len returns the number of scheduled animations.
func (s *Scheduler) Len() int { return len(s.active) }

// Update advances every animation by dt seconds and drops the finished ones.
func (s *Scheduler) Update(dt float32) {
	s.updating = true
	n := 0
	for _, a := range s.active {
		if !a.Advance(dt) {
			s.active[n] = a
			n++
		}
	}
	clear(s.active[n:])
	s.active = s.active[:n]
	s.updating = false

	for _, a := range s.toRemove {
		s.Remove(a)
	}
	for _, a := range s.toAdd {
		s.Add(a)
	}
	s.toAdd = s.toAdd[:0]
	s.toRemove = s.toRemove[:0]
}

// StopAll stops and unschedules every animation.
func (s *Scheduler) StopAll() {
	for _, a := range s.active {
		a.Stop()
	}
	s.active = nil
}
