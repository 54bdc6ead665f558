package tween

// State is the playback state of an animation.
type State int

const (
	Idle State = iota
	Running
	Paused
	Completed
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Animation is anything a Scheduler can drive.
type Animation interface {
	Start()
	Stop()
	// Advance moves the animation forward by dt seconds and reports whether
	// it has finished, either by completing or by being stopped.
	Advance(dt float32) bool
	State() State
}

// Tween feeds eased progress to Apply over Duration seconds.
type Tween struct {
	Duration float32
	Ease     EaseFunc
	Apply    func(v float32)
	// Loop restarts the tween instead of completing it.
	Loop bool
	// Reverse plays progress from 1 down to 0.
	Reverse bool

	elapsed     float32
	state       State
	onCompleted []func()
	onStopped   []func()
}

var _ Animation = (*Tween)(nil)

// New returns an idle tween. A nil ease means Linear.
func New(duration float32, ease EaseFunc, apply func(v float32)) *Tween {
	if ease == nil {
		ease = Linear
	}
	return &Tween{Duration: duration, Ease: ease, Apply: apply}
}

// Delay returns a tween that does nothing for d seconds.
func Delay(d float32) *Tween {
	return New(d, Linear, nil)
}

// OnCompleted registers fn to run when the tween reaches its end.
func (t *Tween) OnCompleted(fn func()) { t.onCompleted = append(t.onCompleted, fn) }

// OnStopped registers fn to run when Stop interrupts the tween.
func (t *Tween) OnStopped(fn func()) { t.onStopped = append(t.onStopped, fn) }

func (t *Tween) State() State { return t.state }

// Elapsed returns the time played in the current loop.
func (t *Tween) Elapsed() float32 { return t.elapsed }

// Start rewinds the tween and applies its first value.
func (t *Tween) Start() {
	t.elapsed = 0
	t.state = Running
	t.apply(0)
}

// Pause freezes a running tween.
func (t *Tween) Pause() {
	if t.state == Running {
		t.state = Paused
	}
}

// Resume continues a paused tween.
func (t *Tween) Resume() {
	if t.state == Paused {
		t.state = Running
	}
}

// Stop interrupts the tween where it is.
func (t *Tween) Stop() {
	if t.state != Running && t.state != Paused {
		return
	}
	t.state = Stopped
	for _, fn := range t.onStopped {
		fn()
	}
}

func (t *Tween) Advance(dt float32) bool {
	switch t.state {
	case Paused:
		return false
	case Running:
	default:
		return true
	}

	t.elapsed += dt
	if t.Duration <= 0 || t.elapsed >= t.Duration {
		if t.Loop && t.Duration > 0 {
			for t.elapsed >= t.Duration {
				t.elapsed -= t.Duration
			}
			t.apply(t.elapsed / t.Duration)
			return false
		}
		t.elapsed = max(t.Duration, 0)
		t.apply(1)
		t.state = Completed
		for _, fn := range t.onCompleted {
			fn()
		}
		return true
	}
	t.apply(t.elapsed / t.Duration)
	return false
}

func (t *Tween) apply(progress float32) {
	if t.Apply == nil {
		return
	}
	progress = min(max(progress, 0), 1)
	if t.Reverse {
		progress = 1 - progress
	}
	t.Apply(t.Ease(progress))
}
