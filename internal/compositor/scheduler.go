package compositor

import (
	"sync"
	"time"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
)

// RenderMode selects the frame-scheduling policy, per spec.md §4.C.
type RenderMode int

const (
	OnDemand RenderMode = iota
	Continuous
)

// MaxFPS caps the configurable target rate, per spec.md §4.C ("cap 240").
const MaxFPS = 240

// scheduler arms a single monotonic one-shot timer and tracks the single
// bounding-rectangle damage accumulator described in spec.md §4.C and §5.
// It has no threads of its own: FD() exposes a channel the event
// dispatcher (internal/events) selects on; when it fires, Fire() runs
// exactly one frame.
type scheduler struct {
	mu sync.Mutex

	fps  int
	mode RenderMode

	interval time.Duration
	lastRun  time.Time
	armed    bool

	damagePending bool
	damageBounds  canvas.Rect

	timer  *time.Timer
	fired  chan struct{}
	render func()
}

func newScheduler(fps int, mode RenderMode, render func()) *scheduler {
	if fps <= 0 {
		fps = 120
	}
	if fps > MaxFPS {
		fps = MaxFPS
	}
	s := &scheduler{
		fps:      fps,
		mode:     mode,
		interval: time.Second / time.Duration(fps),
		fired:    make(chan struct{}, 1),
		render:   render,
	}
	return s
}

// FD returns the channel that becomes readable when the timer fires,
// for the event dispatcher's select loop (spec.md §4.G).
func (s *scheduler) FD() <-chan struct{} { return s.fired }

// noteDamage accumulates r into the pending bounding rectangle and arms
// the timer if it isn't already armed (on-demand mode), per spec.md §4.C.
// Two identical damage regions in the same frame coalesce into the same
// single rectangle (spec.md §8 invariant 9) because Union of an identical
// rect with itself is a no-op.
func (s *scheduler) noteDamage(r canvas.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.damageBounds = s.damageBounds.Union(r)
	s.damagePending = true
	if s.mode == Continuous {
		return // a continuous-mode timer is always running; nothing to arm
	}
	if s.armed {
		return
	}
	s.arm(s.nextDelay())
}

func (s *scheduler) nextDelay() time.Duration {
	elapsed := time.Since(s.lastRun)
	remain := s.interval - elapsed
	if remain < 100*time.Microsecond {
		remain = 100 * time.Microsecond
	}
	return remain
}

func (s *scheduler) arm(d time.Duration) {
	s.armed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(d, func() {
		select {
		case s.fired <- struct{}{}:
		default:
		}
	})
}

// Start begins continuous-mode scheduling; a no-op under on-demand, which
// only arms in response to noteDamage.
func (s *scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == Continuous {
		s.arm(s.interval)
	}
}

// Fire runs exactly one frame render and re-arms per the active mode:
// unconditionally after a full interval in continuous mode, or only if
// damage is still pending in on-demand mode.
func (s *scheduler) Fire() {
	s.mu.Lock()
	hadDamage := s.damagePending
	s.damagePending = false
	s.damageBounds = canvas.Rect{}
	s.armed = false
	s.mu.Unlock()

	if hadDamage || s.mode == Continuous {
		s.render()
		s.lastRun = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.mode {
	case Continuous:
		s.arm(s.interval)
	case OnDemand:
		if s.damagePending {
			s.arm(s.nextDelay())
		}
	}
}

// SetMode switches between on-demand and continuous scheduling, e.g. when
// a smooth client becomes the active window (spec.md §4.C).
func (s *scheduler) SetMode(mode RenderMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	if mode == Continuous && !s.armed {
		s.arm(s.interval)
	}
}
