package compositor

import (
	"testing"

	"github.com/nsklaus/amiwb-sub000/internal/canvas"
)

func TestCoalescedDamageProducesOneRender(t *testing.T) {
	calls := 0
	s := newScheduler(120, OnDemand, func() { calls++ })

	r := canvas.Rect{X: 0, Y: 0, W: 100, H: 100}
	for i := 0; i < 10; i++ {
		s.noteDamage(r)
	}
	if s.timer != nil {
		s.timer.Stop() // don't let the real timer race with our manual Fire
	}
	s.Fire()

	if calls != 1 {
		t.Fatalf("expected exactly 1 render for 10 coalesced damage events, got %d", calls)
	}
}

func TestOnDemandDoesNotRenderWithoutDamage(t *testing.T) {
	calls := 0
	s := newScheduler(120, OnDemand, func() { calls++ })
	s.Fire()
	if calls != 0 {
		t.Fatalf("expected no render absent damage, got %d calls", calls)
	}
}

func TestContinuousAlwaysRenders(t *testing.T) {
	calls := 0
	s := newScheduler(120, Continuous, func() { calls++ })
	s.Fire()
	if s.timer != nil {
		s.timer.Stop()
	}
	if calls != 1 {
		t.Fatalf("continuous mode should render every Fire, got %d calls", calls)
	}
}

func TestFPSClampedToMax(t *testing.T) {
	s := newScheduler(1000, OnDemand, func() {})
	if s.fps != MaxFPS {
		t.Fatalf("expected fps clamped to %d, got %d", MaxFPS, s.fps)
	}
}
