package workbench

import "testing"

func TestCascadeWrapsAfterEight(t *testing.T) {
	cascadeCount = 0
	var first [8][2]int
	for i := 0; i < 8; i++ {
		x, y := NextCascadePosition()
		first[i] = [2]int{x, y}
	}
	x, y := NextCascadePosition()
	if x != first[0][0] || y != first[0][1] {
		t.Fatalf("expected wrap to %v, got (%d,%d)", first[0], x, y)
	}
}

func TestCascadeStep(t *testing.T) {
	cascadeCount = 0
	x0, y0 := NextCascadePosition()
	x1, y1 := NextCascadePosition()
	if x1-x0 != cascadeStep || y1-y0 != cascadeStep {
		t.Fatalf("expected step %d, got dx=%d dy=%d", cascadeStep, x1-x0, y1-y0)
	}
}
