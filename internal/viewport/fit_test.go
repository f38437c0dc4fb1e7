package viewport

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestFitToContent_SingleItem(t *testing.T) {
	// One 200x150 item centered at the origin in a 1000x800 viewport:
	// available space 900x700 gives candidate scale 4.5, clamped to the
	// fit maximum 1.5, centering offset (500, 400).
	min := r2.Vec{X: -100, Y: -75}
	max := r2.Vec{X: 100, Y: 75}

	target, ok := FitToContent(min, max, 1000, 800)
	if !ok {
		t.Fatal("fit aborted on valid input")
	}
	if !target.HasX || !target.HasY || !target.HasScale {
		t.Fatal("fit must target all transform fields")
	}
	if !scalar.EqualWithinAbs(target.Scale, 1.5, tol) {
		t.Errorf("scale = %v, want 1.5", target.Scale)
	}
	if !scalar.EqualWithinAbs(target.X, 500, tol) || !scalar.EqualWithinAbs(target.Y, 400, tol) {
		t.Errorf("offset = (%v, %v), want (500, 400)", target.X, target.Y)
	}
}

func TestFitToContent_ScaleChoosesTighterAxis(t *testing.T) {
	// Wide box: 1800x100 in 1000x800. availW/boxW = 0.5, availH/boxH = 7;
	// the horizontal fit wins.
	target, ok := FitToContent(r2.Vec{X: 0, Y: 0}, r2.Vec{X: 1800, Y: 100}, 1000, 800)
	if !ok {
		t.Fatal("fit aborted on valid input")
	}
	if !scalar.EqualWithinAbs(target.Scale, 0.5, tol) {
		t.Errorf("scale = %v, want 0.5", target.Scale)
	}
}

func TestFitToContent_LowerClamp(t *testing.T) {
	// Enormous content forces the scale down to the minimum.
	target, ok := FitToContent(r2.Vec{}, r2.Vec{X: 1e6, Y: 1e6}, 1000, 800)
	if !ok {
		t.Fatal("fit aborted on valid input")
	}
	if !scalar.EqualWithinAbs(target.Scale, ScaleMin, tol) {
		t.Errorf("scale = %v, want %v", target.Scale, ScaleMin)
	}
}

func TestFitToContent_Degenerate(t *testing.T) {
	tests := []struct {
		name     string
		min, max r2.Vec
		w, h     float64
	}{
		{"zero-width box", r2.Vec{X: 5, Y: 0}, r2.Vec{X: 5, Y: 10}, 1000, 800},
		{"zero-height box", r2.Vec{X: 0, Y: 5}, r2.Vec{X: 10, Y: 5}, 1000, 800},
		{"point box", r2.Vec{X: 1, Y: 1}, r2.Vec{X: 1, Y: 1}, 1000, 800},
		{"unmeasured viewport", r2.Vec{}, r2.Vec{X: 10, Y: 10}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := FitToContent(tt.min, tt.max, tt.w, tt.h); ok {
				t.Error("expected a no-op")
			}
		})
	}
}

func TestFitToContent_Idempotent(t *testing.T) {
	min := r2.Vec{X: -320, Y: 40}
	max := r2.Vec{X: 610, Y: 475}

	first, ok := FitToContent(min, max, 1280, 720)
	if !ok {
		t.Fatal("fit aborted on valid input")
	}
	second, ok := FitToContent(min, max, 1280, 720)
	if !ok {
		t.Fatal("second fit aborted")
	}

	if !scalar.EqualWithinAbs(first.X, second.X, tol) ||
		!scalar.EqualWithinAbs(first.Y, second.Y, tol) ||
		!scalar.EqualWithinAbs(first.Scale, second.Scale, tol) {
		t.Errorf("fit not idempotent: %+v then %+v", first, second)
	}
}
