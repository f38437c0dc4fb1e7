package geometry

import "testing"

func TestRect_Intersects(t *testing.T) {
	base := NewRect(0, 0, 100, 100)

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlapping", NewRect(50, 50, 100, 100), true},
		{"contained", NewRect(25, 25, 10, 10), true},
		{"touching edge", NewRect(100, 0, 50, 50), false},
		{"disjoint", NewRect(500, 500, 10, 10), false},
		{"negative origin overlap", NewRect(-50, -50, 60, 60), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects(%+v) = %v, want %v", tt.other, got, tt.want)
			}
			if got := tt.other.Intersects(base); got != tt.want {
				t.Errorf("Intersects not symmetric for %+v", tt.other)
			}
		})
	}
}

func TestRect_CenterAndContains(t *testing.T) {
	r := NewRect(10, 20, 30, 40)
	if c := r.Center(); c.X != 25 || c.Y != 40 {
		t.Errorf("Center() = %+v, want {25 40}", c)
	}
	if !r.Contains(NewPoint2D(10, 20)) || r.Contains(NewPoint2D(9.9, 20)) {
		t.Error("Contains boundary check failed")
	}
}

func TestPoint2D_Arithmetic(t *testing.T) {
	p := NewPoint2D(3, 4)
	if d := p.Distance(NewPoint2D(0, 0)); d != 5 {
		t.Errorf("Distance = %v, want 5", d)
	}
	if got := p.Add(NewPoint2D(1, 1)).Sub(NewPoint2D(2, 2)).Scale(2); got.X != 4 || got.Y != 6 {
		t.Errorf("chained arithmetic = %+v, want {4 6}", got)
	}
}
