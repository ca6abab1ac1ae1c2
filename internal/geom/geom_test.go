package geom

import (
	"math"
	"testing"
)

func TestNormScreen(t *testing.T) {
	s := Norm{X: 0.5, Y: 0.25}.Screen(640, 480)
	if s.X != 320 || s.Y != 120 {
		t.Errorf("Screen: got (%v, %v), want (320, 120)", s.X, s.Y)
	}
}

func TestWorldDist(t *testing.T) {
	tests := []struct {
		name string
		a, b World
		want float64
	}{
		{"same point", World{X: 1, Y: 2, Z: 3}, World{X: 1, Y: 2, Z: 3}, 0},
		{"unit x", World{}, World{X: 1}, 1},
		{"3-4-5", World{}, World{X: 3, Y: 4}, 5},
		{"negative z", World{Z: -1}, World{X: 0.05, Z: -1}, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WorldDist(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("WorldDist: got %v, want %v", got, tt.want)
			}
			// Distance is commutative.
			if rev := WorldDist(tt.b, tt.a); rev != got {
				t.Errorf("WorldDist not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestSegmentDist(t *testing.T) {
	a := Norm{X: 0.2, Y: 0.5}
	b := Norm{X: 0.8, Y: 0.5}

	tests := []struct {
		name string
		p    Norm
		want float64
	}{
		{"perpendicular above", Norm{X: 0.5, Y: 0.47}, 0.03},
		{"on segment", Norm{X: 0.5, Y: 0.5}, 0},
		{"beyond end clamps to endpoint", Norm{X: 0.9, Y: 0.5}, 0.1},
		{"endpoint", Norm{X: 0.2, Y: 0.5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SegmentDist(tt.p, a, b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SegmentDist: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentDist_Degenerate(t *testing.T) {
	p := Norm{X: 0.5, Y: 0.5}
	a := Norm{X: 0.5, Y: 0.1}
	if got := SegmentDist(p, a, a); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("degenerate segment: got %v, want 0.4", got)
	}
}

func TestPoseTranslation(t *testing.T) {
	p := NewPose([]float64{
		1, 0, 0, 0.05,
		0, 1, 0, 0,
		0, 0, 1, -1,
		0, 0, 0, 1,
	})
	tr := p.Translation()
	if tr.X != 0.05 || tr.Y != 0 || tr.Z != -1 {
		t.Errorf("Translation: got %+v", tr)
	}
}

func TestPoseApplyInverseRoundTrip(t *testing.T) {
	p := LookAtPose(World{X: 1, Y: 2, Z: 3}, World{X: 0, Y: 0, Z: 0}, World{Y: 1})
	v := World{X: 0.3, Y: -0.7, Z: 2.1}

	back := p.Inverse().Apply(p.Apply(v))
	if WorldDist(back, v) > 1e-9 {
		t.Errorf("round trip drifted: got %+v, want %+v", back, v)
	}
}

func TestTranslationPose(t *testing.T) {
	tr := World{X: 1, Y: -2, Z: 0.5}
	p := TranslationPose(tr)
	if got := p.Apply(World{}); WorldDist(got, tr) > 1e-12 {
		t.Errorf("Apply origin: got %+v, want %+v", got, tr)
	}
	if got := p.ApplyDir(World{X: 1}); WorldDist(got, World{X: 1}) > 1e-12 {
		t.Errorf("ApplyDir must ignore translation: got %+v", got)
	}
}
