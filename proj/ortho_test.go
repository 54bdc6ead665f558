package proj

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestScreen(t *testing.T) {
	tests := []struct {
		name          string
		point         mgl32.Vec3
		width, height float32
		wantX, wantY  float32
	}{
		{
			name:  "Top-left corner",
			point: mgl32.Vec3{0, 0, 0},
			width: 800, height: 600,
			wantX: -1, wantY: 1,
		},
		{
			name:  "Bottom-right corner",
			point: mgl32.Vec3{800, 600, 0},
			width: 800, height: 600,
			wantX: 1, wantY: -1,
		},
		{
			name:  "Center",
			point: mgl32.Vec3{400, 300, 0},
			width: 800, height: 600,
			wantX: 0, wantY: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToNDC(Screen(tt.width, tt.height), tt.point)
			if !closeTo(got.X(), tt.wantX, 1e-6) || !closeTo(got.Y(), tt.wantY, 1e-6) {
				t.Errorf("got (%f, %f); want (%f, %f)", got.X(), got.Y(), tt.wantX, tt.wantY)
			}
		})
	}
}

func TestNDCToPixels_RoundTrip(t *testing.T) {
	m := Screen(800, 600)
	for _, p := range []mgl32.Vec3{{0, 0, 0}, {350, 250, 0}, {799, 1, 0}} {
		x, y := NDCToPixels(ToNDC(m, p), 800, 600)
		if !closeTo(x, p.X(), 1e-3) || !closeTo(y, p.Y(), 1e-3) {
			t.Errorf("round trip of %v gave (%f, %f)", p, x, y)
		}
	}
}

func TestPixelsToWorld(t *testing.T) {
	pv := Screen(800, 600).Mul4(View(mgl32.Vec2{100, 50}, 2))
	got := PixelsToWorld(pv, 300, 250, 800, 600)
	if !closeTo(got.X(), 100, 1e-3) || !closeTo(got.Y(), 100, 1e-3) {
		t.Errorf("got %v; want (100, 100)", got)
	}
}

func closeTo(got, want, eps float32) bool {
	return math.Abs(float64(got-want)) <= float64(eps)
}

func BenchmarkToNDC(b *testing.B) {
	m := Screen(1920, 1080).Mul4(View(mgl32.Vec2{10, 10}, 1.5))
	points := []mgl32.Vec3{{0, 0, 0}, {960, 540, 0}, {1920, 1080, 0}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, p := range points {
			ToNDC(m, p)
		}
	}
}
