package tween

import "github.com/chewxy/math32"

const (
	bezierEpsilon    = 1e-6
	newtonIterations = 8
)

// unitBezier is a cubic bezier from (0, 0) to (1, 1) with control points
// (x1, y1) and (x2, y2), stored in polynomial form.
type unitBezier struct {
	ax, bx, cx float32
	ay, by, cy float32
}

// CubicBezier returns the easing curve with the given control points, as
// used by CSS transitions. x1 and x2 must be within [0, 1].
func CubicBezier(x1, y1, x2, y2 float32) EaseFunc {
	b := unitBezier{}
	b.cx = 3 * x1
	b.bx = 3*(x2-x1) - b.cx
	b.ax = 1 - b.cx - b.bx
	b.cy = 3 * y1
	b.by = 3*(y2-y1) - b.cy
	b.ay = 1 - b.cy - b.by
	return func(t float32) float32 {
		return b.sampleY(b.solveX(t))
	}
}

func (b unitBezier) sampleX(t float32) float32 { return ((b.ax*t+b.bx)*t + b.cx) * t }
func (b unitBezier) sampleY(t float32) float32 { return ((b.ay*t+b.by)*t + b.cy) * t }
func (b unitBezier) sampleDX(t float32) float32 {
	return (3*b.ax*t+2*b.bx)*t + b.cx
}

// solveX finds the curve parameter whose x is x. Newton's method converges
// quickly on most curves; bisection covers flat derivatives.
func (b unitBezier) solveX(x float32) float32 {
	t := x
	for i := 0; i < newtonIterations; i++ {
		dx := b.sampleX(t) - x
		if math32.Abs(dx) < bezierEpsilon {
			return t
		}
		d := b.sampleDX(t)
		if math32.Abs(d) < bezierEpsilon {
			break
		}
		t -= dx / d
	}

	lo, hi := float32(0), float32(1)
	t = x
	if t < lo {
		return lo
	}
	if t > hi {
		return hi
	}
	for lo < hi {
		v := b.sampleX(t)
		if math32.Abs(v-x) < bezierEpsilon {
			return t
		}
		if x > v {
			lo = t
		} else {
			hi = t
		}
		t = (hi-lo)/2 + lo
		if hi-lo < bezierEpsilon {
			break
		}
	}
	return t
}

// Common CSS curves.
var (
	Ease      = CubicBezier(0.25, 0.1, 0.25, 1)
	EaseIn    = CubicBezier(0.42, 0, 1, 1)
	EaseOut   = CubicBezier(0, 0, 0.58, 1)
	EaseInOut = CubicBezier(0.42, 0, 0.58, 1)
)
