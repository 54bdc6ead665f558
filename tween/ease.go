// Package tween animates float values over time.
package tween

import (
	"fmt"

	"github.com/chewxy/math32"
)

// EaseFunc maps linear progress in [0, 1] to eased progress. Most curves
// return 0 at 0 and 1 at 1; Back and Elastic overshoot in between.
type EaseFunc func(t float32) float32

func Linear(t float32) float32 { return t }

func InSine(t float32) float32    { return 1 - math32.Cos(t*math32.Pi/2) }
func OutSine(t float32) float32   { return math32.Sin(t * math32.Pi / 2) }
func InOutSine(t float32) float32 { return -(math32.Cos(math32.Pi*t) - 1) / 2 }

func InQuad(t float32) float32  { return t * t }
func OutQuad(t float32) float32 { return 1 - (1-t)*(1-t) }
func InOutQuad(t float32) float32 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math32.Pow(-2*t+2, 2)/2
}

func InCubic(t float32) float32  { return t * t * t }
func OutCubic(t float32) float32 { return 1 - math32.Pow(1-t, 3) }
func InOutCubic(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math32.Pow(-2*t+2, 3)/2
}

func InQuart(t float32) float32  { return t * t * t * t }
func OutQuart(t float32) float32 { return 1 - math32.Pow(1-t, 4) }
func InOutQuart(t float32) float32 {
	if t < 0.5 {
		return 8 * t * t * t * t
	}
	return 1 - math32.Pow(-2*t+2, 4)/2
}

func InExpo(t float32) float32 {
	if t == 0 {
		return 0
	}
	return math32.Pow(2, 10*t-10)
}

func OutExpo(t float32) float32 {
	if t == 1 {
		return 1
	}
	return 1 - math32.Pow(2, -10*t)
}

func InOutExpo(t float32) float32 {
	switch {
	case t == 0:
		return 0
	case t == 1:
		return 1
	case t < 0.5:
		return math32.Pow(2, 20*t-10) / 2
	}
	return (2 - math32.Pow(2, -20*t+10)) / 2
}

const (
	backC1 = 1.70158
	backC2 = backC1 * 1.525
	backC3 = backC1 + 1
)

func InBack(t float32) float32  { return backC3*t*t*t - backC1*t*t }
func OutBack(t float32) float32 { return 1 + backC3*math32.Pow(t-1, 3) + backC1*math32.Pow(t-1, 2) }
func InOutBack(t float32) float32 {
	if t < 0.5 {
		return math32.Pow(2*t, 2) * ((backC2+1)*2*t - backC2) / 2
	}
	return (math32.Pow(2*t-2, 2)*((backC2+1)*(t*2-2)+backC2) + 2) / 2
}

const (
	elasticC4 = 2 * math32.Pi / 3
	elasticC5 = 2 * math32.Pi / 4.5
)

func InElastic(t float32) float32 {
	if t == 0 || t == 1 {
		return t
	}
	return -math32.Pow(2, 10*t-10) * math32.Sin((t*10-10.75)*elasticC4)
}

func OutElastic(t float32) float32 {
	if t == 0 || t == 1 {
		return t
	}
	return math32.Pow(2, -10*t)*math32.Sin((t*10-0.75)*elasticC4) + 1
}

func InOutElastic(t float32) float32 {
	switch {
	case t == 0 || t == 1:
		return t
	case t < 0.5:
		return -(math32.Pow(2, 20*t-10) * math32.Sin((20*t-11.125)*elasticC5)) / 2
	}
	return math32.Pow(2, -20*t+10)*math32.Sin((20*t-11.125)*elasticC5)/2 + 1
}

func OutBounce(t float32) float32 {
	const (
		n1 = 7.5625
		d1 = 2.75
	)
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	}
	t -= 2.625 / d1
	return n1*t*t + 0.984375
}

func InBounce(t float32) float32 { return 1 - OutBounce(1-t) }
func InOutBounce(t float32) float32 {
	if t < 0.5 {
		return (1 - OutBounce(1-2*t)) / 2
	}
	return (1 + OutBounce(2*t-1)) / 2
}

var eases = map[string]EaseFunc{
	"linear":         Linear,
	"in_sine":        InSine,
	"out_sine":       OutSine,
	"in_out_sine":    InOutSine,
	"in_quad":        InQuad,
	"out_quad":       OutQuad,
	"in_out_quad":    InOutQuad,
	"in_cubic":       InCubic,
	"out_cubic":      OutCubic,
	"in_out_cubic":   InOutCubic,
	"in_quart":       InQuart,
	"out_quart":      OutQuart,
	"in_out_quart":   InOutQuart,
	"in_expo":        InExpo,
	"out_expo":       OutExpo,
	"in_out_expo":    InOutExpo,
	"in_back":        InBack,
	"out_back":       OutBack,
	"in_out_back":    InOutBack,
	"in_elastic":     InElastic,
	"out_elastic":    OutElastic,
	"in_out_elastic": InOutElastic,
	"in_bounce":      InBounce,
	"out_bounce":     OutBounce,
	"in_out_bounce":  InOutBounce,
}

// EaseByName returns the curve registered as name, e.g. "in_out_cubic".
func EaseByName(name string) (EaseFunc, error) {
	if f, ok := eases[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("tween: unknown ease %q", name)
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
