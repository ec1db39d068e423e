package scale

import "math"

// Transform is a horizontal zoom transform: a pixel p maps to p*K + X.
// It is applied on top of an immutable base scale instead of mutating it.
type Transform struct {
	K float64 `json:"k"`
	X float64 `json:"x"`
}

var Identity = Transform{K: 1}

func (t Transform) IsIdentity() bool {
	return t.K == 1 && t.X == 0
}

func (t Transform) ApplyX(x float64) float64 {
	return x*t.K + t.X
}

func (t Transform) InvertX(px float64) float64 {
	return (px - t.X) / t.K
}

// ScaleAt multiplies the scale factor by factor, clamped to [min, max],
// keeping the pixel px fixed on screen.
func (t Transform) ScaleAt(factor, px, min, max float64) Transform {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return t
	}

	k := Clamp(t.K*factor, min, max)
	ratio := k / t.K
	return Transform{
		K: k,
		X: px - (px-t.X)*ratio,
	}
}

func (t Transform) Translate(dx float64) Transform {
	return Transform{K: t.K, X: t.X + dx}
}

// RescaleX derives the effective scale: the domain becomes the base domain
// values currently visible at the ends of the base range.
func (t Transform) RescaleX(base Linear) Linear {
	r := base.Range()
	return base.WithDomain([2]float64{
		base.Invert(t.InvertX(r[0])),
		base.Invert(t.InvertX(r[1])),
	})
}

func Clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}
