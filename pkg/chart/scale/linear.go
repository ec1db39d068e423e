package scale

import (
	"math"
)

// Linear is an immutable continuous linear map from a domain to a range.
// Deriving a new scale always returns a copy.
type Linear struct {
	domain [2]float64
	rng    [2]float64
}

func NewLinear(domain, rng [2]float64) Linear {
	return Linear{domain: domain, rng: rng}
}

func (s Linear) Domain() [2]float64 {
	return s.domain
}

func (s Linear) Range() [2]float64 {
	return s.rng
}

func (s Linear) WithDomain(domain [2]float64) Linear {
	s.domain = domain
	return s
}

func (s Linear) WithRange(rng [2]float64) Linear {
	s.rng = rng
	return s
}

// Apply maps a domain value to the range.
func (s Linear) Apply(v float64) float64 {
	d0, d1 := s.domain[0], s.domain[1]
	r0, r1 := s.rng[0], s.rng[1]
	if d0 == d1 {
		return (r0 + r1) / 2
	}
	return r0 + (v-d0)/(d1-d0)*(r1-r0)
}

// Invert maps a range value back to the domain.
func (s Linear) Invert(px float64) float64 {
	d0, d1 := s.domain[0], s.domain[1]
	r0, r1 := s.rng[0], s.rng[1]
	if r0 == r1 {
		return (d0 + d1) / 2
	}
	return d0 + (px-r0)/(r1-r0)*(d1-d0)
}

// Ticks returns roughly count human friendly values spanning the domain,
// each a multiple of 1, 2 or 5 times a power of ten.
func (s Linear) Ticks(count int) []float64 {
	start, stop := s.domain[0], s.domain[1]
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}

	if start == stop {
		return []float64{start}
	}

	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	i1, i2, inc := tickSpec(start, stop, float64(count))
	if i2 < i1 {
		return nil
	}

	n := int(i2 - i1 + 1)
	ticks := make([]float64, n)
	for i := 0; i < n; i++ {
		if inc < 0 {
			ticks[i] = (i1 + float64(i)) / -inc
		} else {
			ticks[i] = (i1 + float64(i)) * inc
		}
	}

	if reverse {
		for l, r := 0, len(ticks)-1; l < r; l, r = l+1, r-1 {
			ticks[l], ticks[r] = ticks[r], ticks[l]
		}
	}

	return ticks
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

func tickSpec(start, stop, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}

	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = math.Round(start / inc)
		i2 = math.Round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}

	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}

	return i1, i2, inc
}
