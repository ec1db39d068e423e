package types

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

type Direction int

const DirectionUp = 1
const DirectionNone = 0
const DirectionDown = -1

// Candle is one OHLCV sample; Time is the unix second at which the candle opens.
type Candle struct {
	Time   int64   `json:"time" yaml:"time"`
	Open   float64 `json:"open" yaml:"open"`
	High   float64 `json:"high" yaml:"high"`
	Low    float64 `json:"low" yaml:"low"`
	Close  float64 `json:"close" yaml:"close"`
	Volume float64 `json:"volume" yaml:"volume"`
}

// IsUp reports whether the candle closed at or above its open.
func (c Candle) IsUp() bool {
	return c.Close >= c.Open
}

func (c Candle) Direction() Direction {
	switch {
	case c.Close > c.Open:
		return DirectionUp
	case c.Close < c.Open:
		return DirectionDown
	}
	return DirectionNone
}

func (c Candle) GetChange() float64 {
	return c.Close - c.Open
}

func (c Candle) StartTime() time.Time {
	return time.Unix(c.Time, 0)
}

func (c Candle) String() string {
	return fmt.Sprintf("Candle %s O: %.4f H: %.4f L: %.4f C: %.4f V: %.4f",
		c.StartTime().UTC().Format(time.RFC3339), c.Open, c.High, c.Low, c.Close, c.Volume)
}

// CandleSlice is an ordered candle series with strictly increasing Time.
type CandleSlice []Candle

func (s CandleSlice) Len() int {
	return len(s)
}

func (s CandleSlice) Last() (Candle, bool) {
	if len(s) == 0 {
		return Candle{}, false
	}
	return s[len(s)-1], true
}

// BaseTime returns the open time of the first candle, or zero for an empty series.
func (s CandleSlice) BaseTime() int64 {
	if len(s) == 0 {
		return 0
	}
	return s[0].Time
}

func (s CandleSlice) Highs() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.High
	}
	return out
}

func (s CandleSlice) Lows() []float64 {
	out := make([]float64, len(s))
	for i, c := range s {
		out[i] = c.Low
	}
	return out
}

// PriceExtrema returns the lowest low and the highest high of the series.
func (s CandleSlice) PriceExtrema() (low, high float64, ok bool) {
	if len(s) == 0 {
		return 0, 0, false
	}

	return floats.Min(s.Lows()), floats.Max(s.Highs()), true
}

// Window returns the candles whose index i satisfies from <= i <= to.
// The bounds may be fractional, as produced by a zoomed x domain.
func (s CandleSlice) Window(from, to float64) CandleSlice {
	if from > to {
		from, to = to, from
	}

	start := int(math.Max(0, math.Ceil(from)))
	end := int(math.Min(float64(len(s)-1), math.Floor(to)))
	if start > end || start >= len(s) {
		return nil
	}

	return s[start : end+1]
}

// Validate checks that the series is ordered by strictly increasing time.
func (s CandleSlice) Validate() error {
	for i := 1; i < len(s); i++ {
		if s[i].Time <= s[i-1].Time {
			return fmt.Errorf("candle %d time %d is not after the previous candle time %d", i, s[i].Time, s[i-1].Time)
		}
	}
	return nil
}
