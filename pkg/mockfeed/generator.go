// Package mockfeed generates synthetic candle series and a live stream of
// updates for the dev server and demos.
package mockfeed

import (
	"math"
	"math/rand"
	"time"

	"github.com/zenith-terminal/zenith/pkg/types"
)

const (
	// StartPrice is the open of the first generated candle.
	StartPrice = 18000.0

	// Volatility bounds the open-to-close move of a new candle.
	Volatility = 20.0

	// UpdateVolatility bounds the close move of a tick on the forming candle.
	UpdateVolatility = 5.0

	// UpdateBias shifts tick moves upwards; a fair coin would be 0.5.
	UpdateBias = 0.2

	// MaxVolume is the exclusive upper bound of a generated volume.
	MaxVolume = 100000
)

// Rand is the random source used by the Generator. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Generator produces a random walk of candles at a fixed interval.
type Generator struct {
	Interval types.Interval

	rnd Rand
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(interval types.Interval, seed int64) *Generator {
	return NewGeneratorWithRand(interval, rand.New(rand.NewSource(seed)))
}

func NewGeneratorWithRand(interval types.Interval, rnd Rand) *Generator {
	return &Generator{Interval: interval, rnd: rnd}
}

// Series returns count candles ending just before now. The first candle opens
// count steps before now, aligned to the interval step.
func (g *Generator) Series(count int, now time.Time) types.CandleSlice {
	if count <= 0 {
		return nil
	}

	step := g.Interval.Seconds()
	start := now.Unix()/step*step - int64(count)*step

	candles := make(types.CandleSlice, 0, count)
	price := StartPrice
	for i := 0; i < count; i++ {
		c := g.candle(start+int64(i)*step, price)
		candles = append(candles, c)
		price = c.Close
	}

	return candles
}

// Next returns a new candle one step after last, opening at last's close.
func (g *Generator) Next(last types.Candle) types.Candle {
	return g.candle(last.Time+g.Interval.Seconds(), last.Close)
}

// Update moves the close of the forming candle and widens its range to
// contain the new close.
func (g *Generator) Update(last types.Candle) types.Candle {
	change := (g.rnd.Float64() - UpdateBias) * UpdateVolatility
	last.Close += change
	last.High = math.Max(last.High, last.Close)
	last.Low = math.Min(last.Low, last.Close)
	return last
}

func (g *Generator) candle(t int64, open float64) types.Candle {
	change := (g.rnd.Float64() - 0.5) * Volatility
	close := open + change
	high := math.Max(open, close) + g.rnd.Float64()*(Volatility/2)
	low := math.Min(open, close) - g.rnd.Float64()*(Volatility/2)
	volume := math.Floor(g.rnd.Float64() * MaxVolume)

	return types.Candle{
		Time:   t,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  close,
		Volume: volume,
	}
}
