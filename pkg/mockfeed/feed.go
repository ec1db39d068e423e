package mockfeed

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/zenith-terminal/zenith/pkg/types"
)

var log = logrus.WithField("component", "mockfeed")

const (
	DefaultUpdatesPerCandle = 10
	DefaultMaxCandles       = 1000
)

// Feed ticks the forming candle of a series and periodically closes it,
// paced by a rate limiter. Candles may be read from any goroutine while Run
// is active.
//
//go:generate callbackgen -type Feed
type Feed struct {
	// UpdatesPerCandle is the number of ticks after which a new candle opens.
	UpdatesPerCandle int

	// MaxCandles caps the retained history; older candles are dropped.
	MaxCandles int

	gen     *Generator
	limiter *rate.Limiter

	mu      sync.Mutex
	candles types.CandleSlice
	ticks   int

	candleCallbacks []func(candle types.Candle)
	updateCallbacks []func(candle types.Candle)
}

// NewFeed continues history with generator gen. An empty history starts with
// a single generated candle.
func NewFeed(gen *Generator, history types.CandleSlice, limiter *rate.Limiter) *Feed {
	candles := make(types.CandleSlice, len(history))
	copy(candles, history)
	if len(candles) == 0 {
		candles = gen.Series(1, time.Now())
	}

	return &Feed{
		UpdatesPerCandle: DefaultUpdatesPerCandle,
		MaxCandles:       DefaultMaxCandles,
		gen:              gen,
		limiter:          limiter,
		candles:          candles,
	}
}

// Candles returns a copy of the current series.
func (f *Feed) Candles() types.CandleSlice {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(types.CandleSlice, len(f.candles))
	copy(out, f.candles)
	return out
}

// Tick advances the series by one update. It returns the affected candle and
// whether it is a newly opened one. OnCandle fires for a new candle and
// OnUpdate for a change of the forming candle.
func (f *Feed) Tick() (types.Candle, bool) {
	f.mu.Lock()
	last := f.candles[len(f.candles)-1]
	f.ticks++

	opened := f.UpdatesPerCandle > 0 && f.ticks >= f.UpdatesPerCandle
	var c types.Candle
	if opened {
		f.ticks = 0
		c = f.gen.Next(last)
		f.candles = append(f.candles, c)
		if f.MaxCandles > 0 && len(f.candles) > f.MaxCandles {
			f.candles = append(types.CandleSlice(nil), f.candles[len(f.candles)-f.MaxCandles:]...)
		}
	} else {
		c = f.gen.Update(last)
		f.candles[len(f.candles)-1] = c
	}
	f.mu.Unlock()

	if opened {
		f.EmitCandle(c)
	} else {
		f.EmitUpdate(c)
	}

	return c, opened
}

// Run ticks the feed at the limiter's pace until ctx is done.
func (f *Feed) Run(ctx context.Context) error {
	log.Debugf("starting %s feed with %d candles", f.gen.Interval, len(f.Candles()))

	for {
		if err := f.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		f.Tick()
	}
}
