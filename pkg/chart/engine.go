// Package chart implements the candlestick chart engine: the coordinate
// mapping between candle index, calendar time, price and pixels, the
// zoom/pan viewport and the layers built from it.
package chart

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/zenith-terminal/zenith/pkg/chart/scale"
	"github.com/zenith-terminal/zenith/pkg/types"
)

var log = logrus.WithField("component", "chart")

const (
	// InitialPricePadding is the share of the price span added above and
	// below the series when the data is laid out.
	InitialPricePadding = 0.12

	// AutoFitPricePadding is used when the price axis follows the visible
	// candles after a zoom or pan.
	AutoFitPricePadding = 0.15

	MinZoom = 0.1
	MaxZoom = 100.0
)

type Margin struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
}

// DefaultMargin leaves room for the price axis on the right and the time
// axis at the bottom.
var DefaultMargin = Margin{Top: 10, Right: 65, Bottom: 25, Left: 10}

// Viewport is the visible window of the chart, derived on every layout.
type Viewport struct {
	XDomain    [2]float64 `json:"xDomain"`
	YDomain    [2]float64 `json:"yDomain"`
	AutoPriced bool       `json:"autoPriced"`
}

// Engine owns the candle series, the container layout and the zoom
// transform. The base x scale maps [0, n] to [0, chartWidth] and is never
// mutated; the effective scale is derived from it through the transform.
type Engine struct {
	margin        Margin
	width, height float64

	candles  types.CandleSlice
	interval types.Interval

	transform  scale.Transform
	autoPriced bool

	base scale.Linear
	x    scale.Linear
	y    scale.Linear

	// yFitted is false until the price axis has been fitted to data once
	yFitted bool
}

func NewEngine() *Engine {
	return &Engine{
		margin:     DefaultMargin,
		interval:   types.Interval5m,
		transform:  scale.Identity,
		autoPriced: true,
	}
}

func (e *Engine) SetMargin(m Margin) {
	e.margin = m
	e.layout()
}

func (e *Engine) Margin() Margin {
	return e.margin
}

// SetCandles replaces the series. The zoom transform is kept so that live
// updates do not reset the viewport.
func (e *Engine) SetCandles(candles types.CandleSlice) {
	e.candles = candles
	e.layout()
}

func (e *Engine) Candles() types.CandleSlice {
	return e.candles
}

// Resize sets the container size in pixels.
func (e *Engine) Resize(width, height float64) {
	e.width = math.Max(0, width)
	e.height = math.Max(0, height)
	e.layout()
}

func (e *Engine) Size() (width, height float64) {
	return e.width, e.height
}

// SetInterval switches the candle step. Drawings are stored in calendar
// time, so they follow the new step on their next projection.
func (e *Engine) SetInterval(interval types.Interval) {
	e.interval = interval
}

func (e *Engine) Interval() types.Interval {
	return e.interval
}

func (e *Engine) Step() int64 {
	return e.interval.Seconds()
}

func (e *Engine) BaseTime() int64 {
	return e.candles.BaseTime()
}

// SetAutoPriced toggles whether the price axis follows the visible candles.
func (e *Engine) SetAutoPriced(v bool) {
	e.autoPriced = v
	if v {
		e.layout()
	}
}

func (e *Engine) AutoPriced() bool {
	return e.autoPriced
}

func (e *Engine) ChartWidth() float64 {
	return math.Max(0, e.width-e.margin.Left-e.margin.Right)
}

func (e *Engine) ChartHeight() float64 {
	return math.Max(0, e.height-e.margin.Top-e.margin.Bottom)
}

// Ready reports whether there is anything to lay out. While it is false every
// projection dependent operation is a no-op.
func (e *Engine) Ready() bool {
	return len(e.candles) > 0 && e.ChartWidth() > 0 && e.ChartHeight() > 0
}

func (e *Engine) Transform() scale.Transform {
	return e.transform
}

// SetTransform installs a transform, clamping its scale factor.
func (e *Engine) SetTransform(t scale.Transform) {
	if t.K <= 0 || math.IsNaN(t.K) || math.IsInf(t.K, 0) || math.IsNaN(t.X) || math.IsInf(t.X, 0) {
		return
	}

	t.K = scale.Clamp(t.K, MinZoom, MaxZoom)
	e.transform = t
	e.layout()
}

// ZoomAt multiplies the zoom factor keeping the chart x coordinate px fixed.
func (e *Engine) ZoomAt(factor, px float64) {
	if !e.Ready() {
		return
	}

	e.transform = e.transform.ScaleAt(factor, px, MinZoom, MaxZoom)
	e.layout()
}

// Pan shifts the viewport by dx chart pixels.
func (e *Engine) Pan(dx float64) {
	if !e.Ready() || dx == 0 || math.IsNaN(dx) || math.IsInf(dx, 0) {
		return
	}

	e.transform = e.transform.Translate(dx)
	e.layout()
}

// ResetZoom returns to the identity transform and refits the whole series.
func (e *Engine) ResetZoom() {
	e.transform = scale.Identity
	e.yFitted = false
	e.layout()
}

func (e *Engine) Viewport() Viewport {
	return Viewport{
		XDomain:    e.x.Domain(),
		YDomain:    e.y.Domain(),
		AutoPriced: e.autoPriced,
	}
}

func (e *Engine) XScale() scale.Linear {
	return e.x
}

func (e *Engine) YScale() scale.Linear {
	return e.y
}

func (e *Engine) layout() {
	if !e.Ready() {
		return
	}

	w, h := e.ChartWidth(), e.ChartHeight()
	e.base = scale.NewLinear([2]float64{0, float64(len(e.candles))}, [2]float64{0, w})
	e.x = e.transform.RescaleX(e.base)

	switch {
	case !e.yFitted || (e.autoPriced && e.transform.IsIdentity()):
		// the initial fit and the unzoomed auto fit cover the whole series
		e.fitPrice(e.candles, InitialPricePadding, h)
	case e.autoPriced:
		d := e.x.Domain()
		e.fitPrice(e.candles.Window(d[0], d[1]), AutoFitPricePadding, h)
	default:
		e.y = e.y.WithRange([2]float64{h, 0})
	}
}

func (e *Engine) fitPrice(candles types.CandleSlice, padding, h float64) {
	low, high, ok := candles.PriceExtrema()
	if !ok {
		// panned past the data, keep the current price window
		e.y = e.y.WithRange([2]float64{h, 0})
		return
	}

	pad := (high - low) * padding
	if pad == 0 {
		// a flat window still needs an invertible axis
		pad = math.Max(math.Abs(high), 1) * padding / 100
	}

	e.y = scale.NewLinear([2]float64{low - pad, high + pad}, [2]float64{h, 0})
	e.yFitted = true

	log.Debugf("price axis fitted to [%f, %f] over %d candles", low-pad, high+pad, len(candles))
}

// IndexToPixelX projects a (possibly fractional) candle index to a chart x.
func (e *Engine) IndexToPixelX(i float64) float64 {
	return e.x.Apply(i)
}

func (e *Engine) PixelToIndexX(x float64) float64 {
	return e.x.Invert(x)
}

func (e *Engine) PriceToPixelY(p float64) float64 {
	return e.y.Apply(p)
}

func (e *Engine) PixelToPriceY(y float64) float64 {
	return e.y.Invert(y)
}

// TimeToIndex converts a calendar time to a fractional candle index using
// the current step.
func (e *Engine) TimeToIndex(t int64) float64 {
	return float64(t-e.BaseTime()) / float64(e.Step())
}

func (e *Engine) IndexToTime(i float64) int64 {
	return e.BaseTime() + int64(math.Round(i*float64(e.Step())))
}

func (e *Engine) TimeToPixelX(t int64) float64 {
	return e.IndexToPixelX(e.TimeToIndex(t))
}

// PixelToTime returns the time of the candle slot nearest to the chart x.
// Slots past either end of the series are extrapolated by the step.
func (e *Engine) PixelToTime(x float64) int64 {
	return e.IndexToTime(math.Round(e.PixelToIndexX(x)))
}

// ClampedPixelToTime is PixelToTime with the index clamped to the series.
func (e *Engine) ClampedPixelToTime(x float64) int64 {
	idx := math.Round(e.PixelToIndexX(x))
	idx = scale.Clamp(idx, 0, float64(len(e.candles)-1))
	return e.IndexToTime(idx)
}

// CandleAt returns the candle nearest to the chart x, if any.
func (e *Engine) CandleAt(x float64) (types.Candle, bool) {
	if !e.Ready() {
		return types.Candle{}, false
	}

	idx := int(math.Round(e.PixelToIndexX(x)))
	if idx < 0 || idx >= len(e.candles) {
		return types.Candle{}, false
	}

	return e.candles[idx], true
}

// ToChart translates container coordinates to chart area coordinates.
func (e *Engine) ToChart(x, y float64) (float64, float64) {
	return x - e.margin.Left, y - e.margin.Top
}

// Contains reports whether the chart coordinate lies inside the chart area.
func (e *Engine) Contains(x, y float64) bool {
	return x >= 0 && x <= e.ChartWidth() && y >= 0 && y <= e.ChartHeight()
}
