package chart

import (
	"math"
	"strconv"

	"github.com/zenith-terminal/zenith/pkg/scene"
	"github.com/zenith-terminal/zenith/pkg/types"
)

const (
	// BandRatio is the share of a candle slot covered by the body.
	BandRatio = 0.7

	MinBodyHeight = 0.5
)

// Bandwidth returns the body width of one candle at the current zoom.
func (e *Engine) Bandwidth() float64 {
	return (e.IndexToPixelX(1) - e.IndexToPixelX(0)) * BandRatio
}

// RenderCandles builds one glyph group per candle, keyed by the candle
// time. Candles outside the visible band are hidden rather than dropped so
// that the key set only changes with the data.
func RenderCandles(e *Engine, s SymbolSettings) []scene.Group {
	if !e.Ready() {
		return nil
	}

	bw := e.Bandwidth()
	w := e.ChartWidth()

	groups := make([]scene.Group, 0, len(e.candles))
	for i, c := range e.candles {
		cx := e.IndexToPixelX(float64(i))
		groups = append(groups, candleGlyph(e, c, cx, bw, w, s))
	}

	return groups
}

func candleGlyph(e *Engine, c types.Candle, cx, bw, w float64, s SymbolSettings) scene.Group {
	g := scene.Group{
		Key:    strconv.FormatInt(c.Time, 10),
		Hidden: cx < -bw || cx > w+bw,
	}

	fill, border, wick := s.DownColor, s.BorderDownColor, s.WickDownColor
	if c.IsUp() {
		fill, border, wick = s.UpColor, s.BorderUpColor, s.WickUpColor
	}

	top := e.PriceToPixelY(math.Max(c.Open, c.Close))
	height := math.Abs(e.PriceToPixelY(c.Open) - e.PriceToPixelY(c.Close))
	if height < MinBodyHeight {
		height = MinBodyHeight
	}

	// the wick is split around the body since rects paint below lines
	wickStyle := scene.Stroke(wick, 1, 1, nil)
	g.AddLine(scene.Line{X1: cx, Y1: e.PriceToPixelY(c.High), X2: cx, Y2: top, Style: wickStyle})
	g.AddLine(scene.Line{X1: cx, Y1: top + height, X2: cx, Y2: e.PriceToPixelY(c.Low), Style: wickStyle})

	g.AddRect(scene.Rect{
		X:     cx - bw/2,
		Y:     top,
		W:     bw,
		H:     height,
		Style: scene.FillStroke(fill, 1, border, 1, 1),
	})

	return g
}
