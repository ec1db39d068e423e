package chart

import (
	"fmt"
	"math"
	"time"

	"github.com/leekchan/accounting"

	"github.com/zenith-terminal/zenith/pkg/scene"
	"github.com/zenith-terminal/zenith/pkg/types"
)

const (
	// PriceTickCount is the tick count hint of the price axis.
	PriceTickCount = 8

	// TimeTickCount is roughly how many time ticks fit in the viewport.
	TimeTickCount = 10

	axisTickPadding = 10
)

var crosshairDash = []float64{4, 4}

// TimeTicks returns the candle indices labelled on the time axis: every
// ceil(span/10) index starting from the first visible one.
func (e *Engine) TimeTicks() []float64 {
	if !e.Ready() {
		return nil
	}

	d := e.x.Domain()
	start, end := math.Min(d[0], d[1]), math.Max(d[0], d[1])
	step := math.Ceil((end - start) / TimeTickCount)
	if step < 1 {
		step = 1
	}

	var ticks []float64
	for i := math.Floor(start); i <= end; i += step {
		ticks = append(ticks, i)
	}
	return ticks
}

func (e *Engine) PriceTicks() []float64 {
	if !e.Ready() {
		return nil
	}
	return e.y.Ticks(PriceTickCount)
}

// TimeLabel formats the calendar time of a candle index for the time axis.
func (e *Engine) TimeLabel(i float64) string {
	t := time.Unix(e.IndexToTime(i), 0).UTC()
	if e.interval.IsDaily() {
		return t.Format("Jan 02")
	}
	return t.Format("15:04")
}

// FormatPrice formats a price with thousand separators and the given
// number of decimals.
func FormatPrice(p float64, precision int) string {
	return accounting.FormatNumberFloat64(p, precision, ",", ".")
}

// tickPrecision returns the number of decimals needed to tell apart ticks
// that are step apart.
func tickPrecision(ticks []float64) int {
	if len(ticks) < 2 {
		return 2
	}

	step := math.Abs(ticks[1] - ticks[0])
	if step == 0 {
		return 2
	}

	return int(math.Max(0, -math.Floor(math.Log10(step))))
}

// RenderGrid builds the horizontal and vertical grid lines.
func RenderGrid(e *Engine, s AppearanceSettings) []scene.Group {
	if !e.Ready() || !s.GridVisible {
		return nil
	}

	w, h := e.ChartWidth(), e.ChartHeight()
	style := scene.Stroke(s.GridColor, 1, 1, nil)

	var groups []scene.Group
	if s.HorzGridVisible {
		g := scene.Group{Key: "h-grid"}
		for _, p := range e.PriceTicks() {
			y := e.PriceToPixelY(p)
			g.AddLine(scene.Line{X1: 0, Y1: y, X2: w, Y2: y, Style: style})
		}
		groups = append(groups, g)
	}

	if s.VertGridVisible {
		g := scene.Group{Key: "v-grid"}
		for _, i := range e.TimeTicks() {
			x := e.IndexToPixelX(i)
			g.AddLine(scene.Line{X1: x, Y1: 0, X2: x, Y2: h, Style: style})
		}
		groups = append(groups, g)
	}

	return groups
}

// RenderAxes builds the price axis on the right edge and the time axis
// below the chart area.
func RenderAxes(e *Engine, s ScaleSettings) []scene.Group {
	if !e.Ready() {
		return nil
	}

	w, h := e.ChartWidth(), e.ChartHeight()
	font := scene.Font(s.TextColor, s.FontSize, 1)

	priceAxis := scene.Group{Key: "price-axis"}
	ticks := e.PriceTicks()
	precision := tickPrecision(ticks)
	for _, p := range ticks {
		priceAxis.AddText(scene.Text{
			X:     w + axisTickPadding,
			Y:     e.PriceToPixelY(p) + s.FontSize/3,
			Body:  FormatPrice(p, precision),
			Style: font,
		})
	}

	timeAxis := scene.Group{Key: "time-axis"}
	for _, i := range e.TimeTicks() {
		timeAxis.AddText(scene.Text{
			X:      e.IndexToPixelX(i),
			Y:      h + axisTickPadding + s.FontSize,
			Body:   e.TimeLabel(i),
			Anchor: scene.AnchorMiddle,
			Style:  font,
		})
	}

	return []scene.Group{priceAxis, timeAxis}
}

// RenderCrosshair builds the dashed crosshair through the chart point
// (x, y). Points outside the chart area yield nothing.
func RenderCrosshair(e *Engine, x, y float64, color string) []scene.Group {
	if !e.Ready() || !e.Contains(x, y) {
		return nil
	}

	style := scene.Stroke(color, 1, 1, crosshairDash)
	g := scene.Group{Key: "crosshair"}
	g.AddLine(scene.Line{X1: x, Y1: 0, X2: x, Y2: e.ChartHeight(), Style: style})
	g.AddLine(scene.Line{X1: 0, Y1: y, X2: e.ChartWidth(), Y2: y, Style: style})
	return []scene.Group{g}
}

// RenderWatermark builds the centered symbol and interval watermark. The
// size is a percentage of the container width.
func RenderWatermark(e *Engine, symbol string, s Settings) []scene.Group {
	a := s.Appearance
	if !e.Ready() || !a.WatermarkVisible || symbol == "" {
		return nil
	}

	size := e.width * a.WatermarkSize / 100
	opacity := a.WatermarkOpacity / 100
	cx, cy := e.ChartWidth()/2, e.ChartHeight()/2

	g := scene.Group{Key: "watermark"}
	g.AddText(scene.Text{
		X:      cx,
		Y:      cy,
		Body:   symbol,
		Anchor: scene.AnchorMiddle,
		Style:  scene.Font(s.Scales.TextColor, size, opacity),
	})
	g.AddText(scene.Text{
		X:      cx,
		Y:      cy + size/2,
		Body:   e.interval.String(),
		Anchor: scene.AnchorMiddle,
		Style:  scene.Font(s.Scales.TextColor, size/3, opacity),
	})
	return []scene.Group{g}
}

// LegendLine formats the OHLC readout of a candle.
func LegendLine(c types.Candle) string {
	return fmt.Sprintf("O %s  H %s  L %s  C %s",
		FormatPrice(c.Open, 2),
		FormatPrice(c.High, 2),
		FormatPrice(c.Low, 2),
		FormatPrice(c.Close, 2))
}

// RenderLegend builds the top-left legend for the hovered candle, or the
// last candle when nothing is hovered.
func RenderLegend(e *Engine, symbol string, hovered *types.Candle, s Settings) []scene.Group {
	if !e.Ready() || !s.Appearance.LegendVisible {
		return nil
	}

	c, _ := e.candles.Last()
	if hovered != nil {
		c = *hovered
	}

	closeColor := s.Symbol.DownColor
	if c.IsUp() {
		closeColor = s.Symbol.UpColor
	}

	g := scene.Group{Key: "legend"}
	g.AddText(scene.Text{
		X:     4,
		Y:     4 + s.Scales.FontSize,
		Body:  fmt.Sprintf("%s • %s", symbol, e.interval),
		Style: scene.Font(s.Scales.TextColor, s.Scales.FontSize+2, 1),
	})
	g.AddText(scene.Text{
		X:     4,
		Y:     8 + 2*s.Scales.FontSize,
		Body:  LegendLine(c),
		Style: scene.Font(closeColor, s.Scales.FontSize, 1),
	})
	return []scene.Group{g}
}

// Overlay carries the interactive parts of a frame.
type Overlay struct {
	Drawings []scene.Group
	Preview  []scene.Group

	// Pointer is the chart area position of the crosshair, if any.
	Pointer *scene.Point

	Hovered *types.Candle
}

// Compose lays out every layer of a frame. The returned frame is empty while
// the engine is not ready.
func Compose(e *Engine, symbol string, s Settings, o Overlay) *scene.Frame {
	f := &scene.Frame{Width: e.width, Height: e.height}
	if !e.Ready() {
		return f
	}

	f.Origin = scene.Point{X: e.margin.Left, Y: e.margin.Top}
	f.AreaWidth, f.AreaHeight = e.ChartWidth(), e.ChartHeight()
	f.Background = scene.Fill(s.Appearance.Background, 1)

	f.AddLayer(scene.LayerGrid, RenderGrid(e, s.Appearance)...)
	f.AddLayer(scene.LayerWatermark, RenderWatermark(e, symbol, s)...)
	f.AddLayer(scene.LayerCandles, RenderCandles(e, s.Symbol)...)
	f.AddLayer(scene.LayerDrawings, o.Drawings...)
	f.AddLayer(scene.LayerPreview, o.Preview...)
	f.AddLayer(scene.LayerAxes, RenderAxes(e, s.Scales)...)

	if o.Pointer != nil && s.Appearance.CrosshairVisible {
		f.AddLayer(scene.LayerCrosshair, RenderCrosshair(e, o.Pointer.X, o.Pointer.Y, s.Scales.TextColor)...)
	}

	f.AddLayer(scene.LayerLegend, RenderLegend(e, symbol, o.Hovered, s)...)
	return f
}
