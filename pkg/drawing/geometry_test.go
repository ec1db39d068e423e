package drawing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenith-terminal/zenith/pkg/scene"
	"github.com/zenith-terminal/zenith/pkg/types"
)

const (
	testBase = int64(1700000100)
	testStep = int64(300)
)

// gridProjector shows candle indices [0, 50] over 800px, 16px per index,
// and prices [0, 400] over 400px.
type gridProjector struct{}

func (gridProjector) ChartWidth() float64  { return 800 }
func (gridProjector) ChartHeight() float64 { return 400 }

func (gridProjector) TimeToPixelX(t int64) float64 {
	return float64(t-testBase) / float64(testStep) * 16
}

func (gridProjector) PriceToPixelY(p float64) float64 {
	return 400 - p
}

func at(index int64, price float64) Anchor {
	return Anchor{Time: testBase + index*testStep, Price: price}
}

func newTestDrawing(t Type, first Anchor, second *Anchor) Drawing {
	d := New(t, first, second, types.ThemeDark)
	d.ID = 1
	return d
}

func assertFiniteLine(t *testing.T, l scene.Line) {
	for _, v := range []float64{l.X1, l.Y1, l.X2, l.Y2} {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "line has a non finite coordinate: %+v", l)
	}
}

func TestProject_TrendlineExtendRight(t *testing.T) {
	p := gridProjector{}
	second := at(10, 110)
	d := newTestDrawing(TypeTrendline, at(5, 100), &second)
	d.ExtendRight = true

	g := Project(d, p, Options{})
	require.Len(t, g.Group.Lines, 1)
	line := g.Group.Lines[0]

	assert.InDelta(t, p.TimeToPixelX(testBase+5*testStep), line.X1, 1e-9)
	assert.InDelta(t, 800, line.X2, 1e-9, "the right end sits on index 50")

	// slope 2 per index: 100 + 2*(50-5)
	assert.InDelta(t, p.PriceToPixelY(190), line.Y2, 1e-9)

	d.ExtendLeft = true
	line = Project(d, p, Options{}).Group.Lines[0]
	assert.InDelta(t, 0, line.X1, 1e-9)
	assert.InDelta(t, p.PriceToPixelY(90), line.Y1, 1e-9)
}

func TestProject_RayAlwaysExtendsRight(t *testing.T) {
	second := at(10, 110)
	d := newTestDrawing(TypeRay, at(5, 100), &second)

	line := Project(d, gridProjector{}, Options{}).Group.Lines[0]
	assert.InDelta(t, 800, line.X2, 1e-9)
	assert.InDelta(t, 400-190, line.Y2, 1e-9)
	assert.InDelta(t, 80, line.X1, 1e-9)
}

func TestProject_VerticalSegmentGuard(t *testing.T) {
	for _, tp := range []Type{TypeTrendline, TypeRay, TypeArrow} {
		second := at(5, 120)
		d := newTestDrawing(tp, at(5, 100), &second)
		d.ExtendLeft = true
		d.ExtendRight = true

		g := Project(d, gridProjector{}, Options{})
		require.Len(t, g.Group.Lines, 1, tp)

		line := g.Group.Lines[0]
		assertFiniteLine(t, line)
		assert.Equal(t, 80.0, line.X1)
		assert.Equal(t, 80.0, line.X2)
		assert.Equal(t, 0.0, line.Y1)
		assert.Equal(t, 400.0, line.Y2)
	}

	// without extension the zero width segment is drawn as is
	second := at(5, 120)
	d := newTestDrawing(TypeTrendline, at(5, 100), &second)
	line := Project(d, gridProjector{}, Options{}).Group.Lines[0]
	assertFiniteLine(t, line)
	assert.Equal(t, 300.0, line.Y1)
	assert.Equal(t, 280.0, line.Y2)
}

func TestProject_Arrow(t *testing.T) {
	second := at(10, 100)
	d := newTestDrawing(TypeArrow, at(5, 100), &second)

	g := Project(d, gridProjector{}, Options{})
	require.Len(t, g.Group.Polygons, 1)

	head := g.Group.Polygons[0]
	assert.Equal(t, scene.Point{X: 160, Y: 300}, head.Points[0], "the tip sits on the terminal point")
	assert.InDelta(t, 150, head.Points[1].X, 1e-9)
	assert.InDelta(t, 150, head.Points[2].X, 1e-9)
}

func TestProject_TrendlineStats(t *testing.T) {
	second := at(10, 110)
	d := newTestDrawing(TypeTrendline, at(5, 100), &second)
	d.ShowStats = true

	g := Project(d, gridProjector{}, Options{Theme: types.ThemeDark})
	require.Len(t, g.Group.Texts, 1)
	assert.Equal(t, "10.00 (10.00%)", g.Group.Texts[0].Body)
	assert.Equal(t, scene.Color(UpColor, 1), g.Group.Texts[0].Style.FontColor)

	// badge is centered on the midpoint, lifted by the stats offset
	require.Len(t, g.Group.Rects, 1)
	badge := g.Group.Rects[0]
	assert.InDelta(t, 120, badge.X+badge.W/2, 1e-9)
	assert.InDelta(t, 295-statsOffset, badge.Y+badge.H/2, 1e-9)

	d.ExtendRight = true
	assert.Empty(t, Project(d, gridProjector{}, Options{}).Group.Texts, "no stats on extended lines")

	d.ExtendRight = false
	d.Type = TypeRay
	assert.Empty(t, Project(d, gridProjector{}, Options{}).Group.Texts, "stats are trendline only")
}

func TestProject_HorizontalAndVertical(t *testing.T) {
	h := newTestDrawing(TypeHorizontalLine, at(12, 150), nil)
	g := Project(h, gridProjector{}, Options{Selected: true})
	require.Len(t, g.Group.Lines, 1)
	assert.Equal(t, scene.Line{X1: 0, Y1: 250, X2: 800, Y2: 250}, stripStyle(g.Group.Lines[0]))
	require.Len(t, g.Handles, 1)
	assert.Equal(t, Handle{Index: 1, X: 192, Y: 250}, g.Handles[0])

	v := newTestDrawing(TypeVerticalLine, at(12, 150), nil)
	g = Project(v, gridProjector{}, Options{})
	assert.Equal(t, scene.Line{X1: 192, Y1: 0, X2: 192, Y2: 400}, stripStyle(g.Group.Lines[0]))
	assert.Empty(t, g.Handles)
}

func stripStyle(l scene.Line) scene.Line {
	l.Style = scene.Line{}.Style
	return l
}

func TestProject_Selection(t *testing.T) {
	second := at(10, 110)
	d := newTestDrawing(TypeTrendline, at(5, 100), &second)

	plain := Project(d, gridProjector{}, Options{})
	assert.Equal(t, scene.Color("#b2b5be", 1), plain.Group.Lines[0].Style.StrokeColor)
	assert.Equal(t, 2.0, plain.Group.Lines[0].Style.StrokeWidth)
	assert.Empty(t, plain.Handles)
	assert.Empty(t, plain.Group.Circles)

	selected := Project(d, gridProjector{}, Options{Selected: true})
	assert.Equal(t, scene.Color(SelectionColor, 1), selected.Group.Lines[0].Style.StrokeColor)
	assert.Equal(t, SelectionWidth, selected.Group.Lines[0].Style.StrokeWidth)
	assert.Len(t, selected.Handles, 2)
	assert.Len(t, selected.Group.Circles, 2)

	// selection never changes geometry
	assert.Equal(t, stripStyle(plain.Group.Lines[0]), stripStyle(selected.Group.Lines[0]))

	d.Width = 4
	assert.Equal(t, 4.0, Project(d, gridProjector{}, Options{Selected: true}).Group.Lines[0].Style.StrokeWidth)

	d.Locked = true
	locked := Project(d, gridProjector{}, Options{Selected: true})
	assert.Empty(t, locked.Handles, "locked drawings have no handles")
	assert.Equal(t, uint8(102), locked.Group.Lines[0].Style.StrokeColor.A)

	d.Locked = false
	d.Style = LineStyleDotted
	assert.Equal(t, []float64{2, 4}, Project(d, gridProjector{}, Options{}).Group.Lines[0].Style.StrokeDashArray)
}

func TestProject_Rectangle(t *testing.T) {
	second := at(5, 100)
	d := newTestDrawing(TypeRectangle, at(10, 150), &second)

	g := Project(d, gridProjector{}, Options{})
	require.Len(t, g.Boxes, 1)
	box := g.Boxes[0]
	assert.Equal(t, 80.0, box.X)
	assert.Equal(t, 80.0, box.W)
	assert.Equal(t, 250.0, box.Y)
	assert.Equal(t, 50.0, box.H)
	assert.Equal(t, scene.Color("#b2b5be", 0.1), box.Style.FillColor)

	d.ExtendRight = true
	box = Project(d, gridProjector{}, Options{}).Boxes[0]
	assert.Equal(t, 80.0, box.X)
	assert.Equal(t, 720.0, box.W)

	d.ExtendLeft = true
	box = Project(d, gridProjector{}, Options{}).Boxes[0]
	assert.Equal(t, 0.0, box.X)
	assert.Equal(t, 800.0, box.W)
}

func fibLevelYs(g Geometry) []float64 {
	var ys []float64
	for _, l := range g.Group.Lines {
		ys = append(ys, l.Y1)
	}
	return ys
}

func TestProject_FibonacciMonotonic(t *testing.T) {
	for _, prices := range [][2]float64{{100, 200}, {200, 100}, {150, 150.5}} {
		second := at(20, prices[1])
		d := newTestDrawing(TypeFibonacci, at(10, prices[0]), &second)

		ys := fibLevelYs(Project(d, gridProjector{}, Options{}))
		require.Len(t, ys, len(FibRatios))

		rising := prices[1] > prices[0]
		for i := 1; i < len(ys); i++ {
			if rising {
				assert.Less(t, ys[i], ys[i-1], "higher prices sit higher on screen")
			} else {
				assert.Greater(t, ys[i], ys[i-1])
			}
		}
	}
}

func TestProject_Fibonacci(t *testing.T) {
	second := at(20, 200)
	d := newTestDrawing(TypeFibonacci, at(10, 100), &second)

	g := Project(d, gridProjector{}, Options{TextColor: "#9ca3af"})
	require.Len(t, g.Group.Rects, 1, "background")
	assert.Equal(t, scene.Color("#b2b5be", 0.05), g.Group.Rects[0].Style.FillColor)

	require.Len(t, g.Group.Texts, 7)
	assert.Equal(t, "61.8% (161.80)", g.Group.Texts[4].Body)
	assert.Equal(t, 320+fibLabelGap, g.Group.Texts[4].X)
	assert.Equal(t, scene.Color("#4caf50", 1), g.Group.Lines[2].Style.StrokeColor)

	d.FibSettings.Levels[3].Visible = false
	d.FibSettings.ShowBackground = false
	g = Project(d, gridProjector{}, Options{})
	assert.Len(t, g.Group.Lines, 6)
	assert.Empty(t, g.Group.Rects)
	require.Len(t, g.Boxes, 1, "the body stays grabbable without a background")

	// either extend source stretches the levels and drops the labels
	d.FibSettings.ExtendRight = true
	g = Project(d, gridProjector{}, Options{})
	assert.Equal(t, 800.0, g.Group.Lines[0].X2)
	assert.Empty(t, g.Group.Texts)

	d.FibSettings.ExtendRight = false
	d.ExtendLeft = true
	g = Project(d, gridProjector{}, Options{})
	assert.Equal(t, 0.0, g.Group.Lines[0].X1)
	assert.NotEmpty(t, g.Group.Texts)

	// without settings every level uses the drawing color
	d.FibSettings = nil
	g = Project(d, gridProjector{}, Options{Selected: true})
	assert.Len(t, g.Group.Lines, 7)
	assert.Equal(t, scene.Color(SelectionColor, 1), g.Group.Lines[0].Style.StrokeColor)
}

func TestProject_PriceRange(t *testing.T) {
	second := at(10, 90)
	d := newTestDrawing(TypePriceRange, at(5, 100), &second)

	g := Project(d, gridProjector{}, Options{})
	require.Len(t, g.Group.Rects, 2)
	assert.Equal(t, scene.Color(DownColor, 0.25), g.Group.Rects[0].Style.FillColor)

	require.Len(t, g.Group.Texts, 2)
	assert.Equal(t, "-10.00", g.Group.Texts[0].Body)
	assert.Equal(t, "-10.00%", g.Group.Texts[1].Body)
	assert.Equal(t, 120.0, g.Group.Texts[0].X, "the badge is centered")

	d.Second.Price = 120
	g = Project(d, gridProjector{}, Options{})
	assert.Equal(t, scene.Color(UpColor, 1), g.Group.Rects[1].Style.FillColor)
}

func TestProject_Pure(t *testing.T) {
	second := at(10, 110)
	d := newTestDrawing(TypeFibonacci, at(5, 100), &second)
	d.ExtendRight = true
	before := d.Clone()

	_ = Project(d, gridProjector{}, Options{Selected: true})
	assert.Equal(t, before, d)
}

func TestProjectAll(t *testing.T) {
	h := newTestDrawing(TypeHorizontalLine, at(1, 100), nil)
	v := newTestDrawing(TypeVerticalLine, at(1, 100), nil)
	v.ID = 2

	gs := ProjectAll([]Drawing{h, v}, gridProjector{}, 2, Options{})
	require.Len(t, gs, 2)
	assert.Empty(t, gs[0].Handles)
	assert.Len(t, gs[1].Handles, 1)
	assert.Equal(t, "2", gs[1].Group.Key)
}
