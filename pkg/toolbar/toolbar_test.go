package toolbar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/zenith-terminal/zenith/pkg/drawing"
	"github.com/zenith-terminal/zenith/pkg/interact"
	"github.com/zenith-terminal/zenith/pkg/toolbar/mocks"
	"github.com/zenith-terminal/zenith/pkg/types"
)

var _ Editor = (*interact.Controller)(nil)

func newTestDrawing(t drawing.Type) drawing.Drawing {
	var second *drawing.Anchor
	if t.IsTwoPoint() {
		second = &drawing.Anchor{Time: 1700003100, Price: 110}
	}

	d := drawing.New(t, drawing.Anchor{Time: 1700001600, Price: 100}, second, types.ThemeDark)
	d.ID = 1
	return d
}

func TestApply(t *testing.T) {
	d := newTestDrawing(drawing.TypeTrendline)

	tests := []struct {
		name   string
		action Action
		check  func(t *testing.T, got drawing.Drawing)
	}{
		{
			name:   "color",
			action: SetColor("#ff0000"),
			check:  func(t *testing.T, got drawing.Drawing) { assert.Equal(t, "#ff0000", got.Color) },
		},
		{
			name:   "opacity",
			action: SetOpacity(40),
			check:  func(t *testing.T, got drawing.Drawing) { assert.Equal(t, 40, got.Opacity) },
		},
		{
			name:   "width",
			action: SetWidth(4),
			check:  func(t *testing.T, got drawing.Drawing) { assert.Equal(t, 4, got.Width) },
		},
		{
			name:   "style",
			action: SetStyle(drawing.LineStyleDotted),
			check:  func(t *testing.T, got drawing.Drawing) { assert.Equal(t, drawing.LineStyleDotted, got.Style) },
		},
		{
			name:   "extend",
			action: SetExtendLeft(true),
			check: func(t *testing.T, got drawing.Drawing) {
				assert.True(t, got.ExtendLeft)
				assert.False(t, got.ExtendRight)
			},
		},
		{
			name:   "stats",
			action: SetShowStats(true),
			check:  func(t *testing.T, got drawing.Drawing) { assert.True(t, got.ShowStats) },
		},
		{
			name:   "lock",
			action: ToggleLock(),
			check:  func(t *testing.T, got drawing.Drawing) { assert.True(t, got.Locked) },
		},
		{
			name:   "price2",
			action: SetPrice2(125.5),
			check: func(t *testing.T, got drawing.Drawing) {
				assert.Equal(t, 125.5, got.Second.Price)
				assert.Equal(t, d.Second.Time, got.Second.Time)
				assert.Equal(t, d.First, got.First)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(d, tt.action)
			require.NoError(t, err)
			tt.check(t, got)
			assert.Equal(t, d.ID, got.ID)
		})
	}

	assert.Equal(t, "#b2b5be", d.Color, "the input is never modified")
}

func TestApply_Rejected(t *testing.T) {
	d := newTestDrawing(drawing.TypeTrendline)

	got, err := Apply(d, SetWidth(9))
	assert.Error(t, err)
	assert.Equal(t, d, got)

	_, err = Apply(d, SetColor("red"))
	assert.Error(t, err)

	_, err = Apply(d, SetFibBackground(false))
	assert.ErrorIs(t, err, ErrControlUnavailable)

	_, err = Apply(newTestDrawing(drawing.TypeRay), SetExtendRight(true))
	assert.ErrorIs(t, err, ErrControlUnavailable)

	_, err = Apply(newTestDrawing(drawing.TypePriceRange), SetColor("#ff0000"))
	assert.ErrorIs(t, err, ErrControlUnavailable)

	_, err = Apply(newTestDrawing(drawing.TypeVerticalLine), SetPrice1(120))
	assert.ErrorIs(t, err, ErrControlUnavailable)
}

func TestApply_Locked(t *testing.T) {
	d := newTestDrawing(drawing.TypeRectangle)
	d.Locked = true

	got, err := Apply(d, SetPrice1(500))
	require.NoError(t, err)
	assert.Equal(t, d, got, "geometry edits are ignored while locked")

	got, err = Apply(d, SetColor("#00ff00"))
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", got.Color)

	got, err = Apply(got, ToggleLock())
	require.NoError(t, err)
	assert.False(t, got.Locked)

	got, err = Apply(got, SetPrice1(500))
	require.NoError(t, err)
	assert.Equal(t, 500.0, got.First.Price)
}

func TestApply_Fibonacci(t *testing.T) {
	d := newTestDrawing(drawing.TypeFibonacci)

	got, err := Apply(d, SetFibLevelVisible(2, false))
	require.NoError(t, err)
	assert.False(t, got.FibSettings.Levels[2].Visible)
	assert.True(t, d.FibSettings.Levels[2].Visible)

	got, err = Apply(got, SetFibLevelColor(4, "#123456"))
	require.NoError(t, err)
	assert.Equal(t, "#123456", got.FibSettings.Levels[4].Color)

	got, err = Apply(got, SetFibExtend(false, true))
	require.NoError(t, err)
	assert.True(t, got.FibSettings.ExtendRight)

	got, err = Apply(got, SetFibBackground(false))
	require.NoError(t, err)
	assert.False(t, got.FibSettings.ShowBackground)

	_, err = Apply(got, SetFibLevelColor(9, "#123456"))
	assert.Error(t, err)

	_, err = Apply(got, SetFibLevelColor(1, "blue"))
	assert.Error(t, err)

	_, err = Apply(got, SetWidth(3))
	assert.ErrorIs(t, err, ErrControlUnavailable)
}

func TestMerge(t *testing.T) {
	d := newTestDrawing(drawing.TypeTrendline)
	d.ExtendLeft = true

	got, err := Merge(d, []byte(`{"color":"#00ff00","width":3,"extendLeft":null}`))
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", got.Color)
	assert.Equal(t, 3, got.Width)
	assert.False(t, got.ExtendLeft)

	_, err = Merge(d, []byte(`{"id":5}`))
	assert.Error(t, err)

	_, err = Merge(d, []byte(`{"width":0}`))
	assert.Error(t, err)

	_, err = Merge(d, []byte(`{"color":`))
	assert.Error(t, err)

	_, err = Merge(newTestDrawing(drawing.TypeRay), []byte(`{"showStats":true}`))
	assert.ErrorIs(t, err, ErrControlUnavailable)

	_, err = Merge(d, []byte(`{"fibSettings":{"showBackground":true}}`))
	assert.ErrorIs(t, err, ErrControlUnavailable)

	d.Locked = true
	got, err = Merge(d, []byte(`{"p1":1,"t2":"1700000100","color":"#ffffff"}`))
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", got.Color)
	assert.True(t, d.SameGeometry(got))
}

func TestToolbar(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	editor := mocks.NewMockEditor(mockCtrl)

	d := newTestDrawing(drawing.TypeTrendline)
	editor.EXPECT().Selected().Return(d, true).AnyTimes()

	editor.EXPECT().ReplaceDrawing(gomock.Any()).DoAndReturn(func(got drawing.Drawing) error {
		assert.Equal(t, drawing.LineStyleDashed, got.Style)
		return nil
	})

	tb := New(editor)
	assert.Equal(t, drawing.ConfigFor(drawing.TypeTrendline).Controls(), tb.Controls())
	require.NoError(t, tb.Do(SetStyle(drawing.LineStyleDashed)))

	// a no-op edit does not reach the editor
	require.NoError(t, tb.Do(SetColor(d.Color)))

	assert.Error(t, tb.Merge([]byte(`{"width":7}`)))

	editor.EXPECT().DeleteSelected().Return(true)
	assert.NoError(t, tb.Delete())
}

func TestToolbar_NoSelection(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	editor := mocks.NewMockEditor(mockCtrl)
	editor.EXPECT().Selected().Return(drawing.Drawing{}, false).AnyTimes()

	tb := New(editor)
	assert.Nil(t, tb.Controls())
	assert.ErrorIs(t, tb.Do(SetWidth(3)), ErrNoSelection)
	assert.ErrorIs(t, tb.Delete(), ErrNoSelection)
}

func TestToolbar_Controller(t *testing.T) {
	candles := make(types.CandleSlice, 20)
	for i := range candles {
		candles[i] = types.Candle{Time: 1700000100 + int64(i)*300, Open: 100, High: 120, Low: 80, Close: 110}
	}

	c := interact.New(nil)
	c.Resize(875, 435)
	c.SetCandles(candles)
	c.SetTool(interact.Tool(drawing.TypeHorizontalLine))
	c.Click(200, 200)

	all := c.Drawings()
	require.Len(t, all, 1)
	c.Select(all[0].ID)

	tb := New(c)
	require.NoError(t, tb.Do(SetColor("#ff9800")))
	require.NoError(t, tb.Do(SetPrice1(101)))

	got, ok := c.Drawing(all[0].ID)
	require.True(t, ok)
	assert.Equal(t, "#ff9800", got.Color)
	assert.Equal(t, 101.0, got.First.Price)

	require.NoError(t, tb.Delete())
	assert.Empty(t, c.Drawings())
}
