package drawing

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/zenith-terminal/zenith/pkg/types"
)

func TestType(t *testing.T) {
	assert.True(t, TypeFibonacci.IsTwoPoint())
	assert.True(t, TypePriceRange.IsTwoPoint())
	assert.False(t, TypeHorizontalLine.IsTwoPoint())
	assert.False(t, TypeVerticalLine.IsTwoPoint())
	assert.False(t, Type("circle").IsTwoPoint())

	assert.True(t, TypeRectangle.SupportsExtend())
	assert.False(t, TypePriceRange.SupportsExtend())

	assert.Equal(t, "Horizontal Line", TypeHorizontalLine.Label())
	assert.Equal(t, "Trendline", TypeTrendline.Label())
	assert.Equal(t, "Price Range", TypePriceRange.Label())

	_, err := ParseType("circle")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	second := Anchor{Time: 1600, Price: 110}
	d := New(TypeTrendline, Anchor{Time: 1000, Price: 100}, &second, types.ThemeDark)
	assert.Equal(t, "#b2b5be", d.Color)
	assert.Equal(t, 2, d.Width)
	assert.Equal(t, LineStyleSolid, d.Style)
	assert.Equal(t, 100, d.Opacity)
	assert.False(t, d.Locked)
	assert.Nil(t, d.FibSettings)

	second.Price = 0
	assert.Equal(t, 110.0, d.Second.Price, "the anchor is copied")

	d = New(TypeHorizontalLine, Anchor{Time: 1000, Price: 100}, &second, types.ThemeLight)
	assert.Equal(t, "#2a2e39", d.Color)
	assert.Nil(t, d.Second, "single point types drop the second anchor")

	d = New(TypeFibonacci, Anchor{Time: 1000, Price: 100}, &second, types.ThemeDark)
	require.NotNil(t, d.FibSettings)
	assert.True(t, d.FibSettings.ShowBackground)
	require.Len(t, d.FibSettings.Levels, 7)
	assert.Equal(t, FibLevel{Level: 0.236, Color: "#f44336", Visible: true}, d.FibSettings.Levels[1])
	assert.Equal(t, FibLevel{Level: 0.786, Color: "#9c27b0", Visible: true}, d.FibSettings.Levels[5])
}

func TestDrawing_Validate(t *testing.T) {
	d := New(TypeRectangle, Anchor{Time: 1000, Price: 100}, &Anchor{Time: 1600, Price: 110}, types.ThemeDark)
	d.ID = 1
	assert.NoError(t, d.Validate())

	d.Second = nil
	d.Width = 9
	d.Color = "blue"
	d.Opacity = -1
	err := d.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)

	h := New(TypeHorizontalLine, Anchor{Time: 1000, Price: math.NaN()}, nil, types.ThemeDark)
	h.ID = 2
	assert.Error(t, h.Validate())

	f := New(TypeFibonacci, Anchor{Time: 1000, Price: 100}, &Anchor{Time: 1600, Price: 110}, types.ThemeDark)
	f.ID = 3
	f.FibSettings.Levels[2].Level = 1.5
	assert.Error(t, f.Validate())
}

func TestDrawing_JSON(t *testing.T) {
	d := New(TypeTrendline, Anchor{Time: 1700000100, Price: 100.5}, &Anchor{Time: 1700001600, Price: 110}, types.ThemeDark)
	d.ID = 7
	d.ShowStats = true

	data, err := json.Marshal(d)
	require.NoError(t, err)

	var wire map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, "1700000100", wire["t1"])
	assert.Equal(t, "1700001600", wire["t2"])
	assert.Equal(t, 100.5, wire["p1"])
	assert.Equal(t, "trendline", wire["type"])
	assert.Equal(t, true, wire["showStats"])
	assert.NotContains(t, wire, "fibSettings")

	var back Drawing
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)

	h := New(TypeVerticalLine, Anchor{Time: 1700000100, Price: 100}, nil, types.ThemeDark)
	data, err = json.Marshal(h)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "t2")

	assert.Error(t, json.Unmarshal([]byte(`{"type":"trendline","t1":"abc","p1":1}`), &back))
	assert.Error(t, json.Unmarshal([]byte(`{"type":"trendline","t1":"1","p1":1,"t2":"2"}`), &back))
}

func TestDrawing_Anchors(t *testing.T) {
	d := New(TypeRectangle, Anchor{Time: 1000, Price: 100}, &Anchor{Time: 1600, Price: 110}, types.ThemeDark)
	c := d.Clone()
	c.SetAnchor(2, Anchor{Time: 1900, Price: 90})
	assert.Equal(t, int64(1600), d.Second.Time, "clones do not share anchors")
	assert.False(t, d.SameGeometry(c))

	a, ok := c.Anchor(2)
	assert.True(t, ok)
	assert.Equal(t, Anchor{Time: 1900, Price: 90}, a)

	h := New(TypeHorizontalLine, Anchor{Time: 1000, Price: 100}, nil, types.ThemeDark)
	_, ok = h.Anchor(2)
	assert.False(t, ok)
	h.SetAnchor(2, Anchor{Time: 5, Price: 5})
	assert.Nil(t, h.Second)
	assert.Len(t, h.Anchors(), 1)
}

func TestToolConfig(t *testing.T) {
	assert.True(t, ConfigFor(TypeTrendline).Allows(ControlStats))
	assert.False(t, ConfigFor(TypeRay).Allows(ControlExtend))
	assert.False(t, ConfigFor(TypeVerticalLine).Allows(ControlPrice1))
	assert.Equal(t, []Control{ControlLock, ControlDelete}, ConfigFor(TypePriceRange).Controls())
	assert.Empty(t, ConfigFor(Type("circle")).Controls())
}
