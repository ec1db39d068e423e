package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCandles() CandleSlice {
	return CandleSlice{
		{Time: 1000, Open: 10, High: 12, Low: 9, Close: 11},
		{Time: 1300, Open: 11, High: 15, Low: 10, Close: 10.5},
		{Time: 1600, Open: 10.5, High: 11, Low: 7, Close: 8},
		{Time: 1900, Open: 8, High: 9, Low: 7.5, Close: 8},
	}
}

func TestCandleDirection(t *testing.T) {
	candles := testCandles()
	assert.Equal(t, Direction(DirectionUp), candles[0].Direction())
	assert.Equal(t, Direction(DirectionDown), candles[1].Direction())
	assert.Equal(t, Direction(DirectionNone), candles[3].Direction())

	// a flat candle counts as up for coloring
	assert.True(t, candles[3].IsUp())
	assert.False(t, candles[2].IsUp())
}

func TestCandleSlice_PriceExtrema(t *testing.T) {
	low, high, ok := testCandles().PriceExtrema()
	assert.True(t, ok)
	assert.Equal(t, 7.0, low)
	assert.Equal(t, 15.0, high)

	_, _, ok = CandleSlice{}.PriceExtrema()
	assert.False(t, ok)
}

func TestCandleSlice_Window(t *testing.T) {
	candles := testCandles()

	assert.Len(t, candles.Window(0, 4), 4)
	assert.Len(t, candles.Window(0.5, 2.5), 2)
	assert.Equal(t, int64(1300), candles.Window(0.5, 2.5)[0].Time)
	assert.Len(t, candles.Window(-10, 0), 1)
	assert.Len(t, candles.Window(5, 10), 0)
	assert.Len(t, candles.Window(2.2, 2.8), 0)
}

func TestCandleSlice_Validate(t *testing.T) {
	assert.NoError(t, testCandles().Validate())

	candles := testCandles()
	candles[2].Time = candles[1].Time
	assert.Error(t, candles.Validate())
}
