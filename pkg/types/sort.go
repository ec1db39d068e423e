package types

import (
	"sort"
)

// SortCandlesAscending orders the candles by open time.
func SortCandlesAscending(candles CandleSlice) CandleSlice {
	sort.SliceStable(candles, func(i, j int) bool {
		return candles[i].Time < candles[j].Time
	})
	return candles
}

// DedupCandles drops candles sharing an open time with the previous one.
// The input must be sorted; the last candle of each run wins, as a later
// update of the same period.
func DedupCandles(candles CandleSlice) CandleSlice {
	if len(candles) < 2 {
		return candles
	}

	out := candles[:1]
	for _, c := range candles[1:] {
		if c.Time == out[len(out)-1].Time {
			out[len(out)-1] = c
			continue
		}
		out = append(out, c)
	}
	return out
}
