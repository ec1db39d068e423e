package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

type Interval string

// DefaultIntervalSeconds is the candle step used when the interval is not recognized.
const DefaultIntervalSeconds = 300

var Interval1m = Interval("1m")
var Interval5m = Interval("5m")
var Interval15m = Interval("15m")
var Interval1h = Interval("1h")
var IntervalDaily = Interval("D")

// SupportedIntervals maps the selectable timeframes to their candle step in seconds.
var SupportedIntervals = map[Interval]int64{
	Interval1m:    60,
	Interval5m:    60 * 5,
	Interval15m:   60 * 15,
	Interval1h:    60 * 60,
	IntervalDaily: 60 * 60 * 24,
}

// Seconds returns the candle step of the interval.
func (i Interval) Seconds() int64 {
	if s, ok := SupportedIntervals[i]; ok {
		return s
	}

	return DefaultIntervalSeconds
}

func (i Interval) Duration() time.Duration {
	return time.Duration(i.Seconds()) * time.Second
}

func (i Interval) IsDaily() bool {
	return i.Seconds() >= 60*60*24
}

func (i Interval) IsSupported() bool {
	_, ok := SupportedIntervals[i]
	return ok
}

func (i Interval) String() string {
	return string(i)
}

func (i *Interval) UnmarshalJSON(b []byte) (err error) {
	var a string
	err = json.Unmarshal(b, &a)
	if err != nil {
		return err
	}

	*i = Interval(a)
	return
}

// ParseInterval validates the given interval string against SupportedIntervals.
func ParseInterval(s string) (Interval, error) {
	i := Interval(s)
	if !i.IsSupported() {
		return i, fmt.Errorf("unsupported interval %q", s)
	}

	return i, nil
}

type IntervalSlice []Interval

func (s IntervalSlice) Sort() {
	sort.Slice(s, func(i, j int) bool {
		return s[i].Seconds() < s[j].Seconds()
	})
}

func (s IntervalSlice) StringSlice() (slice []string) {
	for _, interval := range s {
		slice = append(slice, interval.String())
	}
	return slice
}

// AllIntervals returns the supported intervals sorted by step.
func AllIntervals() IntervalSlice {
	var intervals IntervalSlice
	for i := range SupportedIntervals {
		intervals = append(intervals, i)
	}

	intervals.Sort()
	return intervals
}
