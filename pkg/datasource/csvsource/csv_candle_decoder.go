package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zenith-terminal/zenith/pkg/types"
)

// MetaTraderTimeFormat is the time format expected by the MetaTrader decoder when cols [0] and [1] are used.
const MetaTraderTimeFormat = "02/01/2006 15:04"

var (
	// ErrNotEnoughColumns is returned when the CSV price record does not have enough columns.
	ErrNotEnoughColumns = errors.New("not enough columns")

	// ErrInvalidTimeFormat is returned when the CSV price record does not have a valid time format.
	ErrInvalidTimeFormat = errors.New("cannot parse time string")

	// ErrInvalidPriceFormat is returned when the CSV price record does not have prices in expected format.
	ErrInvalidPriceFormat = errors.New("OHLC prices must be in valid decimal format")

	// ErrInvalidVolumeFormat is returned when the CSV price record does not have a valid volume format.
	ErrInvalidVolumeFormat = errors.New("volume must be in valid float format")
)

// CSVCandleDecoder is an extension point for CSVCandleReader to support custom file formats.
type CSVCandleDecoder func(record []string) (types.Candle, error)

// NewBinanceCSVCandleReader creates a new CSVCandleReader for Binance CSV files.
func NewBinanceCSVCandleReader(csv *csv.Reader) *CSVCandleReader {
	return &CSVCandleReader{
		csv:     csv,
		decoder: BinanceCSVCandleDecoder,
	}
}

// UnixCSVCandleDecoder decodes "time,open,high,low,close[,volume]" records
// with the time in unix seconds, the format written by WriteCandles.
func UnixCSVCandleDecoder(record []string) (types.Candle, error) {
	if len(record) < 5 {
		return types.Candle{}, ErrNotEnoughColumns
	}

	sec, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	if err != nil {
		return types.Candle{}, ErrInvalidTimeFormat
	}

	return decodeOHLCV(sec, record[1:])
}

// BinanceCSVCandleDecoder decodes a CSV record from Binance or Bybit, where
// the open time is given in unix milliseconds.
func BinanceCSVCandleDecoder(record []string) (types.Candle, error) {
	if len(record) < 5 {
		return types.Candle{}, ErrNotEnoughColumns
	}

	msec, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	if err != nil {
		return types.Candle{}, ErrInvalidTimeFormat
	}

	return decodeOHLCV(time.UnixMilli(msec).Unix(), record[1:])
}

// NewMetaTraderCSVCandleReader creates a new CSVCandleReader for MetaTrader CSV files.
func NewMetaTraderCSVCandleReader(csv *csv.Reader) *CSVCandleReader {
	csv.Comma = ';'
	return &CSVCandleReader{
		csv:     csv,
		decoder: MetaTraderCSVCandleDecoder,
	}
}

// MetaTraderCSVCandleDecoder decodes a CSV record from MetaTrader.
func MetaTraderCSVCandleDecoder(record []string) (types.Candle, error) {
	if len(record) < 6 {
		return types.Candle{}, ErrNotEnoughColumns
	}

	t, err := time.Parse(MetaTraderTimeFormat, fmt.Sprintf("%s %s", record[0], record[1]))
	if err != nil {
		return types.Candle{}, ErrInvalidTimeFormat
	}

	return decodeOHLCV(t.Unix(), record[2:])
}

// decodeOHLCV parses open, high, low, close and an optional volume column.
func decodeOHLCV(sec int64, cols []string) (types.Candle, error) {
	var prices [4]float64
	for i := range prices {
		v, err := strconv.ParseFloat(strings.TrimSpace(cols[i]), 64)
		if err != nil {
			return types.Candle{}, ErrInvalidPriceFormat
		}
		prices[i] = v
	}

	c := types.Candle{
		Time:  sec,
		Open:  prices[0],
		High:  prices[1],
		Low:   prices[2],
		Close: prices[3],
	}

	if len(cols) > 4 {
		v, err := strconv.ParseFloat(strings.TrimSpace(cols[4]), 64)
		if err != nil {
			return types.Candle{}, ErrInvalidVolumeFormat
		}
		c.Volume = v
	}

	return c, nil
}
