// Package csvsource loads candle series from CSV files for offline replay.
package csvsource

import (
	"encoding/csv"
	"io"

	"github.com/zenith-terminal/zenith/pkg/types"
)

var _ CandleReader = (*CSVCandleReader)(nil)

// CSVCandleReader is a CandleReader that reads from a CSV file.
type CSVCandleReader struct {
	csv     *csv.Reader
	decoder CSVCandleDecoder

	// a first row that fails to decode its time is taken as a header
	header  bool
	started bool
}

// MakeCSVCandleReader is a factory method type that creates a new CSVCandleReader.
type MakeCSVCandleReader func(csv *csv.Reader) *CSVCandleReader

// NewCSVCandleReader creates a new CSVCandleReader reading unix second records.
func NewCSVCandleReader(csv *csv.Reader) *CSVCandleReader {
	return &CSVCandleReader{
		csv:     csv,
		decoder: UnixCSVCandleDecoder,
		header:  true,
	}
}

// NewCSVCandleReaderWithDecoder creates a new CSVCandleReader with the given decoder.
func NewCSVCandleReaderWithDecoder(csv *csv.Reader, decoder CSVCandleDecoder) *CSVCandleReader {
	return &CSVCandleReader{
		csv:     csv,
		decoder: decoder,
	}
}

// Read reads the next Candle from the underlying CSV data. Readers made by
// NewCSVCandleReader skip a leading header row.
func (r *CSVCandleReader) Read() (types.Candle, error) {
	for {
		rec, err := r.csv.Read()
		if err != nil {
			return types.Candle{}, err
		}

		c, err := r.decoder(rec)
		if err == ErrInvalidTimeFormat && r.header && !r.started {
			r.started = true
			continue
		}

		r.started = true
		return c, err
	}
}

// ReadAll reads all the Candles from the underlying CSV data.
func (r *CSVCandleReader) ReadAll() (types.CandleSlice, error) {
	var cs types.CandleSlice
	for {
		c, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}

	return cs, nil
}
