package csvsource

import (
	"encoding/csv"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/zenith-terminal/zenith/pkg/types"
)

// CandleReader is an interface for reading candlesticks.
type CandleReader interface {
	Read() (types.Candle, error)
	ReadAll() (types.CandleSlice, error)
}

// ReadCandlesFromCSV reads all the .csv files in a given directory or a single file into a candle series.
// Wraps a default CSVCandleReader with the unix seconds decoder for convenience.
func ReadCandlesFromCSV(path string) (types.CandleSlice, error) {
	return ReadCandlesFromCSVWithDecoder(path, MakeCSVCandleReader(NewCSVCandleReader))
}

// ReadCandlesFromCSVWithDecoder permits using a custom CSVCandleReader. The
// result is sorted by time with duplicate periods collapsed.
func ReadCandlesFromCSVWithDecoder(path string, maker MakeCSVCandleReader) (types.CandleSlice, error) {
	var candles types.CandleSlice

	err := filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".csv" {
			return nil
		}
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		//nolint:errcheck // Read ops only so safe to ignore err return
		defer file.Close()
		reader := maker(csv.NewReader(file))
		newCandles, err := reader.ReadAll()
		if err != nil {
			return errors.Wrapf(err, "read %s", path)
		}
		candles = append(candles, newCandles...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	candles = types.DedupCandles(types.SortCandlesAscending(candles))
	log.Debugf("loaded %d candles from %s", len(candles), path)
	return candles, nil
}
