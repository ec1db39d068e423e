package csvsource

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/zenith-terminal/zenith/pkg/types"
)

var log = logrus.WithField("component", "csvsource")

// Header is the first row written by WriteCandles.
var Header = []string{"time", "open", "high", "low", "close", "volume"}

// WriteCandles writes the series under path/candles/<interval>/ and returns
// the file name.
func WriteCandles(path, symbol string, interval types.Interval, candles types.CandleSlice) (fileName string, err error) {
	if len(candles) == 0 {
		return "", fmt.Errorf("no candles to write")
	}

	from := time.Unix(candles[0].Time, 0).UTC()
	end := time.Unix(candles[len(candles)-1].Time, 0).UTC()
	to := ""
	if end.After(from.AddDate(0, 0, 1)) {
		to = "-" + end.Format("2006-01-02")
	}

	dir := filepath.Join(path, "candles", interval.String())
	fileName = filepath.Join(dir, fmt.Sprintf("%s-%s%s.csv", symbol, from.Format("2006-01-02"), to))

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	file, err := os.Create(fileName)
	if err != nil {
		return "", errors.Wrap(err, "failed to open file")
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to close file")
		}
	}()

	w := csv.NewWriter(file)
	if err := w.Write(Header); err != nil {
		return "", errors.Wrap(err, "writing header to file")
	}

	for _, c := range candles {
		row := []string{
			strconv.FormatInt(c.Time, 10),
			formatFloat(c.Open),
			formatFloat(c.High),
			formatFloat(c.Low),
			formatFloat(c.Close),
			formatFloat(c.Volume),
		}
		if err := w.Write(row); err != nil {
			return "", errors.Wrap(err, "writing record to file")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.Wrap(err, "flushing records")
	}

	return fileName, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
