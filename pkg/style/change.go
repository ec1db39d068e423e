package style

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/leekchan/accounting"

	"github.com/zenith-terminal/zenith/pkg/types"
)

var (
	UpColor   = color.New(color.FgHiGreen)
	DownColor = color.New(color.FgHiRed)
	FlatColor = color.New(color.FgWhite)
)

func ChangeColor(change float64) *color.Color {
	switch {
	case change > 0:
		return UpColor
	case change < 0:
		return DownColor
	}
	return FlatColor
}

// ChangeSignString formats change with an explicit sign and thousands
// separators.
func ChangeSignString(change float64, precision int) string {
	s := accounting.FormatNumberFloat64(change, precision, ",", ".")
	if change > 0 {
		return "+" + s
	}
	return s
}

// CandleChange formats the open to close move of c, e.g. "+12.50 (+0.07%)",
// colored by direction.
func CandleChange(c types.Candle, precision int) string {
	change := c.GetChange()

	pct := 0.0
	if c.Open != 0 {
		pct = change / c.Open * 100
	}

	s := fmt.Sprintf("%s (%s%%)", ChangeSignString(change, precision), ChangeSignString(pct, 2))
	return ChangeColor(change).Sprint(s)
}
