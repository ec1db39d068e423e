// Package style holds the terminal presentation used by the CLI: table
// styles and colored price changes.
package style

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/zenith-terminal/zenith/pkg/types"
)

func NewDefaultTableStyle() *table.Style {
	return NewTableStyle(types.ThemeDark)
}

// NewTableStyle returns a rounded table style whose row colors follow the
// chart theme.
func NewTableStyle(theme types.Theme) *table.Style {
	style := table.Style{
		Name:    "StyleRounded",
		Box:     table.StyleBoxRounded,
		Format:  table.FormatOptionsDefault,
		HTML:    table.DefaultHTMLOptions,
		Options: table.OptionsDefault,
		Title:   table.TitleOptionsDefault,
	}

	if theme.IsDark() {
		style.Color = table.ColorOptionsCyanWhiteOnBlack
		style.Color.Row = text.Colors{text.FgHiWhite, text.BgHiBlack}
		style.Color.RowAlternate = text.Colors{text.FgWhite, text.BgBlack}
	} else {
		style.Color = table.ColorOptionsBlackOnCyanWhite
	}

	return &style
}

// NewTable returns a table writer with the theme style and a title.
func NewTable(theme types.Theme, title string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(*NewTableStyle(theme))
	t.SetTitle(title)
	return t
}
