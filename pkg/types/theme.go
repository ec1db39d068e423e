package types

// Theme is the host color scheme; it only affects default stroke colors.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) IsDark() bool {
	return t != ThemeLight
}
