package core

// Color represents a foreground color for a screen cell.
// The platform maps it to a terminal style; ColorDefault leaves the cell unstyled.
type Color uint8

// Palette used by the board, HUD and overlays.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)

// ANSI returns the ANSI 256-color code for the color, or "" for the default.
func (c Color) ANSI() string {
	switch c {
	case ColorRed:
		return "196"
	case ColorGreen:
		return "46"
	case ColorYellow:
		return "226"
	case ColorBlue:
		return "33"
	case ColorMagenta:
		return "201"
	case ColorCyan:
		return "51"
	case ColorWhite:
		return "231"
	case ColorOrange:
		return "208"
	case ColorGray:
		return "244"
	default:
		return ""
	}
}
