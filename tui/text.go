package tui

import "github.com/mattn/go-runewidth"

// Width returns the display width of s
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Clip truncates s to at most maxWidth columns, marking the cut with …
func Clip(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "…")
}

// ClipLeft keeps the end of s, marking the cut with a leading …
func ClipLeft(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.TruncateLeft(s, runewidth.StringWidth(s)-maxWidth+1, "…")
}

// PadRight pads s with spaces to width columns
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
