package colour

import (
	"fmt"
	"math"
	"strings"
)

// ANSI escape codes for 24-bit terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	defaultWidth = 8
)

// Swatch returns a solid block of width cells painted with c.
func Swatch(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	return background(c) + strings.Repeat(" ", width) + ansiReset
}

// SwatchWithText centres text on a block painted with c, in black or white
// depending on which reads better.
func SwatchWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	fg := RGB{R: 255, G: 255, B: 255}
	if c.Luminance() > 0.5 {
		fg = RGB{}
	}

	display := text
	if len(text) > width {
		display = text[:width]
	} else if len(text) < width {
		pad := (width - len(text)) / 2
		display = strings.Repeat(" ", pad) + text + strings.Repeat(" ", width-len(text)-pad)
	}

	return background(c) + foreground(fg) + display + ansiReset
}

// FormatWithSwatch renders a swatch followed by label.
func FormatWithSwatch(c RGB, label string, width int) string {
	return fmt.Sprintf("%s %s", Swatch(c, width), label)
}

// Luminance returns the WCAG relative luminance of c in [0,1].
func (c RGB) Luminance() float64 {
	return 0.2126*linear(c.R) + 0.7152*linear(c.G) + 0.0722*linear(c.B)
}

func linear(v uint8) float64 {
	f := float64(v) / 255.0
	if f <= 0.03928 {
		return f / 12.92
	}
	return math.Pow((f+0.055)/1.055, 2.4)
}

func background(c RGB) string {
	return fmt.Sprintf("%s%d;%d;%dm", ansiBgPrefix, c.R, c.G, c.B)
}

func foreground(c RGB) string {
	return fmt.Sprintf("%s%d;%d;%dm", ansiFgPrefix, c.R, c.G, c.B)
}
