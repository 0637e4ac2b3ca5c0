package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/paleta/internal/colour"
)

const swatchWidth = 8

// formatPalette renders colours in one of the supported output formats.
// Swatches are only drawn for the line-oriented formats.
func formatPalette(palette *colour.Palette, format string, preview bool) (string, error) {
	switch format {
	case "hex":
		return formatLines(palette, preview, colour.RGB.Hex), nil
	case "rgb":
		return formatLines(palette, preview, colour.RGB.String), nil
	case "json":
		data, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	case "table":
		return formatTable(palette), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json, table)", format)
	}
}

func formatLines(palette *colour.Palette, preview bool, label func(colour.RGB) string) string {
	var b strings.Builder
	for _, c := range palette.All() {
		if preview {
			b.WriteString(colour.FormatWithSwatch(c, label(c), swatchWidth))
		} else {
			b.WriteString(label(c))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func formatTable(palette *colour.Palette) string {
	table := NewTable([]string{"#", "HEX", "RGB", "LUMINANCE"})
	for i, c := range palette.All() {
		table.AddRow([]string{
			strconv.Itoa(i + 1),
			c.Hex(),
			fmt.Sprintf("%d, %d, %d", c.R, c.G, c.B),
			strconv.FormatFloat(c.Luminance(), 'f', 3, 64),
		})
	}
	return table.Render()
}
