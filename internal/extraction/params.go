package extraction

import (
	"fmt"
	"slices"

	"github.com/jmylchreest/paleta/internal/colour"
)

// Colour count bounds accepted by the orchestrator.
const (
	MinColorCount     = 1
	MaxColorCount     = 32
	DefaultColorCount = 5
)

// Parameters are the user-tunable extraction settings.
type Parameters struct {
	ColorCount int
	Quality    colour.Quality
}

// DefaultParameters returns a medium-accuracy, small palette configuration.
func DefaultParameters() Parameters {
	q, _ := colour.DefaultAccuracy.Quality()
	return Parameters{
		ColorCount: DefaultColorCount,
		Quality:    q,
	}
}

// Validate checks the colour count range and that quality is one of the
// selector values.
func (p Parameters) Validate() error {
	if p.ColorCount < MinColorCount || p.ColorCount > MaxColorCount {
		return fmt.Errorf("%w: colour count must be between %d and %d, got %d",
			ErrInvalidParameters, MinColorCount, MaxColorCount, p.ColorCount)
	}
	if !p.Quality.IsValid() {
		return fmt.Errorf("%w: quality must be one of 1, 3, 10, got %d", ErrInvalidParameters, p.Quality)
	}
	return nil
}

// SourceImage is raw pixel data plus an alpha flag. The orchestrator holds a
// reference and copies the pixels before each run.
type SourceImage struct {
	Pixels   []byte
	HasAlpha bool
}

// Format returns the pixel layout of the image.
func (s *SourceImage) Format() colour.PixelFormat {
	return colour.FormatFor(s.HasAlpha)
}

// snapshot copies the pixel data so a replaced image cannot change it.
func (s *SourceImage) snapshot() colour.PixelBuffer {
	return colour.PixelBuffer{Data: slices.Clone(s.Pixels), Format: s.Format()}
}

// PaletteRecord is the palette handed to the save collaborator.
type PaletteRecord struct {
	Colors []colour.RGB
}

// Palette returns the record as a colour.Palette.
func (r PaletteRecord) Palette() *colour.Palette {
	return colour.NewPalette(slices.Clone(r.Colors))
}
