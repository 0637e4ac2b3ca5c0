package colour

import (
	"fmt"
	"image/color"

	"github.com/cenkalti/dominantcolor"
	"github.com/ericpauley/go-quantize/quantize"
)

// MedianCutExtractor wraps the go-quantize median cut quantizer.
type MedianCutExtractor struct {
	quantizer quantize.MedianCutQuantizer
}

// NewMedianCutExtractor creates a new MedianCutExtractor.
func NewMedianCutExtractor() *MedianCutExtractor {
	return &MedianCutExtractor{quantizer: quantize.MedianCutQuantizer{}}
}

// Extract implements Extractor.
func (e *MedianCutExtractor) Extract(buf PixelBuffer, quality, count int) (*Palette, error) {
	if err := ValidateRequest(buf, quality, count); err != nil {
		return nil, err
	}

	img := samplesToImage(buf.Sample(quality))
	colors, err := guard(string(AlgorithmMedianCut), func() []RGB {
		quantized := e.quantizer.Quantize(make(color.Palette, 0, count), img)
		out := make([]RGB, 0, len(quantized))
		for _, c := range quantized {
			out = append(out, ToRGB(c))
		}
		return out
	})
	if err != nil {
		return nil, err
	}
	if len(colors) == 0 {
		return nil, fmt.Errorf("%w: %s produced no colours", ErrQuantizationFailed, AlgorithmMedianCut)
	}
	return NewPalette(truncate(colors, count)), nil
}

// DominantExtractor ranks colours by weight using cenkalti/dominantcolor.
type DominantExtractor struct{}

// NewDominantExtractor creates a new DominantExtractor.
func NewDominantExtractor() *DominantExtractor {
	return &DominantExtractor{}
}

// Extract implements Extractor.
func (e *DominantExtractor) Extract(buf PixelBuffer, quality, count int) (*Palette, error) {
	if err := ValidateRequest(buf, quality, count); err != nil {
		return nil, err
	}

	img := samplesToImage(buf.Sample(quality))
	colors, err := guard(string(AlgorithmDominant), func() []RGB {
		weighted := dominantcolor.FindWeight(img, count)
		out := make([]RGB, 0, len(weighted))
		for _, c := range weighted {
			out = append(out, RGB{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B})
		}
		return out
	})
	if err != nil {
		return nil, err
	}
	if len(colors) == 0 {
		return nil, fmt.Errorf("%w: %s produced no colours", ErrQuantizationFailed, AlgorithmDominant)
	}
	return NewPalette(truncate(colors, count)), nil
}
