package colour

import (
	"fmt"
)

const (
	// MaxColorCount is the largest palette any extractor will produce.
	MaxColorCount = 256

	// MaxQuality is the coarsest sampling stride accepted.
	MaxQuality = 30
)

// Extractor defines the interface for color extraction algorithms.
type Extractor interface {
	// Extract extracts at most count colours from buf, inspecting every
	// quality-th pixel. Failures wrap ErrQuantizationFailed.
	Extract(buf PixelBuffer, quality, count int) (*Palette, error)
}

// ExtractorFunc adapts a plain function to the Extractor interface.
type ExtractorFunc func(buf PixelBuffer, quality, count int) (*Palette, error)

// Extract calls f.
func (f ExtractorFunc) Extract(buf PixelBuffer, quality, count int) (*Palette, error) {
	return f(buf, quality, count)
}

// Algorithm represents the color extraction algorithm type.
type Algorithm string

const (
	// AlgorithmMMCQ uses modified median cut quantization. Deterministic.
	AlgorithmMMCQ Algorithm = "mmcq"

	// AlgorithmKMeans uses k-means clustering with a fixed seed.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmMedianCut uses the go-quantize median cut quantizer.
	AlgorithmMedianCut Algorithm = "mediancut"

	// AlgorithmDominant extracts the most dominant (frequent) colors.
	AlgorithmDominant Algorithm = "dominant"
)

// DefaultAlgorithm is used when none is configured.
const DefaultAlgorithm = AlgorithmMMCQ

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmMMCQ,
		AlgorithmKMeans,
		AlgorithmMedianCut,
		AlgorithmDominant,
	}
}

// Description returns a one-line summary of the algorithm.
func (a Algorithm) Description() string {
	switch a {
	case AlgorithmMMCQ:
		return "Modified median cut over a 5-bit histogram; deterministic and ordered by coverage"
	case AlgorithmKMeans:
		return "K-means clustering on sampled pixels with a fixed seed"
	case AlgorithmMedianCut:
		return "Median cut quantiser from go-quantize"
	case AlgorithmDominant:
		return "Weighted dominant colours from cenkalti/dominantcolor"
	default:
		return ""
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// NewExtractor creates a new Extractor based on the specified algorithm.
// Returns an error if the algorithm is not recognized.
func NewExtractor(alg Algorithm) (Extractor, error) {
	switch alg {
	case AlgorithmMMCQ:
		return NewMMCQExtractor(), nil
	case AlgorithmKMeans:
		return NewKMeansExtractor(), nil
	case AlgorithmMedianCut:
		return NewMedianCutExtractor(), nil
	case AlgorithmDominant:
		return NewDominantExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// ValidateRequest checks the arguments shared by every Extractor.
func ValidateRequest(buf PixelBuffer, quality, count int) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	if quality < 1 || quality > MaxQuality {
		return fmt.Errorf("%w: quality must be between 1 and %d, got %d", ErrQuantizationFailed, MaxQuality, quality)
	}
	if count < 1 {
		return fmt.Errorf("%w: color count must be at least 1, got %d", ErrQuantizationFailed, count)
	}
	if count > MaxColorCount {
		return fmt.Errorf("%w: color count too large: %d (maximum: %d)", ErrQuantizationFailed, count, MaxColorCount)
	}
	return nil
}

// ExtractorConfig holds configuration for color extraction.
type ExtractorConfig struct {
	Algorithm  Algorithm
	ColorCount int
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm:  DefaultAlgorithm,
		ColorCount: 5,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("invalid algorithm: %s", c.Algorithm)
	}
	if c.ColorCount < 1 {
		return fmt.Errorf("color count must be at least 1, got %d", c.ColorCount)
	}
	if c.ColorCount > MaxColorCount {
		return fmt.Errorf("color count too large: %d (maximum: %d)", c.ColorCount, MaxColorCount)
	}
	return nil
}

// truncate limits a library result to count colours.
func truncate(colors []RGB, count int) []RGB {
	if len(colors) > count {
		return colors[:count]
	}
	return colors
}

// guard runs fn and converts a panic inside a third-party quantizer into
// ErrQuantizationFailed.
func guard(name string, fn func() []RGB) (colors []RGB, err error) {
	defer func() {
		if r := recover(); r != nil {
			colors = nil
			err = fmt.Errorf("%w: %s: %v", ErrQuantizationFailed, name, r)
		}
	}()
	return fn(), nil
}
