package colour

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrQuantizationFailed is returned when a pixel buffer cannot be quantized,
// either because it is malformed or because no palette could be produced.
var ErrQuantizationFailed = errors.New("quantization failed")

// PixelFormat describes the channel layout of a raw pixel buffer.
type PixelFormat int

const (
	// FormatRGB is 3 bytes per pixel: red, green, blue.
	FormatRGB PixelFormat = iota
	// FormatRGBA is 4 bytes per pixel: red, green, blue, alpha.
	FormatRGBA
)

// FormatFor returns the pixel format for an image with or without alpha.
func FormatFor(hasAlpha bool) PixelFormat {
	if hasAlpha {
		return FormatRGBA
	}
	return FormatRGB
}

// Stride returns the number of bytes per pixel.
func (f PixelFormat) Stride() int {
	if f == FormatRGBA {
		return 4
	}
	return 3
}

// String returns the format name.
func (f PixelFormat) String() string {
	switch f {
	case FormatRGB:
		return "rgb"
	case FormatRGBA:
		return "rgba"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}

// PixelBuffer is a raw interleaved pixel buffer.
type PixelBuffer struct {
	Data   []byte
	Format PixelFormat
}

// PixelCount returns the number of whole pixels in the buffer.
func (b PixelBuffer) PixelCount() int {
	return len(b.Data) / b.Format.Stride()
}

// Validate checks the buffer is non-empty and a whole number of pixels long.
func (b PixelBuffer) Validate() error {
	if b.Format != FormatRGB && b.Format != FormatRGBA {
		return fmt.Errorf("%w: unknown pixel format %d", ErrQuantizationFailed, int(b.Format))
	}
	if len(b.Data) == 0 {
		return fmt.Errorf("%w: empty pixel buffer", ErrQuantizationFailed)
	}
	if stride := b.Format.Stride(); len(b.Data)%stride != 0 {
		return fmt.Errorf("%w: buffer length %d is not a multiple of %d (%s)",
			ErrQuantizationFailed, len(b.Data), stride, b.Format)
	}
	return nil
}

// Sample de-interleaves every quality-th pixel into RGB values.
// Alpha, when present, is skipped.
func (b PixelBuffer) Sample(quality int) []RGB {
	if quality < 1 {
		quality = 1
	}
	stride := b.Format.Stride()
	n := b.PixelCount()

	samples := make([]RGB, 0, (n+quality-1)/quality)
	for i := 0; i < n; i += quality {
		off := i * stride
		samples = append(samples, RGB{R: b.Data[off], G: b.Data[off+1], B: b.Data[off+2]})
	}
	return samples
}

// samplesToImage lays samples out as a near-square opaque image for
// algorithms that only accept image.Image. Libraries that downscale by
// aspect ratio collapse a single row to zero height, so the width is
// ceil(sqrt(n)) and the tail of the last row repeats samples from the start.
func samplesToImage(samples []RGB) *image.NRGBA {
	n := len(samples)
	if n == 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	w := int(math.Ceil(math.Sqrt(float64(n))))
	h := (n + w - 1) / w

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range w * h {
		c := samples[i%n]
		off := i * 4
		img.Pix[off] = c.R
		img.Pix[off+1] = c.G
		img.Pix[off+2] = c.B
		img.Pix[off+3] = 255
	}
	return img
}
