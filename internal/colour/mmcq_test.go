package colour

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
)

var (
	red  = RGB{R: 255}
	blue = RGB{B: 255}
)

// alternating builds n pixels cycling through cs in the given format.
func alternating(format PixelFormat, n int, cs ...RGB) PixelBuffer {
	data := make([]byte, 0, n*format.Stride())
	for i := range n {
		c := cs[i%len(cs)]
		data = append(data, c.R, c.G, c.B)
		if format == FormatRGBA {
			data = append(data, byte(i*37))
		}
	}
	return PixelBuffer{Data: data, Format: format}
}

func randomBuffer(seed int64, format PixelFormat, pixels int) PixelBuffer {
	rng := rand.New(rand.NewSource(seed))
	data := make([]byte, pixels*format.Stride())
	rng.Read(data)
	return PixelBuffer{Data: data, Format: format}
}

func closeTo(a, b RGB, tol int) bool {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) <= tol && d(a.G, b.G) <= tol && d(a.B, b.B) <= tol
}

func TestMMCQRedBlueCoarse(t *testing.T) {
	buf := alternating(FormatRGB, 12, red, blue)

	palette, err := NewMMCQExtractor().Extract(buf, int(QualityCoarse), 5)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if palette.Len() == 0 || palette.Len() > 5 {
		t.Fatalf("Extract() returned %d colours, want 1..5", palette.Len())
	}
	if distinct := Dedupe(palette.Colors, 0); len(distinct) > 2 {
		t.Errorf("Extract() returned %d distinct colours, want at most 2", len(distinct))
	}
	for _, c := range palette.Colors {
		if !closeTo(c, red, 8) && !closeTo(c, blue, 8) {
			t.Errorf("colour %v is neither red nor blue", c)
		}
	}
}

func TestMMCQRedBlueExhaustive(t *testing.T) {
	buf := alternating(FormatRGB, 12, red, blue)

	palette, err := NewMMCQExtractor().Extract(buf, int(QualityExhaustive), 5)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	want := []RGB{blue, red}
	if !slices.Equal(palette.Colors, want) {
		t.Errorf("Extract() = %v, want %v", palette.Colors, want)
	}
}

func TestMMCQSingleColourAverages(t *testing.T) {
	buf := alternating(FormatRGB, 12, red, blue)

	palette, err := NewMMCQExtractor().Extract(buf, 1, 1)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	want := RGB{R: 128, G: 0, B: 128}
	if palette.Len() != 1 || palette.Colors[0] != want {
		t.Errorf("Extract() = %v, want [%v]", palette.Colors, want)
	}
}

func TestMMCQSkipsAlpha(t *testing.T) {
	green := RGB{G: 200}
	buf := alternating(FormatRGBA, 16, green)

	palette, err := NewMMCQExtractor().Extract(buf, 1, 4)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if palette.Len() != 1 || palette.Colors[0] != green {
		t.Errorf("Extract() = %v, want [%v]", palette.Colors, green)
	}
}

func TestMMCQBounds(t *testing.T) {
	extractor := NewMMCQExtractor()

	for _, format := range []PixelFormat{FormatRGB, FormatRGBA} {
		buf := randomBuffer(42, format, 4000)
		for _, quality := range []Quality{QualityExhaustive, QualityBalanced, QualityCoarse} {
			for count := 1; count <= 24; count++ {
				palette, err := extractor.Extract(buf, int(quality), count)
				if err != nil {
					t.Fatalf("Extract(%s, q=%d, n=%d) error = %v", format, quality, count, err)
				}
				if palette.Len() < 1 || palette.Len() > count {
					t.Errorf("Extract(%s, q=%d, n=%d) returned %d colours", format, quality, count, palette.Len())
				}
			}
		}
	}
}

func TestMMCQReachesCountOnDiverseInput(t *testing.T) {
	palette, err := NewMMCQExtractor().Extract(randomBuffer(7, FormatRGB, 5000), 1, 16)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if palette.Len() != 16 {
		t.Errorf("Extract() returned %d colours, want 16", palette.Len())
	}
}

func TestMMCQDeterministic(t *testing.T) {
	buf := randomBuffer(99, FormatRGBA, 3000)
	extractor := NewMMCQExtractor()

	first, err := extractor.Extract(buf, 3, 10)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	second, err := extractor.Extract(buf, 3, 10)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if !slices.Equal(first.Colors, second.Colors) {
		t.Errorf("Extract() not deterministic:\n%v\n%v", first.Colors, second.Colors)
	}
}

func TestMMCQRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name    string
		buf     PixelBuffer
		quality int
		count   int
	}{
		{"empty buffer", PixelBuffer{Format: FormatRGB}, 1, 5},
		{"ragged rgb", PixelBuffer{Data: make([]byte, 7), Format: FormatRGB}, 1, 5},
		{"ragged rgba", PixelBuffer{Data: make([]byte, 6), Format: FormatRGBA}, 1, 5},
		{"unknown format", PixelBuffer{Data: make([]byte, 12), Format: PixelFormat(9)}, 1, 5},
		{"zero quality", alternating(FormatRGB, 4, red), 0, 5},
		{"quality too coarse", alternating(FormatRGB, 4, red), MaxQuality + 1, 5},
		{"zero count", alternating(FormatRGB, 4, red), 1, 0},
		{"count too large", alternating(FormatRGB, 4, red), 1, MaxColorCount + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMMCQExtractor().Extract(tt.buf, tt.quality, tt.count)
			if !errors.Is(err, ErrQuantizationFailed) {
				t.Errorf("Extract() error = %v, want ErrQuantizationFailed", err)
			}
		})
	}
}
