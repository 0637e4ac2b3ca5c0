package colour

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// DeltaE returns the CIE76 colour difference between a and b on the usual
// 0-100 lightness scale.
func DeltaE(a, b RGB) float64 {
	return toColorful(a).DistanceLab(toColorful(b)) * 100
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Dedupe removes repeated colours while keeping first occurrences in order.
// With a positive tolerance, a colour within tolerance (DeltaE) of an
// already kept colour is dropped as well.
func Dedupe(colors []RGB, tolerance float64) []RGB {
	out := make([]RGB, 0, len(colors))
	seen := make(map[RGB]struct{}, len(colors))

	for _, c := range colors {
		if _, dup := seen[c]; dup {
			continue
		}
		if tolerance > 0 && nearAny(c, out, tolerance) {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func nearAny(c RGB, kept []RGB, tolerance float64) bool {
	for _, k := range kept {
		if DeltaE(c, k) <= tolerance {
			return true
		}
	}
	return false
}
