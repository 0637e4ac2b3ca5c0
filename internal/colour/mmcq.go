package colour

import (
	"fmt"
	"slices"
)

// Histogram parameters. Each channel is reduced to sigBits significant bits.
const (
	sigBits  = 5
	rShift   = 8 - sigBits
	histSide = 1 << sigBits
	histSize = 1 << (3 * sigBits)

	// fractByPopulation is the share of boxes split by population before
	// switching to population*volume.
	fractByPopulation = 0.75
)

func histIndex(r, g, b int) int {
	return r<<(2*sigBits) | g<<sigBits | b
}

// histogram counts sampled pixels per quantized cell and keeps the exact
// channel sums so box averages are not biased by quantization.
type histogram struct {
	count [histSize]int
	sumR  [histSize]int
	sumG  [histSize]int
	sumB  [histSize]int
}

func newHistogram(samples []RGB) *histogram {
	h := &histogram{}
	for _, c := range samples {
		i := histIndex(int(c.R>>rShift), int(c.G>>rShift), int(c.B>>rShift))
		h.count[i]++
		h.sumR[i] += int(c.R)
		h.sumG[i] += int(c.G)
		h.sumB[i] += int(c.B)
	}
	return h
}

// vbox is an axis-aligned box in the quantized colour cube, bounds inclusive.
type vbox struct {
	lo, hi     [3]int
	population int
	hist       *histogram
}

func (v *vbox) volume() int {
	return (v.hi[0] - v.lo[0] + 1) * (v.hi[1] - v.lo[1] + 1) * (v.hi[2] - v.lo[2] + 1)
}

// each calls fn for every populated cell inside the box.
func (v *vbox) each(fn func(idx int, pos [3]int)) {
	for r := v.lo[0]; r <= v.hi[0]; r++ {
		for g := v.lo[1]; g <= v.hi[1]; g++ {
			for b := v.lo[2]; b <= v.hi[2]; b++ {
				idx := histIndex(r, g, b)
				if v.hist.count[idx] > 0 {
					fn(idx, [3]int{r, g, b})
				}
			}
		}
	}
}

// shrink tightens the bounds to the populated cells and recounts.
// Returns false when the box holds no pixels.
func (v *vbox) shrink() bool {
	lo := [3]int{histSide, histSide, histSide}
	hi := [3]int{-1, -1, -1}
	pop := 0
	v.each(func(idx int, pos [3]int) {
		pop += v.hist.count[idx]
		for a := range 3 {
			lo[a] = min(lo[a], pos[a])
			hi[a] = max(hi[a], pos[a])
		}
	})
	if pop == 0 {
		return false
	}
	v.lo, v.hi, v.population = lo, hi, pop
	return true
}

func (v *vbox) average() RGB {
	var r, g, b int
	v.each(func(idx int, _ [3]int) {
		r += v.hist.sumR[idx]
		g += v.hist.sumG[idx]
		b += v.hist.sumB[idx]
	})
	n := v.population
	return RGB{
		R: uint8((r + n/2) / n),
		G: uint8((g + n/2) / n),
		B: uint8((b + n/2) / n),
	}
}

// split cuts a shrunk box at the population median of its longest axis.
// Boxes covering a single cell cannot be split.
func (v *vbox) split() (*vbox, *vbox, bool) {
	axis := 0
	for a := 1; a < 3; a++ {
		if v.hi[a]-v.lo[a] > v.hi[axis]-v.lo[axis] {
			axis = a
		}
	}
	if v.hi[axis] == v.lo[axis] {
		return nil, nil, false
	}

	counts := make([]int, v.hi[axis]-v.lo[axis]+1)
	v.each(func(idx int, pos [3]int) {
		counts[pos[axis]-v.lo[axis]] += v.hist.count[idx]
	})

	// Smallest cut with at least half the population on the left. The cut
	// never takes the last slice so both halves keep a populated edge.
	cut, acc := v.lo[axis], 0
	for i, n := range counts[:len(counts)-1] {
		acc += n
		cut = v.lo[axis] + i
		if acc*2 >= v.population {
			break
		}
	}

	left := &vbox{lo: v.lo, hi: v.hi, hist: v.hist}
	right := &vbox{lo: v.lo, hi: v.hi, hist: v.hist}
	left.hi[axis] = cut
	right.lo[axis] = cut + 1
	if !left.shrink() || !right.shrink() {
		return nil, nil, false
	}
	return left, right, true
}

// MMCQExtractor implements modified median cut quantization over a 5-bit
// per channel histogram. Output is deterministic for a given input.
type MMCQExtractor struct{}

// NewMMCQExtractor creates a new MMCQExtractor.
func NewMMCQExtractor() *MMCQExtractor {
	return &MMCQExtractor{}
}

// Extract implements Extractor.
func (e *MMCQExtractor) Extract(buf PixelBuffer, quality, count int) (*Palette, error) {
	if err := ValidateRequest(buf, quality, count); err != nil {
		return nil, err
	}

	samples := buf.Sample(quality)
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no pixels sampled", ErrQuantizationFailed)
	}

	hist := newHistogram(samples)
	root := &vbox{lo: [3]int{0, 0, 0}, hi: [3]int{histSide - 1, histSide - 1, histSide - 1}, hist: hist}
	if !root.shrink() {
		return nil, fmt.Errorf("%w: empty histogram", ErrQuantizationFailed)
	}

	boxes := []*vbox{root}
	byPopulation := func(v *vbox) int { return v.population }
	byPopulationVolume := func(v *vbox) int { return v.population * v.volume() }

	firstPass := int(fractByPopulation*float64(count) + 0.5)
	boxes = splitBoxes(boxes, max(firstPass, 1), byPopulation)
	boxes = splitBoxes(boxes, count, byPopulationVolume)

	slices.SortStableFunc(boxes, func(a, b *vbox) int {
		return byPopulationVolume(b) - byPopulationVolume(a)
	})

	colors := make([]RGB, len(boxes))
	for i, b := range boxes {
		colors[i] = b.average()
	}
	return NewPalette(colors), nil
}

// splitBoxes repeatedly splits the highest priority box until target boxes
// exist or nothing left can be split. Ties go to the earliest box.
func splitBoxes(boxes []*vbox, target int, priority func(*vbox) int) []*vbox {
	done := make(map[*vbox]bool)
	for len(boxes) < target {
		best := -1
		for i, b := range boxes {
			if done[b] {
				continue
			}
			if best < 0 || priority(b) > priority(boxes[best]) {
				best = i
			}
		}
		if best < 0 {
			break
		}

		left, right, ok := boxes[best].split()
		if !ok {
			done[boxes[best]] = true
			continue
		}
		boxes[best] = left
		boxes = append(boxes, right)
	}
	return boxes
}
