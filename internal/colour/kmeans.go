package colour

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
)

// KMeansExtractor implements color extraction using k-means clustering.
// A fixed seed keeps results reproducible.
type KMeansExtractor struct {
	maxIterations int
	convergence   float64
	maxSamples    int
	seed          int64
}

// NewKMeansExtractor creates a new KMeansExtractor with default settings.
func NewKMeansExtractor() *KMeansExtractor {
	return &KMeansExtractor{
		maxIterations: 20,
		convergence:   2.0,
		maxSamples:    5000,
		seed:          1,
	}
}

// Extract implements Extractor. Colours are ordered by cluster size,
// largest first.
func (e *KMeansExtractor) Extract(buf PixelBuffer, quality, count int) (*Palette, error) {
	if err := ValidateRequest(buf, quality, count); err != nil {
		return nil, err
	}

	pixels := buf.Sample(quality)
	if len(pixels) > e.maxSamples {
		// Thin evenly so the subset still spans the whole buffer.
		step := (len(pixels) + e.maxSamples - 1) / e.maxSamples
		thinned := make([]RGB, 0, e.maxSamples)
		for i := 0; i < len(pixels); i += step {
			thinned = append(thinned, pixels[i])
		}
		pixels = thinned
	}
	if len(pixels) == 0 {
		return nil, fmt.Errorf("%w: no pixels sampled", ErrQuantizationFailed)
	}

	// Get unique colors first
	uniqueColors := make([]RGB, 0, len(pixels))
	seen := make(map[RGB]bool)
	for _, p := range pixels {
		if !seen[p] {
			uniqueColors = append(uniqueColors, p)
			seen[p] = true
		}
	}

	// If we want more colors than unique colors exist, return all unique colors
	if count >= len(uniqueColors) {
		return NewPalette(uniqueColors), nil
	}

	rng := rand.New(rand.NewSource(e.seed))
	centroids, weights := e.kmeans(rng, pixels, count)

	order := make([]int, len(centroids))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case weights[a] > weights[b]:
			return -1
		case weights[a] < weights[b]:
			return 1
		}
		return 0
	})

	colors := make([]RGB, 0, len(centroids))
	for _, i := range order {
		if weights[i] == 0 {
			continue
		}
		c := centroids[i]
		colors = append(colors, RGB{R: clampChannel(c.R), G: clampChannel(c.G), B: clampChannel(c.B)})
	}

	return NewPalette(colors), nil
}

func clampChannel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

// point3D represents a point in 3D RGB color space.
type point3D struct {
	R, G, B float64
}

// distance calculates the Euclidean distance between two points in RGB space.
func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// kmeans performs k-means clustering on the pixel data.
// Returns centroids and their weights (relative cluster sizes).
func (e *KMeansExtractor) kmeans(rng *rand.Rand, pixels []RGB, k int) ([]point3D, []float64) {
	points := make([]point3D, len(pixels))
	for i, c := range pixels {
		points[i] = point3D{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
	}

	centroids := e.initializeCentroidsKMeansPlusPlus(rng, points, k)
	assignments := make([]int, len(points))

	for range e.maxIterations {
		changed := 0
		for i, point := range points {
			nearest := findNearestCentroid(point, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		// If very few assignments changed (< 1%), we've converged
		if float64(changed)/float64(len(points)) < 0.01 {
			break
		}

		newCentroids := recalculateCentroids(rng, points, assignments, k)

		totalMovement := 0.0
		for i := range centroids {
			totalMovement += centroids[i].distance(newCentroids[i])
		}
		centroids = newCentroids

		if totalMovement/float64(k) < e.convergence {
			break
		}
	}

	weights := make([]float64, k)
	for _, assignment := range assignments {
		weights[assignment]++
	}
	for i := range weights {
		weights[i] /= float64(len(assignments))
	}

	return centroids, weights
}

// initializeCentroidsKMeansPlusPlus picks initial centroids with probability
// proportional to squared distance from those already chosen.
func (e *KMeansExtractor) initializeCentroidsKMeansPlusPlus(rng *rand.Rand, points []point3D, k int) []point3D {
	if len(points) == 0 || k == 0 {
		return []point3D{}
	}

	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	for len(centroids) < k {
		distances := make([]float64, len(points))
		totalDistance := 0.0

		for i, point := range points {
			minDist := math.MaxFloat64
			for _, centroid := range centroids {
				minDist = math.Min(minDist, point.distance(centroid))
			}
			distances[i] = minDist * minDist
			totalDistance += distances[i]
		}

		if totalDistance == 0 {
			// Every point sits on a centroid; nudge a duplicate in.
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
			continue
		}

		target := rng.Float64() * totalDistance
		cumulative := 0.0
		chosen := len(points) - 1
		for i, dist := range distances {
			cumulative += dist
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}

	return centroids
}

// findNearestCentroid finds the index of the nearest centroid to a point.
func findNearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0

	for i, centroid := range centroids {
		if dist := point.distance(centroid); dist < minDist {
			minDist = dist
			nearest = i
		}
	}

	return nearest
}

// recalculateCentroids recalculates centroid positions based on assigned points.
func recalculateCentroids(rng *rand.Rand, points []point3D, assignments []int, k int) []point3D {
	sums := make([]point3D, k)
	counts := make([]int, k)

	for i, point := range points {
		cluster := assignments[i]
		sums[cluster].R += point.R
		sums[cluster].G += point.G
		sums[cluster].B += point.B
		counts[cluster]++
	}

	centroids := make([]point3D, k)
	for i := range k {
		if counts[i] > 0 {
			n := float64(counts[i])
			centroids[i] = point3D{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
		} else {
			// Empty cluster - reinitialize from the seeded source.
			centroids[i] = points[rng.Intn(len(points))]
		}
	}

	return centroids
}
