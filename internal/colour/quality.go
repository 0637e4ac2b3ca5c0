package colour

import (
	"fmt"
	"strconv"
	"strings"
)

// Quality is the sampling stride used during extraction: every Quality-th
// pixel is inspected. Lower is slower and more precise.
type Quality int

// Qualities offered by the accuracy selector.
const (
	QualityExhaustive Quality = 1
	QualityBalanced   Quality = 3
	QualityCoarse     Quality = 10
)

// IsValid reports whether q is one of the selector qualities.
func (q Quality) IsValid() bool {
	switch q {
	case QualityExhaustive, QualityBalanced, QualityCoarse:
		return true
	}
	return false
}

// Accuracy is the index of the three-way accuracy selector.
type Accuracy int

const (
	AccuracyHigh   Accuracy = 0
	AccuracyMedium Accuracy = 1
	AccuracyLow    Accuracy = 2
)

// DefaultAccuracy is the selector position used when nothing is chosen.
const DefaultAccuracy = AccuracyMedium

// Quality maps a selector index to a sampling quality.
// Indices past the last position map to the coarsest quality.
func (a Accuracy) Quality() (Quality, error) {
	switch {
	case a < 0:
		return 0, fmt.Errorf("invalid accuracy index %d", int(a))
	case a == AccuracyHigh:
		return QualityExhaustive, nil
	case a == AccuracyMedium:
		return QualityBalanced, nil
	default:
		return QualityCoarse, nil
	}
}

// String returns the selector label.
func (a Accuracy) String() string {
	switch a {
	case AccuracyHigh:
		return "high"
	case AccuracyMedium:
		return "medium"
	case AccuracyLow:
		return "low"
	default:
		return strconv.Itoa(int(a))
	}
}

// ParseAccuracy accepts a selector label (high, medium, low) or index.
func ParseAccuracy(s string) (Accuracy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return AccuracyHigh, nil
	case "medium", "":
		return AccuracyMedium, nil
	case "low":
		return AccuracyLow, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid accuracy: %s (valid: high, medium, low)", s)
	}
	return Accuracy(n), nil
}

// AccuracyFor returns the selector index that yields q.
func AccuracyFor(q Quality) (Accuracy, bool) {
	switch q {
	case QualityExhaustive:
		return AccuracyHigh, true
	case QualityBalanced:
		return AccuracyMedium, true
	case QualityCoarse:
		return AccuracyLow, true
	}
	return 0, false
}
