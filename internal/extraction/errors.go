package extraction

import (
	"errors"

	"github.com/jmylchreest/paleta/internal/colour"
)

// Errors surfaced by the orchestrator. All are user-recoverable.
var (
	ErrNoImageLoaded     = errors.New("no image loaded")
	ErrExtractionFailed  = errors.New("extraction failed")
	ErrNoColorsExtracted = errors.New("no colours extracted")
	ErrInvalidParameters = errors.New("invalid extraction parameters")
)

// ErrorKind classifies orchestrator failures for the notifier.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindNoImageLoaded
	KindExtractionFailed
	KindNoColorsExtracted
	KindQuantizationFailed
	KindInvalidParameters
)

// MessageKey identifies a user-facing message. Formatting belongs to the
// Notifier.
type MessageKey string

const (
	MessageNoImageLoaded      MessageKey = "no-image-loaded"
	MessageExtractionFailed   MessageKey = "extraction-failed"
	MessageNoColorsExtracted  MessageKey = "no-colors-extracted"
	MessageQuantizationFailed MessageKey = "quantization-failed"
	MessageInvalidParameters  MessageKey = "invalid-parameters"
)

// KindOf classifies err. Quantization failures take precedence over the
// extraction failure that wraps them.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNoImageLoaded):
		return KindNoImageLoaded
	case errors.Is(err, ErrNoColorsExtracted):
		return KindNoColorsExtracted
	case errors.Is(err, colour.ErrQuantizationFailed):
		return KindQuantizationFailed
	case errors.Is(err, ErrInvalidParameters):
		return KindInvalidParameters
	default:
		return KindExtractionFailed
	}
}

// MessageKey returns the notifier key for k.
func (k ErrorKind) MessageKey() MessageKey {
	switch k {
	case KindNoImageLoaded:
		return MessageNoImageLoaded
	case KindNoColorsExtracted:
		return MessageNoColorsExtracted
	case KindQuantizationFailed:
		return MessageQuantizationFailed
	case KindInvalidParameters:
		return MessageInvalidParameters
	default:
		return MessageExtractionFailed
	}
}

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNoImageLoaded:
		return "NoImageLoaded"
	case KindExtractionFailed:
		return "ExtractionFailed"
	case KindNoColorsExtracted:
		return "NoColorsExtracted"
	case KindQuantizationFailed:
		return "QuantizationFailed"
	case KindInvalidParameters:
		return "InvalidParameters"
	default:
		return "unknown"
	}
}
