package cli

import (
	"fmt"
	"io"

	"github.com/jmylchreest/paleta/internal/extraction"
)

// messages is the English catalogue for orchestrator message keys.
var messages = map[extraction.MessageKey]string{
	extraction.MessageNoImageLoaded:      "No image is loaded. Open an image before extracting colours.",
	extraction.MessageExtractionFailed:   "Colour extraction failed.",
	extraction.MessageQuantizationFailed: "The image could not be quantised. Try a different image or accuracy.",
	extraction.MessageNoColorsExtracted:  "There are no extracted colours to save.",
	extraction.MessageInvalidParameters:  "The extraction settings are out of range.",
}

// Message returns the text for key, or the key itself when unknown.
func Message(key extraction.MessageKey) string {
	if m, ok := messages[key]; ok {
		return m
	}
	return string(key)
}

// stderrNotifier writes notifier messages to a stream and remembers that it
// did, so the same failure is not printed twice.
type stderrNotifier struct {
	w        io.Writer
	notified bool
}

func (n *stderrNotifier) Notify(key extraction.MessageKey) {
	n.notified = true
	fmt.Fprintf(n.w, "paleta: %s\n", Message(key))
}

// report wraps err so Execute does not print it again when the notifier
// already has.
func (n *stderrNotifier) report(err error) error {
	if err == nil || !n.notified {
		return err
	}
	return &reportedError{err: err}
}
