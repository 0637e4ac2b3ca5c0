// Package extraction coordinates palette extraction runs for a loaded image.
//
// An Orchestrator belongs to a single owning goroutine: every exported method
// must be called from it, and completed runs come back to it through a
// Dispatcher rather than touching state from the worker goroutine. Each run
// carries a generation number and only the most recently started run may
// replace the results.
package extraction

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/paleta/internal/colour"
)

// State is the orchestrator's busy state.
type State int

const (
	StateIdle State = iota
	StateExtracting
)

// String returns the state name.
func (s State) String() string {
	if s == StateExtracting {
		return "extracting"
	}
	return "idle"
}

// Notifier shows user-facing messages. Implementations own the wording.
type Notifier interface {
	Notify(key MessageKey)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(key MessageKey)

// Notify calls f.
func (f NotifierFunc) Notify(key MessageKey) { f(key) }

// Saver runs the save flow for a palette. On success it calls onSaved,
// which may be invoked from any goroutine and is never awaited.
type Saver interface {
	SavePalette(record PaletteRecord, onSaved func())
}

// Completion is the outcome of one extraction run.
type Completion struct {
	Generation uint64
	Colors     []colour.RGB
	Err        error
}

// Orchestrator owns extraction parameters, the current image and the
// latest results.
type Orchestrator struct {
	extractor  colour.Extractor
	dispatcher Dispatcher
	notifier   Notifier
	saver      Saver
	logger     hclog.Logger
	spawn      func(func())
	tolerance  float64

	params     Parameters
	image      *SourceImage
	state      State
	generation uint64
	results    []colour.RGB
	resultsGen uint64
	saved      bool

	observers []*observer
}

// SetImage replaces the current image. A nil image unloads it. Extraction is
// not started.
func (o *Orchestrator) SetImage(img *SourceImage) {
	o.image = img
	if img == nil {
		o.logger.Debug("image unloaded")
		return
	}
	o.logger.Debug("image set", "bytes", len(img.Pixels), "format", img.Format())
}

// HasImage reports whether an image is loaded.
func (o *Orchestrator) HasImage() bool {
	return o.image != nil
}

// SetParameters validates and stores p. When an image is loaded a new run
// is started. Invalid parameters are rejected and leave state unchanged.
func (o *Orchestrator) SetParameters(p Parameters) error {
	if err := p.Validate(); err != nil {
		o.logger.Debug("rejected parameters", "colours", p.ColorCount, "quality", p.Quality, "error", err)
		return err
	}

	o.params = p
	o.logger.Debug("parameters set", "colours", p.ColorCount, "quality", p.Quality)

	if o.image == nil {
		return nil
	}
	_, err := o.StartExtraction()
	return err
}

// SetColorCount changes only the colour count.
func (o *Orchestrator) SetColorCount(n int) error {
	p := o.params
	p.ColorCount = n
	return o.SetParameters(p)
}

// SetAccuracy changes only the quality, using the accuracy selector mapping.
func (o *Orchestrator) SetAccuracy(a colour.Accuracy) error {
	q, err := a.Quality()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}
	p := o.params
	p.Quality = q
	return o.SetParameters(p)
}

// StartExtraction schedules a background run with a snapshot of the current
// image and parameters and returns its generation. Runs are not debounced;
// earlier runs still in flight will have their results discarded.
func (o *Orchestrator) StartExtraction() (uint64, error) {
	if o.image == nil {
		o.notify(KindNoImageLoaded)
		return 0, fmt.Errorf("cannot start extraction: %w", ErrNoImageLoaded)
	}

	o.generation++
	gen := o.generation
	o.state = StateExtracting
	o.saved = false

	buf := o.image.snapshot()
	quality := int(o.params.Quality)
	count := o.params.ColorCount

	o.logger.Debug("extraction started", "generation", gen, "colours", count, "quality", quality, "format", buf.Format)
	o.publish(Event{Kind: EventExtractionStarted, Generation: gen})

	extractor, dispatcher := o.extractor, o.dispatcher
	o.spawn(func() {
		c := run(extractor, buf, quality, count)
		c.Generation = gen
		dispatcher.Post(func() {
			_ = o.Complete(c)
		})
	})

	return gen, nil
}

// run executes the extractor, turning panics into a failed Completion.
func run(extractor colour.Extractor, buf colour.PixelBuffer, quality, count int) (c Completion) {
	defer func() {
		if r := recover(); r != nil {
			c = Completion{Err: fmt.Errorf("%w: extractor panic: %v", colour.ErrQuantizationFailed, r)}
		}
	}()

	palette, err := extractor.Extract(buf, quality, count)
	if err != nil {
		return Completion{Err: err}
	}
	if palette == nil || palette.Len() == 0 {
		return Completion{Err: fmt.Errorf("%w: empty palette", colour.ErrQuantizationFailed)}
	}
	return Completion{Colors: slices.Clone(palette.Colors)}
}

// Complete applies the outcome of a run. Completions from superseded runs
// and completions carrying generation zero, which no run is ever assigned,
// are discarded. A failed latest run leaves the previous results in place
// and returns an error wrapping ErrExtractionFailed.
func (o *Orchestrator) Complete(c Completion) error {
	if c.Generation == 0 || c.Generation != o.generation {
		o.logger.Debug("discarding superseded result", "generation", c.Generation, "latest", o.generation)
		o.publish(Event{Kind: EventResultDiscarded, Generation: c.Generation})
		return nil
	}

	o.state = StateIdle

	colors := colour.Dedupe(c.Colors, o.tolerance)
	if c.Err == nil && len(colors) == 0 {
		c.Err = fmt.Errorf("%w: empty palette", colour.ErrQuantizationFailed)
	}

	if c.Err != nil {
		err := fmt.Errorf("%w: %w", ErrExtractionFailed, c.Err)
		o.logger.Warn("extraction failed", "generation", c.Generation, "error", c.Err)
		o.notify(KindOf(err))
		o.publish(Event{Kind: EventExtractionFailed, Generation: c.Generation, Err: err})
		return err
	}

	o.results = colors
	o.resultsGen = c.Generation
	o.logger.Debug("extraction complete", "generation", c.Generation, "colours", len(colors))
	o.publish(Event{Kind: EventResultsUpdated, Generation: c.Generation, Colors: slices.Clone(colors)})
	return nil
}

// SavePalette hands a snapshot of the current results to the save
// collaborator. The saved indicator flips when the collaborator reports
// success.
func (o *Orchestrator) SavePalette() error {
	if o.image == nil {
		o.notify(KindNoImageLoaded)
		return fmt.Errorf("cannot save palette: %w", ErrNoImageLoaded)
	}
	if len(o.results) == 0 {
		o.notify(KindNoColorsExtracted)
		return fmt.Errorf("cannot save palette: %w", ErrNoColorsExtracted)
	}

	record := PaletteRecord{Colors: slices.Clone(o.results)}
	gen := o.resultsGen
	o.logger.Debug("saving palette", "colours", len(record.Colors))

	o.saver.SavePalette(record, func() {
		o.dispatcher.Post(func() {
			if gen != o.resultsGen {
				// Results were replaced while the save flow was open.
				return
			}
			o.saved = true
			o.publish(Event{Kind: EventSaved, Generation: gen})
		})
	})
	return nil
}

// State returns the current busy state.
func (o *Orchestrator) State() State { return o.state }

// Parameters returns the current parameters.
func (o *Orchestrator) Parameters() Parameters { return o.params }

// Generation returns the generation of the most recently started run.
func (o *Orchestrator) Generation() uint64 { return o.generation }

// Saved reports whether the current results have been saved.
func (o *Orchestrator) Saved() bool { return o.saved }

// Results returns a copy of the current colours.
func (o *Orchestrator) Results() []colour.RGB {
	return slices.Clone(o.results)
}

func (o *Orchestrator) notify(kind ErrorKind) {
	o.notifier.Notify(kind.MessageKey())
}
