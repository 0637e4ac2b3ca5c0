package extraction

import (
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/paleta/internal/colour"
)

// Builder provides a fluent interface for constructing an Orchestrator.
type Builder struct {
	extractor  colour.Extractor
	dispatcher Dispatcher
	notifier   Notifier
	saver      Saver
	logger     hclog.Logger
	spawn      func(func())
	params     Parameters
	tolerance  float64
}

// NewBuilder starts an Orchestrator that extracts with e.
// Defaults: a fresh Loop, default parameters, no-op notifier and saver,
// null logger, one goroutine per run.
func NewBuilder(e colour.Extractor) *Builder {
	return &Builder{
		extractor: e,
		params:    DefaultParameters(),
	}
}

// WithDispatcher sets where completed runs are delivered.
func (b *Builder) WithDispatcher(d Dispatcher) *Builder {
	b.dispatcher = d
	return b
}

// WithNotifier sets the user-facing message sink.
func (b *Builder) WithNotifier(n Notifier) *Builder {
	b.notifier = n
	return b
}

// WithSaver sets the save collaborator.
func (b *Builder) WithSaver(s Saver) *Builder {
	b.saver = s
	return b
}

// WithLogger sets the logger.
func (b *Builder) WithLogger(l hclog.Logger) *Builder {
	b.logger = l
	return b
}

// WithParameters sets the initial parameters. Invalid values are ignored
// and the defaults kept.
func (b *Builder) WithParameters(p Parameters) *Builder {
	if p.Validate() == nil {
		b.params = p
	}
	return b
}

// WithTolerance merges colours closer than d (CIE76) when results arrive.
func (b *Builder) WithTolerance(d float64) *Builder {
	b.tolerance = d
	return b
}

// WithSpawner overrides how runs are started (useful for testing).
func (b *Builder) WithSpawner(spawn func(func())) *Builder {
	b.spawn = spawn
	return b
}

// Build constructs the Orchestrator.
func (b *Builder) Build() *Orchestrator {
	o := &Orchestrator{
		extractor:  b.extractor,
		dispatcher: b.dispatcher,
		notifier:   b.notifier,
		saver:      b.saver,
		logger:     b.logger,
		spawn:      b.spawn,
		tolerance:  b.tolerance,
		params:     b.params,
		state:      StateIdle,
	}

	if o.extractor == nil {
		o.extractor = colour.NewMMCQExtractor()
	}
	if o.dispatcher == nil {
		o.dispatcher = NewLoop()
	}
	if o.notifier == nil {
		o.notifier = NotifierFunc(func(MessageKey) {})
	}
	if o.saver == nil {
		o.saver = discardSaver{}
	}
	if o.logger == nil {
		o.logger = hclog.NewNullLogger()
	}
	if o.spawn == nil {
		o.spawn = func(fn func()) { go fn() }
	}

	return o
}

// Dispatcher returns the dispatcher the orchestrator delivers to.
func (o *Orchestrator) Dispatcher() Dispatcher {
	return o.dispatcher
}

type discardSaver struct{}

func (discardSaver) SavePalette(PaletteRecord, func()) {}
