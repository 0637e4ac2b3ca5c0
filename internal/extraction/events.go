package extraction

import (
	"github.com/jmylchreest/paleta/internal/colour"
)

// EventKind identifies what changed.
type EventKind int

const (
	EventExtractionStarted EventKind = iota
	EventResultsUpdated
	EventExtractionFailed
	EventResultDiscarded
	EventSaved
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventExtractionStarted:
		return "extraction-started"
	case EventResultsUpdated:
		return "results-updated"
	case EventExtractionFailed:
		return "extraction-failed"
	case EventResultDiscarded:
		return "result-discarded"
	case EventSaved:
		return "saved"
	default:
		return "unknown"
	}
}

// Event is published to observers on the owning goroutine.
type Event struct {
	Kind       EventKind
	Generation uint64
	Colors     []colour.RGB
	Err        error
}

type observer struct {
	fn func(Event)
}

// Subscribe registers fn for every future event and returns a function that
// removes it.
func (o *Orchestrator) Subscribe(fn func(Event)) (unsubscribe func()) {
	obs := &observer{fn: fn}
	o.observers = append(o.observers, obs)

	return func() {
		for i, existing := range o.observers {
			if existing == obs {
				o.observers = append(o.observers[:i:i], o.observers[i+1:]...)
				return
			}
		}
	}
}

func (o *Orchestrator) publish(e Event) {
	// Observers may unsubscribe while being called.
	for _, obs := range append([]*observer(nil), o.observers...) {
		obs.fn(e)
	}
}
