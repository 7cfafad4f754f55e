package supervise

import "encoding/json"

// EventKind tags the variants of an engine output event.
type EventKind int

const (
	// EventStructured carries one stdout line that parsed as JSON,
	// re-emitted verbatim.
	EventStructured EventKind = iota + 1
	// EventRaw carries a non-JSON stdout line or any stderr line.
	EventRaw
	// EventTerminated is the single synthetic end-of-run event.
	EventTerminated
)

// Event is one entry in a run's output stream.
type Event struct {
	Kind       EventKind
	Structured json.RawMessage
	Raw        string
}

func StructuredEvent(raw json.RawMessage) Event {
	return Event{Kind: EventStructured, Structured: raw}
}

func RawEvent(line string) Event {
	return Event{Kind: EventRaw, Raw: line}
}

func TerminatedEvent() Event {
	return Event{Kind: EventTerminated}
}

var terminatedWire = []byte(`{"type":"launcher_terminated"}`)

// WireJSON renders the event the way the front end consumes it: structured
// lines pass through untouched, raw lines become JSON strings.
func (e Event) WireJSON() []byte {
	switch e.Kind {
	case EventStructured:
		return e.Structured
	case EventTerminated:
		return terminatedWire
	default:
		raw, err := json.Marshal(e.Raw)
		if err != nil {
			return []byte(`""`)
		}
		return raw
	}
}
