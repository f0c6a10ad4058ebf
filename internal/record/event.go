package record

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound    = errors.New("record: session not found")
	ErrUnknownKind = errors.New("record: unknown event kind")
)

type Kind string

const (
	KindMove Kind = "move"
	KindDown Kind = "down"
	KindUp   Kind = "up"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindMove, KindDown, KindUp:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Event is one pointer sample. At is relative to the start of the session.
type Event struct {
	At   time.Duration
	Kind Kind
	X, Y float64
	DX   float64
	DY   float64
}

// Recorder collects events for a session. The zero value is ready to use.
type Recorder struct {
	started time.Time
	events  []Event
}

func (r *Recorder) Start(now time.Time) {
	r.started = now
	r.events = r.events[:0]
}

func (r *Recorder) Add(now time.Time, kind Kind, x, y, dx, dy float64) {
	r.events = append(r.events, Event{At: now.Sub(r.started), Kind: kind, X: x, Y: y, DX: dx, DY: dy})
}

func (r *Recorder) Len() int { return len(r.events) }

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
