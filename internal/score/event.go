package score

import "fmt"

// Event is one sounding (or silent) occurrence on the timeline.
//
// Pitch is a float so microtonal values are representable; Channel selects
// the instrument/track for downstream serializers. Meta is an open
// extension point for format-specific hints (for example channel-tuning
// data) and is copied on construction so events stay immutable.
type Event struct {
	Start   float64           `json:"start"`
	Dur     float64           `json:"dur"`
	Pitch   float64           `json:"pitch"`
	Amp     float64           `json:"amp"`
	Channel int               `json:"channel"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// EventError reports an invalid event field at construction time.
type EventError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *EventError) Error() string {
	return fmt.Sprintf("invalid event: %s: %s", e.Field, e.Message)
}

// NewEvent validates and builds an Event.
//
// Constraints: start >= 0, dur > 0, amp in [0,1], channel >= 0.
// Meta is copied so later mutation of the caller's map cannot reach
// events already added to a timeline.
func NewEvent(start, dur, pitch, amp float64, channel int, meta map[string]string) (Event, error) {
	if start < 0 {
		return Event{}, &EventError{Field: "start", Message: fmt.Sprintf("must be >= 0, got %v", start)}
	}
	if dur <= 0 {
		return Event{}, &EventError{Field: "dur", Message: fmt.Sprintf("must be > 0, got %v", dur)}
	}
	if amp < 0 || amp > 1 {
		return Event{}, &EventError{Field: "amp", Message: fmt.Sprintf("must be in [0,1], got %v", amp)}
	}
	if channel < 0 {
		return Event{}, &EventError{Field: "channel", Message: fmt.Sprintf("must be >= 0, got %d", channel)}
	}

	ev := Event{Start: start, Dur: dur, Pitch: pitch, Amp: amp, Channel: channel}
	if len(meta) > 0 {
		ev.Meta = make(map[string]string, len(meta))
		for k, v := range meta {
			ev.Meta[k] = v
		}
	}
	return ev, nil
}

// MustEvent is like NewEvent but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustEvent(start, dur, pitch, amp float64, channel int) Event {
	ev, err := NewEvent(start, dur, pitch, amp, channel, nil)
	if err != nil {
		panic(err)
	}
	return ev
}
