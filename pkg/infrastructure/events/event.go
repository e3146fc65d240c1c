package events

import "time"

// Event is one immutable fact recorded during a scheduling run
type Event struct {
	Type     string
	StreamID string
	Data     interface{}
	Time     time.Time
	Version  int
}

// Log records events per stream for downstream consumers. Implementations
// must preserve append order within a stream.
type Log interface {
	Append(streamID string, eventType string, data interface{}) error
	Stream(streamID string) ([]Event, error)
	All() ([]Event, error)
}
