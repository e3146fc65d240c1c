package events

import (
	"sync"
	"time"
)

// MemoryLog is an in-memory event log safe for concurrent readers
type MemoryLog struct {
	mutex   sync.RWMutex
	streams map[string][]Event
	all     []Event
}

// NewMemoryLog creates an empty in-memory event log
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{
		streams: make(map[string][]Event),
	}
}

// Verify interface compliance
var _ Log = (*MemoryLog)(nil)

// Append records an event at the tail of its stream
func (l *MemoryLog) Append(streamID string, eventType string, data interface{}) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	event := Event{
		Type:     eventType,
		StreamID: streamID,
		Data:     data,
		Time:     time.Now(),
		Version:  len(l.streams[streamID]) + 1,
	}
	l.streams[streamID] = append(l.streams[streamID], event)
	l.all = append(l.all, event)
	return nil
}

// Stream returns the events of one stream in append order
func (l *MemoryLog) Stream(streamID string) ([]Event, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	events := make([]Event, len(l.streams[streamID]))
	copy(events, l.streams[streamID])
	return events, nil
}

// All returns every recorded event in append order
func (l *MemoryLog) All() ([]Event, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	events := make([]Event, len(l.all))
	copy(events, l.all)
	return events, nil
}
