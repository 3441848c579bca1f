package persistence

import (
	"encoding/json"
	"sync"

	"github.com/bucephalus26/sustainable-village-sim/internal/clock"
	"github.com/bucephalus26/sustainable-village-sim/internal/events"
)

// EventRecord is one bus event flattened for storage.
type EventRecord struct {
	Day     int     `db:"day"`
	Hour    float64 `db:"hour"`
	Kind    string  `db:"kind"`
	Payload string  `db:"payload"`
}

const recorderCap = 10000

// Recorder buffers bus events until the next save drains them. When the
// buffer fills, the oldest half is dropped; the simulation never blocks
// on persistence.
type Recorder struct {
	mu      sync.Mutex
	clock   *clock.Clock
	pending []EventRecord
}

// NewRecorder subscribes to every event on the bus.
func NewRecorder(bus *events.Bus, c *clock.Clock) *Recorder {
	r := &Recorder{clock: c}
	bus.SubscribeAll(r.record)
	return r
}

func (r *Recorder) record(e events.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pending) >= recorderCap {
		r.pending = r.pending[len(r.pending)/2:]
	}
	r.pending = append(r.pending, EventRecord{
		Day:     r.clock.Day(),
		Hour:    r.clock.Hour(),
		Kind:    e.EventKind().String(),
		Payload: string(payload),
	})
}

// Drain returns the buffered records and resets the buffer.
func (r *Recorder) Drain() []EventRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.pending
	r.pending = nil
	return out
}

// Pending reports how many records await the next save.
func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
