// Package joblog broadcasts job-log milestone entries to whoever is
// watching a job, in-process, via buffered channels — the non-HTTP
// counterpart of the teacher's internal/api/websocket_hub.go fan-out (there
// a Postgres NOTIFY listener broadcasting to SSE clients; here the engine
// itself is the publisher since there is no excluded HTTP edge to relay
// through).
package joblog

import (
	"sync"

	"github.com/ignite/contactminer/internal/domain"
)

// Hub fans out JobLogEntry values to per-job subscriber channels. A slow or
// absent subscriber never blocks the publisher: sends are non-blocking and
// drop on a full channel.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan domain.JobLogEntry]bool
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[string]map[chan domain.JobLogEntry]bool)}
}

// Subscribe registers a new channel for jobID's log entries. The caller
// must call the returned cancel function when done watching, to release the
// channel and stop delivery.
func (h *Hub) Subscribe(jobID string) (ch chan domain.JobLogEntry, cancel func()) {
	ch = make(chan domain.JobLogEntry, 32)

	h.mu.Lock()
	if h.subscribers[jobID] == nil {
		h.subscribers[jobID] = make(map[chan domain.JobLogEntry]bool)
	}
	h.subscribers[jobID][ch] = true
	h.mu.Unlock()

	cancel = func() {
		h.mu.Lock()
		delete(h.subscribers[jobID], ch)
		if len(h.subscribers[jobID]) == 0 {
			delete(h.subscribers, jobID)
		}
		h.mu.Unlock()
		close(ch)
	}
	return ch, cancel
}

// Publish delivers entry to every current subscriber of entry.JobID.
func (h *Hub) Publish(entry domain.JobLogEntry) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subscribers[entry.JobID] {
		select {
		case ch <- entry:
		default:
			// slow subscriber — drop the entry rather than block the engine
		}
	}
}
