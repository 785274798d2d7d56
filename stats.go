package main

import (
	"log"
	"sync"
	"time"
)

// RunEvent is a single trackable gameplay event
type RunEvent struct {
	Type      string
	SessionID string
	Data      string // optional metadata
	Timestamp time.Time
}

// Stats keeps live per-tick counters (collision comparisons, kills, drops)
// and batches gameplay events into the run log in the background. All
// methods are safe on a nil receiver so the core can run without a sink.
type Stats struct {
	mu       sync.Mutex
	counters map[string]int64

	db     *DB
	events chan RunEvent
	stop   chan struct{}
	wg     sync.WaitGroup
}

// NewStats creates the stats sink and starts its background writer.
// db may be nil; counters still work, events are dropped.
func NewStats(db *DB) *Stats {
	s := &Stats{
		counters: make(map[string]int64),
		db:       db,
		events:   make(chan RunEvent, 1024),
		stop:     make(chan struct{}),
	}
	s.wg.Add(1)
	go s.writer()
	return s
}

// Inc bumps a live counter
func (s *Stats) Inc(name string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.counters[name]++
	s.mu.Unlock()
}

// Counters returns a copy of the live counters
func (s *Stats) Counters() map[string]int64 {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64, len(s.counters))
	for k, v := range s.counters {
		out[k] = v
	}
	return out
}

// ResetCounters zeroes all live counters
func (s *Stats) ResetCounters() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.counters = make(map[string]int64)
	s.mu.Unlock()
}

// Track enqueues an event for async persistence. Never blocks the tick
// loop; a full channel drops the event.
func (s *Stats) Track(evtType, sessionID, data string) {
	if s == nil {
		return
	}
	select {
	case s.events <- RunEvent{
		Type:      evtType,
		SessionID: sessionID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}:
	default:
	}
}

// Stop shuts the writer down, flushing whatever is pending
func (s *Stats) Stop() {
	if s == nil {
		return
	}
	close(s.stop)
	s.wg.Wait()
}

// writer batches events and writes them to the run log
func (s *Stats) writer() {
	defer s.wg.Done()

	batch := make([]RunEvent, 0, 64)
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case evt := <-s.events:
			batch = append(batch, evt)
			if len(batch) >= 50 {
				s.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.flush(batch)
				batch = batch[:0]
			}
		case <-s.stop:
			close(s.events)
			for evt := range s.events {
				batch = append(batch, evt)
			}
			if len(batch) > 0 {
				s.flush(batch)
			}
			return
		}
	}
}

// flush writes one batch of events to the database
func (s *Stats) flush(events []RunEvent) {
	if s.db == nil || len(events) == 0 {
		return
	}
	if err := s.db.InsertEvents(events); err != nil {
		log.Printf("stats: flush error: %v", err)
	}
}
