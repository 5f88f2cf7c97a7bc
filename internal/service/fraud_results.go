package service

import (
	"sync"

	"famguard/internal/models"
)

// FraudResultStore is the rendezvous point between the fraud worker and
// polling callers. Results are keyed by the raw message text: identical
// texts deliberately share one slot, so a second submission before the
// first result is consumed overwrites it. The worker writes at most
// once per dequeued item; a reader consumes a result exactly once,
// after which the key is free for reuse.
type FraudResultStore struct {
	mu      sync.Mutex
	results map[string]models.CheckOutcome
}

// NewFraudResultStore creates an empty store.
func NewFraudResultStore() *FraudResultStore {
	return &FraudResultStore{
		results: make(map[string]models.CheckOutcome),
	}
}

// Insert publishes the outcome for a message, overwriting any prior
// unconsumed outcome for the same text.
func (s *FraudResultStore) Insert(text string, outcome models.CheckOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[text] = outcome
}

// Take atomically removes and returns the outcome for a message. The
// second return value is false when no outcome has been published yet.
func (s *FraudResultStore) Take(text string) (models.CheckOutcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome, ok := s.results[text]
	if ok {
		delete(s.results, text)
	}
	return outcome, ok
}

// Len returns the number of unconsumed outcomes.
func (s *FraudResultStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}
