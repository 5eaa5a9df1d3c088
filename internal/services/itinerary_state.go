package services

import (
	"errors"
	"sync"
	"tour-route-service/internal/domain"
)

// ErrGenerateInFlight is returned when a generate request arrives while
// another one is still building.
var ErrGenerateInFlight = errors.New("a route generation request is already in progress")

// ItineraryState owns the process-wide current itinerary.
//
// Each generate request recomputes from scratch and replaces the slot
// atomically; a failed build leaves the prior itinerary untouched. Writers
// are serialized: a second generate is rejected, not queued, while one is
// in flight.
type ItineraryState struct {
	mu         sync.Mutex
	current    *domain.Itinerary
	generating bool
}

func NewItineraryState() *ItineraryState {
	return &ItineraryState{}
}

// BeginGenerate claims the single-writer slot for one build.
func (s *ItineraryState) BeginGenerate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generating {
		return ErrGenerateInFlight
	}
	s.generating = true
	return nil
}

func (s *ItineraryState) EndGenerate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false
}

// Current returns the stored itinerary, or nil when none is held.
func (s *ItineraryState) Current() *domain.Itinerary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Replace stores it as the current itinerary, discarding any prior one.
func (s *ItineraryState) Replace(it *domain.Itinerary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = it
}

// Clear drops the current itinerary.
func (s *ItineraryState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
