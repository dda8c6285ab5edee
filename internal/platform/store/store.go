// Package store holds the in-memory dataset snapshots served by the API.
// Each upload replaces its dataset wholesale; readers observe either the
// previous snapshot or the new one, never a mix.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ovc/insights/internal/domain/registry"
	"github.com/ovc/insights/internal/domain/viralload"
)

// Snapshot is an immutable view of the loaded datasets. Callers must not
// mutate the slices it carries.
type Snapshot struct {
	ID         uuid.UUID
	UploadedAt time.Time

	Registration    []registry.Record
	HasRegistration bool

	ViralLoad    []viralload.Observation
	HasViralLoad bool
}

// Store publishes snapshots. The zero value is not usable; use New.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot
}

func New() *Store {
	return &Store{current: &Snapshot{}}
}

// Current returns the published snapshot. The returned value is shared and
// read-only.
func (s *Store) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetRegistration publishes a snapshot carrying the given registration
// records, preserving the viral-load dataset already published.
func (s *Store) SetRegistration(records []registry.Record) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.next()
	next.Registration = records
	next.HasRegistration = true
	s.current = next
	return next
}

// SetViralLoad publishes a snapshot carrying the given lab observations,
// preserving the registration dataset already published.
func (s *Store) SetViralLoad(obs []viralload.Observation) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.next()
	next.ViralLoad = obs
	next.HasViralLoad = true
	s.current = next
	return next
}

// next copies the current snapshot under a fresh identity. Caller holds mu.
func (s *Store) next() *Snapshot {
	next := *s.current
	next.ID = uuid.New()
	next.UploadedAt = time.Now().UTC()
	return &next
}
