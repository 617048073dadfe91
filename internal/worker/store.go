package worker

import "sync"

// FeatureStore holds preview-derived energy estimates keyed by track ID. It
// is in-memory only and shared between the worker pool (writer) and the
// recommendation ranking (reader).
type FeatureStore struct {
	mu     sync.RWMutex
	energy map[string]float64
}

// NewFeatureStore returns an empty store.
func NewFeatureStore() *FeatureStore {
	return &FeatureStore{energy: make(map[string]float64)}
}

// PutEnergy records an energy estimate for a track.
func (s *FeatureStore) PutEnergy(trackID string, energy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.energy[trackID] = energy
}

// Energy returns the recorded estimate for a track, if any.
func (s *FeatureStore) Energy(trackID string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.energy[trackID]
	return e, ok
}
