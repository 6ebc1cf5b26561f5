// Package store holds application-wide café state shared between pages:
// every known café, and the one currently being viewed.
package store

import (
	"cafein/model"
	"sync"
)

type AppState struct {
	mu       sync.RWMutex
	allCafes []model.CafeRecord
	current  model.CafeRecord
}

func New() *AppState {
	return &AppState{
		allCafes: []model.CafeRecord{},
		current:  model.NewCafeRecord(),
	}
}

// AllCafes returns a copy of the café list.
func (s *AppState) AllCafes() []model.CafeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.CafeRecord, len(s.allCafes))
	copy(out, s.allCafes)
	return out
}

func (s *AppState) SetAllCafes(cafes []model.CafeRecord) {
	cp := make([]model.CafeRecord, len(cafes))
	copy(cp, cafes)
	s.mu.Lock()
	s.allCafes = cp
	s.mu.Unlock()
}

func (s *AppState) CurrentCafe() model.CafeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *AppState) SetCurrentCafe(cafe model.CafeRecord) {
	s.mu.Lock()
	s.current = cafe
	s.mu.Unlock()
}
