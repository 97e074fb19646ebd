// Package view holds the view-scale state driven by the zoom triggers.
package view

import "sync"

// Scale is the zoom level of the notebook view. Level 0 is the default
// size; each step up or down is one zoom increment.
type Scale struct {
	mu       sync.Mutex
	level    float64
	onChange func(level float64)
}

// NewScale returns a scale at level 0. onChange, if non-nil, is called
// after every change.
func NewScale(onChange func(level float64)) *Scale {
	return &Scale{onChange: onChange}
}

// ZoomLevel returns the current level.
func (s *Scale) ZoomLevel() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// SetZoomLevel sets the level.
func (s *Scale) SetZoomLevel(level float64) {
	s.mu.Lock()
	s.level = level
	cb := s.onChange
	s.mu.Unlock()
	if cb != nil {
		cb(level)
	}
}
