package combat

import "github.com/vovakirdan/arcade-sim/internal/entity"

// SwingTracker enforces one hit per target per melee swing.
type SwingTracker struct {
	swing uint64
	hit   map[entity.ID]struct{}
}

// Begin starts a new swing and forgets who the previous one hit.
// Returns the new swing number.
func (s *SwingTracker) Begin() uint64 {
	s.swing++
	s.hit = make(map[entity.ID]struct{})
	return s.swing
}

// Swing returns the current swing number; 0 before the first swing.
func (s *SwingTracker) Swing() uint64 {
	return s.swing
}

// Mark records target as hit by the current swing.
// Returns false if this swing already hit it, or no swing is active.
func (s *SwingTracker) Mark(target entity.ID) bool {
	if s.hit == nil {
		return false
	}
	if _, seen := s.hit[target]; seen {
		return false
	}
	s.hit[target] = struct{}{}
	return true
}

// End closes the current swing; further marks are refused until Begin.
func (s *SwingTracker) End() {
	s.hit = nil
}

// Active reports whether a swing is open.
func (s *SwingTracker) Active() bool {
	return s.hit != nil
}
