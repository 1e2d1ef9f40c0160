package conductor

import (
	"sync"

	"github.com/tmviz/kestrel/internal/core/timesystem"
)

// Serialized is the concurrent entry point to a Core. The core contract is
// cooperative single-goroutine access; Serialized holds a mutex across each
// whole operation so the validate-mutate-notify sequence stays atomic for
// HTTP handlers and background collectors alike.
//
// Bus handlers run while the lock is held. They may mutate state reentrantly
// through the Core they observe, never through Serialized, or they deadlock.
type Serialized struct {
	mu   sync.Mutex
	core *Core
}

func NewSerialized(core *Core) *Serialized {
	return &Serialized{core: core}
}

// ValidateBounds is pure and still serialized, keeping pre-checks ordered
// with in-flight mutations.
func (s *Serialized) ValidateBounds(in BoundsInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.ValidateBounds(in)
}

func (s *Serialized) GetBounds() Bounds {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.GetBounds()
}

func (s *Serialized) SetBounds(in BoundsInput) (Bounds, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.SetBounds(in)
}

func (s *Serialized) GetTimeSystem() (timesystem.TimeSystem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.GetTimeSystem()
}

func (s *Serialized) SetTimeSystem(sys timesystem.TimeSystem, b *BoundsInput) (timesystem.TimeSystem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.SetTimeSystem(sys, b)
}

func (s *Serialized) GetTimeOfInterest() *int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.GetTimeOfInterest()
}

func (s *Serialized) SetTimeOfInterest(toi *int64) *int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.SetTimeOfInterest(toi)
}

func (s *Serialized) GetFollowMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.GetFollowMode()
}

func (s *Serialized) SetFollowMode(follow bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.SetFollowMode(follow)
}

func (s *Serialized) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.core.State()
}
