package conductor

import "github.com/tmviz/kestrel/internal/core/timesystem"

// Notification topics. Each carries a single typed payload, see the *Event
// structs below.
const (
	TopicBounds         = "bounds"
	TopicTimeSystem     = "timeSystem"
	TopicTimeOfInterest = "timeOfInterest"
	TopicFollow         = "follow"
)

// Bounds is the inclusive [Start, End] viewing window, in epoch-relative
// integer units. The active time system defines how the values are
// interpreted; the conductor never does.
type Bounds struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Contains reports whether t falls inside the window, endpoints included.
func (b Bounds) Contains(t int64) bool {
	return t >= b.Start && t <= b.End
}

// BoundsInput is a candidate window as supplied by callers. Fields are
// pointers so an absent value is distinguishable from zero and can be
// rejected by validation.
type BoundsInput struct {
	Start *int64 `json:"start"`
	End   *int64 `json:"end"`
}

// Input returns b as a candidate pair, for re-submitting a stored window.
func (b Bounds) Input() BoundsInput {
	start, end := b.Start, b.End
	return BoundsInput{Start: &start, End: &end}
}

// BoundsEvent is published on TopicBounds after a successful bounds change.
// The carried value is a copy; subscribers may keep or modify it freely.
type BoundsEvent struct {
	Bounds Bounds `json:"bounds"`
}

// TimeSystemEvent is published on TopicTimeSystem when the active time
// system is replaced.
type TimeSystemEvent struct {
	TimeSystem timesystem.TimeSystem `json:"time_system"`
}

// TimeOfInterestEvent is published on TopicTimeOfInterest. A nil TOI means
// the highlight was cleared.
type TimeOfInterestEvent struct {
	TOI *int64 `json:"toi"`
}

// FollowEvent is published on TopicFollow with the new flag value.
type FollowEvent struct {
	Follow bool `json:"follow"`
}

// State is a read-only snapshot of the whole conductor. Nil pointers mark
// fields that have never been set.
type State struct {
	Bounds         *Bounds                `json:"bounds"`
	TimeSystem     *timesystem.TimeSystem `json:"time_system"`
	TimeOfInterest *int64                 `json:"time_of_interest"`
	Follow         bool                   `json:"follow"`
}
