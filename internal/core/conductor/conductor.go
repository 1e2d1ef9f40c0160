// Package conductor owns the authoritative temporal state of the
// application: the viewing window (bounds), the active time system, the
// highlighted instant (time of interest) and the follow-mode flag. Views
// subscribe to its notifications and re-render; the conductor itself renders
// nothing, fetches nothing and persists nothing.
package conductor

import (
	"github.com/ixugo/goddd/pkg/reason"
	"github.com/tmviz/kestrel/internal/core/timesystem"
	"github.com/tmviz/kestrel/pkg/bus"
)

var (
	// ErrBoundsNotSpecified rejects a candidate window with a missing value.
	ErrBoundsNotSpecified = reason.ErrBadRequest.SetMsg("Start and end must be specified as integer values")
	// ErrBoundsInverted rejects a window whose start lies after its end.
	ErrBoundsInverted = reason.ErrBadRequest.SetMsg("Specified start date exceeds end bound")
	// ErrTimeSystemNeedsBounds rejects a time-system change without a window.
	ErrTimeSystemNeedsBounds = reason.ErrBadRequest.SetMsg("Must set bounds when changing time system")
)

// ValidateBounds checks a candidate window without touching any state.
// Checks run in a fixed order: missing values first, then ordering.
func ValidateBounds(in BoundsInput) error {
	if in.Start == nil || in.End == nil {
		return ErrBoundsNotSpecified
	}
	if *in.Start > *in.End {
		return ErrBoundsInverted
	}
	return nil
}

// Core business domain. All operations run synchronously on the caller's
// goroutine and notify subscribers before returning; a subscriber that
// mutates the core from inside its callback produces nested notification
// sequences, which is permitted but unguarded. Core itself takes no locks,
// concurrent callers go through Serialized.
type Core struct {
	bus       *bus.Bus
	bounds    Bounds
	boundsSet bool
	system    timesystem.TimeSystem
	systemSet bool
	toi       *int64
	follow    bool
}

// NewCore create business domain. The conductor starts fully unset: no
// bounds, no time system, no time of interest, follow mode off.
func NewCore(b *bus.Bus) *Core {
	return &Core{bus: b}
}

// ValidateBounds is the instance form of the package-level check, exposed so
// input forms can pre-check candidates through the same handle they mutate.
func (c *Core) ValidateBounds(in BoundsInput) error {
	return ValidateBounds(in)
}

// GetBounds returns a copy of the current window. Before the first SetBounds
// it returns the zero Bounds; State distinguishes that case.
func (c *Core) GetBounds() Bounds {
	return c.bounds
}

// SetBounds validates and stores a new window, then notifies subscribers
// with a copy of it. When the stored time of interest falls strictly outside
// the new window it is cleared afterwards through SetTimeOfInterest, which
// fires its own notification. On validation failure nothing is stored and
// nothing is published.
func (c *Core) SetBounds(in BoundsInput) (Bounds, error) {
	if err := ValidateBounds(in); err != nil {
		return Bounds{}, err
	}
	c.bounds = Bounds{Start: *in.Start, End: *in.End}
	c.boundsSet = true
	c.bus.Publish(TopicBounds, BoundsEvent{Bounds: c.bounds})

	if c.toi != nil && !c.bounds.Contains(*c.toi) {
		c.SetTimeOfInterest(nil)
	}
	return c.bounds, nil
}

// GetTimeSystem returns the active time system; the second result is false
// until one has been set.
func (c *Core) GetTimeSystem() (timesystem.TimeSystem, bool) {
	return c.system, c.systemSet
}

// SetTimeSystem replaces the active time system. Because the unit of the
// stored window changes with it, new bounds are mandatory; a nil window is a
// usage error and leaves everything untouched. On success the time-system
// notification always precedes the forced bounds notification, even when the
// supplied window equals the previous one. The time system is stored and
// announced before the window is applied, so an invalid window surfaces as
// an error from the bounds step with the new system already active.
func (c *Core) SetTimeSystem(sys timesystem.TimeSystem, b *BoundsInput) (timesystem.TimeSystem, error) {
	if b == nil {
		return c.system, ErrTimeSystemNeedsBounds
	}
	c.system = sys
	c.systemSet = true
	c.bus.Publish(TopicTimeSystem, TimeSystemEvent{TimeSystem: c.system})
	if _, err := c.SetBounds(*b); err != nil {
		return c.system, err
	}
	return c.system, nil
}

// GetTimeOfInterest returns the highlighted instant, nil when unset.
func (c *Core) GetTimeOfInterest() *int64 {
	return c.copyTOI()
}

// SetTimeOfInterest stores the highlighted instant as-is and notifies
// subscribers. A nil value is an explicit unset. The value is deliberately
// not checked against the current window; only a bounds mutation clears an
// out-of-range highlight.
func (c *Core) SetTimeOfInterest(toi *int64) *int64 {
	if toi == nil {
		c.toi = nil
	} else {
		v := *toi
		c.toi = &v
	}
	c.bus.Publish(TopicTimeOfInterest, TimeOfInterestEvent{TOI: c.copyTOI()})
	return c.copyTOI()
}

// GetFollowMode reports whether the window tracks a live source.
func (c *Core) GetFollowMode() bool {
	return c.follow
}

// SetFollowMode stores the flag and notifies subscribers. Always legal.
func (c *Core) SetFollowMode(follow bool) bool {
	c.follow = follow
	c.bus.Publish(TopicFollow, FollowEvent{Follow: c.follow})
	return c.follow
}

// State snapshots every field at once for read-only consumers.
func (c *Core) State() State {
	var st State
	if c.boundsSet {
		b := c.bounds
		st.Bounds = &b
	}
	if c.systemSet {
		sys := c.system
		st.TimeSystem = &sys
	}
	st.TimeOfInterest = c.copyTOI()
	st.Follow = c.follow
	return st
}

// copyTOI hands out an independent pointer so callers cannot alias the
// stored instant.
func (c *Core) copyTOI() *int64 {
	if c.toi == nil {
		return nil
	}
	v := *c.toi
	return &v
}
