// Package timesystem keeps the catalog of selectable time systems. The time
// conductor stores and echoes these values without interpreting them.
package timesystem

import (
	"github.com/ixugo/goddd/pkg/conc"
	"github.com/ixugo/goddd/pkg/reason"
)

// TimeSystem describes how bound values are interpreted. Identity is the Key;
// the remaining fields are display hints for views.
type TimeSystem struct {
	Key            string `json:"key"`
	Name           string `json:"name"`
	TimeFormat     string `json:"time_format"`
	DurationFormat string `json:"duration_format"`
}

// UTC is the default time system, epoch milliseconds.
var UTC = TimeSystem{
	Key:            "utc",
	Name:           "UTC",
	TimeFormat:     "2006-01-02 15:04:05",
	DurationFormat: "15:04:05",
}

// Registry holds the available time systems in declaration order.
type Registry struct {
	systems conc.Map[string, TimeSystem]
	keys    []string
}

// NewRegistry builds a catalog from the given systems. When none are given
// the UTC default is registered so the service always has a usable system.
func NewRegistry(systems ...TimeSystem) *Registry {
	if len(systems) == 0 {
		systems = []TimeSystem{UTC}
	}
	r := Registry{}
	for _, ts := range systems {
		if ts.Key == "" {
			continue
		}
		if _, ok := r.systems.Load(ts.Key); ok {
			continue
		}
		r.systems.Store(ts.Key, ts)
		r.keys = append(r.keys, ts.Key)
	}
	return &r
}

// Get looks up a time system by key.
func (r *Registry) Get(key string) (TimeSystem, error) {
	ts, ok := r.systems.Load(key)
	if !ok {
		return TimeSystem{}, reason.ErrNotFound.Withf(`time system key[%s]`, key)
	}
	return ts, nil
}

// List returns the catalog in declaration order.
func (r *Registry) List() []TimeSystem {
	out := make([]TimeSystem, 0, len(r.keys))
	for _, key := range r.keys {
		if ts, ok := r.systems.Load(key); ok {
			out = append(out, ts)
		}
	}
	return out
}
