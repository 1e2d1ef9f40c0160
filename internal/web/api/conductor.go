package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ixugo/goddd/pkg/queue"
	"github.com/ixugo/goddd/pkg/web"
	"github.com/tmviz/kestrel/internal/conf"
	"github.com/tmviz/kestrel/internal/core/conductor"
	"github.com/tmviz/kestrel/internal/core/timesystem"
	"github.com/tmviz/kestrel/pkg/bus"
)

// conductorTopics lists every notification topic in a stable order for
// stream subscriptions.
var conductorTopics = []string{
	conductor.TopicBounds,
	conductor.TopicTimeSystem,
	conductor.TopicTimeOfInterest,
	conductor.TopicFollow,
}

// Notification is one conductor event as exposed over HTTP.
type Notification struct {
	Topic   string `json:"topic"`
	Payload any    `json:"payload"`
	At      int64  `json:"at"`
}

// recentRing keeps the last N notifications. Pushes arrive from bus
// handlers inside conductor operations while reads come from HTTP
// goroutines, hence the lock.
type recentRing struct {
	mu sync.Mutex
	q  *queue.CirQueue[Notification]
}

func newRecentRing(size int) *recentRing {
	if size <= 0 {
		size = 64
	}
	return &recentRing{q: queue.NewCirQueue[Notification](uint8(size))}
}

func (r *recentRing) push(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.q.Push(n)
}

func (r *recentRing) list() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.q.Range()
}

// ConductorAPI exposes the time conductor over HTTP.
type ConductorAPI struct {
	conductor *conductor.Serialized
	registry  *timesystem.Registry
	bus       *bus.Bus
	recent    *recentRing
}

func NewConductorAPI(cond *conductor.Serialized, b *bus.Bus, reg *timesystem.Registry, bc *conf.Bootstrap) ConductorAPI {
	api := ConductorAPI{
		conductor: cond,
		registry:  reg,
		bus:       b,
		recent:    newRecentRing(bc.Server.Conductor.RecentEvents),
	}
	for _, topic := range conductorTopics {
		topic := topic
		b.Subscribe(topic, func(p any) {
			api.recent.push(Notification{Topic: topic, Payload: p, At: time.Now().UnixMilli()})
		})
	}
	return api
}

func RegisterConductor(g gin.IRouter, api ConductorAPI, handler ...gin.HandlerFunc) {
	group := g.Group("/conductor", handler...)
	group.GET("", web.WrapH(api.getState))
	group.GET("/bounds", web.WrapH(api.getBounds))
	group.PUT("/bounds", web.WrapH(api.setBounds))
	group.POST("/bounds/validate", web.WrapH(api.validateBounds))
	group.GET("/time-system", web.WrapH(api.getTimeSystem))
	group.PUT("/time-system", web.WrapH(api.setTimeSystem))
	group.GET("/time-of-interest", web.WrapH(api.getTimeOfInterest))
	group.PUT("/time-of-interest", web.WrapH(api.setTimeOfInterest))
	group.DELETE("/time-of-interest", web.WrapH(api.clearTimeOfInterest))
	group.GET("/follow", web.WrapH(api.getFollow))
	group.PUT("/follow", web.WrapH(api.setFollow))
	group.GET("/events", api.streamEvents)
	group.GET("/events/recent", web.WrapH(api.recentEvents))
}

func RegisterTimeSystems(g gin.IRouter, api ConductorAPI, handler ...gin.HandlerFunc) {
	g.Group("/time-systems", handler...).GET("", web.WrapH(api.listTimeSystems))
}

func (a ConductorAPI) getState(_ *gin.Context, _ *struct{}) (conductor.State, error) {
	return a.conductor.State(), nil
}

func (a ConductorAPI) getBounds(_ *gin.Context, _ *struct{}) (gin.H, error) {
	return gin.H{"bounds": a.conductor.State().Bounds}, nil
}

func (a ConductorAPI) setBounds(_ *gin.Context, in *conductor.BoundsInput) (conductor.Bounds, error) {
	return a.conductor.SetBounds(*in)
}

// validateBounds pre-checks a candidate window for input forms without
// touching conductor state.
func (a ConductorAPI) validateBounds(_ *gin.Context, in *conductor.BoundsInput) (gin.H, error) {
	if err := a.conductor.ValidateBounds(*in); err != nil {
		return gin.H{"ok": false, "reason": err.Error()}, nil
	}
	return gin.H{"ok": true}, nil
}

func (a ConductorAPI) getTimeSystem(_ *gin.Context, _ *struct{}) (gin.H, error) {
	return gin.H{"time_system": a.conductor.State().TimeSystem}, nil
}

type setTimeSystemInput struct {
	Key    string                 `json:"key" binding:"required"`
	Bounds *conductor.BoundsInput `json:"bounds"`
}

// setTimeSystem resolves the key against the catalog and applies it with
// the supplied window. A missing window is rejected by the conductor.
func (a ConductorAPI) setTimeSystem(_ *gin.Context, in *setTimeSystemInput) (timesystem.TimeSystem, error) {
	sys, err := a.registry.Get(in.Key)
	if err != nil {
		return timesystem.TimeSystem{}, err
	}
	return a.conductor.SetTimeSystem(sys, in.Bounds)
}

func (a ConductorAPI) getTimeOfInterest(_ *gin.Context, _ *struct{}) (gin.H, error) {
	return gin.H{"toi": a.conductor.GetTimeOfInterest()}, nil
}

type setTimeOfInterestInput struct {
	TOI *int64 `json:"toi" binding:"required"`
}

func (a ConductorAPI) setTimeOfInterest(_ *gin.Context, in *setTimeOfInterestInput) (gin.H, error) {
	return gin.H{"toi": a.conductor.SetTimeOfInterest(in.TOI)}, nil
}

func (a ConductorAPI) clearTimeOfInterest(_ *gin.Context, _ *struct{}) (gin.H, error) {
	return gin.H{"toi": a.conductor.SetTimeOfInterest(nil)}, nil
}

func (a ConductorAPI) getFollow(_ *gin.Context, _ *struct{}) (gin.H, error) {
	return gin.H{"follow": a.conductor.GetFollowMode()}, nil
}

type setFollowInput struct {
	Follow *bool `json:"follow" binding:"required"`
}

func (a ConductorAPI) setFollow(_ *gin.Context, in *setFollowInput) (gin.H, error) {
	return gin.H{"follow": a.conductor.SetFollowMode(*in.Follow)}, nil
}

func (a ConductorAPI) recentEvents(_ *gin.Context, _ *struct{}) (gin.H, error) {
	return gin.H{"items": a.recent.list()}, nil
}

func (a ConductorAPI) listTimeSystems(_ *gin.Context, _ *struct{}) (gin.H, error) {
	return gin.H{"items": a.registry.List()}, nil
}

// streamEvents pushes conductor notifications to the client as SSE. The
// bus handler runs inside conductor operations, so a slow client never
// blocks a mutation: overflowing events are dropped and the client is
// expected to resync from /conductor.
func (a ConductorAPI) streamEvents(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "SSE not supported"})
		return
	}

	sendEvent := func(event string, payload any) {
		data, err := json.Marshal(payload)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
	}

	ch := make(chan Notification, 32)
	subs := make([]*bus.Subscription, 0, len(conductorTopics))
	for _, topic := range conductorTopics {
		topic := topic
		subs = append(subs, a.bus.Subscribe(topic, func(p any) {
			select {
			case ch <- Notification{Topic: topic, Payload: p, At: time.Now().UnixMilli()}:
			default:
			}
		}))
	}
	defer func() {
		for _, s := range subs {
			a.bus.Unsubscribe(s)
		}
	}()

	// initial snapshot so late subscribers can render immediately
	sendEvent("state", a.conductor.State())

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case n := <-ch:
			sendEvent(n.Topic, n.Payload)
		}
	}
}
