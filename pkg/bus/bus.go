// Package bus provides a minimal synchronous publish/subscribe primitive.
// Handlers run in registration order on the publisher's stack, so a publish
// returns only after every subscriber has seen the payload.
package bus

import (
	"sync"

	"github.com/google/uuid"
)

// Handler receives the payload published on a topic.
type Handler func(payload any)

// Subscription identifies a registered handler so it can be removed later.
type Subscription struct {
	ID    string
	Topic string
	fn    Handler
}

// Bus routes payloads to topic subscribers. The zero value is not usable,
// call New.
//
// Delivery is synchronous and in registration order. A handler may publish
// or subscribe again from inside its callback; nothing prevents infinite
// reentrancy, that discipline is left to callers.
type Bus struct {
	mu     sync.Mutex
	topics map[string][]*Subscription
}

func New() *Bus {
	return &Bus{topics: make(map[string][]*Subscription)}
}

// Subscribe registers fn on topic and returns its subscription token.
func (b *Bus) Subscribe(topic string, fn Handler) *Subscription {
	sub := &Subscription{
		ID:    uuid.NewString(),
		Topic: topic,
		fn:    fn,
	}
	b.mu.Lock()
	b.topics[topic] = append(b.topics[topic], sub)
	b.mu.Unlock()
	return sub
}

// Unsubscribe removes a subscription. Unknown or already removed
// subscriptions are ignored.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.topics[sub.Topic]
	for i, s := range subs {
		if s.ID == sub.ID {
			b.topics[sub.Topic] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish delivers payload to every current subscriber of topic, in the
// order they subscribed, before returning. The subscriber list is
// snapshotted first, so handlers that subscribe or unsubscribe during
// delivery do not affect the in-flight publish.
func (b *Bus) Publish(topic string, payload any) {
	b.mu.Lock()
	subs := make([]*Subscription, len(b.topics[topic]))
	copy(subs, b.topics[topic])
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(payload)
	}
}
